package main

import (
	"FragFS/bootstrap"
	"flag"
	"log"
)

func main() {
	flag.Parse()
	log.Println("Starting FragFS...")
	if _, err := bootstrap.Run(); err != nil {
		log.Fatal(err)
	}
}
