package main

import (
	"FragFS/internal/dispatcher"
	"FragFS/internal/platform/client"
	"FragFS/internal/platform/messaging/zeromq/listener"
	"FragFS/internal/platform/messaging/zeromq/message"
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
)

func main() {
	url := flag.String("url", "http://localhost:3000", "store HTTP endpoint")
	watch := flag.String("watch", "", "layout feed to follow instead of reading commands, e.g. tcp://localhost:5556")
	flag.Parse()

	if *watch != "" {
		if err := follow(*watch); err != nil {
			log.Fatal(err)
		}
		return
	}

	d := dispatcher.NewDispatcher(client.NewStoreClient(*url))
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		reply := d.Execute(scanner.Text())
		if reply.Message != "" {
			if reply.Failed {
				fmt.Println("error:", reply.Message)
			} else {
				fmt.Println(reply.Message)
			}
		}
		fmt.Print("> ")
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

func follow(endpoint string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	l, err := listener.NewZeromqLayoutListener(ctx, endpoint, func(msg message.LayoutMessage) {
		fmt.Println(dispatcher.RenderLayout(msg.ToLayout()))
		fmt.Println()
	})
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		l.Close()
	}()
	l.Listen()
	return nil
}
