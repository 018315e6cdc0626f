package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var portCmd = flag.Int("port", 0, "HTTP server port, overrides HTTP_SERVER_PORT")

const (
	DefaultServerPort    = 3000
	DefaultZmqApiPort    = 5555
	DefaultLayoutPubPort = 5556
	DefaultBlockCount    = 50
)

type Config struct {
	ServerPort        int
	ZmqApiPort        int
	LayoutPubPort     int
	BlockCount        int
	SnapshotDirectory string
	DeploymentMode    string
}

func LoadConfig() Config {
	godotenv.Load(".env")
	port := envInt("HTTP_SERVER_PORT", DefaultServerPort)
	if *portCmd != 0 {
		port = *portCmd
	}
	return Config{
		ServerPort:        port,
		ZmqApiPort:        envInt("ZMQ_API_PORT", DefaultZmqApiPort),
		LayoutPubPort:     envInt("LAYOUT_PUB_PORT", DefaultLayoutPubPort),
		BlockCount:        envInt("BLOCK_COUNT", DefaultBlockCount),
		SnapshotDirectory: os.Getenv("SNAPSHOT_DIRECTORY"),
		DeploymentMode:    os.Getenv("DEPLOYMENT_MODE"),
	}
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
