package main

import (
	"flag"
	"fmt"
	"os"

	"location-service/config"
	"location-service/server"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run: start | migrate")
	flag.Parse()

	if *commandFlag == "" {
		fmt.Println("Usage: go run main.go --command <command-name>")
		os.Exit(1)
	}

	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	switch *commandFlag {
	case "start":
		err = server.StartServer(cfg)
	case "migrate":
		err = server.RunMigrations(cfg)
	default:
		fmt.Printf("Unknown command %q\n", *commandFlag)
		os.Exit(1)
	}

	if err != nil {
		logger.Error("Command failed", zap.String("command", *commandFlag), zap.Error(err))
		os.Exit(1)
	}
}
