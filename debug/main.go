package main

import (
	"os"

	"github.com/emrgen/thirdplace/internal/config"
	"github.com/emrgen/thirdplace/internal/server"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetLevel(logrus.DebugLevel)

	cfg := config.LoadConfig()
	if grpcPort := os.Getenv("GRPC_PORT"); grpcPort != "" {
		cfg.GrpcPort = grpcPort
	}
	if httpPort := os.Getenv("HTTP_PORT"); httpPort != "" {
		cfg.HttpPort = httpPort
	}

	err := server.Start(cfg)
	if err != nil {
		logrus.Fatal(err)
	}
}
