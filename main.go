package main

import (
	log "github.com/sirupsen/logrus"

	"spots-server/config"
	"spots-server/di"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	container := di.NewContainer(cfg)
	defer container.Close()

	container.SpotsHttpServer.Start()
}
