package main

import (
	"securebook/pkg/app"
	"securebook/pkg/config"
)

const ServiceName = "securebook"

func main() {
	cfg := config.Load(ServiceName)

	if cfg.DraftStore == config.DraftStoreMongo {
		cfg.SetMongo()
		defer cfg.GracefulShutdown()
	}

	cfg.Log.Info("Starting SecureBook service")
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp()
	serverApp.Run()
}
