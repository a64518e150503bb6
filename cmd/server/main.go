package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/openmysteries/backend/internal/app"
)

func main() {
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Log.Sync()

	addr := ":" + application.Cfg.Port
	application.Log.Info("mysteries backend listening", "addr", addr)
	if err := application.Router.Run(addr); err != nil {
		application.Log.Fatal("server exited", "error", err)
	}
}
