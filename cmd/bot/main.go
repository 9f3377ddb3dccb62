package main

import (
	"log"

	corecmd "github.com/dricdias/telegram-bot/core/cmd"
	"github.com/dricdias/telegram-bot/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.Load(path)
		},
		Bootstrap: app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("bot terminated: %v", err)
	}
}
