package main

import (
	"log"

	"github.com/feedchain/backend/app"
)

func main() {
	application, err := app.NewApp().WithAutoConfig().Build()
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	application.Run()
}
