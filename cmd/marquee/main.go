package main

import (
	"log"

	"github.com/gmorais/marquee/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("marquee: %v", err)
	}
}
