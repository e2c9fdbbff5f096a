package main

import (
	"os"

	"github.com/dmitrymomot/authgate/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
