package main

import (
	"os"

	"github.com/landing/contacto-api/internal/logging"
)

func main() {
	logging.Setup("contacto-migrate", os.Getenv("LOG_LEVEL"))
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
