package main

import (
	"github.com/sirupsen/logrus"

	"github.com/kaduart/agenda-clinica-service/cmd/bootstrap"
)

func main() {
	// Initialize application with all dependencies
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	app.Run()
}
