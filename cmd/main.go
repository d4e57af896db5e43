package main

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

// @title Doctor-Patient Platform API
// @version 1.0
// @description Telehealth backend with appointment booking, prescriptions, medical records and video consultations.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	app.Run()
}
