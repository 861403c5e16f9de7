package main

import (
	"venue/config"
	"venue/di"
	"venue/shared/logger"
)

// @title Facility Booking Service
// @version 1.0
// @description Availability and pricing resolution service for university facility bookings.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
