package main

import (
	"log"
	"net/http"

	"dive_trails/internal/config"
	"dive_trails/internal/logger"
	"dive_trails/internal/middleware"
	"dive_trails/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (request logging and recovery live there)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	log.Printf("server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
