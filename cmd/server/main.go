package main

import (
	"log"

	_ "taskhub/docs"
	"taskhub/internal/config"
	"taskhub/internal/server"
)

// @title           TaskHub API
// @version         1.0
// @description     Multi-tenant task management API: organizations, users, teams and tasks.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session_token
// @description Signed session token issued at login.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
