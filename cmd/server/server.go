package main

import (
	"codeberg.org/renderjam/server/internal/config"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		config:   cfg,
		services: InitializeServices(cfg),
		router:   router,
	}

	RegisterRoutes(router, server)

	return server
}
