package main

import (
	"codeberg.org/renderjam/server/internal/config"
	"codeberg.org/renderjam/server/internal/studio"
	"github.com/gin-gonic/gin"
)

// Server holds the configured router and all service dependencies
type Server struct {
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// Services bundles the service clients created at startup
type Services struct {
	Studio *studio.Service
}
