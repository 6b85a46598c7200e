package main

import (
	"codeberg.org/renderjam/server/api/rest/generate"
	"codeberg.org/renderjam/server/api/rest/health"
	"codeberg.org/renderjam/server/api/websocket"
	"codeberg.org/renderjam/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())

	router.NoRoute(func(c *gin.Context) {
		errors.NotFound(c, "")
	})

	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		generation := v1.Group("")
		generation.Use(RateLimitMiddleware())
		generate.RegisterRoutes(generation, server.services.Studio)

		websocket.RegisterRoutes(v1, server.services.Studio)
	}
}
