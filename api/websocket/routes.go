package websocket

import (
	"codeberg.org/renderjam/server/internal/studio"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, service *studio.Service) {
	router.GET("/ws/refine", RefineHandler(service))
}
