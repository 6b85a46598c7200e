package generate

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, core Core) {
	router.POST("/generate", Handler(core))
	router.POST("/image", ImageHandler(core))
	router.POST("/video", VideoHandler(core))
}
