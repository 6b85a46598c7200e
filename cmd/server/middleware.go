package main

import (
	"os"
	"time"

	"codeberg.org/renderjam/server/internal/errors"
	"codeberg.org/renderjam/server/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// generation calls are expensive upstream; keep the per-IP budget low
const generationRateLimit = "30-M"

// configures CORS for the API
func CORSMiddleware() gin.HandlerFunc {
	allowed := os.Getenv("ALLOWED_ORIGIN")

	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if allowed != "" {
		cfg.AllowOrigins = []string{allowed}
	} else {
		cfg.AllowAllOrigins = true
	}

	return cors.New(cfg)
}

// per-IP request rate limiting for the generation routes
func RateLimitMiddleware() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(generationRateLimit)
	if err != nil {
		logger.FatalErr(err, "invalid rate limit format")
	}

	store := memorystore.NewStore()

	return mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "")
		}))
}
