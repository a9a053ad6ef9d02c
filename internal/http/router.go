package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"social-media-server/internal/http/accounthttp"
	"social-media-server/internal/http/messagehttp"
	"social-media-server/internal/http/middleware"
)

// NewRouter assembles the gin engine: middleware, liveness route and the
// account and message surfaces.
func NewRouter(log *slog.Logger, accounts accounthttp.AccountService, messages messagehttp.MessageService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "social media backend running"})
	})

	accounthttp.Register(r, accounts)
	messagehttp.Register(r, messages)

	return r
}
