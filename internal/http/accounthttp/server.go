package accounthttp

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-media-server/internal/domain/models"
)

type AccountService interface {
	Register(ctx context.Context, username, password string) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*models.Account, error)
}

func Register(r *gin.Engine, accounts AccountService) {
	r.POST("/register", registerAccount(accounts))
	r.POST("/login", loginAccount(accounts))
}

func registerAccount(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body models.Account
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		acc, err := accounts.Register(c.Request.Context(), body.Username, body.Password)
		if err != nil {
			// duplicate username, validation failure and storage failure all
			// surface the same way on this route
			c.Status(http.StatusBadRequest)
			return
		}

		c.JSON(http.StatusOK, acc)
	}
}

func loginAccount(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body models.Account
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}

		acc, err := accounts.Login(c.Request.Context(), body.Username, body.Password)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}

		c.JSON(http.StatusOK, acc)
	}
}
