package messagehttp

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-media-server/internal/domain/models"
)

type MessageService interface {
	Create(ctx context.Context, candidate models.Message) (*models.Message, error)
	All(ctx context.Context) ([]*models.Message, error)
	ByID(ctx context.Context, id int64) (*models.Message, error)
	Update(ctx context.Context, id int64, text string) (*models.Message, error)
	Delete(ctx context.Context, id int64) (*models.Message, error)
	ByAccountID(ctx context.Context, accountID int64) ([]*models.Message, error)
}

func Register(r *gin.Engine, messages MessageService) {
	r.POST("/messages", createMessage(messages))
	r.GET("/messages", getAllMessages(messages))
	r.GET("/messages/:message_id", getMessageByID(messages))
	r.DELETE("/messages/:message_id", deleteMessageByID(messages))
	r.PATCH("/messages/:message_id", updateMessageByID(messages))
	r.GET("/accounts/:account_id/messages", getMessagesByAccountID(messages))
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func createMessage(messages MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body models.Message
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		msg, err := messages.Create(c.Request.Context(), body)
		if err != nil {
			// missing account, invalid text and storage failure all map to 400
			c.Status(http.StatusBadRequest)
			return
		}

		c.JSON(http.StatusOK, msg)
	}
}

func getAllMessages(messages MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := messages.All(c.Request.Context())
		if err != nil {
			// only reachable when fail-open reads are disabled
			c.Status(http.StatusInternalServerError)
			return
		}

		c.JSON(http.StatusOK, msgs)
	}
}

func getMessageByID(messages MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "message_id")
		if !ok {
			return
		}

		msg, err := messages.ByID(c.Request.Context(), id)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		if msg == nil {
			c.Status(http.StatusOK)
			return
		}

		c.JSON(http.StatusOK, msg)
	}
}

func deleteMessageByID(messages MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "message_id")
		if !ok {
			return
		}

		msg, err := messages.Delete(c.Request.Context(), id)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		if msg == nil {
			// deleting an absent message succeeds with an empty body
			c.Status(http.StatusOK)
			return
		}

		c.JSON(http.StatusOK, msg)
	}
}

func updateMessageByID(messages MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "message_id")
		if !ok {
			return
		}

		var body models.Message
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		msg, err := messages.Update(c.Request.Context(), id, body.Text)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		c.JSON(http.StatusOK, msg)
	}
}

func getMessagesByAccountID(messages MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := pathID(c, "account_id")
		if !ok {
			return
		}

		msgs, err := messages.ByAccountID(c.Request.Context(), accountID)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}

		c.JSON(http.StatusOK, msgs)
	}
}
