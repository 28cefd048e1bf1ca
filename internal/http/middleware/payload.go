package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"todo_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects requests whose Content-Type is not a JSON media type.
// Parameters like charset are ignored.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaType, _, err := mime.ParseMediaType(c.ContentType())
		if err != nil || mediaType != "application/json" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid content type"})
			return
		}
		c.Next()
	}
}

// TaskLength rejects task payloads whose description is missing or longer
// than the limit. The body is restored so handlers can bind it again.
func TaskLength() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var payload struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		if payload.Description == "" || len(payload.Description) > domain.MaxDescriptionLength {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "task exceeds 140 characters"})
			return
		}

		c.Next()
	}
}
