package api

import (
	"github.com/gin-gonic/gin"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/pagination"
)

// envelope is the shared response shape for every endpoint.
type envelope struct {
	Success    bool                `json:"success"`
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	Meta       *pagination.Meta    `json:"meta,omitempty"`
	Errors     []domain.FieldError `json:"errors,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func respondPage(c *gin.Context, status int, message string, data any, meta pagination.Meta) {
	c.JSON(status, envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
		Meta:       &meta,
	})
}
