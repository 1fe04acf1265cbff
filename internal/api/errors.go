package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

// writeError is the single conversion point from the domain error taxonomy
// to HTTP. Internal errors are logged here and never leak detail to the
// caller outside development mode.
func writeError(c *gin.Context, err error, dev bool) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.Internal(err)
	}

	status := statusOf(de.Kind)
	message := de.Message
	if de.Kind == domain.KindInternal {
		log.Printf("internal error: %v", err)
		if dev {
			message = err.Error()
		} else {
			message = "internal server error"
		}
	}

	c.AbortWithStatusJSON(status, envelope{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Errors:     de.Fields,
	})
}

func statusOf(kind domain.Kind) int {
	switch kind {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes the body and normalizes binding failures: validator
// errors become a 422 with field detail, everything else a 400.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]domain.FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, domain.FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		return domain.Validation("validation failed", fields...)
	}
	return domain.BadRequest("invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}
