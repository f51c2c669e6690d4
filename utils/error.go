package utils

import (
	"errors"
	"net/http"

	"agrirent/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceError is a business-rule violation recovered into a structured
// error carrying the HTTP status it should surface as. The message names
// the violated invariant so the client can render it directly.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// ValidationError rejects malformed or out-of-order input (400).
func ValidationError(msg string) error {
	return &ServiceError{Status: http.StatusBadRequest, Message: msg}
}

// AuthorizationError rejects an actor who is not a party to the resource (403).
func AuthorizationError(msg string) error {
	return &ServiceError{Status: http.StatusForbidden, Message: msg}
}

// NotFoundError reports an unresolvable id (404).
func NotFoundError(msg string) error {
	return &ServiceError{Status: http.StatusNotFound, Message: msg}
}

// ConflictError rejects an operation against the wrong state, such as a
// taken slot or an illegal status transition (409).
func ConflictError(msg string) error {
	return &ServiceError{Status: http.StatusConflict, Message: msg}
}

// StateError rejects an illegal transition in the way the client is
// expected to recover from by resubmitting later (400).
func StateError(msg string) error {
	return &ServiceError{Status: http.StatusBadRequest, Message: msg}
}

// GatewayError surfaces a payment-provider failure as retryable (502).
func GatewayError(msg string) error {
	return &ServiceError{Status: http.StatusBadGateway, Message: msg}
}

// ErrorHandler is a middleware to catch panics and return the uniform
// error envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONFromError writes the envelope for a service error. Infrastructure
// failures collapse to a bare 500 in production so no internal detail leaks.
func JSONFromError(c *gin.Context, err error) {
	var se *ServiceError
	if errors.As(err, &se) {
		c.JSON(se.Status, gin.H{"success": false, "message": se.Message})
		return
	}

	GetLogger().Error("Unexpected error", zap.Error(err))
	msg := "Internal server error"
	if !config.IsProduction() {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
}

// JSONSuccess writes the uniform success envelope.
func JSONSuccess(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}
