package response

import (
	"log/slog"
	"net/http"

	"anoa.com/apiplayground/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// GetRequestID retrieves the request id set by the access log middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		slog.Error("internal error",
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", err,
		)
	}

	c.JSON(code, gin.H{"error": apperror.PublicMessage(err)})
}

// Message writes a {"message": ...} body with the given status.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
