package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response helpers for the two body shapes the API uses: most endpoints
// return {"error": message}, the project-creation path returns
// {"success": false, "message": message}. There are no machine error codes;
// the HTTP status carries the kind.

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

// InternalError sends a 500 response. The underlying cause is expected to be
// logged by the caller; the client only sees the generic message.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// Fail sends a {"success": false, "message": ...} body with the given status,
// the convention the project-creation endpoints use.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"success": false, "message": message})
}
