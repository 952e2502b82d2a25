package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The client-facing bodies are fixed strings: error detail stays in the
// server logs, never in the response.

// BadRequest sends a 400 Bad Request response.
func BadRequest(c *gin.Context) {
	c.String(http.StatusBadRequest, "Bad request")
}

// NotFound sends the 404 response used when no clinical record matches.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "The requested test result was Not Found.")
}

// InternalServerError sends a 500 response with a generic message.
func InternalServerError(c *gin.Context, message string) {
	c.String(http.StatusInternalServerError, message)
}
