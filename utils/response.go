package utils

import "github.com/gin-gonic/gin"

// Response is the envelope applied to every API reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a success envelope with the given status code.
func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope with the given status code.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// AbortError writes a failure envelope and halts the middleware chain.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}
