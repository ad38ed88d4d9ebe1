package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the body of every non-resource reply. Resources are written
// as-is so that list endpoints return bare arrays.
type Response struct {
	Status  int    `json:"-"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, &Response{Status: http.StatusOK, Message: message})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, &Response{Status: status, Error: message})
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}
