package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError writes the flat {"error": ...} shape the frontend
// expects. Extra fields (missing codes, role names) merge into the same
// object.
func RespondError(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"error": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
