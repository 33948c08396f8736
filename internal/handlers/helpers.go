// internal/handlers/helpers.go
package handlers

import (
	"strconv"

	"crm-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// ParseID reads the :id path segment. It writes a 400 and returns false
// when the segment is not a positive integer.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

// BindJSON decodes the request body, writing a 400 on malformed JSON.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.ValidationError(c, "Invalid JSON body")
		return false
	}
	return true
}

// Deleted is the body returned by every successful delete.
func Deleted(c *gin.Context) {
	response.Success(c, 0, gin.H{"ok": true})
}
