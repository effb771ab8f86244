package response

import "github.com/gin-gonic/gin"

// Every endpoint answers in the same envelope: {"success": true, "data": ...}
// on the happy path, {"success": false, "error": {...}} otherwise. Handlers
// never shape JSON themselves.

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes a machine-readable code from the wire taxonomy plus a
// human-readable message.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// ErrorWithDetails attaches a structured payload, e.g. the field->tag map
// from payload validation.
func ErrorWithDetails(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message, "details": details},
	})
}
