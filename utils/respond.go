package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes the standard error envelope. Messages must stay
// tenant-safe: never confirm that an entity exists in another salon.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
