package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// companyIDKey is the key used to store the calling company's ID in the Gin context.
const companyIDKey = contextKey("companyID")

// userIDKey is the key used to store the acting user's ID in the Gin context.
const userIDKey = contextKey("userID")

const (
	companyIDHeader = "X-Company-ID"
	userIDHeader    = "X-User-ID"
)

// CompanyContextMiddleware extracts the company and user identifiers set by
// the API gateway. Every route behind it is company-scoped; a request without
// a company ID is rejected before reaching a handler.
func CompanyContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader(companyIDHeader)
		if companyID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + companyIDHeader + " header"})
			return
		}
		c.Set(string(companyIDKey), companyID)

		if userID := c.GetHeader(userIDHeader); userID != "" {
			c.Set(string(userIDKey), userID)
		}

		c.Next()
	}
}

// GetCompanyIDFromContext retrieves the calling company's ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	companyIDVal, exists := c.Get(string(companyIDKey))
	if !exists {
		return "", false
	}

	companyID, ok := companyIDVal.(string)
	if !ok {
		return "", false
	}

	return companyID, true
}

// GetUserIDFromContext retrieves the acting user's ID from the Gin context.
// Mutations are attributed to this user; reads work without one.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
