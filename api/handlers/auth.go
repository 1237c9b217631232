// Package handlers provides HTTP API request handlers.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chathub/backend/internal/auth"
)

const identityKey = "identity"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// sendError sends an error response with the appropriate status code.
func sendError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// AuthMiddleware resolves the user identity from a bearer token. Requests
// without a resolvable identity are rejected here; the hub never sees them.
// The token is taken from the Authorization header, or from the "token"
// query parameter for WebSocket handshakes where browsers cannot set
// headers.
func AuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			sendError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Missing credentials")
			c.Abort()
			return
		}

		identity, err := verifier.Identity(token)
		if err != nil {
			sendError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid credentials")
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// getIdentity extracts the authenticated identity from the request context.
func getIdentity(c *gin.Context) string {
	if identity, exists := c.Get(identityKey); exists {
		if id, ok := identity.(string); ok {
			return id
		}
	}
	return ""
}
