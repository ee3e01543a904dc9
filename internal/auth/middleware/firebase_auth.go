package middleware

import (
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/yclaw-w26/apply-backend/internal/auth"
)

// RequireAuth validates the Firebase ID token and aborts with 401 when no
// identity can be resolved. Handlers behind it can rely on a non-empty UID.
func RequireAuth(authClient *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		decodedToken, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(auth.CtxFirebaseUID, decodedToken.UID)

		if email, ok := decodedToken.Claims["email"].(string); ok {
			c.Set("email", email)
		}

		c.Next()
	}
}

// OptionalAuth resolves an identity when a valid bearer token is present and
// continues anonymously otherwise. Used on reads that answer differently for
// signed-in users but never reject visitors.
func OptionalAuth(authClient *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		decodedToken, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			// treat an unverifiable token as anonymous, not as an error
			c.Next()
			return
		}

		c.Set(auth.CtxFirebaseUID, decodedToken.UID)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
