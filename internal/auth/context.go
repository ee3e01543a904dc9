package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// It is set by the auth middleware; an empty string means anonymous.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
