package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"

	// DemoUser owns requests that carry no identity when auth is not enforced.
	DemoUser = "demo-user"
)

// UserID returns the owner id of the current request, as set by
// FirebaseAuthMiddleware or OptionalUser.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
