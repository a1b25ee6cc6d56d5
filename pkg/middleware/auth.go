package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neerajjagga/auth/internal/models"
	"github.com/neerajjagga/auth/internal/tokens"
)

// UserKey is the gin context key under which RequireAuth stores the
// authenticated user.
const UserKey = "user"

// UserSource is the minimal user lookup the middleware depends on.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth verifies the access_token cookie and attaches the matching
// user to the context. Requests without a valid, unexpired access token
// are rejected with 401.
func RequireAuth(codec *tokens.Codec, source UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie("access_token")
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token missing"})
			return
		}
		sub, err := codec.Verify(raw, tokens.KindAccess)
		if err != nil {
			msg := "Invalid access token"
			if errors.Is(err, tokens.ErrTokenExpired) {
				msg = "Access token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}
		u, err := source.GetByID(c.Request.Context(), sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
			return
		}
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid access token"})
			return
		}
		c.Set(UserKey, u)
		c.Next()
	}
}

// UserFromContext returns the user attached by RequireAuth, or nil.
func UserFromContext(c *gin.Context) *models.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
