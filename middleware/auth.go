package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/senku-sen/event-management-system/auth"
	"github.com/senku-sen/event-management-system/store"
	"github.com/senku-sen/event-management-system/utils"
)

// identityKey is the gin context key the resolved identity is stored under.
const identityKey = "identity"

// Auth verifies the Authorization: Bearer <token> header and attaches the
// resolved identity to the request context. The user record is re-fetched
// from the store rather than trusted from the token, so a role change or a
// deleted account takes effect before the token expires.
func Auth(tokens *auth.TokenService, users store.UserStore, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.AbortError(c, http.StatusUnauthorized, "authorization header required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.AbortError(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}")
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if err != store.ErrNotFound {
				log.WithError(err).Error("identity lookup failed")
			}
			utils.AbortError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(identityKey, auth.Identity{ID: user.ID, Email: user.Email, Role: user.Role})
		c.Next()
	}
}

// OptionalAuth resolves an identity when a valid bearer token is present
// and lets the request through anonymously otherwise. Used on registration,
// where an admin token may accompany the request to grant the Admin role.
func OptionalAuth(tokens *auth.TokenService, users store.UserStore, log *logrus.Logger) gin.HandlerFunc {
	required := Auth(tokens, users, log)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		required(c)
	}
}

// RequireAdmin halts the request unless the resolved identity is an admin.
// Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if !identity.IsAdmin() {
			utils.AbortError(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by Auth.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
