package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/repositories"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/auth"
)

// ContextUserKey is the gin context key holding the authenticated account.
const ContextUserKey = "currentUser"

// TokenCookieName is the cookie checked when no Authorization header is set.
const TokenCookieName = "token"

// UserLoader resolves an account by identifier for the auth middleware.
type UserLoader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// JWTAuth validates the bearer token and loads the account it names into
// the request context. The token is read from the Authorization header
// first, then from the token cookie. The payload only carries the account
// identifier; role and email always come from storage, so a role change
// takes effect on the next request.
func JWTAuth(jwtService *auth.JWTService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if header := c.GetHeader("Authorization"); header != "" {
			extracted, err := auth.ExtractBearerToken(header)
			if err != nil {
				abortUnauthenticated(c)
				return
			}
			tokenString = extracted
		} else if cookie, err := c.Cookie(TokenCookieName); err == nil {
			tokenString = cookie
		}
		if tokenString == "" {
			abortUnauthenticated(c)
			return
		}

		subject, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthenticated(c)
			return
		}
		oid, err := repositories.ParseObjectID(subject)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		user, err := users.GetByID(c.Request.Context(), oid)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				abortUnauthenticated(c)
				return
			}
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RoleRequired allows only the listed roles past. Must run after JWTAuth.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthenticated(c)
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		HandleAPIError(c, apperrors.NewForbiddenError(
			"User role "+string(user.Role)+" is not authorized to access this route"))
		c.Abort()
	}
}

// CurrentUser returns the authenticated account from the request context,
// or nil outside an authenticated route.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func abortUnauthenticated(c *gin.Context) {
	HandleAPIError(c, apperrors.ErrUnauthenticated)
	c.Abort()
}
