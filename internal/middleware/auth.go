package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"academic_records/internal/models"
	"academic_records/internal/policy"
	"academic_records/internal/service"
)

const (
	userKey    = "user"
	callerKey  = "caller"
	tokenIDKey = "tokenID"
)

// Authenticator resolves a bearer token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (*models.User, *models.AccessToken, error)
}

// AuthMiddleware rejects requests without a valid, unrevoked bearer token
func AuthMiddleware(auth Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c)
			return
		}

		user, token, err := auth.Authenticate(c.Request.Context(), bearer)
		if errors.Is(err, service.ErrUnauthenticated) {
			abortUnauthenticated(c)
			return
		}
		if err != nil {
			logger.ErrorContext(c.Request.Context(), "authenticate request", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}

		c.Set(userKey, user)
		c.Set(callerKey, policy.NewCaller(user))
		c.Set(tokenIDKey, token.JTI)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
}

// CallerFrom returns the caller set by AuthMiddleware
func CallerFrom(c *gin.Context) policy.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(policy.Caller); ok {
			return caller
		}
	}
	return policy.Caller{}
}

// UserFrom returns the user set by AuthMiddleware
func UserFrom(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// TokenIDFrom returns the jti of the token the request was authenticated with
func TokenIDFrom(c *gin.Context) string {
	return c.GetString(tokenIDKey)
}
