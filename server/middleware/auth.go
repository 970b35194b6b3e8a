package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ssehub/errors"
)

// ClaimsKey is the Gin context key holding validated token claims.
const ClaimsKey = "auth_claims"

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator func(token string) (map[string]any, error)

// AuthConfig configures the bearer token middleware.
type AuthConfig struct {
	Validator TokenValidator
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string
}

// Auth returns a Gin middleware that requires a valid Bearer token. The
// claims are stored under ClaimsKey.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, errors.Unauthorized("Authorization header required."))
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abort(c, errors.Unauthorized("Invalid authorization header format."))
			return
		}

		claims, err := cfg.Validator(token)
		if err != nil {
			abort(c, errors.InvalidToken().WithCause(err))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func abort(c *gin.Context, appErr *errors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(appErr.ToResponse())
}
