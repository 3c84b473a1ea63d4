package middlewares

import (
	"crypto/subtle"

	"github.com/RodolfoBonis/spooliq/core/config"
	"github.com/RodolfoBonis/spooliq/core/entities"
	"github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"
	"github.com/RodolfoBonis/spooliq/core/roles"
	"github.com/gin-gonic/gin"
)

// NewProtectMiddleware creates the internal admin surface guard. There is no
// public order-facing API in this system (spec §1 Non-goals); the only HTTP
// surface beyond health/ready probes is the operator's refill trigger, gated
// by a single static bearer token rather than a full identity provider.
func NewProtectMiddleware(log logger.Logger, appConfig *config.AppConfig) func(handler gin.HandlerFunc, role string) gin.HandlerFunc {
	return func(handler gin.HandlerFunc, role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			ctx := c.Request.Context()
			requestID, _ := c.Get("requestID")
			authHeader := c.GetHeader("Authorization")

			const prefix = "Bearer "
			if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
				err := errors.NewAppError(entities.ErrInvalidToken, "missing operator token", nil, nil)
				httpError := err.ToHTTPError()
				log.LogError(ctx, "auth failed: missing token", err)
				c.AbortWithStatusJSON(httpError.StatusCode, httpError)
				return
			}
			token := authHeader[len(prefix):]

			if appConfig.OperatorToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(appConfig.OperatorToken)) != 1 {
				err := errors.NewAppError(entities.ErrInvalidToken, "invalid operator token", nil, nil)
				httpError := err.ToHTTPError()
				log.LogError(ctx, "auth failed: token mismatch", err)
				c.AbortWithStatusJSON(httpError.StatusCode, httpError)
				return
			}

			if !roles.Satisfies(roles.OperatorRole, role) {
				err := errors.NewAppError(entities.ErrUnauthorized, "operator role insufficient", nil, nil)
				httpError := err.ToHTTPError()
				log.LogError(ctx, "auth failed: role floor not met", err)
				c.AbortWithStatusJSON(httpError.StatusCode, httpError)
				return
			}

			log.Info(ctx, "auth success", map[string]interface{}{
				"request_id": requestID,
				"ip":         c.ClientIP(),
				"role":       role,
			})

			c.Set("role", roles.OperatorRole)
			handler(c)
		}
	}
}
