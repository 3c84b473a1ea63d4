package health

import (
	"context"
	"net/http"

	"github.com/RodolfoBonis/spooliq/core/logger"
	"github.com/gin-gonic/gin"
)

// Checker reports whether a dependency (database, bus, cache) is reachable.
type Checker func(ctx context.Context) error

// Routes registers the liveness and readiness probes. Readiness runs every
// checker (DB, message bus, Redis) and fails if any of them errors; liveness
// never touches a dependency, since it exists to tell the orchestrator the
// process itself hasn't deadlocked.
func Routes(route *gin.RouterGroup, log logger.Logger, checkers map[string]Checker) {
	route.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	route.GET("/readyz", func(c *gin.Context) {
		ctx := c.Request.Context()
		failures := map[string]string{}

		for name, check := range checkers {
			if err := check(ctx); err != nil {
				log.Warning(ctx, "readiness check failed", map[string]interface{}{
					"dependency": name,
					"error":      err.Error(),
				})
				failures[name] = err.Error()
			}
		}

		if len(failures) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "failures": failures})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
