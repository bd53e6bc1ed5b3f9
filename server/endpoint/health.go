// Package endpoint provides the operational endpoints every deployment
// of the auth service exposes.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker probes the service's dependencies. Keys name the
// dependency (e.g. "accounts"), a nil value means healthy.
type HealthChecker func(ctx context.Context) map[string]error

// Health reports service health. The endpoint answers 503 when any
// dependency check fails, so the gate in front of the chat app can stop
// routing sign-ins at a dead upstream.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		deps := map[string]string{}

		if checker != nil {
			for name, err := range checker(c.Request.Context()) {
				if err != nil {
					status = "unhealthy"
					deps[name] = err.Error()
				} else {
					deps[name] = "ok"
				}
			}
		}

		httpStatus := http.StatusOK
		if status == "unhealthy" {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":       status,
			"service":      serviceName,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"dependencies": deps,
		})
	}
}
