package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health statuses.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// checkTimeout bounds each check.
const checkTimeout = 2 * time.Second

// Check is a named dependency probe, e.g. a database ping.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// CheckResult is the reported outcome of one Check.
type CheckResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health returns a handler that runs every check and reports 503 when any
// of them fails.
func Health(serviceName string, checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := StatusHealthy
		results := make([]CheckResult, 0, len(checks))

		for _, chk := range checks {
			res := CheckResult{Name: chk.Name, Status: StatusHealthy}
			if chk.Fn != nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
				if err := chk.Fn(ctx); err != nil {
					res.Status = StatusUnhealthy
					res.Message = err.Error()
					status = StatusUnhealthy
				}
				cancel()
			}
			results = append(results, res)
		}

		httpStatus := http.StatusOK
		if status == StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": results,
		})
	}
}
