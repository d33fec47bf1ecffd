package storage

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthStatus is the body of the storage health endpoint.
type HealthStatus struct {
	Status string `json:"status"`
	Driver string `json:"driver"`
	Error  string `json:"error,omitempty"`
}

// HealthHandler reports whether repo answers a ping within five seconds.
// Backends that cannot ping are reported healthy.
func HealthHandler(repo Repository, driver string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		status := HealthStatus{Status: "healthy", Driver: driver}
		if p, ok := repo.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				status.Status = "unhealthy"
				status.Error = err.Error()
				return c.JSON(http.StatusServiceUnavailable, status)
			}
		}
		return c.JSON(http.StatusOK, status)
	}
}
