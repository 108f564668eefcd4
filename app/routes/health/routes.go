package health

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the health check response body
type Status struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	GoVersion string    `json:"go_version"`
	Memory    string    `json:"memory_usage"`
}

var startTime = time.Now()

func SetupHealthRoutes(app fiber.Router, db Pinger) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return healthHandler(c, db)
	})
}

func healthHandler(c *fiber.Ctx, db Pinger) error {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := Status{
		Status:    "healthy",
		Database:  "ok",
		Timestamp: time.Now(),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		GoVersion: runtime.Version(),
		Memory:    fmt.Sprintf("%.2f MB", float64(memStats.Alloc)/1024/1024),
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		log.Printf("[health] database ping failed: %v", err)
		status.Status = "unhealthy"
		status.Database = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	return c.JSON(status)
}
