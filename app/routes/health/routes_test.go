package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func checkHealth(t *testing.T, db Pinger) (int, Status) {
	t.Helper()
	app := fiber.New()
	SetupHealthRoutes(app, db)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, status
}

func TestHealthy(t *testing.T) {
	code, status := checkHealth(t, pingFunc(func(context.Context) error { return nil }))
	if code != http.StatusOK || status.Status != "healthy" || status.Database != "ok" {
		t.Fatalf("health = %d %+v", code, status)
	}
}

func TestUnreachableDatabaseHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.7:5432: connect: connection refused")
	code, status := checkHealth(t, pingFunc(func(context.Context) error { return cause }))
	if code != http.StatusServiceUnavailable || status.Status != "unhealthy" {
		t.Fatalf("health = %d %+v", code, status)
	}
	if status.Database != "unreachable" || strings.Contains(status.Database, "10.0.0.7") {
		t.Fatalf("database = %q", status.Database)
	}
}
