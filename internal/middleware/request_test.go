package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func TestRequestContextDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(50 * time.Millisecond))

	var captured context.Context
	app.Get("/", func(c *fiber.Ctx) error {
		captured = c.UserContext()
		if _, ok := captured.Deadline(); !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, deadline missing", resp.StatusCode)
	}
	if !errors.Is(captured.Err(), context.Canceled) {
		t.Fatalf("context not cancelled after the handler returned: %v", captured.Err())
	}
}

func TestRequestLoggerTagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "req-42" }}))
	app.Use(RequestLogger(base))
	app.Get("/", func(c *fiber.Ctx) error {
		Logger(c).Info("handled")
		return c.SendStatus(fiber.StatusNoContent)
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/", nil)); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if !strings.Contains(buf.String(), "request_id=req-42") {
		t.Fatalf("log = %q", buf.String())
	}
}
