package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func resolveClientIP(t *testing.T, headers map[string]string) string {
	t.Helper()

	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = ClientIP(c)
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return got
}

func TestClientIPForwardedFor(t *testing.T) {
	got := resolveClientIP(t, map[string]string{
		"X-Forwarded-For": "203.0.113.9, 10.0.0.1, 10.0.0.2",
	})
	if got != "203.0.113.9" {
		t.Errorf("client ip = %q, want first forwarded hop", got)
	}
}

func TestClientIPRealIP(t *testing.T) {
	got := resolveClientIP(t, map[string]string{"X-Real-IP": "198.51.100.7"})
	if got != "198.51.100.7" {
		t.Errorf("client ip = %q, want X-Real-IP value", got)
	}
}

func TestClientIPCloudflare(t *testing.T) {
	got := resolveClientIP(t, map[string]string{"CF-Connecting-IP": "192.0.2.33"})
	if got != "192.0.2.33" {
		t.Errorf("client ip = %q, want CF-Connecting-IP value", got)
	}
}

func TestClientIPHeaderPrecedence(t *testing.T) {
	got := resolveClientIP(t, map[string]string{
		"X-Forwarded-For":  "203.0.113.9",
		"X-Real-IP":        "198.51.100.7",
		"CF-Connecting-IP": "192.0.2.33",
	})
	if got != "203.0.113.9" {
		t.Errorf("client ip = %q, want X-Forwarded-For to win", got)
	}
}

func TestClientIPFallback(t *testing.T) {
	got := resolveClientIP(t, nil)
	if got == "" {
		t.Error("client ip should never be empty")
	}
}
