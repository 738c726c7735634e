package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/daffahardhan/portfolio_api/shared"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/contact", ValidateContactForm(), func(c *fiber.Ctx) error {
		return shared.ResponseOKMessage(c, "passed", nil)
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) (*http.Response, shared.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var envelope shared.Response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	return resp, envelope
}

func TestValidateContactFormMissingFields(t *testing.T) {
	app := newTestApp()

	bodies := []string{
		`{}`,
		`{"name":"Jane"}`,
		`{"name":"Jane","email":"jane@example.com"}`,
		`{"name":"Jane","email":"jane@example.com","subject":"Hi"}`,
		`{"email":"jane@example.com","subject":"Hi","message":"A long enough message"}`,
	}

	for _, body := range bodies {
		resp, envelope := postJSON(t, app, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, resp.StatusCode)
		}
		if envelope.Success {
			t.Errorf("body %s: success should be false", body)
		}
		if envelope.Error != "All fields are required" {
			t.Errorf("body %s: error = %q", body, envelope.Error)
		}
	}
}

func TestValidateContactFormInvalidEmail(t *testing.T) {
	app := newTestApp()

	resp, envelope := postJSON(t, app,
		`{"name":"Jane","email":"not-an-email","subject":"Hi","message":"A long enough message"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if envelope.Error != "Invalid email format" {
		t.Errorf("error = %q", envelope.Error)
	}
}

func TestValidateContactFormShortMessage(t *testing.T) {
	app := newTestApp()

	resp, envelope := postJSON(t, app,
		`{"name":"Jane","email":"jane@example.com","subject":"Hi","message":"  short  "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if envelope.Error != "Message must be at least 10 characters" {
		t.Errorf("error = %q", envelope.Error)
	}
}

func TestValidateContactFormPasses(t *testing.T) {
	app := newTestApp()

	resp, envelope := postJSON(t, app,
		`{"name":"Jane","email":"jane@example.com","subject":"Hi","message":"A long enough message"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if !envelope.Success || envelope.Message != "passed" {
		t.Errorf("envelope = %+v, want pass-through", envelope)
	}
}
