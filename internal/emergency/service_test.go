package emergency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSendSOSSuccess(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewService(server.URL)
	if err := svc.SendSOS(context.Background()); err != nil {
		t.Fatalf("send sos: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected one webhook call, got %d", hits)
	}
}

func TestSendSOSNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(server.URL)
	if err := svc.SendSOS(context.Background()); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

func TestSendSOSUnconfigured(t *testing.T) {
	svc := NewService("")
	if err := svc.SendSOS(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSOSHandler(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	app := fiber.New()
	asUser := func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-1")
		return c.Next()
	}
	RegisterRoutes(app.Group("/emergency"), NewService(server.URL), asUser)

	req := httptest.NewRequest(http.MethodPost, "/emergency/sos", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("sos status: %v", err)
	}
}

func TestSOSHandlerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	app := fiber.New()
	asUser := func(c *fiber.Ctx) error { return c.Next() }
	RegisterRoutes(app.Group("/emergency"), NewService(server.URL), asUser)

	req := httptest.NewRequest(http.MethodPost, "/emergency/sos", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %v %d", err, resp.StatusCode)
	}
}
