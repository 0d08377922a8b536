package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/config"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"github.com/leadboxhq/leadbox-backend/internal/services"
)

const testPublicID = "abc123def456"

func newPublicTestApp(t *testing.T) (*fiber.App, *memLeadRepo) {
	t.Helper()

	ownerID := uuid.New()
	profiles := newMemProfileRepo(models.BusinessProfile{
		ID:           uuid.New(),
		UserID:       ownerID,
		BusinessName: "Acme Plumbing",
		PublicID:     testPublicID,
		User:         models.User{ID: ownerID, Email: "owner@acme.test"},
	})
	leads := newMemLeadRepo()

	notifier := services.NewNotificationService(noopMailer{})
	leadService := services.NewLeadService(leads, profiles, notifier)
	cfg := &config.Config{PublicBaseURL: "https://leads.example.com"}
	h := NewPublicHandler(leadService, cfg)

	app := fiber.New()
	app.Get("/public/form/:public_id", h.ShowForm)
	app.Post("/public/form/:public_id", h.SubmitForm)
	app.Get("/public/embed/:public_id.js", h.EmbedScript)
	return app, leads
}

func TestShowForm(t *testing.T) {
	app, _ := newPublicTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public/form/"+testPublicID, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}

	body := readBody(t, resp)
	if !strings.Contains(body, "Acme Plumbing") {
		t.Error("page should carry the business name")
	}
	if !strings.Contains(body, `name="message"`) {
		t.Error("page should render the message field")
	}
}

func TestShowForm_UnknownPublicID(t *testing.T) {
	app, _ := newPublicTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public/form/nope00000000", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSubmitForm_Valid(t *testing.T) {
	app, leads := newPublicTestApp(t)

	form := url.Values{}
	form.Set("name", "John Doe")
	form.Set("email", "john@example.com")
	form.Set("message", "Need a quote for a bathroom remodel.")

	req := httptest.NewRequest(http.MethodPost, "/public/form/"+testPublicID, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(strings.ToLower(body), "thank") {
		t.Error("confirmation page expected after a valid submission")
	}

	if len(leads.leads) != 1 {
		t.Fatalf("stored %d leads, want 1", len(leads.leads))
	}
	for _, lead := range leads.leads {
		if lead.Status != models.StatusNew {
			t.Errorf("status = %q, want NEW", lead.Status)
		}
		if lead.Name != "John Doe" {
			t.Errorf("name = %q", lead.Name)
		}
	}
}

func TestSubmitForm_InvalidEmail(t *testing.T) {
	app, leads := newPublicTestApp(t)

	form := url.Values{}
	form.Set("name", "John Doe")
	form.Set("email", "not-an-email")
	form.Set("message", "hello")

	req := httptest.NewRequest(http.MethodPost, "/public/form/"+testPublicID, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if len(leads.leads) != 0 {
		t.Fatalf("stored %d leads, want 0", len(leads.leads))
	}

	body := readBody(t, resp)
	if !strings.Contains(body, "John Doe") {
		t.Error("re-rendered form should keep the submitted name")
	}
	if !strings.Contains(body, "is-invalid") {
		t.Error("re-rendered form should flag the bad field")
	}
}

func TestEmbedScript(t *testing.T) {
	app, _ := newPublicTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public/embed/"+testPublicID+".js", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Fatalf("content type = %q", ct)
	}

	body := readBody(t, resp)
	want := `"https://leads.example.com/public/form/` + testPublicID + `?embed=1"`
	if !strings.Contains(body, want) {
		t.Errorf("script should embed the absolute form URL %s, got:\n%s", want, body)
	}
	if !strings.Contains(body, "createElement('iframe')") {
		t.Error("script should inject an iframe")
	}
}

func TestEmbedScript_UnknownPublicID(t *testing.T) {
	app, _ := newPublicTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public/embed/missing.js", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}
