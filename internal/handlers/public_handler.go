package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/leadboxhq/leadbox-backend/internal/config"
	"github.com/leadboxhq/leadbox-backend/internal/forms"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"github.com/leadboxhq/leadbox-backend/internal/services"
)

// PublicHandler serves everything an anonymous visitor touches: the
// landing page, the capture form and the embed script.
type PublicHandler struct {
	leadService *services.LeadService
	cfg         *config.Config
}

func NewPublicHandler(leadService *services.LeadService, cfg *config.Config) *PublicHandler {
	return &PublicHandler{leadService: leadService, cfg: cfg}
}

// Home is a minimal landing page pointing at the API.
func (h *PublicHandler) Home(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Leadbox</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:40px 20px;color:#333}h1{color:#1a1a1a}code{background:#f4f4f4;padding:2px 6px;border-radius:4px}</style>
</head><body>
<h1>Leadbox</h1>
<p>Capture leads from any website with a one-line embed snippet and manage them from your dashboard.</p>
<h2>Getting started</h2>
<p>Create an account via <code>POST /api/auth/signup</code>, then paste the embed script from your dashboard into your site.</p>
<h2>Status</h2>
<p>Health: <code>GET /api/health</code></p>
</body></html>`)
}

// ShowForm renders the empty capture form. `?embed=1` strips the page
// chrome for iframe use; it is presentation only.
func (h *PublicHandler) ShowForm(c *fiber.Ctx) error {
	profile, err := h.leadService.ResolveProfile(c.Params("public_id"))
	if err != nil {
		return h.profileError(c, err)
	}

	embedMode := c.Query("embed") == "1"
	page := renderFormPage(profile, &forms.LeadForm{}, nil, false, embedMode)
	return c.Type("html").SendString(page)
}

// SubmitForm validates the submission and stores it as a NEW lead. The
// confirmation re-renders in the same embed/compact mode so the iframe
// stays chrome-less.
func (h *PublicHandler) SubmitForm(c *fiber.Ctx) error {
	profile, err := h.leadService.ResolveProfile(c.Params("public_id"))
	if err != nil {
		return h.profileError(c, err)
	}

	embedMode := c.Query("embed") == "1"
	form := forms.LeadForm{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		Message: c.FormValue("message"),
	}

	_, fieldErrs, err := h.leadService.Capture(profile, &form)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			Type("html").
			SendString(renderErrorPage("Something went wrong. Please try again."))
	}
	if len(fieldErrs) > 0 {
		page := renderFormPage(profile, &form, fieldErrs, false, embedMode)
		return c.Status(fiber.StatusBadRequest).Type("html").SendString(page)
	}

	page := renderFormPage(profile, &forms.LeadForm{}, nil, true, embedMode)
	return c.Status(fiber.StatusCreated).Type("html").SendString(page)
}

// EmbedScript returns a snippet that injects the capture form as an
// iframe next to the script tag. The URL must be absolute and is
// JSON-escaped so a hostile public_id can't break out of the string.
func (h *PublicHandler) EmbedScript(c *fiber.Ctx) error {
	profile, err := h.leadService.ResolveProfile(c.Params("public_id"))
	if err != nil {
		return h.profileError(c, err)
	}

	formURL := publicFormURL(absoluteBaseURL(c, h.cfg), profile.PublicID) + "?embed=1"
	urlLiteral, err := json.Marshal(formURL)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	script := "(function(){" +
		"var container=document.currentScript.parentElement;" +
		"var iframe=document.createElement('iframe');" +
		"iframe.src=" + string(urlLiteral) + ";" +
		"iframe.loading='lazy';" +
		"iframe.style.width='100%';" +
		"iframe.style.border='0';" +
		"iframe.style.minHeight='" + strconv.Itoa(profile.EmbedMinHeight()) + "px';" +
		"container.appendChild(iframe);" +
		"})();"

	c.Set(fiber.HeaderContentType, "application/javascript")
	return c.SendString(script)
}

func (h *PublicHandler) profileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrProfileNotFound) {
		return c.Status(fiber.StatusNotFound).
			Type("html").
			SendString(renderErrorPage("This form does not exist."))
	}
	return c.Status(fiber.StatusInternalServerError).
		Type("html").
		SendString(renderErrorPage("Something went wrong. Please try again."))
}

const pageStyle = `body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:560px;margin:0 auto;padding:24px 16px;color:#333}` +
	`h1{color:#1a1a1a;font-size:1.4em}` +
	`.field{margin-bottom:14px}` +
	`label{display:block;margin-bottom:4px;font-weight:600}` +
	`.form-control{width:100%;box-sizing:border-box;padding:8px;border:1px solid #ccc;border-radius:6px;font:inherit}` +
	`.form-control.is-invalid{border-color:#c0392b}` +
	`.field-error{color:#c0392b;font-size:0.85em;margin-top:3px}` +
	`button{background:#1a73e8;color:#fff;border:0;border-radius:6px;padding:10px 18px;font:inherit;cursor:pointer}` +
	`.success{background:#e6f4ea;border:1px solid #34a853;border-radius:6px;padding:12px;margin-bottom:16px}` +
	`.compact{padding:8px}`

func renderFormPage(profile *models.BusinessProfile, form *forms.LeadForm, errs forms.FieldErrors, submitted, embedMode bool) string {
	var b strings.Builder

	bodyClass := ""
	if embedMode {
		bodyClass = ` class="compact"`
	}

	name := html.EscapeString(profile.BusinessName)
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html><head><title>Contact %s</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>%s</style>
</head><body%s>`, name, pageStyle, bodyClass)

	if !embedMode {
		fmt.Fprintf(&b, `<h1>Contact %s</h1>`, name)
	}

	if submitted {
		b.WriteString(`<div class="success">Thanks! Your message has been sent.</div>`)
	}

	action := "/public/form/" + profile.PublicID
	if embedMode {
		action += "?embed=1"
	}

	fmt.Fprintf(&b, `<form method="post" action="%s">`, action)
	b.WriteString(forms.TextInput("name", "Name", "text", form.Name, errs))
	b.WriteString(forms.TextInput("email", "Email", "email", form.Email, errs))
	b.WriteString(forms.TextInput("phone", "Phone (optional)", "tel", form.Phone, errs))
	b.WriteString(forms.TextArea("message", "Message", form.Message, 4, errs))
	b.WriteString(`<button type="submit">Send</button></form>`)
	b.WriteString(`</body></html>`)
	return b.String()
}

func renderErrorPage(message string) string {
	return `<!DOCTYPE html>
<html><head><title>Not available</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>` + pageStyle + `</style>
</head><body><h1>Not available</h1><p>` + html.EscapeString(message) + `</p></body></html>`
}
