// Package forms holds field validation and the shared HTML control
// rendering used by the public capture pages. Each form declares its
// fields explicitly and applies the styling helpers itself; there is no
// inherited behavior.
package forms

import (
	"fmt"
	"html"
	"net/mail"
	"strings"

	"github.com/leadboxhq/leadbox-backend/internal/models"
)

// FieldErrors maps field name to a single human-readable message.
type FieldErrors map[string]string

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// ValidEmail reports whether s parses as a bare RFC 5322 address.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// LeadForm carries the public capture form's submitted values.
type LeadForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Trim normalizes whitespace on every field before validation.
func (f *LeadForm) Trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate returns field-level errors; an empty map means the form is
// acceptable. Phone is optional, everything else is required.
func (f *LeadForm) Validate() FieldErrors {
	f.Trim()
	errs := FieldErrors{}

	if f.Name == "" {
		errs["name"] = "Name is required."
	} else if len(f.Name) > 255 {
		errs["name"] = "Name must be at most 255 characters."
	}

	if f.Email == "" {
		errs["email"] = "Email is required."
	} else if !ValidEmail(f.Email) {
		errs["email"] = "Enter a valid email address."
	}

	if len(f.Phone) > 50 {
		errs["phone"] = "Phone must be at most 50 characters."
	}

	if f.Message == "" {
		errs["message"] = "Message is required."
	} else if len(f.Message) > models.MaxMessageLength {
		errs["message"] = fmt.Sprintf("Message must be at most %d characters.", models.MaxMessageLength)
	}

	return errs
}

// TextInput renders a styled <input> control with its label and, when
// present, the field's validation message.
func TextInput(field, label, typ, value string, errs FieldErrors) string {
	var b strings.Builder
	class := "form-control"
	if errs.Has(field) {
		class += " is-invalid"
	}
	fmt.Fprintf(&b, `<div class="field"><label for="id_%s">%s</label>`, field, html.EscapeString(label))
	fmt.Fprintf(&b, `<input type="%s" name="%s" id="id_%s" class="%s" value="%s">`,
		typ, field, field, class, html.EscapeString(value))
	if msg, ok := errs[field]; ok {
		fmt.Fprintf(&b, `<div class="field-error">%s</div>`, html.EscapeString(msg))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// TextArea renders a styled <textarea> control, same shape as TextInput.
func TextArea(field, label, value string, rows int, errs FieldErrors) string {
	var b strings.Builder
	class := "form-control"
	if errs.Has(field) {
		class += " is-invalid"
	}
	fmt.Fprintf(&b, `<div class="field"><label for="id_%s">%s</label>`, field, html.EscapeString(label))
	fmt.Fprintf(&b, `<textarea name="%s" id="id_%s" class="%s" rows="%d">%s</textarea>`,
		field, field, class, rows, html.EscapeString(value))
	if msg, ok := errs[field]; ok {
		fmt.Fprintf(&b, `<div class="field-error">%s</div>`, html.EscapeString(msg))
	}
	b.WriteString(`</div>`)
	return b.String()
}
