package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	texttemplate "text/template"

	"securebook/internal/booking/form"
	"securebook/internal/catalog"
	apperrors "securebook/pkg/errors"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed content/*.md
var contentFS embed.FS

type bookingType struct {
	Title string
	Href  string
}

type feature struct {
	Title       string
	Description string
}

var features = []feature{
	{"Bank-Level Security", "Your data is protected with enterprise-grade encryption and secure authentication"},
	{"Lightning Fast", "Book your tickets in under 60 seconds with our optimized booking flow"},
	{"Privacy First", "We never share your personal information. Your privacy is our priority"},
	{"Instant Confirmation", "Get your tickets immediately with unique QR codes and ticket numbers"},
}

type landingData struct {
	AuthURL      string
	Hero         template.HTML
	CTA          template.HTML
	BookingTypes []bookingType
	Features     []feature
}

type formData struct {
	View   *form.View
	Action string
}

type errorData struct {
	Title   string
	Message string
}

// Pages renders the HTML surface. The landing page is rendered once.
type Pages struct {
	landing []byte
	form    *template.Template
	error   *template.Template
}

func NewPages(authURL string) (*Pages, error) {
	landingTmpl, err := parsePage("landing.html")
	if err != nil {
		return nil, err
	}
	formTmpl, err := parsePage("form.html")
	if err != nil {
		return nil, err
	}
	errorTmpl, err := parsePage("error.html")
	if err != nil {
		return nil, err
	}

	hero, err := renderMarkdown("content/hero.md", authURL)
	if err != nil {
		return nil, err
	}
	cta, err := renderMarkdown("content/cta.md", authURL)
	if err != nil {
		return nil, err
	}

	data := landingData{
		AuthURL:  authURL,
		Hero:     hero,
		CTA:      cta,
		Features: features,
	}
	for _, c := range catalog.Listed() {
		t := bookingType{Title: c.Title()}
		if c.IsBookable() {
			t.Href = "/book/" + string(c)
		}
		data.BookingTypes = append(data.BookingTypes, t)
	}

	var buf bytes.Buffer
	if err := landingTmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render landing page: %w", err)
	}

	return &Pages{landing: buf.Bytes(), form: formTmpl, error: errorTmpl}, nil
}

func parsePage(name string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return tmpl, nil
}

// renderMarkdown fills the auth URL into a content file and converts it
// to HTML. Raw HTML in the source is not passed through.
func renderMarkdown(path, authURL string) (template.HTML, error) {
	src, err := contentFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	tmpl, err := texttemplate.New(path).Parse(string(src))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	var filled bytes.Buffer
	if err := tmpl.Execute(&filled, struct{ AuthURL string }{authURL}); err != nil {
		return "", fmt.Errorf("fill %s: %w", path, err)
	}

	var out bytes.Buffer
	if err := goldmark.Convert(filled.Bytes(), &out); err != nil {
		return "", fmt.Errorf("convert %s: %w", path, err)
	}
	return template.HTML(out.String()), nil
}

func (p *Pages) Landing() []byte {
	return p.landing
}

func (p *Pages) Form(view *form.View) ([]byte, error) {
	var buf bytes.Buffer
	err := p.form.ExecuteTemplate(&buf, "layout", formData{
		View:   view,
		Action: "/book/" + view.Category,
	})
	return buf.Bytes(), err
}

func (p *Pages) Error(err error) (int, []byte) {
	appErr := apperrors.AsAppError(err)
	status := appErr.StatusCode()

	data := errorData{Title: http.StatusText(status), Message: appErr.Message}
	if appErr.Code == apperrors.CodeInternal {
		data.Message = "Something went wrong. Please try again."
	}

	var buf bytes.Buffer
	if execErr := p.error.ExecuteTemplate(&buf, "layout", data); execErr != nil {
		return http.StatusInternalServerError, []byte("Internal server error")
	}
	return status, buf.Bytes()
}
