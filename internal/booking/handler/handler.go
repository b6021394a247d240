// Package handler serves the booking forms as HTML pages and as a JSON API.
package handler

import (
	"net/http"
	"strings"

	"securebook/internal/booking/service"
	"securebook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service  service.FormService
	sessions *Sessions
	pages    *Pages
	log      *logger.Logger
}

func NewBookingHandler(svc service.FormService, sessions *Sessions, pages *Pages, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:  svc,
		sessions: sessions,
		pages:    pages,
		log:      log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Landing)
	router.GET("/book/:category", h.ShowForm)
	router.POST("/book/:category", h.PostForm)

	router.GET("/api/v1/categories", h.ListCategories)
	router.GET("/api/v1/categories/:category/venues", h.ListVenues)
	router.GET("/api/v1/forms/:category", h.GetForm)
	router.PATCH("/api/v1/forms/:category", h.EditField)
	router.DELETE("/api/v1/forms/:category", h.ResetForm)
	router.POST("/api/v1/forms/:category/submit", h.SubmitForm)
}

// IsSubmission reports whether r is a booking submission attempt, the
// requests the per-session rate limit counts.
func IsSubmission(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	if strings.HasPrefix(r.URL.Path, "/api/v1/forms/") {
		return strings.HasSuffix(r.URL.Path, "/submit")
	}
	if strings.HasPrefix(r.URL.Path, "/book/") {
		return r.PostFormValue("intent") == intentSubmit
	}
	return false
}
