package handler

import (
	"net/http"

	"securebook/internal/booking/form"
	"securebook/internal/catalog"
	apperrors "securebook/pkg/errors"
	httputil "securebook/pkg/http"
	"securebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type EditFieldRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type VenuesResponse struct {
	Region      string   `json:"region"`
	Venues      []string `json:"venues"`
	Placeholder string   `json:"placeholder"`
	Disabled    bool     `json:"disabled"`
}

func (h *BookingHandler) ListCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	specs := make([]*model.FormSpec, 0, len(catalog.Bookable()))
	for _, c := range catalog.Bookable() {
		spec, err := catalog.FormSpec(c)
		if err != nil {
			h.writeError(w, "ListCategories", apperrors.Internal("Failed to load booking categories", err))
			return
		}
		specs = append(specs, spec)
	}

	if err := httputil.WriteSuccess(w, specs); err != nil {
		h.log.Error("failed to write success response", "handler", "ListCategories", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListVenues(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c, err := catalog.ParseCategory(ps.ByName("category"))
	if err != nil {
		h.writeError(w, "ListVenues", apperrors.NotFoundWithID("Booking category", ps.ByName("category")))
		return
	}
	spec, err := catalog.FormSpec(c)
	if err != nil {
		h.writeError(w, "ListVenues", apperrors.Internal("Failed to load booking category", err))
		return
	}

	region := r.URL.Query().Get("region")
	venues := form.SelectableVenues(region, spec.Venues)

	if err := httputil.WriteSuccess(w, VenuesResponse{
		Region:      region,
		Venues:      venues,
		Placeholder: form.VenuePlaceholder(region, spec.VenueNoun),
		Disabled:    len(venues) == 0,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "ListVenues", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := h.sessions.Ensure(w, r)

	view, err := h.service.Open(r.Context(), sessionID, ps.ByName("category"))
	if err != nil {
		h.writeError(w, "GetForm", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "GetForm", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) EditField(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := h.sessions.Ensure(w, r)

	var req EditFieldRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "EditField", err)
		return
	}
	if req.Name == "" {
		h.writeError(w, "EditField", apperrors.InvalidInput("Field name is required"))
		return
	}

	view, err := h.service.EditField(r.Context(), sessionID, ps.ByName("category"), req.Name, req.Value)
	if err != nil {
		h.writeError(w, "EditField", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "EditField", "operation", "WriteSuccess", "error", err)
	}
}

// SubmitForm answers 202 with the resulting view: submitting while a
// pending outcome is awaited, otherwise succeeded.
func (h *BookingHandler) SubmitForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := h.sessions.Ensure(w, r)

	view, err := h.service.Submit(r.Context(), sessionID, ps.ByName("category"))
	if err != nil {
		h.writeError(w, "SubmitForm", err)
		return
	}

	if err := httputil.WriteAccepted(w, view); err != nil {
		h.log.Error("failed to write accepted response", "handler", "SubmitForm", "operation", "WriteAccepted", "error", err)
	}
}

func (h *BookingHandler) ResetForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := h.sessions.Ensure(w, r)

	view, err := h.service.Reset(r.Context(), sessionID, ps.ByName("category"))
	if err != nil {
		h.writeError(w, "ResetForm", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "ResetForm", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if apperrors.AsAppError(err).StatusCode() >= http.StatusInternalServerError {
		h.log.Error("request failed", "handler", handler, "error", err)
	}
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
