package handler

import (
	"net/http"

	"securebook/internal/booking/form"
	apperrors "securebook/pkg/errors"
	httputil "securebook/pkg/http"

	"github.com/julienschmidt/httprouter"
)

const (
	intentRefresh = "refresh"
	intentSubmit  = "submit"
	intentReset   = "reset"
)

func (h *BookingHandler) Landing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteHTML(w, http.StatusOK, h.pages.Landing()); err != nil {
		h.log.Error("failed to write HTML response", "handler", "Landing", "operation", "WriteHTML", "error", err)
	}
}

func (h *BookingHandler) ShowForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := h.sessions.Ensure(w, r)

	view, err := h.service.Open(r.Context(), sessionID, ps.ByName("category"))
	if err != nil {
		h.renderError(w, "ShowForm", err)
		return
	}
	h.renderForm(w, "ShowForm", http.StatusOK, view)
}

// PostForm is the no-script path: every button posts the whole form with an
// intent naming what to do next.
func (h *BookingHandler) PostForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	category := ps.ByName("category")
	sessionID := h.sessions.Ensure(w, r)

	if err := r.ParseForm(); err != nil {
		h.renderError(w, "PostForm", apperrors.InvalidInput("Invalid form submission"))
		return
	}

	values := make(map[string]string, len(r.PostForm))
	for name := range r.PostForm {
		values[name] = r.PostForm.Get(name)
	}
	intent := values["intent"]
	delete(values, "intent")

	ctx := r.Context()
	switch intent {
	case "", intentRefresh:
		view, err := h.service.ApplyForm(ctx, sessionID, category, values)
		if err != nil {
			h.renderError(w, "PostForm", err)
			return
		}
		h.renderForm(w, "PostForm", http.StatusOK, view)

	case intentSubmit:
		if _, err := h.service.ApplyForm(ctx, sessionID, category, values); err != nil {
			h.renderError(w, "PostForm", err)
			return
		}
		view, err := h.service.Submit(ctx, sessionID, category)
		if err != nil {
			appErr := apperrors.AsAppError(err)
			switch {
			case view != nil && appErr.Code == apperrors.CodeValidation:
				h.renderForm(w, "PostForm", http.StatusUnprocessableEntity, view)
				return
			case view == nil && appErr.Code != apperrors.CodeConflict:
				h.renderError(w, "PostForm", err)
				return
			}
		}
		httputil.SeeOther(w, r, "/book/"+category)

	case intentReset:
		if _, err := h.service.Reset(ctx, sessionID, category); err != nil {
			h.renderError(w, "PostForm", err)
			return
		}
		httputil.SeeOther(w, r, "/book/"+category)

	default:
		h.renderError(w, "PostForm", apperrors.InvalidInput("Unknown form action"))
	}
}

func (h *BookingHandler) renderForm(w http.ResponseWriter, handler string, status int, view *form.View) {
	body, err := h.pages.Form(view)
	if err != nil {
		h.log.Error("failed to render form", "handler", handler, "operation", "RenderForm", "error", err)
		h.renderError(w, handler, apperrors.Internal("Failed to render form", err))
		return
	}
	if err := httputil.WriteHTML(w, status, body); err != nil {
		h.log.Error("failed to write HTML response", "handler", handler, "operation", "WriteHTML", "error", err)
	}
}

func (h *BookingHandler) renderError(w http.ResponseWriter, handler string, err error) {
	status, body := h.pages.Error(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "handler", handler, "error", err)
	}
	if writeErr := httputil.WriteHTML(w, status, body); writeErr != nil {
		h.log.Error("failed to write HTML response", "handler", handler, "operation", "WriteHTML", "error", writeErr)
	}
}
