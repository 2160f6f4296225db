package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shiftbook-dev/shiftbook/backend/internal/scheduler"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.errorResponse(w, r, http.StatusBadRequest, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// schedulerError translates the core's typed errors into transport statuses.
// Conflicts carry the clashing shift so the client can show it and resubmit
// with ignoreClash set.
func (h *Handler) schedulerError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr *scheduler.ValidationError
		pErr *scheduler.PublishedWeekError
		cErr *scheduler.ConflictError
	)

	switch {
	case errors.As(err, &vErr):
		h.errorResponse(w, r, http.StatusBadRequest, vErr.Message)
	case errors.As(err, &pErr):
		h.errorResponse(w, r, http.StatusBadRequest, pErr.Error())
	case errors.As(err, &cErr):
		h.writeJSON(w, r, http.StatusConflict, Response{
			Success: false,
			Message: cErr.Error(),
			Data:    map[string]any{"conflictShift": cErr.Shift},
		})
	case errors.Is(err, scheduler.ErrWeekAlreadyPublished):
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, scheduler.ErrBatchDeleteUnsupported):
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, scheduler.ErrShiftNotFound):
		h.errorResponse(w, r, http.StatusNotFound, err.Error())
	default:
		h.internalServerError(w, r, err)
	}
}
