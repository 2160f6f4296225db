package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftbook-dev/shiftbook/backend/internal/scheduler"
)

func (h *Handler) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	weekStart := r.URL.Query().Get("weekStart")

	schedule, err := h.scheduler.Find(r.Context(), weekStart)
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched week schedule", schedule)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	shift, err := h.scheduler.FindByID(r.Context(), id)
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched shift", shift)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Date        string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime   string `json:"startTime" validate:"required"`
		EndTime     string `json:"endTime" validate:"required"`
		IgnoreClash bool   `json:"ignoreClash"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.scheduler.Create(r.Context(), scheduler.CreateShiftInput{
		Name:        req.Name,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IgnoreClash: req.IgnoreClash,
	})
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Name        *string `json:"name"`
		Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		StartTime   *string `json:"startTime"`
		EndTime     *string `json:"endTime"`
		IgnoreClash bool    `json:"ignoreClash"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.scheduler.UpdateByID(r.Context(), id, scheduler.UpdateShiftInput{
		Name:        req.Name,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IgnoreClash: req.IgnoreClash,
	})
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduler.DeleteByID(r.Context(), id); err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}

// DeleteShifts accepts the bulk form of delete. The core only ever removes a
// single shift per call, so anything else comes back as a 400.
func (h *Handler) DeleteShifts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.scheduler.DeleteByID(r.Context(), req.IDs...); err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}
