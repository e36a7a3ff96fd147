package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/dayoff"
	"github.com/clocklab/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DayOffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type DayOffHandlerImpl struct {
	dayOffService dayoff.DayOffService
}

func NewDayOffHandler(dayOffService dayoff.DayOffService) DayOffHandler {
	return &DayOffHandlerImpl{dayOffService: dayOffService}
}

func (h *DayOffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req dayoff.CreateDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = getUserIDFromContext(r)

	resp, err := h.dayOffService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create day off error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Day-off request created", resp)
}

func (h *DayOffHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req dayoff.DecideDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.dayOffService.Decide(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		slog.Error("Decide day off error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *DayOffHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.dayOffService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *DayOffHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := dayoff.Filter{
		Page:  getIntQueryParam(r, "page", 1),
		Limit: getIntQueryParam(r, "limit", 20),
	}
	if v := q.Get("status"); v != "" {
		status := dayoff.Status(v)
		filter.Status = &status
	}
	if v := q.Get("from"); v != "" {
		if from, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = &from
		}
	}
	if v := q.Get("to"); v != "" {
		if to, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = &to
		}
	}

	resp, err := h.dayOffService.ListMine(r.Context(), getUserIDFromContext(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(resp.Total) / filter.Limit
	if int(resp.Total)%filter.Limit != 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, resp.Items, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: resp.Total,
		TotalPages: totalPages,
	})
}

func (h *DayOffHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.dayOffService.Delete(r.Context(), getUserIDFromContext(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day-off request deleted", nil)
}
