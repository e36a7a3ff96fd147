package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/timesheet"
	"github.com/clocklab/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService}
}

func (h *TimesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = getUserIDFromContext(r)

	resp, err := h.timesheetService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create timesheet error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet created", resp)
}

func (h *TimesheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpdateTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.timesheetService.Update(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		slog.Error("Update timesheet error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *TimesheetHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req timesheet.DecideTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.timesheetService.Decide(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		slog.Error("Decide timesheet error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *TimesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.timesheetService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *TimesheetHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	filter := timesheetFilterFromQuery(r)

	resp, err := h.timesheetService.ListMine(r.Context(), getUserIDFromContext(r), filter)
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

func (h *TimesheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.timesheetService.Delete(r.Context(), getUserIDFromContext(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet deleted", nil)
}

func timesheetFilterFromQuery(r *http.Request) timesheet.Filter {
	q := r.URL.Query()

	filter := timesheet.Filter{
		Page:  getIntQueryParam(r, "page", 1),
		Limit: getIntQueryParam(r, "limit", 20),
	}
	if v := q.Get("project_id"); v != "" {
		filter.ProjectID = &v
	}
	if v := q.Get("status"); v != "" {
		status := timesheet.Status(v)
		filter.Status = &status
	}
	if v := q.Get("from"); v != "" {
		if from, err := time.Parse("2006-01-02", v); err == nil {
			filter.From = &from
		}
	}
	if v := q.Get("to"); v != "" {
		if to, err := time.Parse("2006-01-02", v); err == nil {
			filter.To = &to
		}
	}
	return filter
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil || intVal <= 0 {
		return defaultVal
	}
	return intVal
}
