package http

import (
	"net/http"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/holiday"
	"github.com/clocklab/timesheet-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	ListYear(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	holidays holiday.Provider
}

func NewHolidayHandler(holidays holiday.Provider) HolidayHandler {
	return &HolidayHandlerImpl{holidays: holidays}
}

// ListYear returns the public-holiday calendar for one year, defaulting to
// the current one. Clients use it to grey out days before submitting entries.
func (h *HolidayHandlerImpl) ListYear(w http.ResponseWriter, r *http.Request) {
	year := getIntQueryParam(r, "year", time.Now().Year())

	items, err := h.holidays.Year(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]holiday.HolidayResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, holiday.ToResponse(item))
	}
	response.Success(w, resp)
}
