package holiday

import (
	"context"
	"time"
)

// Holiday is a public holiday in the configured country.
type Holiday struct {
	Date      time.Time
	LocalName string
	Name      string
}

type HolidayResponse struct {
	Date      string `json:"date"`
	LocalName string `json:"local_name"`
	Name      string `json:"name"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		Date:      h.Date.Format("2006-01-02"),
		LocalName: h.LocalName,
		Name:      h.Name,
	}
}

// Provider looks up public holidays from an external calendar source.
// Implementations cache per year; lookups are read-only.
type Provider interface {
	// IsHoliday reports whether the given calendar date is a public holiday.
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	// Year returns all public holidays of the given year.
	Year(ctx context.Context, year int) ([]Holiday, error)
}
