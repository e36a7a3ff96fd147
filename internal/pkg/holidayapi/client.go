package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/holiday"
	"golang.org/x/sync/singleflight"
)

// Client fetches public holidays from a Nager.Date-compatible API
// (GET {baseURL}/api/v3/PublicHolidays/{year}/{countryCode}) and caches
// each year's calendar in process. Concurrent lookups for an uncached year
// collapse into a single upstream request.
type Client struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client

	mu    sync.RWMutex
	years map[int]map[string]holiday.Holiday // year -> "2006-01-02" -> holiday
	group singleflight.Group
}

func NewClient(baseURL, countryCode string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: timeout},
		years:       make(map[int]map[string]holiday.Holiday),
	}
}

type apiHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// IsHoliday reports whether date is a public holiday. A provider outage is
// not fatal: the date is treated as a regular working day and the failed
// lookup is logged.
func (c *Client) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	calendar, err := c.calendar(ctx, date.Year())
	if err != nil {
		slog.WarnContext(ctx, "holiday lookup failed, treating date as non-holiday",
			slog.Int("year", date.Year()),
			slog.Any("error", err),
		)
		return false, nil
	}
	_, ok := calendar[date.Format("2006-01-02")]
	return ok, nil
}

func (c *Client) Year(ctx context.Context, year int) ([]holiday.Holiday, error) {
	calendar, err := c.calendar(ctx, year)
	if err != nil {
		return nil, err
	}

	holidays := make([]holiday.Holiday, 0, len(calendar))
	for _, h := range calendar {
		holidays = append(holidays, h)
	}
	return holidays, nil
}

func (c *Client) calendar(ctx context.Context, year int) (map[string]holiday.Holiday, error) {
	c.mu.RLock()
	cached, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := c.group.Do(strconv.Itoa(year), func() (any, error) {
		return c.fetch(ctx, year)
	})
	if err != nil {
		return nil, err
	}

	calendar := result.(map[string]holiday.Holiday)
	c.mu.Lock()
	c.years[year] = calendar
	c.mu.Unlock()
	return calendar, nil
}

func (c *Client) fetch(ctx context.Context, year int) (map[string]holiday.Holiday, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, c.countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday provider returned status %d for year %d", resp.StatusCode, year)
	}

	var payload []apiHoliday
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode holiday provider response: %w", err)
	}

	calendar := make(map[string]holiday.Holiday, len(payload))
	for _, h := range payload {
		date, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			continue
		}
		calendar[h.Date] = holiday.Holiday{
			Date:      date,
			LocalName: h.LocalName,
			Name:      h.Name,
		}
	}
	return calendar, nil
}
