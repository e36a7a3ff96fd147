package holidayapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/v3/PublicHolidays/2024/ID", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2024-01-01","localName":"Tahun Baru","name":"New Year's Day"},
			{"date":"2024-08-17","localName":"Hari Kemerdekaan","name":"Independence Day"}
		]`))
	}))
}

func TestClient_IsHoliday(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, "ID", 5*time.Second)
	ctx := context.Background()

	ok, err := c.IsHoliday(ctx, time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsHoliday(ctx, time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_CachesYear(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, "ID", 5*time.Second)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.IsHoliday(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), hits.Load())
}

func TestClient_Year(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, "ID", 5*time.Second)

	holidays, err := c.Year(context.Background(), 2024)
	require.NoError(t, err)
	assert.Len(t, holidays, 2)
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "ID", 5*time.Second)

	// An unreachable calendar must not block timesheet creation: the date
	// reads as a regular working day.
	ok, err := c.IsHoliday(context.Background(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)

	// Callers that need the calendar itself still see the failure.
	_, err = c.Year(context.Background(), 2024)
	assert.Error(t, err)
}
