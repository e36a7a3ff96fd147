package notification

// Event names pushed over the SSE stream when a record changes state.
const (
	EventTimesheetDecided = "timesheet_decided"
	EventDayOffDecided    = "day_off_decided"
)

// DecisionPayload is the SSE data for a decision event.
type DecisionPayload struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// Publisher pushes events to a user's connected clients. Implementations
// never block: events for absent or slow subscribers are dropped.
type Publisher interface {
	Publish(userID, event string, payload any)
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
