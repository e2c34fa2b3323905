package model

// Source classifications for a unified event. Source is total: every record
// gets one of these and it is never a rejection cause.
const (
	SourceVendor   = "vendor"
	SourceDevice   = "device"
	SourceInternal = "internal"
)

// UnifiedEvent is the canonical output shape. Field order here is the JSON
// field order of the persisted result set.
type UnifiedEvent struct {
	ID        string     `json:"id"`
	Timestamp string     `json:"timestamp"`
	Source    string     `json:"source"`
	EventType string     `json:"eventType"`
	UserID    string     `json:"userId,omitempty"`
	Payload   *RawRecord `json:"payload"`
}

// Rejection describes one input line that could not be normalized. Record is
// omitted when the line never parsed as JSON.
type Rejection struct {
	Line   int        `json:"line"`
	Errors []string   `json:"errors"`
	Record *RawRecord `json:"record,omitempty"`
}
