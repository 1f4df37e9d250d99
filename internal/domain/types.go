package domain

const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Appointment is the record persisted to the local store. Start and End are
// kept as the stored RFC 3339 strings so records round-trip byte for byte;
// callers parse them when they need an instant.
type Appointment struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Location    *string `json:"location"`
	EventID     *string `json:"event_id"`
	Source      string  `json:"source"`
}

// BookingResult is returned by a successful booking.
type BookingResult struct {
	ID      string  `json:"id"`
	EventID *string `json:"event_id,omitempty"`
	Start   string  `json:"start"`
	End     string  `json:"end"`
}
