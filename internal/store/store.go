package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/sevenofnine/appointment-assistant/internal/domain"
)

// Store keeps the full appointment collection in a single JSON array and
// mirrors every booking into an append-only markdown log. Append is a
// read-modify-write of the whole file, guarded by an advisory file lock so
// concurrent processes cannot drop each other's writes.
type Store struct {
	Path      string
	AuditPath string
}

// Load returns every stored appointment in insertion order. A missing or
// undecodable store reads as empty; the assistant must never crash on a
// corrupt file.
func (s Store) Load() ([]domain.Appointment, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	var appts []domain.Appointment
	if err := json.Unmarshal(data, &appts); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}
	return appts, nil
}

// Append adds one appointment to the collection and rewrites the file.
func (s Store) Append(appt domain.Appointment) error {
	lock := flock.New(s.Path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer lock.Unlock()

	appts, err := s.Load()
	if err != nil {
		// Corrupt contents are treated as an empty store, same as Load's
		// read path for the assistant.
		appts = nil
	}
	appts = append(appts, appt)

	data, err := json.MarshalIndent(appts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

// AppendAudit writes one human-readable block to the booking log. The log is
// write-only and never compacted; a failure here is a hard error because
// there is no fallback for the audit trail.
func (s Store) AppendAudit(appt domain.Appointment) error {
	var b strings.Builder
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "title: %q\n", appt.Title)
	fmt.Fprintf(&b, "start: %q\n", appt.Start)
	fmt.Fprintf(&b, "end: %q\n", appt.End)
	fmt.Fprintf(&b, "description: %q\n", appt.Description)
	if appt.Location != nil {
		fmt.Fprintf(&b, "location: %q\n", *appt.Location)
	}
	if appt.EventID != nil {
		fmt.Fprintf(&b, "event_id: %q\n", *appt.EventID)
	}

	f, err := os.OpenFile(s.AuditPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// Query returns all appointments, or only those starting on the given
// calendar date ("2006-01-02"). The comparison is by formatted date string,
// matching how the filter is supplied by callers.
func (s Store) Query(dateFilter string) ([]domain.Appointment, error) {
	appts, err := s.Load()
	if err != nil {
		return nil, err
	}
	if dateFilter == "" {
		return appts, nil
	}
	filtered := make([]domain.Appointment, 0, len(appts))
	for _, appt := range appts {
		t, err := time.Parse(time.RFC3339, appt.Start)
		if err != nil {
			continue
		}
		if t.Format("2006-01-02") == dateFilter {
			filtered = append(filtered, appt)
		}
	}
	return filtered, nil
}
