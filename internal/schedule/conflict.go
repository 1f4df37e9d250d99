package schedule

import (
	"fmt"
	"time"

	"github.com/sevenofnine/appointment-assistant/internal/domain"
)

// ConflictError reports an overlap with an already-booked appointment.
type ConflictError struct {
	Conflict domain.Appointment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested time conflicts with %q at %s", e.Conflict.Title, e.Conflict.Start)
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) share
// any point. An appointment ending exactly when another starts does not
// overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

type storedParser interface {
	ParseStored(v string) (time.Time, error)
}

// FindConflict scans existing appointments in store order and returns the
// first one overlapping the candidate interval. Records whose stored instants
// cannot be parsed are skipped, not treated as conflicts.
func FindConflict(start, end time.Time, existing []domain.Appointment, parser storedParser) (*domain.Appointment, bool) {
	for i := range existing {
		s, err := parser.ParseStored(existing[i].Start)
		if err != nil {
			continue
		}
		e, err := parser.ParseStored(existing[i].End)
		if err != nil {
			continue
		}
		if Overlaps(start, end, s, e) {
			return &existing[i], true
		}
	}
	return nil, false
}
