package schedule

import (
	"testing"
	"time"

	"github.com/sevenofnine/appointment-assistant/internal/domain"
	"github.com/sevenofnine/appointment-assistant/internal/timeparse"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 11, 6, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", at(15, 0), at(16, 0), at(15, 0), at(16, 0), true},
		{"contained", at(15, 0), at(16, 0), at(15, 15), at(15, 45), true},
		{"partial", at(15, 0), at(16, 0), at(15, 30), at(16, 30), true},
		{"touching end to start", at(15, 0), at(16, 0), at(16, 0), at(17, 0), false},
		{"touching start to end", at(16, 0), at(17, 0), at(15, 0), at(16, 0), false},
		{"disjoint", at(15, 0), at(16, 0), at(18, 0), at(19, 0), false},
	}
	for _, tc := range cases {
		if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFindConflictOrderAndSkip(t *testing.T) {
	parser := timeparse.New()
	existing := []domain.Appointment{
		{ID: "x", Title: "garbage", Start: "???", End: "???"},
		{ID: "a", Title: "Dentist", Start: "2025-11-06T15:00:00Z", End: "2025-11-06T15:30:00Z"},
		{ID: "b", Title: "Also Overlapping", Start: "2025-11-06T15:00:00Z", End: "2025-11-06T16:00:00Z"},
	}

	conflict, ok := FindConflict(at(15, 15), at(15, 45), existing, parser)
	if !ok {
		t.Fatal("expected a conflict")
	}
	if conflict.ID != "a" {
		t.Fatalf("expected first store-order conflict, got %q", conflict.ID)
	}

	if _, ok := FindConflict(at(15, 30), at(16, 0), existing[:2], parser); ok {
		t.Fatal("half-open boundary must not conflict")
	}
}
