package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sevenofnine/appointment-assistant/internal/domain"
)

func newStore(t *testing.T) Store {
	t.Helper()
	dir := t.TempDir()
	return Store{
		Path:      filepath.Join(dir, "appointments.json"),
		AuditPath: filepath.Join(dir, "appointments.md"),
	}
}

func sample(id, title, start, end string) domain.Appointment {
	return domain.Appointment{
		ID:          id,
		Title:       title,
		Description: title,
		Start:       start,
		End:         end,
		Source:      domain.SourceLocal,
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := newStore(t)
	appts, err := s.Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if len(appts) != 0 {
		t.Fatalf("expected empty store, got %d records", len(appts))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	s := newStore(t)
	if err := os.WriteFile(s.Path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAppendRoundTripPreservesOrder(t *testing.T) {
	s := newStore(t)
	first := sample("a", "Dentist", "2025-11-06T15:00:00+02:00", "2025-11-06T15:30:00+02:00")
	loc := "Main St Clinic"
	first.Location = &loc
	second := sample("b", "Lunch", "2025-11-07T12:00:00+02:00", "2025-11-07T13:00:00+02:00")

	if err := s.Append(first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := s.Append(second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	appts, err := s.Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 records, got %d", len(appts))
	}
	if appts[0].ID != "a" || appts[1].ID != "b" {
		t.Fatalf("insertion order not preserved: %q, %q", appts[0].ID, appts[1].ID)
	}
	if appts[0].Location == nil || *appts[0].Location != "Main St Clinic" {
		t.Fatal("location lost in round trip")
	}
	if appts[1].Location != nil {
		t.Fatal("absent location should stay absent")
	}
	if appts[0].Start != first.Start || appts[0].End != first.End {
		t.Fatal("instants changed in round trip")
	}
}

func TestAppendOnCorruptStoreStartsFresh(t *testing.T) {
	s := newStore(t)
	if err := os.WriteFile(s.Path, []byte("][,"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(sample("a", "X", "2025-11-06T15:00:00Z", "2025-11-06T16:00:00Z")); err != nil {
		t.Fatalf("append: %v", err)
	}
	appts, err := s.Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("expected 1 record, got %d", len(appts))
	}
}

func TestQueryByDate(t *testing.T) {
	s := newStore(t)
	for _, appt := range []domain.Appointment{
		sample("a", "Dentist", "2025-11-06T15:00:00+02:00", "2025-11-06T15:30:00+02:00"),
		sample("b", "Lunch", "2025-11-07T12:00:00+02:00", "2025-11-07T13:00:00+02:00"),
		sample("c", "garbage", "not-a-time", "also-not"),
	} {
		if err := s.Append(appt); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := s.Query("")
	if err != nil {
		t.Fatalf("Query error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all 3 records, got %d", len(all))
	}

	nov6, err := s.Query("2025-11-06")
	if err != nil {
		t.Fatalf("Query error = %v", err)
	}
	if len(nov6) != 1 || nov6[0].ID != "a" {
		t.Fatalf("unexpected filter result: %+v", nov6)
	}
}

func TestAppendAuditBlocks(t *testing.T) {
	s := newStore(t)
	loc := "Main St Clinic"
	eid := "ev-123"
	withExtras := sample("a", "Dentist", "2025-11-06T15:00:00+02:00", "2025-11-06T15:30:00+02:00")
	withExtras.Location = &loc
	withExtras.EventID = &eid
	bare := sample("b", "Lunch", "2025-11-07T12:00:00+02:00", "2025-11-07T13:00:00+02:00")

	if err := s.AppendAudit(withExtras); err != nil {
		t.Fatalf("audit: %v", err)
	}
	if err := s.AppendAudit(bare); err != nil {
		t.Fatalf("audit: %v", err)
	}

	data, err := os.ReadFile(s.AuditPath)
	if err != nil {
		t.Fatalf("read audit: %v", err)
	}
	text := string(data)
	if strings.Count(text, "---") != 2 {
		t.Fatalf("expected two blocks, got:\n%s", text)
	}
	if !strings.Contains(text, `title: "Dentist"`) || !strings.Contains(text, `location: "Main St Clinic"`) {
		t.Fatalf("missing fields in audit block:\n%s", text)
	}
	if !strings.Contains(text, `event_id: "ev-123"`) {
		t.Fatalf("missing event id:\n%s", text)
	}
	if strings.Count(text, "location:") != 1 || strings.Count(text, "event_id:") != 1 {
		t.Fatalf("optional lines must be conditional:\n%s", text)
	}
}

func TestAppendAuditFailurePropagates(t *testing.T) {
	s := newStore(t)
	s.AuditPath = filepath.Join(s.AuditPath, "impossible", "log.md")
	if err := s.AppendAudit(sample("a", "X", "2025-11-06T15:00:00Z", "2025-11-06T16:00:00Z")); err == nil {
		t.Fatal("expected write error")
	}
}
