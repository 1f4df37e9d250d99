package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sevenofnine/appointment-assistant/internal/domain"
	"github.com/sevenofnine/appointment-assistant/internal/remote"
	"github.com/sevenofnine/appointment-assistant/internal/timeparse"
)

const DefaultDurationMinutes = 60

// RemoteCreator is the best-effort remote sync adapter. Its outcome is
// advisory: it can only influence the record's source and event id.
type RemoteCreator interface {
	TryCreate(ctx context.Context, payload remote.CreatePayload) remote.Result
}

// AppointmentStore is the durable local mirror.
type AppointmentStore interface {
	Load() ([]domain.Appointment, error)
	Append(appt domain.Appointment) error
	AppendAudit(appt domain.Appointment) error
	Query(dateFilter string) ([]domain.Appointment, error)
}

type BookingRequest struct {
	Title           string
	TimeExpr        string
	DayExpr         string
	DurationMinutes int
	Location        *string
}

// Booker runs a single booking through parse, conflict check, best-effort
// remote create, and persist.
type Booker struct {
	normalizer *timeparse.Normalizer
	store      AppointmentStore
	remote     RemoteCreator
	log        *slog.Logger
	newID      func() string
}

type BookerOptions struct {
	Normalizer *timeparse.Normalizer
	Store      AppointmentStore
	Remote     RemoteCreator
	Logger     *slog.Logger
}

func NewBooker(opts BookerOptions) *Booker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = timeparse.New()
	}
	return &Booker{
		normalizer: normalizer,
		store:      opts.Store,
		remote:     opts.Remote,
		log:        logger,
		newID:      uuid.NewString,
	}
}

// Book creates one appointment. Recoverable failures come back as
// *timeparse.ParseError or *ConflictError; only a failed local write is a
// hard error, since that would lose the sole durable record.
func (b *Booker) Book(ctx context.Context, req BookingRequest) (domain.BookingResult, error) {
	start, err := b.normalizer.Normalize(req.DayExpr, req.TimeExpr)
	if err != nil {
		return domain.BookingResult{}, err
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	existing, err := b.store.Load()
	if err != nil {
		// A corrupt store reads as empty; booking must keep working.
		b.log.Warn("could not load existing appointments", "error", err)
		existing = nil
	}
	if conflict, ok := FindConflict(start, end, existing, b.normalizer); ok {
		return domain.BookingResult{}, &ConflictError{Conflict: *conflict}
	}

	startISO := start.Format(time.RFC3339)
	endISO := end.Format(time.RFC3339)

	var eventID *string
	result := b.remote.TryCreate(ctx, remote.CreatePayload{
		Title:       req.Title,
		Start:       startISO,
		End:         endISO,
		Description: req.Title,
		Location:    req.Location,
	})
	if result.OK && result.ID != "" {
		eventID = &result.ID
	} else if result.Err != "" {
		b.log.Info("remote sync skipped", "reason", result.Err)
	}

	source := domain.SourceLocal
	if eventID != nil {
		source = domain.SourceRemote
	}
	appt := domain.Appointment{
		ID:          b.newID(),
		Title:       req.Title,
		Description: req.Title,
		Start:       startISO,
		End:         endISO,
		Location:    req.Location,
		EventID:     eventID,
		Source:      source,
	}

	if err := b.store.Append(appt); err != nil {
		return domain.BookingResult{}, fmt.Errorf("persist appointment: %w", err)
	}
	if err := b.store.AppendAudit(appt); err != nil {
		return domain.BookingResult{}, fmt.Errorf("audit appointment: %w", err)
	}

	return domain.BookingResult{ID: appt.ID, EventID: eventID, Start: startISO, End: endISO}, nil
}

// Schedule returns the stored appointments, optionally filtered to a
// calendar date. Read failures surface only in the log; callers always get a
// usable (possibly empty) sequence.
func (b *Booker) Schedule(dateFilter string) []domain.Appointment {
	appts, err := b.store.Query(dateFilter)
	if err != nil {
		b.log.Warn("could not read schedule", "error", err)
		return nil
	}
	return appts
}
