package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/sevenofnine/appointment-assistant/internal/domain"
	"github.com/sevenofnine/appointment-assistant/internal/intent"
	"github.com/sevenofnine/appointment-assistant/internal/schedule"
	"github.com/sevenofnine/appointment-assistant/internal/speech"
	"github.com/sevenofnine/appointment-assistant/internal/timeparse"
)

// Assistant drives the conversational loop: classify an utterance, run the
// matching dialogue, repeat until the user leaves.
type Assistant struct {
	booker     *schedule.Booker
	classifier *intent.Classifier
	io         speech.VoiceIO
	log        *slog.Logger
}

type Options struct {
	Booker  *schedule.Booker
	VoiceIO speech.VoiceIO
	Logger  *slog.Logger
}

func New(opts Options) *Assistant {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{
		booker:     opts.Booker,
		classifier: intent.NewClassifier(),
		io:         opts.VoiceIO,
		log:        logger,
	}
}

func (a *Assistant) Run(ctx context.Context) error {
	a.io.Say("Hello! I am your appointment assistant. You can book or list appointments.")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a.io.Say("What would you like to do?")
		query, err := a.io.Listen("Say 'book' or 'list', or type your command.")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}
		if query == "" {
			continue
		}

		switch a.classifier.Classify(query) {
		case intent.Book:
			if err := a.bookDialogue(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case intent.List:
			a.listDialogue()
		case intent.Exit:
			a.io.Say("Goodbye.")
			return nil
		default:
			a.io.Say("I can list or book appointments. Please say that again.")
		}
	}
}

func (a *Assistant) bookDialogue(ctx context.Context) error {
	title, err := a.ask("What is the title or short description?", "Say the title or type it.")
	if err != nil || title == "" {
		a.io.Say("I didn't get a title. Cancelling booking.")
		return err
	}

	day, err := a.ask("On which day or date? A weekday like Thursday, or a date like 2025-11-05.", "Say the day or date.")
	if err != nil || day == "" {
		a.io.Say("I didn't get the day. Cancelling booking.")
		return err
	}

	timeExpr, err := a.ask("What time should it start? For example, 3 pm or 15:30.", "Say the start time.")
	if err != nil || timeExpr == "" {
		a.io.Say("I didn't get the time. Cancelling booking.")
		return err
	}

	durationText, err := a.ask("How long in minutes? Say a number, or say default for 60.", "Duration in minutes, or default.")
	if err != nil {
		return err
	}
	duration := ParseDuration(durationText)

	locationText, err := a.ask("Any location, or leave blank?", "Location (optional).")
	if err != nil {
		return err
	}
	var location *string
	if locationText != "" {
		location = &locationText
	}

	a.io.Say(fmt.Sprintf("Confirm: create '%s' on %s at %s for %d minutes? Say yes to confirm.", title, day, timeExpr, duration))
	confirm, err := a.io.Listen("Say 'yes' to confirm, anything else to cancel.")
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(confirm), "yes") {
		a.io.Say("Booking cancelled.")
		return nil
	}

	result, err := a.booker.Book(ctx, schedule.BookingRequest{
		Title:           title,
		TimeExpr:        timeExpr,
		DayExpr:         day,
		DurationMinutes: duration,
		Location:        location,
	})
	if err != nil {
		a.io.Say("Could not create appointment: " + bookingFailureMessage(err))
		var parseErr *timeparse.ParseError
		var conflictErr *schedule.ConflictError
		if errors.As(err, &parseErr) || errors.As(err, &conflictErr) {
			return nil
		}
		return err
	}

	a.io.Say(fmt.Sprintf("Appointment '%s' created for %s at %s.", title, day, timeExpr))
	a.log.Info("appointment booked", "id", result.ID, "start", result.Start)
	return nil
}

func (a *Assistant) listDialogue() {
	appts := a.booker.Schedule("")
	if len(appts) == 0 {
		a.io.Say("You don't have any appointments scheduled.")
		return
	}
	a.io.Say("Here are your appointments:")
	for _, appt := range appts {
		a.io.Say(FormatAppointment(appt))
	}
}

func (a *Assistant) ask(question, prompt string) (string, error) {
	a.io.Say(question)
	answer, err := a.io.Listen(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// ParseDuration extracts the digits from a spoken duration. Anything
// malformed, empty, or "default" comes back as 60 minutes, never an error.
func ParseDuration(text string) int {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" || trimmed == "default" {
		return schedule.DefaultDurationMinutes
	}
	var digits strings.Builder
	for _, r := range trimmed {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil || n <= 0 {
		return schedule.DefaultDurationMinutes
	}
	return n
}

func FormatAppointment(appt domain.Appointment) string {
	location := "no location specified"
	if appt.Location != nil && *appt.Location != "" {
		location = *appt.Location
	}
	return fmt.Sprintf("%s on %s until %s at %s", appt.Title, appt.Start, appt.End, location)
}

func bookingFailureMessage(err error) string {
	var parseErr *timeparse.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Error()
	}
	var conflictErr *schedule.ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr.Error()
	}
	return "unknown error: " + err.Error()
}
