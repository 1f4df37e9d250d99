package timeparse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var ErrUnparseable = errors.New("could not parse date/time")

// ParseError reports an expression the normalizer could not interpret.
// It is recoverable: the caller aborts the booking, not the process.
type ParseError struct {
	Expr string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse date/time: %q", e.Expr)
}

func (e *ParseError) Unwrap() error {
	return ErrUnparseable
}

// Normalizer turns a free-form day expression and time expression into a
// single timezone-aware instant. Fields missing from the text default to the
// current wall-clock moment, so "thursday" plus "3pm" resolves against today.
type Normalizer struct {
	Now      func() time.Time
	Location *time.Location

	parser *when.Parser
}

func New() *Normalizer {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Normalizer{Now: time.Now, Location: time.Local, parser: w}
}

func (n *Normalizer) Normalize(dayExpr, timeExpr string) (time.Time, error) {
	combined := strings.TrimSpace(strings.TrimSpace(dayExpr) + " " + strings.TrimSpace(timeExpr))
	if combined == "" {
		return time.Time{}, &ParseError{Expr: combined}
	}

	// dateparse interprets offset-free input in the configured zone, which
	// is exactly the "stamp with local timezone" contract.
	if t, err := dateparse.ParseIn(combined, n.Location); err == nil {
		return t, nil
	}

	r, err := n.parser.Parse(combined, n.Now().In(n.Location))
	if err != nil || r == nil {
		return time.Time{}, &ParseError{Expr: combined}
	}
	return r.Time, nil
}

// ParseStored re-parses an instant read back from the store. It is lenient:
// records written by other tools may not be exact RFC 3339.
func (n *Normalizer) ParseStored(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(v, n.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored instant: %w", err)
	}
	return t, nil
}
