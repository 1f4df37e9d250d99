package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// CreatePayload is the body of the remote create call.
type CreatePayload struct {
	Title       string  `json:"title"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Description string  `json:"description"`
	Location    *string `json:"location"`
}

// Result is the advisory outcome of a remote create attempt. It is always a
// value: remote failures downgrade the booking to local-only, they never
// abort it.
type Result struct {
	OK  bool
	ID  string
	Err string
}

type createResponse struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointment_id"`
}

type Options struct {
	BaseURL       string
	Enabled       bool
	HealthTimeout time.Duration
	CreateTimeout time.Duration
	Logger        *slog.Logger
}

type Client struct {
	http          *resty.Client
	enabled       bool
	healthTimeout time.Duration
	createTimeout time.Duration
	log           *slog.Logger
}

func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	healthTimeout := opts.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = 2 * time.Second
	}
	createTimeout := opts.CreateTimeout
	if createTimeout <= 0 {
		createTimeout = 5 * time.Second
	}
	return &Client{
		http:          resty.New().SetBaseURL(opts.BaseURL),
		enabled:       opts.Enabled,
		healthTimeout: healthTimeout,
		createTimeout: createTimeout,
		log:           logger,
	}
}

// Healthy reports whether the remote service answers its health probe in
// time. Used at startup to warn that bookings will stay local-only.
func (c *Client) Healthy(ctx context.Context) bool {
	if !c.enabled {
		return false
	}
	healthCtx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()
	resp, err := c.http.R().SetContext(healthCtx).Get("/health")
	return err == nil && resp.StatusCode() == http.StatusOK
}

// TryCreate pushes the appointment to the remote service. It probes /health
// first and gives up without retrying when the service does not answer in
// time; the caller reads the outcome off the Result.
func (c *Client) TryCreate(ctx context.Context, payload CreatePayload) Result {
	if !c.enabled {
		return Result{Err: "remote sync is disabled; booking locally only"}
	}

	healthCtx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()
	resp, err := c.http.R().SetContext(healthCtx).Get("/health")
	if err != nil {
		c.log.Warn("remote health probe failed", "error", err)
		return Result{Err: "appointment service is not running"}
	}
	if resp.StatusCode() != http.StatusOK {
		return Result{Err: "appointment service is not responding correctly"}
	}

	createCtx, cancel := context.WithTimeout(ctx, c.createTimeout)
	defer cancel()
	var out createResponse
	resp, err = c.http.R().
		SetContext(createCtx).
		SetBody(payload).
		SetResult(&out).
		Post("/appointments")
	if err != nil {
		c.log.Warn("remote create failed", "error", err)
		return Result{Err: err.Error()}
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return Result{Err: fmt.Sprintf("HTTP %d %s", resp.StatusCode(), resp.String())}
	}

	id := out.ID
	if id == "" {
		id = out.AppointmentID
	}
	return Result{OK: true, ID: id}
}
