package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/sevenofnine/appointment-assistant/internal/api"
	"github.com/sevenofnine/appointment-assistant/internal/assistant"
	"github.com/sevenofnine/appointment-assistant/internal/config"
	"github.com/sevenofnine/appointment-assistant/internal/remote"
	"github.com/sevenofnine/appointment-assistant/internal/schedule"
	"github.com/sevenofnine/appointment-assistant/internal/security"
	"github.com/sevenofnine/appointment-assistant/internal/speech"
	"github.com/sevenofnine/appointment-assistant/internal/store"
)

func main() {
	// Load .env first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "appointment-assistant",
		Usage: "Book and list calendar appointments from a conversational front end.",
		Commands: []*cli.Command{
			chatCommand(),
			bookCommand(),
			listCommand(),
			serveCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func chatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Start the interactive assistant.",
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			client := buildRemote(cfg, logger)
			booker := buildBooker(cfg, client, logger)
			voiceIO := speech.Detect(cfg.ForceTextInput, os.Stdin, os.Stdout)
			if cfg.RemoteSyncEnabled && !client.Healthy(c.Context) {
				voiceIO.Say("The appointment service is not reachable; bookings will be kept locally only.")
			}
			a := assistant.New(assistant.Options{Booker: booker, VoiceIO: voiceIO, Logger: logger})
			return a.Run(c.Context)
		},
	}
}

func bookCommand() *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Book a single appointment without the dialogue.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "day", Required: true, Usage: "Day expression, e.g. thursday or 2025-11-06."},
			&cli.StringFlag{Name: "time", Required: true, Usage: "Time expression, e.g. 3pm or 15:00."},
			&cli.IntFlag{Name: "duration", Value: schedule.DefaultDurationMinutes, Usage: "Duration in minutes."},
			&cli.StringFlag{Name: "location"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			booker := buildBooker(cfg, buildRemote(cfg, logger), logger)

			var location *string
			if v := c.String("location"); v != "" {
				location = &v
			}
			result, err := booker.Book(c.Context, schedule.BookingRequest{
				Title:           c.String("title"),
				DayExpr:         c.String("day"),
				TimeExpr:        c.String("time"),
				DurationMinutes: c.Int("duration"),
				Location:        location,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Booked %s from %s to %s", result.ID, result.Start, result.End)
			if result.EventID != nil {
				fmt.Printf(" (remote event %s)", *result.EventID)
			}
			fmt.Println()
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the stored schedule.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Only appointments starting on this date (2006-01-02)."},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			booker := buildBooker(cfg, buildRemote(cfg, logger), logger)
			appts := booker.Schedule(c.String("date"))
			if len(appts) == 0 {
				fmt.Println("No appointments scheduled.")
				return nil
			}
			for _, appt := range appts {
				fmt.Println(assistant.FormatAppointment(appt))
			}
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the bundled appointment service the assistant syncs to.",
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			server := api.New(api.Options{
				Auth:   security.BearerAuth{Enabled: cfg.RequireBearerToken, Token: cfg.BearerToken},
				Logger: logger,
			})
			return server.Serve(c.Context, cfg.BindAddress)
		},
	}
}

func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level(cfg.LogLevel)}))
	return cfg, logger, nil
}

func buildRemote(cfg config.Config, logger *slog.Logger) *remote.Client {
	return remote.NewClient(remote.Options{
		BaseURL:       cfg.RemoteBaseURL,
		Enabled:       cfg.RemoteSyncEnabled,
		HealthTimeout: cfg.HealthTimeout,
		CreateTimeout: cfg.CreateTimeout,
		Logger:        logger,
	})
}

func buildBooker(cfg config.Config, client *remote.Client, logger *slog.Logger) *schedule.Booker {
	return schedule.NewBooker(schedule.BookerOptions{
		Store:  store.Store{Path: cfg.StorePath(), AuditPath: cfg.AuditPath()},
		Remote: client,
		Logger: logger,
	})
}

func level(v string) slog.Level {
	switch v {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
