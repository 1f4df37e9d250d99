// Package api serves a stand-in for the remote appointment service: a health
// endpoint and a create endpoint that acknowledges every appointment with a
// fresh id. It exists so the assistant can be exercised end to end without a
// real calendar backend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sevenofnine/appointment-assistant/internal/security"
)

type Server struct {
	auth    security.BearerAuth
	log     *slog.Logger
	httpSrv *http.Server
}

type Options struct {
	Auth   security.BearerAuth
	Logger *slog.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{auth: opts.Auth, log: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/appointments", s.handleCreate)
	s.httpSrv = &http.Server{Handler: s.wrapAuth(mux), ReadHeaderTimeout: 5 * time.Second}
	return s
}

func (s *Server) Serve(ctx context.Context, bind string) error {
	if bind == "" {
		return errors.New("bind required")
	}
	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}
	s.log.Info("appointment service listening", "address", ln.Addr().String())
	go s.shutdownOnContext(ctx)
	return s.httpSrv.Serve(ln)
}

func (s *Server) wrapAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" && !s.auth.Authorize(r) {
			writeErr(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) shutdownOnContext(ctx context.Context) {
	<-ctx.Done()
	timeout, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = s.httpSrv.Shutdown(timeout)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		payload = map[string]any{}
	}
	id := uuid.NewString()
	s.log.Info("appointment received", "id", id, "title", payload["title"])
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "received": payload})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
