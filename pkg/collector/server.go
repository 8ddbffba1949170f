package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/golangdaddy/roadrush/pkg/telemetry"
)

// ErrBadPayload is returned when a request body cannot be decoded or is out of range
var ErrBadPayload = errors.New("bad payload")

const (
	maxBodyBytes = 64 << 10
	maxListLimit = 1000
)

// Options configures the HTTP surface
type Options struct {
	CORSOrigin string
	ListLimit  int
	Geo        Geolocator // nil records every session as Unknown
}

// Server exposes the telemetry endpoints over HTTP
type Server struct {
	store *Store
	log   *zap.SugaredLogger
	opts  Options
	mux   *http.ServeMux
}

// NewServer wires the routes
func NewServer(store *Store, opts Options, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = 100
	}
	if opts.Geo == nil {
		opts.Geo = noGeolocator{}
	}
	s := &Server{store: store, log: log, opts: opts, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("POST "+telemetry.LogPath, s.handleLog)
	s.mux.HandleFunc("POST "+telemetry.LocationPath, s.handleLocation)
	s.mux.HandleFunc("GET /api/logs", s.handleListLogs)
	s.mux.HandleFunc("GET /api/locations", s.handleListLocations)
	return s
}

// Handler returns the root handler including CORS headers
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.CORSOrigin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", s.opts.CORSOrigin)
			h.Set("Access-Control-Allow-Methods", "GET, POST")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		s.mux.ServeHTTP(w, r)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Collector listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Roadrush telemetry collector is running"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Warnw("Health check failed", "error", err)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	var body telemetry.SessionReport
	if err := decode(w, r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	ip := ClientIP(r)
	rec := &SessionLog{
		IP:           ip,
		UserAgent:    r.UserAgent(),
		Referrer:     referrer(r),
		Width:        body.ScreenSize.Width,
		Height:       body.ScreenSize.Height,
		ScreenWidth:  body.ScreenSize.ScreenWidth,
		ScreenHeight: body.ScreenSize.ScreenHeight,
		IPLocation:   s.opts.Geo.Lookup(ip),
	}
	if err := s.store.AddSession(r.Context(), rec); err != nil {
		s.log.Errorw("Error logging data", "error", err)
		s.fail(w, http.StatusInternalServerError, nil)
		return
	}
	s.log.Debugw("Session logged", "ip", rec.IP, "country", rec.IPLocation.Country, "width", rec.Width, "height", rec.Height)
	s.ok(w)
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	var body telemetry.Location
	if err := decode(w, r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if body.Latitude < -90 || body.Latitude > 90 || body.Longitude < -180 || body.Longitude > 180 || body.Accuracy < 0 {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("%w: coordinates out of range", ErrBadPayload))
		return
	}

	rec := &LocationLog{
		IP:        ClientIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  referrer(r),
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
		Accuracy:  body.Accuracy,
	}
	if err := s.store.AddLocation(r.Context(), rec); err != nil {
		s.log.Errorw("Error logging location", "error", err)
		s.fail(w, http.StatusInternalServerError, nil)
		return
	}
	s.ok(w)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.store.Sessions(r.Context(), s.limit(r))
	if err != nil {
		s.log.Errorw("Error fetching logs", "error", err)
		s.fail(w, http.StatusInternalServerError, nil)
		return
	}
	if logs == nil {
		logs = []SessionLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.store.Locations(r.Context(), s.limit(r))
	if err != nil {
		s.log.Errorw("Error fetching locations", "error", err)
		s.fail(w, http.StatusInternalServerError, nil)
		return
	}
	if locs == nil {
		locs = []LocationLog{}
	}
	writeJSON(w, http.StatusOK, locs)
}

// limit reads ?limit=, falling back to the configured page size
func (s *Server) limit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return s.opts.ListLimit
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}

type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) ok(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, response{Success: true})
}

// fail writes an error response. A nil err hides the cause behind "Server error".
func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	msg := "Server error"
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, response{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the peer address
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func referrer(r *http.Request) string {
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return "Direct"
}
