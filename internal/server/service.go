package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elijahthis/extract-api/internal/limiter"
	"github.com/elijahthis/extract-api/internal/metrics"
	"github.com/elijahthis/extract-api/internal/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

const Version = "1.0.0"

const (
	defaultMaxTextChars = 1 << 20
	defaultMaxURLChars  = 2048
)

type Config struct {
	Addr           string
	Token          string
	AllowedOrigins []string

	// MaxTextChars bounds text input on the text service; MaxURLChars
	// bounds URL input on the sheets service. Zero picks the default.
	MaxTextChars int
	MaxURLChars  int

	Limiter shared.RateLimiter
	Metrics *metrics.PrometheusMetrics
}

// Service is one extraction API instance: the governance and middleware
// stack shared by both services, wrapped around a per-service /extract
// handler.
type Service struct {
	cfg       Config
	governor  *governor
	bodyLimit int64
	handler   http.Handler
	srv       *http.Server
}

func NewTextService(cfg Config) *Service {
	s := newService(cfg)
	// Characters can cost several bytes once UTF-8 and JSON escaping are
	// involved, so the wire bound is a multiple of the character bound.
	s.bodyLimit = int64(s.cfg.MaxTextChars)*8 + 1024
	s.init(s.handleTextExtract)
	return s
}

func NewSheetsService(cfg Config) *Service {
	s := newService(cfg)
	s.bodyLimit = 1 << 20
	s.init(s.handleSheetsExtract)
	return s
}

func newService(cfg Config) *Service {
	if cfg.MaxTextChars <= 0 {
		cfg.MaxTextChars = defaultMaxTextChars
	}
	if cfg.MaxURLChars <= 0 {
		cfg.MaxURLChars = defaultMaxURLChars
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.Limiter == nil {
		cfg.Limiter = limiter.NewMemoryRateLimiter(0, 0)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMetricsWith(prometheus.NewRegistry())
	}

	s := &Service{cfg: cfg}
	s.governor = &governor{
		limiter: cfg.Limiter,
		token:   cfg.Token,
		metrics: cfg.Metrics,
	}
	return s
}

func (s *Service) init(extract http.HandlerFunc) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/extract", s.handleExtract(extract))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	s.handler = withRequestID(s.withRequestMetrics(corsMiddleware.Handler(withSecurityHeaders(mux))))
	s.srv = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Handler exposes the full middleware stack, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) Start() error {
	log.Info().Str("addr", s.srv.Addr).Msg("API server starting")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// handleExtract gates the per-service extraction handler behind the method
// check and the governor, and turns a panicking extraction into a 500.
func (s *Service) handleExtract(extract http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		defer func() {
			if rec := recover(); rec != nil {
				log.Ctx(r.Context()).Error().Interface("panic", rec).Msg("Extraction panicked")
				writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: fmt.Sprintf("Extraction failed: %v", rec)})
			}
		}()
		if !s.governor.admit(w, r) {
			return
		}
		extract(w, r)
	}
}

func (s *Service) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "Not Found")
		return
	}
	s.handleHealth(w, r)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: timestamp(),
		Version:   Version,
	})
}

// decodeJSON reads the body as a single JSON value, bounded by the
// service's wire limit. Unknown fields are tolerated; trailing garbage is
// not.
func (s *Service) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.bodyLimit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	log.Ctx(r.Context()).Warn().Int("status", status).Str("detail", detail).Msg("Request rejected")
	writeJSON(w, status, errorResponse{Detail: detail})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
