package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/flight-claims-engine/internal/cache"
	"github.com/couchcryptid/flight-claims-engine/internal/config"
	"github.com/couchcryptid/flight-claims-engine/internal/domain"
	"github.com/couchcryptid/flight-claims-engine/internal/observability"
	"github.com/couchcryptid/flight-claims-engine/internal/refdata"
)

const maxSubmissionBytes = 1 << 20

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Evaluator produces a decision for a single claim submission.
type Evaluator interface {
	Evaluate(sub domain.ClaimSubmission) domain.DecisionEvent
}

// SearchCaches holds the TTL caches backing the reference-data search
// endpoints. Construct with NewSearchCaches and start their sweep loops
// with Run.
type SearchCaches struct {
	Airports *cache.Cache[[]domain.Airport]
	Airlines *cache.Cache[[]domain.Airline]

	sweepInterval time.Duration
}

// NewSearchCaches creates the airport and airline search caches from the
// configured TTL and capacity.
func NewSearchCaches(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *SearchCaches {
	return &SearchCaches{
		Airports: cache.New(cfg.RefCacheTTL, cfg.RefCacheSize,
			cache.WithClock[[]domain.Airport](clock), cache.WithLogger[[]domain.Airport](logger)),
		Airlines: cache.New(cfg.RefCacheTTL, cfg.RefCacheSize,
			cache.WithClock[[]domain.Airline](clock), cache.WithLogger[[]domain.Airline](logger)),
		sweepInterval: cfg.RefCacheSweep,
	}
}

// Run starts the background sweep loops until the context is cancelled.
func (sc *SearchCaches) Run(ctx context.Context) {
	go sc.Airports.Run(ctx, sc.sweepInterval)
	go sc.Airlines.Run(ctx, sc.sweepInterval)
}

// Server exposes the synchronous eligibility endpoint, reference-data
// search, and the health, readiness, and metrics routes.
type Server struct {
	httpServer  *http.Server
	logger      *slog.Logger
	evaluator   Evaluator
	store       *refdata.Store
	caches      *SearchCaches
	metrics     *observability.Metrics
	searchLimit int
}

// NewServer creates an HTTP server with the claim-evaluation and
// reference-data routes alongside /healthz, /readyz, and /metrics.
func NewServer(cfg *config.Config, ready ReadinessChecker, evaluator Evaluator, store *refdata.Store, caches *SearchCaches, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:      logger,
		evaluator:   evaluator,
		store:       store,
		caches:      caches,
		metrics:     metrics,
		searchLimit: cfg.SearchLimit,
	}

	mux.HandleFunc("POST /v1/eligibility", s.handleEligibility)
	mux.HandleFunc("GET /v1/airports", s.handleAirportSearch)
	mux.HandleFunc("GET /v1/airlines", s.handleAirlineSearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleEligibility evaluates a claim submission synchronously. Valid
// claims return 200 with the decision; submissions that fail validation
// return 422 with the field-error list attached to the decision.
func (s *Server) handleEligibility(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read request body"})
		return
	}

	sub, err := domain.ParseClaimSubmission(domain.RawClaim{Value: body})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	decision := s.evaluator.Evaluate(sub)
	status := http.StatusOK
	if decision.Status == domain.DecisionRejected {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, decision)
}

func (s *Server) handleAirportSearch(w http.ResponseWriter, r *http.Request) {
	query, ok := searchQuery(w, r)
	if !ok {
		return
	}

	fetched := false
	results, err := s.caches.Airports.GetOrFetch(r.Context(), cacheKey(query, s.searchLimit), func(_ context.Context) ([]domain.Airport, error) {
		fetched = true
		return s.store.SearchAirports(query, s.searchLimit), nil
	})
	s.recordLookup("airports", fetched)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"airports": results})
}

func (s *Server) handleAirlineSearch(w http.ResponseWriter, r *http.Request) {
	query, ok := searchQuery(w, r)
	if !ok {
		return
	}

	fetched := false
	results, err := s.caches.Airlines.GetOrFetch(r.Context(), cacheKey(query, s.searchLimit), func(_ context.Context) ([]domain.Airline, error) {
		fetched = true
		return s.store.SearchAirlines(query, s.searchLimit), nil
	})
	s.recordLookup("airlines", fetched)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"airlines": results})
}

func (s *Server) recordLookup(dataset string, fetched bool) {
	result := "hit"
	if fetched {
		result = "miss"
	}
	s.metrics.CacheLookups.WithLabelValues(dataset, result).Inc()
}

func searchQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter q is required"})
		return "", false
	}
	return strings.ToLower(query), true
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("%s|%d", query, limit)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
