package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/flight-claims-engine/internal/domain"
	"github.com/couchcryptid/flight-claims-engine/internal/observability"
	"github.com/couchcryptid/flight-claims-engine/internal/refdata"
)

// ClaimEvaluator implements Transformer: it parses a raw submission,
// enriches it from the reference datasets, runs the eligibility engine,
// and packages the decision for publishing. Validation failures become
// rejected decision events; only undecodable messages return an error.
type ClaimEvaluator struct {
	engine  *domain.Engine
	store   *refdata.Store
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewClaimEvaluator creates a ClaimEvaluator.
func NewClaimEvaluator(engine *domain.Engine, store *refdata.Store, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *ClaimEvaluator {
	return &ClaimEvaluator{
		engine:  engine,
		store:   store,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *ClaimEvaluator) Transform(_ context.Context, raw domain.RawClaim) (domain.OutputEvent, error) {
	sub, err := domain.ParseClaimSubmission(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	return serializeDecision(t.Evaluate(sub))
}

// Evaluate enriches and evaluates a single submission. It is the shared
// decision path for both the Kafka pipeline and the synchronous HTTP
// endpoint.
func (t *ClaimEvaluator) Evaluate(sub domain.ClaimSubmission) domain.DecisionEvent {
	route, disruption := domain.BuildClaim(sub)
	route = t.enrichRoute(route)

	now := t.clock.Now()
	decision := domain.DecisionEvent{
		ClaimID:     sub.ClaimID,
		EvaluatedAt: now,
	}

	result, err := t.engine.Evaluate(route, disruption, now)
	if err == nil {
		decision.Status = domain.DecisionEvaluated
		decision.Result = &result
		t.metrics.Evaluations.WithLabelValues(string(result.ReasonCode)).Inc()
		t.metrics.DistanceResolutions.WithLabelValues(string(result.DistanceSource)).Inc()
		return decision
	}

	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		// the engine only fails with validation errors today; anything
		// else still becomes a rejected decision rather than a lost claim
		verrs = domain.ValidationErrors{{Field: "claim", Message: err.Error()}}
	}
	decision.Status = domain.DecisionRejected
	decision.Errors = verrs
	t.metrics.ValidationRejects.Inc()
	t.logger.Info("claim rejected by validation",
		"claim_id", sub.ClaimID,
		"error_count", len(verrs),
	)
	return decision
}

// enrichRoute fills in airport and airline details the submission omitted
// from the reference datasets. Submission-supplied countries win so a
// claim about an airport we have stale data for still evaluates correctly.
func (t *ClaimEvaluator) enrichRoute(route domain.FlightRoute) domain.FlightRoute {
	route.Departure = t.enrichAirport(route.Departure)
	route.Arrival = t.enrichAirport(route.Arrival)

	if known, ok := t.store.AirlineByIATA(route.Airline.IATA); ok {
		if route.Airline.Country == "" {
			route.Airline.Country = known.Country
		}
		if route.Airline.Name == "" {
			route.Airline.Name = known.Name
		}
	}
	return route
}

func (t *ClaimEvaluator) enrichAirport(a domain.Airport) domain.Airport {
	known, ok := t.store.AirportByIATA(a.IATA)
	if !ok {
		return a
	}
	if a.Country == "" {
		a.Country = known.Country
	}
	if a.Name == "" {
		a.Name = known.Name
	}
	if a.City == "" {
		a.City = known.City
	}
	a.Lat, a.Lon = known.Lat, known.Lon
	return a
}

// serializeDecision marshals a DecisionEvent into an OutputEvent keyed by
// claim ID, with routing headers for downstream consumers.
func serializeDecision(decision domain.DecisionEvent) (domain.OutputEvent, error) {
	data, err := json.Marshal(decision)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("serialize decision: %w", err)
	}

	headers := map[string]string{
		"status": string(decision.Status),
	}
	if decision.Result != nil {
		headers["reason_code"] = string(decision.Result.ReasonCode)
	}

	return domain.OutputEvent{
		Key:     []byte(decision.ClaimID),
		Value:   data,
		Headers: headers,
	}, nil
}
