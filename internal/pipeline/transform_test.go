package pipeline_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flight-claims-engine/internal/domain"
	"github.com/couchcryptid/flight-claims-engine/internal/observability"
	"github.com/couchcryptid/flight-claims-engine/internal/pipeline"
	"github.com/couchcryptid/flight-claims-engine/internal/refdata"
)

var evalTime = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestEvaluator(t *testing.T) *pipeline.ClaimEvaluator {
	t.Helper()

	store, err := refdata.Load(refdata.Paths{})
	require.NoError(t, err)

	engine := domain.NewEngine(domain.NewDistanceResolver(store.Routes(), store.Airports(), nil))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return pipeline.NewClaimEvaluator(engine, store, clockwork.NewFakeClockAt(evalTime), logger, observability.NewMetricsForTesting())
}

func rawClaim(t *testing.T, sub domain.ClaimSubmission) domain.RawClaim {
	t.Helper()
	data, err := json.Marshal(sub)
	require.NoError(t, err)
	return domain.RawClaim{Value: data}
}

func decodeDecision(t *testing.T, out domain.OutputEvent) domain.DecisionEvent {
	t.Helper()
	var decision domain.DecisionEvent
	require.NoError(t, json.Unmarshal(out.Value, &decision))
	return decision
}

func TestClaimEvaluator_EvaluatesDelayClaim(t *testing.T) {
	ev := newTestEvaluator(t)

	// Countries deliberately omitted: they must be enriched from the
	// reference datasets before classification.
	out, err := ev.Transform(context.Background(), rawClaim(t, domain.ClaimSubmission{
		ClaimID:        "claim-1",
		FlightNumber:   "BA117",
		FlightDate:     "2026-04-26",
		DepartureIATA:  "LHR",
		ArrivalIATA:    "JFK",
		AirlineIATA:    "BA",
		DisruptionType: "delay",
		DelayHours:     4,
		Reason:         "technical_issue",
	}))
	require.NoError(t, err)

	decision := decodeDecision(t, out)
	assert.Equal(t, "claim-1", decision.ClaimID)
	assert.Equal(t, domain.DecisionEvaluated, decision.Status)
	assert.Empty(t, decision.Errors)
	assert.Equal(t, evalTime, decision.EvaluatedAt)

	want := &domain.EligibilityResult{
		Eligible:       true,
		Regulation:     domain.RegulationUK261,
		DistanceKm:     5556,
		Amount:         520,
		Currency:       "GBP",
		ReasonCode:     domain.ReasonCodeEligible,
		DistanceSource: domain.DistanceSourceCurated,
	}
	if diff := cmp.Diff(want, decision.Result); diff != "" {
		t.Errorf("decision result mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []byte("claim-1"), out.Key)
	assert.Equal(t, "evaluated", out.Headers["status"])
	assert.Equal(t, "eligible", out.Headers["reason_code"])
}

func TestClaimEvaluator_SubmissionCountryWinsOverReferenceData(t *testing.T) {
	ev := newTestEvaluator(t)

	out, err := ev.Transform(context.Background(), rawClaim(t, domain.ClaimSubmission{
		ClaimID:          "claim-2",
		FlightNumber:     "LH400",
		FlightDate:       "2026-04-26",
		DepartureIATA:    "FRA",
		DepartureCountry: "Germany",
		ArrivalIATA:      "JFK",
		ArrivalCountry:   "US",
		AirlineIATA:      "LH",
		AirlineCountry:   "DE",
		DisruptionType:   "delay",
		DelayHours:       5,
		Reason:           "staff_shortage",
	}))
	require.NoError(t, err)

	decision := decodeDecision(t, out)
	require.Equal(t, domain.DecisionEvaluated, decision.Status)
	assert.Equal(t, domain.RegulationEU261, decision.Result.Regulation)
	assert.Equal(t, 600, decision.Result.Amount, "FRA-JFK is long haul")
}

func TestClaimEvaluator_RejectsInvalidSubmission(t *testing.T) {
	ev := newTestEvaluator(t)

	out, err := ev.Transform(context.Background(), rawClaim(t, domain.ClaimSubmission{
		ClaimID:        "claim-3",
		FlightNumber:   "not a flight",
		FlightDate:     "2026-04-26",
		DepartureIATA:  "LHR",
		ArrivalIATA:    "J",
		AirlineIATA:    "BA",
		DisruptionType: "delay",
		DelayHours:     4,
		Reason:         "technical_issue",
	}))
	require.NoError(t, err, "validation failures are decisions, not pipeline errors")

	decision := decodeDecision(t, out)
	assert.Equal(t, domain.DecisionRejected, decision.Status)
	assert.Nil(t, decision.Result)
	assert.NotEmpty(t, decision.Errors)
	assert.Equal(t, "rejected", out.Headers["status"])
	assert.NotContains(t, out.Headers, "reason_code")

	fields := make([]string, len(decision.Errors))
	for i, fe := range decision.Errors {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "flight_number")
	assert.Contains(t, fields, "arrival.iata")
}

func TestClaimEvaluator_UnknownAirportStillEvaluates(t *testing.T) {
	ev := newTestEvaluator(t)

	out, err := ev.Transform(context.Background(), rawClaim(t, domain.ClaimSubmission{
		ClaimID:          "claim-4",
		FlightNumber:     "BA999",
		FlightDate:       "2026-04-26",
		DepartureIATA:    "LHR",
		DepartureCountry: "GB",
		ArrivalIATA:      "ZZZ",
		ArrivalCountry:   "US",
		AirlineIATA:      "BA",
		AirlineCountry:   "GB",
		DisruptionType:   "delay",
		DelayHours:       4,
		Reason:           "technical_issue",
	}))
	require.NoError(t, err)

	decision := decodeDecision(t, out)
	require.Equal(t, domain.DecisionEvaluated, decision.Status)
	assert.Equal(t, domain.DefaultDistanceKm, decision.Result.DistanceKm)
	assert.Equal(t, domain.DistanceSourceDefault, decision.Result.DistanceSource)
	assert.True(t, decision.Result.Eligible)
}

func TestClaimEvaluator_UnparseableMessage(t *testing.T) {
	ev := newTestEvaluator(t)

	_, err := ev.Transform(context.Background(), domain.RawClaim{Value: []byte("{broken")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse claim submission")
}
