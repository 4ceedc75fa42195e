// Command genmock generates mock claim-submission fixtures together with the
// decisions the engine produces for them. It uses the actual evaluation path
// so the expected output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -submissions-out data/mock/claim_submissions.json \
//	  -decisions-out data/mock/claim_decisions.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/flight-claims-engine/internal/domain"
	"github.com/couchcryptid/flight-claims-engine/internal/observability"
	"github.com/couchcryptid/flight-claims-engine/internal/pipeline"
	"github.com/couchcryptid/flight-claims-engine/internal/refdata"
)

// evalTime is fixed so regenerated fixtures stay reproducible.
var evalTime = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	subsOut := flag.String("submissions-out", "", "output path for claim submission fixtures")
	decisionsOut := flag.String("decisions-out", "", "output path for expected decision fixtures")
	flag.Parse()

	if *subsOut == "" || *decisionsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -submissions-out, -decisions-out")
	}

	evaluator, err := newEvaluator()
	if err != nil {
		return err
	}

	subs := mockSubmissions()
	decisions := make([]domain.DecisionEvent, 0, len(subs))
	statusCounts := map[domain.DecisionStatus]int{}
	for i := range subs {
		decision := evaluator.Evaluate(subs[i])
		subs[i].ClaimID = decision.ClaimID
		decisions = append(decisions, decision)
		statusCounts[decision.Status]++
	}

	if err := writeJSON(*subsOut, subs); err != nil {
		return err
	}
	if err := writeJSON(*decisionsOut, decisions); err != nil {
		return err
	}

	log.Printf("wrote %d submissions (%d evaluated, %d rejected)",
		len(subs), statusCounts[domain.DecisionEvaluated], statusCounts[domain.DecisionRejected])
	return nil
}

// newEvaluator builds the evaluation path the pipeline uses, pinned to the
// fixture clock.
func newEvaluator() (*pipeline.ClaimEvaluator, error) {
	store, err := refdata.Load(refdata.Paths{})
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := domain.NewEngine(domain.NewDistanceResolver(store.Routes(), store.Airports(), logger))
	return pipeline.NewClaimEvaluator(engine, store, clockwork.NewFakeClockAt(evalTime), logger, observability.NewMetricsForTesting()), nil
}

// mockSubmissions covers the interesting corners of the decision procedure:
// each jurisdiction, each compensation band, every ineligibility gate, a
// validation rejection, and routes missing from the curated tables.
func mockSubmissions() []domain.ClaimSubmission {
	flightDate := evalTime.AddDate(0, -2, 0).Format("2006-01-02")
	return []domain.ClaimSubmission{
		{
			FlightNumber: "BA117", FlightDate: flightDate,
			DepartureIATA: "LHR", ArrivalIATA: "JFK", AirlineIATA: "BA",
			DisruptionType: "delay", DelayHours: 4, Reason: "technical_issue",
		},
		{
			FlightNumber: "AF1080", FlightDate: flightDate,
			DepartureIATA: "CDG", ArrivalIATA: "FRA", AirlineIATA: "AF",
			DisruptionType: "delay", DelayHours: 2, Reason: "technical_issue",
		},
		{
			FlightNumber: "BA632", FlightDate: flightDate,
			DepartureIATA: "LHR", ArrivalIATA: "ATH", AirlineIATA: "BA",
			DisruptionType: "delay", DelayHours: 4, Reason: "technical_issue",
		},
		{
			FlightNumber: "IB3166", FlightDate: flightDate,
			DepartureIATA: "MAD", ArrivalIATA: "LHR", AirlineIATA: "IB",
			DisruptionType: "cancellation", CancellationNoticeDays: 20, Reason: "other_airline_fault",
		},
		{
			FlightNumber: "AZ718", FlightDate: flightDate,
			DepartureIATA: "FCO", ArrivalIATA: "ATH", AirlineIATA: "AZ",
			DisruptionType: "cancellation", CancellationNoticeDays: 2, Reason: "weather",
		},
		{
			FlightNumber: "LH400", FlightDate: flightDate,
			DepartureIATA: "FRA", ArrivalIATA: "JFK", AirlineIATA: "LH",
			DisruptionType: "denied_boarding", Reason: "other_airline_fault",
		},
		{
			FlightNumber: "UA900", FlightDate: flightDate,
			DepartureIATA: "SFO", DepartureCountry: "US",
			ArrivalIATA: "ORD", ArrivalCountry: "US", AirlineIATA: "UA",
			DisruptionType: "delay", DelayHours: 6, Reason: "technical_issue",
		},
		{
			FlightNumber: "BA999", FlightDate: flightDate,
			DepartureIATA: "LHR", ArrivalIATA: "ZZZ", ArrivalCountry: "US",
			AirlineIATA: "BA", DisruptionType: "delay", DelayHours: 5, Reason: "staff_shortage",
		},
		{
			FlightNumber: "bad flight", FlightDate: flightDate,
			DepartureIATA: "LHR", ArrivalIATA: "JFK", AirlineIATA: "BA",
			DisruptionType: "delay", DelayHours: 4, Reason: "technical_issue",
		},
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
