// Command validate checks the mock claim fixtures for integrity: every
// submission re-evaluates to the recorded decision, claim IDs line up
// between the two files, and monetary amounts sit on the statutory bands.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -submissions data/mock/claim_submissions.json \
//	  -decisions data/mock/claim_decisions.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/flight-claims-engine/internal/domain"
	"github.com/couchcryptid/flight-claims-engine/internal/observability"
	"github.com/couchcryptid/flight-claims-engine/internal/pipeline"
	"github.com/couchcryptid/flight-claims-engine/internal/refdata"
)

// evalTime must match cmd/genmock so re-evaluation is comparable.
var evalTime = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	subsPath := flag.String("submissions", "", "path to claim submission fixtures")
	decisionsPath := flag.String("decisions", "", "path to expected decision fixtures")
	flag.Parse()

	if *subsPath == "" || *decisionsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	subs, err := readJSON[[]domain.ClaimSubmission](*subsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	decisions, err := readJSON[[]domain.DecisionEvent](*decisionsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	phases := []*phase{
		checkAlignment(subs, decisions),
		checkReEvaluation(subs, decisions),
		checkAmounts(decisions),
	}

	failed := false
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed = true
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// checkAlignment verifies the two files describe the same claims in the
// same order.
func checkAlignment(subs []domain.ClaimSubmission, decisions []domain.DecisionEvent) *phase {
	p := &phase{name: "fixture alignment"}
	if len(subs) != len(decisions) {
		p.errorf("submission count %d != decision count %d", len(subs), len(decisions))
		return p
	}
	for i := range subs {
		if subs[i].ClaimID == "" {
			p.errorf("submission %d has no claim ID", i)
			continue
		}
		if subs[i].ClaimID != decisions[i].ClaimID {
			p.errorf("claim %d: submission ID %s != decision ID %s", i, subs[i].ClaimID, decisions[i].ClaimID)
		}
	}
	return p
}

// checkReEvaluation runs every submission through the engine and diffs the
// outcome against the recorded decision.
func checkReEvaluation(subs []domain.ClaimSubmission, decisions []domain.DecisionEvent) *phase {
	p := &phase{name: "re-evaluation"}

	store, err := refdata.Load(refdata.Paths{})
	if err != nil {
		p.errorf("load reference data: %v", err)
		return p
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := domain.NewEngine(domain.NewDistanceResolver(store.Routes(), store.Airports(), logger))
	evaluator := pipeline.NewClaimEvaluator(engine, store, clockwork.NewFakeClockAt(evalTime), logger, observability.NewMetricsForTesting())

	for i := range subs {
		if i >= len(decisions) {
			break
		}
		got := evaluator.Evaluate(subs[i])
		if diff := cmp.Diff(decisions[i], got); diff != "" {
			p.errorf("claim %s drifted (-recorded +got):\n%s", subs[i].ClaimID, diff)
		}
	}
	return p
}

// checkAmounts verifies every awarded amount is one of the statutory band
// values for its regulation.
func checkAmounts(decisions []domain.DecisionEvent) *phase {
	p := &phase{name: "statutory amounts"}
	bands := map[domain.Regulation]map[int]bool{
		domain.RegulationEU261: {250: true, 400: true, 600: true},
		domain.RegulationUK261: {220: true, 350: true, 520: true},
	}
	for _, d := range decisions {
		if d.Result == nil {
			continue
		}
		if !d.Result.Eligible {
			if d.Result.Amount != 0 {
				p.errorf("claim %s: ineligible but amount %d", d.ClaimID, d.Result.Amount)
			}
			continue
		}
		if !bands[d.Result.Regulation][d.Result.Amount] {
			p.errorf("claim %s: amount %d not a %s band", d.ClaimID, d.Result.Amount, d.Result.Regulation)
		}
	}
	return p
}

func readJSON[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}
