package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ClaimSubmission is the flat JSON shape published to the intake topic by
// the claim-intake frontend. Country fields may be alpha-2 codes or
// free-text names; both are normalized during evaluation.
type ClaimSubmission struct {
	ClaimID                string `json:"claim_id,omitempty"`
	FlightNumber           string `json:"flight_number"`
	FlightDate             string `json:"flight_date"` // ISO YYYY-MM-DD
	DepartureIATA          string `json:"departure_iata"`
	DepartureCountry       string `json:"departure_country"`
	ArrivalIATA            string `json:"arrival_iata"`
	ArrivalCountry         string `json:"arrival_country"`
	AirlineIATA            string `json:"airline_iata"`
	AirlineCountry         string `json:"airline_country"`
	DisruptionType         string `json:"disruption_type"`
	DelayHours             int    `json:"delay_hours,omitempty"`
	CancellationNoticeDays int    `json:"cancellation_notice_days,omitempty"`
	Reason                 string `json:"reason"`
	IsDomestic             bool   `json:"is_domestic,omitempty"`
}

// RawClaim represents an unprocessed message from the intake topic.
type RawClaim struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// DecisionStatus distinguishes evaluated claims from rejected submissions.
type DecisionStatus string

const (
	DecisionEvaluated DecisionStatus = "evaluated"
	DecisionRejected  DecisionStatus = "rejected"
)

// DecisionEvent is the outcome published to the decisions topic: either an
// EligibilityResult or, for malformed submissions, the field-error list.
type DecisionEvent struct {
	ClaimID     string             `json:"claim_id"`
	Status      DecisionStatus     `json:"status"`
	Result      *EligibilityResult `json:"result,omitempty"`
	Errors      ValidationErrors   `json:"errors,omitempty"`
	EvaluatedAt time.Time          `json:"evaluated_at"`
}

// OutputEvent is the serialized form destined for the decisions topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// ParseClaimSubmission deserializes a RawClaim's value. A missing claim ID
// is filled in deterministically so replays produce the same ID.
func ParseClaimSubmission(raw RawClaim) (ClaimSubmission, error) {
	var sub ClaimSubmission
	if err := json.Unmarshal(raw.Value, &sub); err != nil {
		return ClaimSubmission{}, fmt.Errorf("parse claim submission: %w", err)
	}
	if sub.ClaimID == "" {
		sub.ClaimID = generateClaimID(sub)
	}
	return sub, nil
}

// BuildClaim converts a submission into the engine's input types, cleaning
// up the kind of noise intake forms produce (whitespace, lowercase codes).
// A malformed flight date becomes the zero time, which the validator reports
// as a field error rather than failing here.
func BuildClaim(sub ClaimSubmission) (FlightRoute, DisruptionReport) {
	route := FlightRoute{
		Departure: Airport{
			IATA:    cleanCode(sub.DepartureIATA),
			Country: strings.TrimSpace(sub.DepartureCountry),
		},
		Arrival: Airport{
			IATA:    cleanCode(sub.ArrivalIATA),
			Country: strings.TrimSpace(sub.ArrivalCountry),
		},
		Airline: Airline{
			IATA:    cleanCode(sub.AirlineIATA),
			Country: strings.TrimSpace(sub.AirlineCountry),
		},
		FlightNumber: cleanCode(sub.FlightNumber),
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(sub.FlightDate)); err == nil {
		route.FlightDate = t
	}

	disruption := DisruptionReport{
		Type:                   DisruptionType(strings.ToLower(strings.TrimSpace(sub.DisruptionType))),
		DelayHours:             sub.DelayHours,
		CancellationNoticeDays: sub.CancellationNoticeDays,
		Reason:                 DisruptionReason(strings.ToLower(strings.TrimSpace(sub.Reason))),
		IsDomestic:             sub.IsDomestic,
	}

	return route, disruption
}

func cleanCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// generateClaimID produces a deterministic ID from the submission's key
// fields. Reprocessing the same submission yields the same ID, which keeps
// downstream upserts idempotent under replay.
func generateClaimID(sub ClaimSubmission) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s",
		cleanCode(sub.FlightNumber), strings.TrimSpace(sub.FlightDate),
		cleanCode(sub.DepartureIATA), cleanCode(sub.ArrivalIATA),
		strings.ToLower(strings.TrimSpace(sub.DisruptionType)),
	)
	hash := sha256.Sum256([]byte(input))
	return "claim-" + hex.EncodeToString(hash[:8])
}
