package domain

import (
	"time"
)

// Airport is immutable reference data keyed by its 3-letter IATA code.
// Coordinates may be zero when the airport is not in the curated dataset.
type Airport struct {
	IATA    string  `json:"iata"`
	Name    string  `json:"name,omitempty"`
	City    string  `json:"city,omitempty"`
	Country string  `json:"country"` // ISO-3166 alpha-2
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
}

// HasCoordinates reports whether the airport carries a usable lat/lon pair.
// (0, 0) is in the Gulf of Guinea, not at any commercial airport, so the
// zero value doubles as the "unknown" sentinel.
func (a Airport) HasCoordinates() bool {
	return a.Lat != 0 || a.Lon != 0
}

// Airline is immutable reference data keyed by its 2-3 character IATA code.
type Airline struct {
	IATA    string `json:"iata"`
	Name    string `json:"name,omitempty"`
	Country string `json:"country"` // ISO-3166 alpha-2
}

// FlightRoute is the flight a disruption claim is about, assembled per
// evaluation from caller-supplied data.
type FlightRoute struct {
	Departure    Airport   `json:"departure"`
	Arrival      Airport   `json:"arrival"`
	Airline      Airline   `json:"airline"`
	FlightNumber string    `json:"flight_number"`
	FlightDate   time.Time `json:"flight_date"` // calendar date, midnight UTC
}

// DisruptionType is the kind of disruption being claimed.
type DisruptionType string

const (
	DisruptionDelay          DisruptionType = "delay"
	DisruptionCancellation   DisruptionType = "cancellation"
	DisruptionDeniedBoarding DisruptionType = "denied_boarding"
)

// Valid reports whether t is a member of the closed enumeration.
func (t DisruptionType) Valid() bool {
	switch t {
	case DisruptionDelay, DisruptionCancellation, DisruptionDeniedBoarding:
		return true
	}
	return false
}

// DisruptionReason is the airline-reported cause of the disruption.
type DisruptionReason string

const (
	ReasonTechnicalIssue    DisruptionReason = "technical_issue"
	ReasonWeather           DisruptionReason = "weather"
	ReasonAirTrafficControl DisruptionReason = "air_traffic_control"
	ReasonSecurity          DisruptionReason = "security"
	ReasonStaffShortage     DisruptionReason = "staff_shortage"
	ReasonStrike            DisruptionReason = "strike"
	ReasonOtherAirlineFault DisruptionReason = "other_airline_fault"
	ReasonOther             DisruptionReason = "other"
)

// Valid reports whether r is a member of the closed enumeration.
func (r DisruptionReason) Valid() bool {
	switch r {
	case ReasonTechnicalIssue, ReasonWeather, ReasonAirTrafficControl,
		ReasonSecurity, ReasonStaffShortage, ReasonStrike,
		ReasonOtherAirlineFault, ReasonOther:
		return true
	}
	return false
}

// Extraordinary reports whether the reason is an extraordinary circumstance
// outside airline control, which exempts the carrier from liability.
func (r DisruptionReason) Extraordinary() bool {
	switch r {
	case ReasonWeather, ReasonAirTrafficControl, ReasonSecurity:
		return true
	}
	return false
}

// DisruptionReport describes what happened to the flight.
// DelayHours is required when Type is delay; CancellationNoticeDays is
// meaningful only when Type is cancellation (0 = no advance notice).
// IsDomestic is intake metadata carried through for downstream consumers;
// no eligibility rule reads it, since jurisdiction is derived from the
// route's countries.
type DisruptionReport struct {
	Type                   DisruptionType   `json:"type"`
	DelayHours             int              `json:"delay_hours,omitempty"`
	CancellationNoticeDays int              `json:"cancellation_notice_days,omitempty"`
	Reason                 DisruptionReason `json:"reason"`
	IsDomestic             bool             `json:"is_domestic,omitempty"`
}

// Regulation identifies a compensation regime. A route may fall under zero,
// one, or both.
type Regulation string

const (
	RegulationEU261 Regulation = "EU261"
	RegulationUK261 Regulation = "UK261"
)

// Currency returns the payout currency mandated by the regulation.
func (r Regulation) Currency() string {
	if r == RegulationUK261 {
		return "GBP"
	}
	return "EUR"
}

// RegulationSet is the set of regulations applicable to a route.
// With only two members, two booleans beat a map.
type RegulationSet struct {
	EU261 bool
	UK261 bool
}

// Empty reports whether no regulation applies.
func (s RegulationSet) Empty() bool { return !s.EU261 && !s.UK261 }

// ReasonCode records which gate or exception determined the outcome.
type ReasonCode string

const (
	ReasonCodeEligible                   ReasonCode = "eligible"
	ReasonCodeNoJurisdiction             ReasonCode = "no_jurisdiction"
	ReasonCodeInsufficientDelay          ReasonCode = "insufficient_delay"
	ReasonCodeSufficientNotice           ReasonCode = "sufficient_notice"
	ReasonCodeExtraordinaryCircumstances ReasonCode = "extraordinary_circumstances"
)

// DistanceSource records how a route distance was obtained, for audit and
// data-curation follow-up.
type DistanceSource string

const (
	DistanceSourceCurated  DistanceSource = "curated"
	DistanceSourceReversed DistanceSource = "reversed"
	DistanceSourceComputed DistanceSource = "computed"
	DistanceSourceDefault  DistanceSource = "default"
)

// EligibilityResult is the engine's decision for one claim.
// Amount is in integer major currency units (whole euros or pounds; the
// regulations define no sub-unit amounts) and is always 0 when Eligible is
// false. Currency is fully determined by Regulation.
type EligibilityResult struct {
	Eligible       bool           `json:"eligible"`
	Regulation     Regulation     `json:"regulation,omitempty"`
	DistanceKm     int            `json:"distance_km"`
	Amount         int            `json:"amount"`
	Currency       string         `json:"currency,omitempty"`
	ReasonCode     ReasonCode     `json:"reason_code"`
	DistanceSource DistanceSource `json:"distance_source,omitempty"`
}
