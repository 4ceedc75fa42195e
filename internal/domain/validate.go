package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// ClaimWindowYears is the statutory limitation period: flights older
	// than this (relative to evaluation time) can no longer be claimed.
	ClaimWindowYears = 6

	// MaxDelayHours is the sanity bound on a reported delay. Anything
	// longer is almost certainly a data-entry error.
	MaxDelayHours = 72
)

var (
	airportCodeRe  = regexp.MustCompile(`^[A-Z]{3}$`)
	flightNumberRe = regexp.MustCompile(`^[A-Z0-9]{2,3}\d{1,4}[A-Z]?$`)
)

// FieldError is a single validation failure, addressed to a form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every problem found in one pass so the intake
// form can surface them all at once instead of one per submission attempt.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ValidateClaim checks the shape and temporal constraints of a flight route
// and its disruption report. It returns nil when everything is valid.
// now is the evaluation time, passed explicitly so callers control the clock.
func ValidateClaim(route FlightRoute, disruption DisruptionReport, now time.Time) ValidationErrors {
	var errs ValidationErrors

	if !airportCodeRe.MatchString(route.Departure.IATA) {
		errs = append(errs, FieldError{
			Field:   "departure.iata",
			Message: fmt.Sprintf("%q is not a valid 3-letter IATA airport code", route.Departure.IATA),
		})
	}
	if !airportCodeRe.MatchString(route.Arrival.IATA) {
		errs = append(errs, FieldError{
			Field:   "arrival.iata",
			Message: fmt.Sprintf("%q is not a valid 3-letter IATA airport code", route.Arrival.IATA),
		})
	}
	if !flightNumberRe.MatchString(route.FlightNumber) {
		errs = append(errs, FieldError{
			Field:   "flight_number",
			Message: fmt.Sprintf("%q is not a valid flight number", route.FlightNumber),
		})
	}

	errs = append(errs, validateFlightDate(route.FlightDate, now)...)
	errs = append(errs, validateDisruption(disruption)...)

	return errs
}

func validateFlightDate(flightDate time.Time, now time.Time) ValidationErrors {
	if flightDate.IsZero() {
		return ValidationErrors{{Field: "flight_date", Message: "flight date is required"}}
	}

	// Compare at calendar-date granularity: a flight earlier today is fine.
	day := flightDate.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)

	if day.After(today) {
		return ValidationErrors{{Field: "flight_date", Message: "flight date cannot be in the future"}}
	}
	if cutoff := today.AddDate(-ClaimWindowYears, 0, 0); day.Before(cutoff) {
		return ValidationErrors{{
			Field:   "flight_date",
			Message: fmt.Sprintf("flight is outside the %d-year claim window", ClaimWindowYears),
		}}
	}
	return nil
}

func validateDisruption(d DisruptionReport) ValidationErrors {
	var errs ValidationErrors

	if !d.Type.Valid() {
		errs = append(errs, FieldError{
			Field:   "disruption.type",
			Message: fmt.Sprintf("%q is not a recognized disruption type", string(d.Type)),
		})
	}
	if !d.Reason.Valid() {
		errs = append(errs, FieldError{
			Field:   "disruption.reason",
			Message: fmt.Sprintf("%q is not a recognized disruption reason", string(d.Reason)),
		})
	}

	if d.Type == DisruptionDelay {
		switch {
		case d.DelayHours <= 0:
			errs = append(errs, FieldError{
				Field:   "disruption.delay_hours",
				Message: "delay hours must be a positive number for delay claims",
			})
		case d.DelayHours > MaxDelayHours:
			errs = append(errs, FieldError{
				Field:   "disruption.delay_hours",
				Message: fmt.Sprintf("delay hours cannot exceed %d", MaxDelayHours),
			})
		}
	}

	if d.Type == DisruptionCancellation && d.CancellationNoticeDays < 0 {
		errs = append(errs, FieldError{
			Field:   "disruption.cancellation_notice_days",
			Message: "cancellation notice days cannot be negative",
		})
	}

	return errs
}
