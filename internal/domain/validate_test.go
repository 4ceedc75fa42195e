package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func validRoute() FlightRoute {
	return FlightRoute{
		Departure:    Airport{IATA: "LHR", Country: "GB"},
		Arrival:      Airport{IATA: "JFK", Country: "US"},
		Airline:      Airline{IATA: "BA", Country: "GB"},
		FlightNumber: "BA117",
		FlightDate:   time.Date(2026, 4, 26, 0, 0, 0, 0, time.UTC),
	}
}

func validDelay() DisruptionReport {
	return DisruptionReport{Type: DisruptionDelay, DelayHours: 4, Reason: ReasonTechnicalIssue}
}

func TestValidateClaim_Valid(t *testing.T) {
	errs := ValidateClaim(validRoute(), validDelay(), testNow)
	assert.Nil(t, errs)
}

func TestValidateClaim_AirportCodes(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		field string
	}{
		{"too short", "LH", "departure.iata"},
		{"too long", "LHRX", "departure.iata"},
		{"lowercase", "lhr", "departure.iata"},
		{"digits", "L1R", "departure.iata"},
		{"empty", "", "departure.iata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := validRoute()
			route.Departure.IATA = tt.code

			errs := ValidateClaim(route, validDelay(), testNow)

			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestValidateClaim_FlightNumber(t *testing.T) {
	valid := []string{"BA117", "U24321", "LH1234A", "AF7"}
	for _, fn := range valid {
		t.Run("valid "+fn, func(t *testing.T) {
			route := validRoute()
			route.FlightNumber = fn
			assert.Nil(t, ValidateClaim(route, validDelay(), testNow))
		})
	}

	invalid := []string{"", "B", "BA", "ba117", "BAAA117"}
	for _, fn := range invalid {
		t.Run("invalid "+fn, func(t *testing.T) {
			route := validRoute()
			route.FlightNumber = fn

			errs := ValidateClaim(route, validDelay(), testNow)

			require.NotEmpty(t, errs)
			assert.Equal(t, "flight_number", errs[0].Field)
		})
	}
}

func TestValidateClaim_FlightDate(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		route := validRoute()
		route.FlightDate = time.Time{}

		errs := ValidateClaim(route, validDelay(), testNow)

		require.Len(t, errs, 1)
		assert.Equal(t, "flight_date", errs[0].Field)
		assert.Contains(t, errs[0].Message, "required")
	})

	t.Run("future date rejected", func(t *testing.T) {
		route := validRoute()
		route.FlightDate = testNow.AddDate(0, 0, 1)

		errs := ValidateClaim(route, validDelay(), testNow)

		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "future")
	})

	t.Run("same day accepted", func(t *testing.T) {
		route := validRoute()
		route.FlightDate = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

		assert.Nil(t, ValidateClaim(route, validDelay(), testNow))
	})

	t.Run("six years minus a day is inside the window", func(t *testing.T) {
		route := validRoute()
		route.FlightDate = testNow.AddDate(-ClaimWindowYears, 0, 1)

		assert.Nil(t, ValidateClaim(route, validDelay(), testNow))
	})

	t.Run("exactly six years is inside the window", func(t *testing.T) {
		route := validRoute()
		route.FlightDate = testNow.AddDate(-ClaimWindowYears, 0, 0)

		assert.Nil(t, ValidateClaim(route, validDelay(), testNow))
	})

	t.Run("six years and a day is outside the window", func(t *testing.T) {
		route := validRoute()
		route.FlightDate = testNow.AddDate(-ClaimWindowYears, 0, -1)

		errs := ValidateClaim(route, validDelay(), testNow)

		require.Len(t, errs, 1)
		assert.Equal(t, "flight_date", errs[0].Field)
		assert.Contains(t, errs[0].Message, "claim window")
	})
}

func TestValidateClaim_Disruption(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		d := validDelay()
		d.Type = "diversion"

		errs := ValidateClaim(validRoute(), d, testNow)

		require.NotEmpty(t, errs)
		assert.Equal(t, "disruption.type", errs[0].Field)
	})

	t.Run("unknown reason", func(t *testing.T) {
		d := validDelay()
		d.Reason = "volcano"

		errs := ValidateClaim(validRoute(), d, testNow)

		require.Len(t, errs, 1)
		assert.Equal(t, "disruption.reason", errs[0].Field)
	})

	t.Run("delay without hours", func(t *testing.T) {
		d := DisruptionReport{Type: DisruptionDelay, Reason: ReasonTechnicalIssue}

		errs := ValidateClaim(validRoute(), d, testNow)

		require.Len(t, errs, 1)
		assert.Equal(t, "disruption.delay_hours", errs[0].Field)
	})

	t.Run("delay beyond sane bound", func(t *testing.T) {
		d := validDelay()
		d.DelayHours = MaxDelayHours + 1

		errs := ValidateClaim(validRoute(), d, testNow)

		require.Len(t, errs, 1)
		assert.Equal(t, "disruption.delay_hours", errs[0].Field)
	})

	t.Run("delay at the bound", func(t *testing.T) {
		d := validDelay()
		d.DelayHours = MaxDelayHours

		assert.Nil(t, ValidateClaim(validRoute(), d, testNow))
	})

	t.Run("negative cancellation notice", func(t *testing.T) {
		d := DisruptionReport{Type: DisruptionCancellation, CancellationNoticeDays: -1, Reason: ReasonStrike}

		errs := ValidateClaim(validRoute(), d, testNow)

		require.Len(t, errs, 1)
		assert.Equal(t, "disruption.cancellation_notice_days", errs[0].Field)
	})

	t.Run("cancellation does not require delay hours", func(t *testing.T) {
		d := DisruptionReport{Type: DisruptionCancellation, Reason: ReasonStrike}

		assert.Nil(t, ValidateClaim(validRoute(), d, testNow))
	})
}

func TestValidateClaim_CollectsAllErrors(t *testing.T) {
	route := validRoute()
	route.Departure.IATA = "bad"
	route.Arrival.IATA = ""
	route.FlightNumber = "???"
	route.FlightDate = time.Time{}
	d := DisruptionReport{Type: "weird", Reason: "weirder"}

	errs := ValidateClaim(route, d, testNow)

	assert.Len(t, errs, 6, "all problems reported in one pass")

	fields := make([]string, len(errs))
	for i, fe := range errs {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "departure.iata")
	assert.Contains(t, fields, "arrival.iata")
	assert.Contains(t, fields, "flight_number")
	assert.Contains(t, fields, "flight_date")
	assert.Contains(t, fields, "disruption.type")
	assert.Contains(t, fields, "disruption.reason")
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "flight_number", Message: "bad"},
		{Field: "flight_date", Message: "worse"},
	}
	assert.Equal(t, "validation failed: flight_number: bad; flight_date: worse", errs.Error())
}
