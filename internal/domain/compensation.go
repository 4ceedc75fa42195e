package domain

// Compensation thresholds and amounts. These figures are product data lifted
// directly from the regulations; they appear here and nowhere else.
const (
	// minCompensableDelayHours is the delay below which no compensation is
	// due under either regulation.
	minCompensableDelayHours = 3

	// sufficientNoticeDays is the cancellation notice period at or above
	// which the airline owes nothing.
	sufficientNoticeDays = 14

	// Distance band boundaries, inclusive on the lower band.
	shortHaulMaxKm  = 1500
	mediumHaulMaxKm = 3500
)

// amountFor returns the award in integer major currency units for the chosen
// regulation and distance band.
func amountFor(reg Regulation, distanceKm int) int {
	switch {
	case distanceKm <= shortHaulMaxKm:
		if reg == RegulationUK261 {
			return 220
		}
		return 250
	case distanceKm <= mediumHaulMaxKm:
		if reg == RegulationUK261 {
			return 350
		}
		return 400
	default:
		if reg == RegulationUK261 {
			return 520
		}
		return 600
	}
}

// CalculateCompensation produces the monetary outcome for a validated claim.
// Gates are applied in order: jurisdiction, disruption-specific thresholds,
// then the extraordinary-circumstance exception; only then is the tiered
// amount computed. Negative determinations are normal results, not errors.
func CalculateCompensation(set RegulationSet, departureCountry, arrivalCountry string, distanceKm int, disruption DisruptionReport) EligibilityResult {
	if set.Empty() {
		return EligibilityResult{
			DistanceKm: distanceKm,
			ReasonCode: ReasonCodeNoJurisdiction,
		}
	}

	if disruption.Type == DisruptionDelay && disruption.DelayHours < minCompensableDelayHours {
		return EligibilityResult{
			DistanceKm: distanceKm,
			ReasonCode: ReasonCodeInsufficientDelay,
		}
	}

	if disruption.Type == DisruptionCancellation && disruption.CancellationNoticeDays >= sufficientNoticeDays {
		return EligibilityResult{
			DistanceKm: distanceKm,
			ReasonCode: ReasonCodeSufficientNotice,
		}
	}

	if disruption.Reason.Extraordinary() {
		return EligibilityResult{
			DistanceKm: distanceKm,
			ReasonCode: ReasonCodeExtraordinaryCircumstances,
		}
	}

	reg := chooseRegulation(set, departureCountry, arrivalCountry)
	return EligibilityResult{
		Eligible:   true,
		Regulation: reg,
		DistanceKm: distanceKm,
		Amount:     amountFor(reg, distanceKm),
		Currency:   reg.Currency(),
		ReasonCode: ReasonCodeEligible,
	}
}
