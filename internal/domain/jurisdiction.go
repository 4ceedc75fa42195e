package domain

// ClassifyJurisdiction returns the set of compensation regulations a route
// falls under. Inputs are ISO-3166 alpha-2 codes (run free-text values
// through NormalizeCountry first).
//
// Decision table:
//   - EU261 applies to any flight departing an EU member state, regardless
//     of carrier, and to flights arriving in the EU on an EU carrier.
//   - UK261 applies to any flight departing the UK, regardless of carrier,
//     and to flights arriving in the UK on a UK carrier.
//
// Both can apply at once (e.g. a UK departure on an EU carrier bound for the
// EU); the tie is broken at calculation time, not here.
func ClassifyJurisdiction(departureCountry, arrivalCountry, airlineCountry string) RegulationSet {
	return RegulationSet{
		EU261: IsEU(departureCountry) || (IsEU(arrivalCountry) && IsEU(airlineCountry)),
		UK261: IsUK(departureCountry) || (IsUK(arrivalCountry) && IsUK(airlineCountry)),
	}
}

// chooseRegulation picks exactly one regulation when both apply.
// The rule: the departure country's own regime wins; if the departure is
// neither EU nor UK (both triggers fired on the arrival side), a UK arrival
// selects UK261, anything else selects EU261.
func chooseRegulation(set RegulationSet, departureCountry, arrivalCountry string) Regulation {
	switch {
	case set.EU261 && set.UK261:
		if IsUK(departureCountry) {
			return RegulationUK261
		}
		if IsEU(departureCountry) {
			return RegulationEU261
		}
		if IsUK(arrivalCountry) {
			return RegulationUK261
		}
		return RegulationEU261
	case set.UK261:
		return RegulationUK261
	default:
		return RegulationEU261
	}
}
