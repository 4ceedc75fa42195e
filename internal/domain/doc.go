// Package domain implements the flight disruption compensation eligibility
// engine for EU Regulation 261/2004 (EU261) and its UK retained counterpart
// (UK261).
//
// # Decision Procedure
//
// Evaluating a claim runs four steps in order: validate the claim's shape
// and dates, resolve the route's great-circle distance, classify which
// regulation(s) cover the route, and compute the tiered award. The whole
// procedure is a pure function of its inputs plus static reference tables;
// the evaluation time is an explicit parameter, never an ambient clock, so
// the same (route, disruption, now) triple always yields the same decision.
//
// # Jurisdiction
//
// EU261 covers any flight departing an EU member state regardless of
// carrier, plus flights arriving in the EU on an EU-registered carrier.
// UK261 mirrors this for the UK. A route can fall under both regimes (UK
// departure, EU carrier, EU arrival) or neither. When both apply, exactly
// one is chosen: the departure country's own regime wins, and for purely
// arrival-side coverage a UK arrival selects UK261, otherwise EU261.
// Awards are never summed or averaged across regimes.
//
// # Distance Resolution
//
// Distances come from, in order: a curated route table (exact key, then
// reversed key, distances being symmetric), a haversine computation over
// airport coordinates (mean Earth radius 6371 km, rounded to the whole
// kilometer), and finally a fixed 1500 km default. The default keeps
// evaluation total: an obscure route gets a plausible mid-band award and a
// log line for data curation, never a failure.
//
// # Compensation Bands
//
// Per the chosen regulation's currency, in integer major units:
//
//	<= 1500 km          250 EUR / 220 GBP
//	1501 - 3500 km      400 EUR / 350 GBP
//	>  3500 km          600 EUR / 520 GBP
//
// Gates applied before any amount: delays under 3 hours are not
// compensable; cancellations with 14 or more days notice are not
// compensable; weather, air traffic control, and security are
// extraordinary circumstances that exempt the carrier entirely. Denied
// boarding has no threshold gate. A failed gate is a normal result with
// Eligible=false and a ReasonCode, not an error.
//
// # Claim Window
//
// Claims must be filed within 6 years of the flight date, and the flight
// date cannot be in the future. Both checks compare at calendar-date
// granularity against the caller-supplied evaluation time.
//
// # Country Normalization
//
// Intake data mixes ISO-3166 alpha-2 codes with free-text country names.
// NormalizeCountry is the single canonical mapping; jurisdiction logic only
// ever sees alpha-2 codes. "UK" is folded to the ISO code "GB".
package domain
