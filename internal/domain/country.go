package domain

import "strings"

// Country normalization. Intake data arrives with a mix of ISO-3166 alpha-2
// codes and free-text country names (sometimes differently spelled between
// the airport and airline records of the same claim). Everything is funneled
// through NormalizeCountry before any jurisdiction logic sees it, so the
// classifier operates on alpha-2 codes only. This table is the single
// canonical mapping; nothing else in the repository maps country names.

// euMembers are the 27 EU member states as alpha-2 codes.
var euMembers = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true,
	"CZ": true, "DK": true, "EE": true, "FI": true, "FR": true,
	"DE": true, "GR": true, "HU": true, "IE": true, "IT": true,
	"LV": true, "LT": true, "LU": true, "MT": true, "NL": true,
	"PL": true, "PT": true, "RO": true, "SK": true, "SI": true,
	"ES": true, "SE": true,
}

// countryNames maps lowercased free-text country names to alpha-2 codes.
// Covers the EU-27, the UK, and the non-EU countries that appear in the
// airport reference dataset.
var countryNames = map[string]string{
	"austria":        "AT",
	"belgium":        "BE",
	"bulgaria":       "BG",
	"croatia":        "HR",
	"cyprus":         "CY",
	"czech republic": "CZ",
	"czechia":        "CZ",
	"denmark":        "DK",
	"estonia":        "EE",
	"finland":        "FI",
	"france":         "FR",
	"germany":        "DE",
	"greece":         "GR",
	"hungary":        "HU",
	"ireland":        "IE",
	"italy":          "IT",
	"latvia":         "LV",
	"lithuania":      "LT",
	"luxembourg":     "LU",
	"malta":          "MT",
	"netherlands":    "NL",
	"poland":         "PL",
	"portugal":       "PT",
	"romania":        "RO",
	"slovakia":       "SK",
	"slovenia":       "SI",
	"spain":          "ES",
	"sweden":         "SE",

	"united kingdom": "GB",
	"uk":             "GB",
	"great britain":  "GB",
	"england":        "GB",
	"scotland":       "GB",
	"wales":          "GB",
	"northern ireland": "GB",

	"united states":            "US",
	"united states of america": "US",
	"usa":                      "US",
	"canada":                   "CA",
	"mexico":                   "MX",
	"brazil":                   "BR",
	"argentina":                "AR",
	"switzerland":              "CH",
	"norway":                   "NO",
	"iceland":                  "IS",
	"turkey":                   "TR",
	"turkiye":                  "TR",
	"russia":                   "RU",
	"ukraine":                  "UA",
	"serbia":                   "RS",
	"albania":                  "AL",
	"morocco":                  "MA",
	"tunisia":                  "TN",
	"egypt":                    "EG",
	"south africa":             "ZA",
	"nigeria":                  "NG",
	"kenya":                    "KE",
	"ethiopia":                 "ET",
	"israel":                   "IL",
	"united arab emirates":     "AE",
	"uae":                      "AE",
	"qatar":                    "QA",
	"saudi arabia":             "SA",
	"india":                    "IN",
	"china":                    "CN",
	"hong kong":                "HK",
	"japan":                    "JP",
	"south korea":              "KR",
	"korea":                    "KR",
	"thailand":                 "TH",
	"vietnam":                  "VN",
	"singapore":                "SG",
	"malaysia":                 "MY",
	"indonesia":                "ID",
	"philippines":              "PH",
	"australia":                "AU",
	"new zealand":              "NZ",
}

// NormalizeCountry maps a country string (alpha-2 code or free-text name)
// to an ISO-3166 alpha-2 code. Returns "" when the input is empty or
// unrecognized; unknown countries are simply outside every jurisdiction.
func NormalizeCountry(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if len(s) == 2 {
		code := strings.ToUpper(s)
		if code == "UK" {
			// Common shorthand; the ISO code for the United Kingdom is GB.
			return "GB"
		}
		if isAlpha(code) {
			return code
		}
		return ""
	}

	if code, ok := countryNames[strings.ToLower(s)]; ok {
		return code
	}
	return ""
}

// IsEU reports whether the alpha-2 code is an EU member state.
func IsEU(code string) bool { return euMembers[code] }

// IsUK reports whether the alpha-2 code is the United Kingdom.
func IsUK(code string) bool { return code == "GB" }

func isAlpha(s string) bool {
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
