// Package refdata loads the static airport, airline, and curated route
// datasets the engine consumes. Data files are embedded at build time and
// can be overridden with external files for out-of-band data updates.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/couchcryptid/flight-claims-engine/internal/domain"
)

//go:embed data/airports.json data/airlines.json data/routes.json
var embedded embed.FS

// Store holds the reference datasets, loaded once at startup. All lookups
// are read-only after construction, so the Store is safe for concurrent use.
type Store struct {
	airports map[string]domain.Airport
	airlines map[string]domain.Airline
	routes   map[string]int

	// Sorted copies for deterministic search results.
	airportList []domain.Airport
	airlineList []domain.Airline
}

// Paths optionally overrides the embedded datasets with external files.
// An empty field keeps the embedded copy.
type Paths struct {
	Airports string
	Airlines string
	Routes   string
}

// Load builds a Store from the embedded datasets, applying any overrides.
func Load(paths Paths) (*Store, error) {
	var airports []domain.Airport
	if err := loadJSON("data/airports.json", paths.Airports, &airports); err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}

	var airlines []domain.Airline
	if err := loadJSON("data/airlines.json", paths.Airlines, &airlines); err != nil {
		return nil, fmt.Errorf("load airlines: %w", err)
	}

	var routes map[string]int
	if err := loadJSON("data/routes.json", paths.Routes, &routes); err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}

	s := &Store{
		airports:    make(map[string]domain.Airport, len(airports)),
		airlines:    make(map[string]domain.Airline, len(airlines)),
		routes:      routes,
		airportList: airports,
		airlineList: airlines,
	}
	for _, a := range airports {
		s.airports[a.IATA] = a
	}
	for _, a := range airlines {
		s.airlines[a.IATA] = a
	}

	sort.Slice(s.airportList, func(i, j int) bool { return s.airportList[i].IATA < s.airportList[j].IATA })
	sort.Slice(s.airlineList, func(i, j int) bool { return s.airlineList[i].IATA < s.airlineList[j].IATA })

	return s, nil
}

func loadJSON(embeddedPath, overridePath string, out any) error {
	var (
		data []byte
		err  error
	)
	if overridePath != "" {
		data, err = os.ReadFile(overridePath)
	} else {
		data, err = embedded.ReadFile(embeddedPath)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", embeddedPath, err)
	}
	return nil
}

// Airports returns the IATA-keyed airport table (shared, do not mutate).
func (s *Store) Airports() map[string]domain.Airport { return s.airports }

// Routes returns the curated route-distance table (shared, do not mutate).
func (s *Store) Routes() map[string]int { return s.routes }

// AirportByIATA looks up a single airport.
func (s *Store) AirportByIATA(code string) (domain.Airport, bool) {
	a, ok := s.airports[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

// AirlineByIATA looks up a single airline.
func (s *Store) AirlineByIATA(code string) (domain.Airline, bool) {
	a, ok := s.airlines[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

// SearchAirports returns airports whose IATA code, name, or city contains
// the query, case-insensitively, in IATA order, capped at limit.
func (s *Store) SearchAirports(query string, limit int) []domain.Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []domain.Airport
	for _, a := range s.airportList {
		if strings.Contains(strings.ToLower(a.IATA), q) ||
			strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.City), q) {
			out = append(out, a)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// SearchAirlines returns airlines whose IATA code or name contains the
// query, case-insensitively, in IATA order, capped at limit.
func (s *Store) SearchAirlines(query string, limit int) []domain.Airline {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []domain.Airline
	for _, a := range s.airlineList {
		if strings.Contains(strings.ToLower(a.IATA), q) ||
			strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}
