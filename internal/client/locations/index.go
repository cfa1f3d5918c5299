// Package locations loads the static district-to-cities reference data that
// drives the dependent district/city selection fields.
package locations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Index is an immutable two-level location lookup: district name to an
// ordered list of city names. District order follows the JSON document, not
// Go map iteration.
type Index struct {
	districts []string
	cities    map[string][]string
}

// Districts returns the district names in document order.
func (ix *Index) Districts() []string {
	out := make([]string, len(ix.districts))
	copy(out, ix.districts)
	return out
}

// Cities returns the ordered city list for a district, or nil for an unknown
// district.
func (ix *Index) Cities(district string) []string {
	cities, ok := ix.cities[district]
	if !ok {
		return nil
	}
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// Has reports whether the district exists in the index.
func (ix *Index) Has(district string) bool {
	_, ok := ix.cities[district]
	return ok
}

// Parse decodes a {"District": ["City", ...], ...} document. The decoder
// walks the token stream so the district order of the source document is
// preserved.
func Parse(r io.Reader) (*Index, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading location data: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("location data: expected object, got %v", tok)
	}

	ix := &Index{cities: make(map[string][]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading location data: %w", err)
		}
		district, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("location data: expected district name, got %v", tok)
		}

		var cities []string
		if err := dec.Decode(&cities); err != nil {
			return nil, fmt.Errorf("location data: cities of %q: %w", district, err)
		}

		if _, dup := ix.cities[district]; !dup {
			ix.districts = append(ix.districts, district)
		}
		ix.cities[district] = cities
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading location data: %w", err)
	}
	return ix, nil
}

// LoadFile reads the index from a local JSON file.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening location data: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Fetch retrieves the index over HTTP, the way the web client fetches the
// static JSON at view-mount time.
func Fetch(ctx context.Context, hc *http.Client, url string) (*Index, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building location request: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching location data: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching location data: %s", resp.Status)
	}
	return Parse(resp.Body)
}

// Selection tracks the dependent district/city choice of a search or
// add-listing form. Picking a district clears any previously chosen city.
type Selection struct {
	ix       *Index
	District string
	City     string
}

func NewSelection(ix *Index) *Selection {
	return &Selection{ix: ix}
}

// SelectDistrict sets the district and resets the city. Unknown districts
// are rejected.
func (s *Selection) SelectDistrict(district string) error {
	if district != "" && !s.ix.Has(district) {
		return fmt.Errorf("unknown district %q", district)
	}
	s.District = district
	s.City = ""
	return nil
}

// SelectCity sets the city; it must belong to the selected district.
func (s *Selection) SelectCity(city string) error {
	if city == "" {
		s.City = ""
		return nil
	}
	for _, c := range s.ix.Cities(s.District) {
		if c == city {
			s.City = city
			return nil
		}
	}
	return fmt.Errorf("city %q is not in district %q", city, s.District)
}
