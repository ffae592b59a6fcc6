// Package region resolves which organizational region a quota record
// belongs to, using roster lookups with segment and country-code fallbacks.
package region

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sqv/pkg/schema"
)

// Region is the closed set of organizational regions.
type Region string

const (
	APAC     Region = "APAC"
	EMEA     Region = "EMEA"
	Americas Region = "Americas"
)

// Regions lists all regions in display order.
var Regions = []Region{APAC, EMEA, Americas}

// Parse resolves a region selector string.
func Parse(s string) (Region, error) {
	for _, r := range Regions {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q (want APAC, EMEA, or Americas)", s)
}

// Tables holds the injected lookup data: country name, ISO country code,
// and market-segment mappings to regions. Keys are stored normalized
// (schema.NormalizeCountry for countries, upper-case for codes, lower-case
// trimmed for segments).
type Tables struct {
	CountryToRegion map[string]Region
	CodeToRegion    map[string]Region
	SegmentToRegion map[string]Region
}

// ByCountry looks up a raw country name.
func (t *Tables) ByCountry(country string) (Region, bool) {
	r, ok := t.CountryToRegion[schema.NormalizeCountry(country)]
	return r, ok
}

// ByCode looks up a two-letter ISO country code.
func (t *Tables) ByCode(code string) (Region, bool) {
	r, ok := t.CodeToRegion[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

// BySegment looks up a market-segment label.
func (t *Tables) BySegment(segment string) (Region, bool) {
	r, ok := t.SegmentToRegion[strings.ToLower(strings.TrimSpace(segment))]
	return r, ok
}

// InRegion reports whether a raw country name belongs to the given region.
func (t *Tables) InRegion(country string, region Region) bool {
	r, ok := t.ByCountry(country)
	return ok && r == region
}

// DefaultTables returns a fresh copy of the built-in lookup data.
func DefaultTables() *Tables {
	t := &Tables{
		CountryToRegion: make(map[string]Region, len(defaultCountries)),
		CodeToRegion:    make(map[string]Region, len(defaultCodes)),
		SegmentToRegion: make(map[string]Region, len(defaultSegments)),
	}
	for country, r := range defaultCountries {
		t.CountryToRegion[country] = r
	}
	for code, r := range defaultCodes {
		t.CodeToRegion[code] = r
	}
	for segment, r := range defaultSegments {
		t.SegmentToRegion[segment] = r
	}
	return t
}

// tablesFile is the YAML shape of a region-table override file.
type tablesFile struct {
	Countries map[string]string `yaml:"countries"`
	Codes     map[string]string `yaml:"codes"`
	Segments  map[string]string `yaml:"segments"`
}

// LoadOverrides reads a YAML override file and merges its entries over the
// built-in tables. Unknown region names in the file are an error.
func LoadOverrides(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region tables: %w", err)
	}
	return mergeOverrides(data)
}

func mergeOverrides(data []byte) (*Tables, error) {
	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse region tables: %w", err)
	}

	t := DefaultTables()
	for country, name := range file.Countries {
		r, err := Parse(name)
		if err != nil {
			return nil, fmt.Errorf("countries[%q]: %w", country, err)
		}
		t.CountryToRegion[schema.NormalizeCountry(country)] = r
	}
	for code, name := range file.Codes {
		r, err := Parse(name)
		if err != nil {
			return nil, fmt.Errorf("codes[%q]: %w", code, err)
		}
		t.CodeToRegion[strings.ToUpper(strings.TrimSpace(code))] = r
	}
	for segment, name := range file.Segments {
		r, err := Parse(name)
		if err != nil {
			return nil, fmt.Errorf("segments[%q]: %w", segment, err)
		}
		t.SegmentToRegion[strings.ToLower(strings.TrimSpace(segment))] = r
	}
	return t, nil
}

// defaultCountries maps normalized country names to regions.
var defaultCountries = map[string]Region{
	"australia":   APAC,
	"china":       APAC,
	"hong kong":   APAC,
	"india":       APAC,
	"indonesia":   APAC,
	"japan":       APAC,
	"malaysia":    APAC,
	"new zealand": APAC,
	"philippines": APAC,
	"singapore":   APAC,
	"south korea": APAC,
	"korea":       APAC,
	"taiwan":      APAC,
	"thailand":    APAC,
	"vietnam":     APAC,

	"austria":              EMEA,
	"belgium":              EMEA,
	"czech republic":       EMEA,
	"denmark":              EMEA,
	"finland":              EMEA,
	"france":               EMEA,
	"germany":              EMEA,
	"ireland":              EMEA,
	"israel":               EMEA,
	"italy":                EMEA,
	"netherlands":          EMEA,
	"norway":               EMEA,
	"poland":               EMEA,
	"portugal":             EMEA,
	"saudi arabia":         EMEA,
	"south africa":         EMEA,
	"spain":                EMEA,
	"sweden":               EMEA,
	"switzerland":          EMEA,
	"united arab emirates": EMEA,
	"united kingdom":       EMEA,
	"uk":                   EMEA,

	"argentina":     Americas,
	"brazil":        Americas,
	"canada":        Americas,
	"chile":         Americas,
	"colombia":      Americas,
	"costa rica":    Americas,
	"mexico":        Americas,
	"peru":          Americas,
	"united states": Americas,
	"usa":           Americas,
	"us":            Americas,
}

// defaultCodes maps ISO 3166-1 alpha-2 codes to regions.
var defaultCodes = map[string]Region{
	"AU": APAC, "CN": APAC, "HK": APAC, "ID": APAC, "IN": APAC,
	"JP": APAC, "KR": APAC, "MY": APAC, "NZ": APAC, "PH": APAC,
	"SG": APAC, "TH": APAC, "TW": APAC, "VN": APAC,

	"AE": EMEA, "AT": EMEA, "BE": EMEA, "CH": EMEA, "CZ": EMEA,
	"DE": EMEA, "DK": EMEA, "ES": EMEA, "FI": EMEA, "FR": EMEA,
	"GB": EMEA, "IE": EMEA, "IL": EMEA, "IT": EMEA, "NL": EMEA,
	"NO": EMEA, "PL": EMEA, "PT": EMEA, "SA": EMEA, "SE": EMEA,
	"ZA": EMEA,

	"AR": Americas, "BR": Americas, "CA": Americas, "CL": Americas,
	"CO": Americas, "CR": Americas, "MX": Americas, "PE": Americas,
	"US": Americas,
}

// defaultSegments maps market-segment labels directly to regions.
var defaultSegments = map[string]Region{
	"anz":           APAC,
	"asean":         APAC,
	"greater china": APAC,
	"india":         APAC,
	"japan":         APAC,
	"korea":         APAC,

	"benelux":         EMEA,
	"cee":             EMEA,
	"dach":            EMEA,
	"mea":             EMEA,
	"nordics":         EMEA,
	"southern europe": EMEA,
	"uki":             EMEA,

	"canada":     Americas,
	"latam":      Americas,
	"us central": Americas,
	"us east":    Americas,
	"us west":    Americas,
}
