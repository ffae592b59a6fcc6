package region

import (
	"fmt"
	"strings"

	"sqv/pkg/schema"
)

// Match-type tags on a resolution. The tag records which step of the
// fallback chain decided the record, making the precedence auditable.
const (
	MatchPlaceholder     = "placeholder"
	MatchRosterCountry   = "roster_country_match"
	MatchRosterMismatch  = "roster_country_mismatch"
	MatchSegmentDirect   = "segment_direct"
	MatchSegmentCode     = "segment_country_code"
	MatchUnresolvedHint  = "unresolved_hint"
	MatchGeoCode         = "geo_code"
	MatchGeoForced       = "geo_forced"
	MatchUnresolvedGeo   = "unresolved_geo"
)

// Resolution is the outcome of resolving one record against a selected
// region: whether the record is in scope, which rule decided it, and a
// human-readable justification.
type Resolution struct {
	Included  bool   `json:"included"`
	MatchType string `json:"matchType"`
	Comment   string `json:"comment"`
}

// Resolve determines whether a quota record belongs to the selected region.
// The fallback chain runs in a fixed order; first success wins:
//
//  1. placeholder identifier        -> included (surfaced, never dropped)
//  2. roster country in region      -> included
//  3. roster country in another known region -> excluded
//  4. region hint in segment table  -> included/excluded by mapping
//  5. two-letter hint in code table -> included/excluded by mapping
//  6. no usable signal              -> included by default
//
// Reordering these steps changes which records are silently included or
// excluded; the order is a correctness property, not a style choice.
func Resolve(rec *schema.QuotaRecord, ix *RosterIndex, tables *Tables, selected Region) Resolution {
	// Step 1: placeholder identity.
	if rec.HasPlaceholderID() {
		return Resolution{
			Included:  true,
			MatchType: MatchPlaceholder,
			Comment:   "placeholder employee id; included for review",
		}
	}

	entries := ix.Lookup(rec.EmployeeID)

	// Step 2: any roster entry with a country in the selected region.
	for _, entry := range entries {
		if entry.Country != "" && tables.InRegion(entry.Country, selected) {
			return Resolution{
				Included:  true,
				MatchType: MatchRosterCountry,
				Comment:   fmt.Sprintf("roster country %q is in %s", entry.Country, selected),
			}
		}
	}

	// Step 3: roster entries exist but the first one's country maps to a
	// different known region.
	if len(entries) > 0 {
		if r, ok := tables.ByCountry(entries[0].Country); ok && r != selected {
			return Resolution{
				Included:  false,
				MatchType: MatchRosterMismatch,
				Comment:   fmt.Sprintf("roster country %q belongs to %s", entries[0].Country, r),
			}
		}
	}

	// Step 4: region hint against the direct segment table.
	if r, ok := tables.BySegment(rec.RegionHint); ok {
		return Resolution{
			Included:  r == selected,
			MatchType: MatchSegmentDirect,
			Comment:   fmt.Sprintf("segment %q maps to %s", rec.RegionHint, r),
		}
	}

	// Step 5: two-character hints are tried as ISO country codes.
	if hint := strings.TrimSpace(rec.RegionHint); len(hint) == 2 {
		if r, ok := tables.ByCode(hint); ok {
			return Resolution{
				Included:  r == selected,
				MatchType: MatchSegmentCode,
				Comment:   fmt.Sprintf("country code %q maps to %s", hint, r),
			}
		}
	}

	// Step 6: nothing matched. Unmatched records are surfaced, not
	// silently dropped.
	return Resolution{
		Included:  true,
		MatchType: MatchUnresolvedHint,
		Comment:   fmt.Sprintf("unrecognized region hint %q; included by default", rec.RegionHint),
	}
}

// geoForceInclude is the worldwide geography token; records carrying it are
// in scope for every region.
const geoForceInclude = "WW"

// geoCodeRegions maps raw geography tokens to regions for the LMS fallback.
var geoCodeRegions = map[string]Region{
	"APAC":  APAC,
	"EMEA":  EMEA,
	"LATAM": Americas,
	"NAMER": Americas,
}

// ResolveLms is the simpler resolver used by the LMS validation path: it
// filters by roster country only, falling back to the record's geography
// code when the identifier is entirely absent from the roster.
func ResolveLms(rec *schema.LmsQuotaRecord, ix *RosterIndex, tables *Tables, selected Region) Resolution {
	entries := ix.Lookup(rec.EmployeeID)

	if len(entries) > 0 {
		for _, entry := range entries {
			if entry.Country != "" && tables.InRegion(entry.Country, selected) {
				return Resolution{
					Included:  true,
					MatchType: MatchRosterCountry,
					Comment:   fmt.Sprintf("roster country %q is in %s", entry.Country, selected),
				}
			}
		}
		return Resolution{
			Included:  false,
			MatchType: MatchRosterMismatch,
			Comment:   fmt.Sprintf("no roster country for %q in %s", rec.EmployeeID, selected),
		}
	}

	geo := strings.ToUpper(strings.TrimSpace(rec.GeoCode))
	if geo == geoForceInclude {
		return Resolution{
			Included:  true,
			MatchType: MatchGeoForced,
			Comment:   "worldwide geography; included for every region",
		}
	}
	if r, ok := geoCodeRegions[geo]; ok {
		return Resolution{
			Included:  r == selected,
			MatchType: MatchGeoCode,
			Comment:   fmt.Sprintf("geography %q maps to %s", geo, r),
		}
	}

	return Resolution{
		Included:  true,
		MatchType: MatchUnresolvedGeo,
		Comment:   fmt.Sprintf("not in roster and unrecognized geography %q; included by default", rec.GeoCode),
	}
}
