package schema

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Pre-compiled regular expressions for name normalization.
var (
	middleInitialRe = regexp.MustCompile(`\b[a-z]\.?\s`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// Known name suffixes to strip during normalization.
var nameSuffixes = []string{"jr", "sr", "ii", "iii", "iv", "v", "phd", "md"}

// NormalizeName canonicalizes a display name for comparison against the
// roster: lowercase, diacritics stripped, suffixes and middle initials
// removed, whitespace collapsed, "Last, First" reordered.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return s
	}

	s = stripDiacritics(s)

	for _, suffix := range nameSuffixes {
		s = strings.TrimSuffix(s, " "+suffix)
		s = strings.TrimSuffix(s, ","+suffix)
	}

	s = middleInitialRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")

	// Handle "Last, First" format -> "first last"
	if parts := strings.SplitN(s, ",", 2); len(parts) == 2 {
		first := strings.TrimSpace(parts[1])
		last := strings.TrimSpace(parts[0])
		if first != "" && last != "" {
			s = first + " " + last
		}
	}

	return strings.TrimSpace(s)
}

// NormalizeCountry canonicalizes a country name for table lookup:
// lowercase, diacritics stripped, dots removed (so "U.S.A." and "USA"
// collide), whitespace collapsed.
func NormalizeCountry(country string) string {
	s := strings.ToLower(strings.TrimSpace(country))
	if s == "" {
		return s
	}
	s = stripDiacritics(s)
	s = strings.ReplaceAll(s, ".", "")
	return whitespaceRe.ReplaceAllString(s, " ")
}

// normalizeHeader lowercases a header cell and strips whitespace,
// underscores, and hyphens so variant spellings compare equal.
func normalizeHeader(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// stripDiacritics removes diacritical marks (accents) from a string.
// It decomposes the string into NFD form and removes combining marks (unicode.Mn).
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var result strings.Builder
	result.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}
