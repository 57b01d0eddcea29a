package classifier

import "strings"

// ZoneDuration is one row of the per-zone duration table: how many days an
// order is expected to spend in the zone, plus the tolerated deviation.
type ZoneDuration struct {
	Zone          int
	StandardDays  int
	DeviationDays int
}

// ZoneConfig is the ordered duration table (zones ascending). An empty
// config means the table was never loaded; dependent computations degrade
// to sentinels instead of failing.
type ZoneConfig []ZoneDuration

// Loaded reports whether the duration table is available.
func (c ZoneConfig) Loaded() bool { return len(c) > 0 }

// StandardDays returns the standard duration for a zone, or the fallback
// when the zone is not configured.
func (c ZoneConfig) StandardDays(zone, fallback int) int {
	for _, d := range c {
		if d.Zone == zone {
			return d.StandardDays
		}
	}
	return fallback
}

// CodeRule is one cell of the class×zone matrix: the comma-separated
// observation codes allowed while an order of the given class sits in the
// given zone. At most one rule per class carries ArrivalZone, marking the
// terminal zone for that class.
type CodeRule struct {
	Class       Class
	Zone        int
	Codes       string
	ArrivalZone bool
}

// AllowedCodes splits the rule's code list on commas and trims each entry.
func (r CodeRule) AllowedCodes() []string {
	parts := strings.Split(r.Codes, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		codes = append(codes, strings.TrimSpace(p))
	}
	return codes
}

// Allows reports whether the code matches one of the rule's allowed codes
// exactly (case-sensitive).
func (r CodeRule) Allows(code string) bool {
	code = strings.TrimSpace(code)
	for _, c := range r.AllowedCodes() {
		if c == code {
			return true
		}
	}
	return false
}

// CodeMatrix is the full class×zone rule set.
type CodeMatrix []CodeRule

// Loaded reports whether the matrix is available.
func (m CodeMatrix) Loaded() bool { return len(m) > 0 }

// Rule returns the entry for a (class, zone) pair, if configured.
func (m CodeMatrix) Rule(class Class, zone int) (CodeRule, bool) {
	for _, r := range m {
		if r.Class == class && r.Zone == zone {
			return r, true
		}
	}
	return CodeRule{}, false
}

const defaultArrivalZone = 4

// ArrivalZone returns the terminal zone configured for a class, or zone 4
// when the class has no arrival entry.
func (m CodeMatrix) ArrivalZone(class Class) int {
	for _, r := range m {
		if r.Class == class && r.ArrivalZone {
			return r.Zone
		}
	}
	return defaultArrivalZone
}
