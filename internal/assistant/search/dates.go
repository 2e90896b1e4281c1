package search

import (
	"strings"
	"time"
)

const rangeSeparator = " to "

// dateLayouts are tried in order when parsing catalog and criteria dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// parseDate parses a single date with a tolerant layout set.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDateOrRange parses a criteria date value as either a single date or an
// explicit "A to B" range. Sentinel values ("flexible", "null", empty) mean
// no constraint and report ok=false.
func parseDateOrRange(value string) (start, end time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if isDateSentinel(value) {
		return time.Time{}, time.Time{}, false
	}
	if before, after, found := strings.Cut(value, rangeSeparator); found {
		s, sok := parseDate(before)
		e, eok := parseDate(after)
		if !sok || !eok {
			return time.Time{}, time.Time{}, false
		}
		return s, e, true
	}
	d, dok := parseDate(value)
	if !dok {
		return time.Time{}, time.Time{}, false
	}
	return d, d, true
}

// isDateSentinel reports whether the value disables date filtering.
func isDateSentinel(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "flexible", "null":
		return true
	}
	return false
}

// inRange reports whether d falls within [start, end] inclusive.
func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
