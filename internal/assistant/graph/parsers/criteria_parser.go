// Package parsers recovers structured flight criteria from raw model output.
package parsers

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

var (
	fencedBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
	// Balanced-brace scan, one level of nesting deep. Good enough for the
	// flat criteria object the extraction prompt demands.
	braceObjectRe = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)
)

// ExtractJSON pulls a JSON-decodable fragment out of raw model output.
// Strategies, in order: fenced code block, balanced-brace scan, then a
// first-"{"-to-last-"}" slice. Returns "" when nothing looks like JSON.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := braceObjectRe.FindString(text); m != "" {
		return m
	}
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(text, "}")
	if end <= start {
		return ""
	}
	return text[start : end+1]
}

// ParseCriteria decodes and validates flight criteria from raw model output.
// A response with no recoverable JSON is a hard parse failure for the caller
// to convert into a clarification request; sloppy field values inside a
// decodable object are normalised instead of rejected.
func ParseCriteria(response string) (*model.FlightCriteria, error) {
	fragment := ExtractJSON(response)
	if fragment == "" {
		return nil, fmt.Errorf("no JSON object found in extractor response")
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(fragment), &raw); err != nil {
		logx.Warn().Err(err).Msg("criteria JSON parse failed")
		return nil, fmt.Errorf("could not parse criteria from response: %w", err)
	}

	c := &model.FlightCriteria{
		Origin:                asCity(raw["origin"]),
		Destination:           asCity(raw["destination"]),
		DepartureDate:         asDate(raw["departure_date"], model.DepartureFlexible),
		ReturnDate:            asDate(raw["return_date"], ""),
		TripType:              model.ParseTripType(asString(raw["trip_type"])),
		Alliance:              model.ParseAlliance(asString(raw["alliance"])),
		PreferredAirlines:     asStringSlice(raw["preferred_airlines"]),
		AvoidOvernightLayover: asBool(raw["avoid_overnight_layover"]),
		RefundableOnly:        asBool(raw["refundable_only"]),
		FlexibleDates:         asBool(raw["flexible_dates"]),
	}
	if n, ok := asNumber(raw["max_layovers"]); ok && n >= 0 {
		v := int(n)
		c.MaxLayovers = &v
	}
	if n, ok := asNumber(raw["max_price_usd"]); ok && n > 0 {
		v := n
		c.MaxPriceUSD = &v
	}
	return c, nil
}

// isNullSentinel covers the model emitting the literal string "null".
func isNullSentinel(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "null")
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asCity(v any) string {
	s := asString(v)
	if isNullSentinel(s) {
		return ""
	}
	return model.NormalizeCity(s)
}

func asDate(v any, fallback string) string {
	s := asString(v)
	if s == "" || isNullSentinel(s) {
		return fallback
	}
	return s
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	}
	return false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func asStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s := asString(e); s != "" && !isNullSentinel(s) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
