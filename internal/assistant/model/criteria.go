package model

import (
	"fmt"
	"strings"
)

// TripType describes the shape of the requested itinerary.
type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
	TripMultiCity TripType = "multi-city"
)

// ParseTripType normalises a raw trip type value. Absent or unknown values
// default to round-trip.
func ParseTripType(v string) TripType {
	switch TripType(strings.TrimSpace(v)) {
	case TripOneWay:
		return TripOneWay
	case TripMultiCity:
		return TripMultiCity
	default:
		return TripRoundTrip
	}
}

// Alliance is one of the three airline alliances.
type Alliance string

const (
	StarAlliance Alliance = "Star Alliance"
	Oneworld     Alliance = "Oneworld"
	SkyTeam      Alliance = "SkyTeam"
)

// ParseAlliance normalises a raw alliance value; unknown values become unset.
func ParseAlliance(v string) Alliance {
	switch Alliance(strings.TrimSpace(v)) {
	case StarAlliance:
		return StarAlliance
	case Oneworld:
		return Oneworld
	case SkyTeam:
		return SkyTeam
	default:
		return ""
	}
}

// DepartureFlexible is the sentinel value for an unconstrained departure date.
const DepartureFlexible = "flexible"

// FlightCriteria is the structured search input extracted from free text.
// Optional city names use the empty string for "not specified"; numeric
// ceilings use pointers so zero remains a meaningful value.
type FlightCriteria struct {
	Origin                string   `json:"origin,omitempty"`
	Destination           string   `json:"destination,omitempty"`
	DepartureDate         string   `json:"departure_date"`
	ReturnDate            string   `json:"return_date,omitempty"`
	TripType              TripType `json:"trip_type"`
	Alliance              Alliance `json:"alliance,omitempty"`
	PreferredAirlines     []string `json:"preferred_airlines,omitempty"`
	AvoidOvernightLayover bool     `json:"avoid_overnight_layover"`
	MaxLayovers           *int     `json:"max_layovers,omitempty"`
	MaxPriceUSD           *float64 `json:"max_price_usd,omitempty"`
	RefundableOnly        bool     `json:"refundable_only"`
	FlexibleDates         bool     `json:"flexible_dates"`
}

// HasDestination reports whether a non-blank destination was extracted.
// This is the sole gate for running a flight search.
func (c FlightCriteria) HasDestination() bool {
	return strings.TrimSpace(c.Destination) != ""
}

// Summary renders the populated criteria fields for logging and prompts.
func (c FlightCriteria) Summary() string {
	var parts []string
	add := func(k, v string) {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v))
		}
	}
	add("origin", c.Origin)
	add("destination", c.Destination)
	add("departure_date", c.DepartureDate)
	add("return_date", c.ReturnDate)
	add("trip_type", string(c.TripType))
	add("alliance", string(c.Alliance))
	if len(c.PreferredAirlines) > 0 {
		add("preferred_airlines", strings.Join(c.PreferredAirlines, "/"))
	}
	if c.AvoidOvernightLayover {
		parts = append(parts, "avoid_overnight_layover")
	}
	if c.MaxLayovers != nil {
		parts = append(parts, fmt.Sprintf("max_layovers: %d", *c.MaxLayovers))
	}
	if c.MaxPriceUSD != nil {
		parts = append(parts, fmt.Sprintf("max_price_usd: %.0f", *c.MaxPriceUSD))
	}
	if c.RefundableOnly {
		parts = append(parts, "refundable_only")
	}
	if len(parts) == 0 {
		return "no criteria"
	}
	return strings.Join(parts, ", ")
}

// NormalizeCity trims and title-cases a city name; blank input stays blank.
func NormalizeCity(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
