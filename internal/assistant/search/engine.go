// Package search filters and ranks the in-memory flight catalog against
// structured criteria.
package search

import (
	"math"
	"sort"
	"strings"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// Engine holds the read-only catalog. It is safe for concurrent searches:
// results are scored copies, the catalog itself is never written after load.
type Engine struct {
	catalog []model.Flight
}

func NewEngine(catalog []model.Flight) *Engine {
	return &Engine{catalog: catalog}
}

// CatalogSize returns the number of loaded listings.
func (e *Engine) CatalogSize() int {
	return len(e.catalog)
}

// Search returns matching flights ordered by descending match score.
// An empty result is the valid "no results" signal, never an error.
// A blank destination short-circuits to empty without inspecting anything else.
func (e *Engine) Search(criteria model.FlightCriteria) []model.Flight {
	if !criteria.HasDestination() {
		return []model.Flight{}
	}

	results := make([]model.Flight, 0, len(e.catalog))
	for _, f := range e.catalog {
		if matches(f, criteria) {
			results = append(results, f)
		}
	}

	rank(results, criteria)

	logx.Debug().
		Int("matches", len(results)).
		Str("criteria", criteria.Summary()).
		Msg("flight search")
	return results
}

// matches applies the full filter pipeline to a single candidate. The stages
// commute, so evaluation order is free; cheap string checks go first.
func matches(f model.Flight, c model.FlightCriteria) bool {
	if !strings.EqualFold(f.Destination, strings.TrimSpace(c.Destination)) {
		return false
	}
	if c.Origin != "" && !strings.EqualFold(f.Origin, strings.TrimSpace(c.Origin)) {
		return false
	}
	if c.Alliance != "" && f.Alliance != string(c.Alliance) {
		return false
	}
	if len(c.PreferredAirlines) > 0 && !airlineIn(f.Airline, c.PreferredAirlines) {
		return false
	}
	if c.AvoidOvernightLayover && f.OvernightLayover {
		return false
	}
	if c.MaxLayovers != nil && len(f.Layovers) > *c.MaxLayovers {
		return false
	}
	if c.MaxPriceUSD != nil && f.PriceUSD > *c.MaxPriceUSD {
		return false
	}
	if c.RefundableOnly && !f.Refundable {
		return false
	}
	if start, end, ok := parseDateOrRange(c.DepartureDate); ok {
		d, dok := parseDate(f.DepartureDate)
		if !dok || !inRange(d, start, end) {
			return false
		}
	}
	if start, end, ok := parseDateOrRange(c.ReturnDate); ok {
		// One-way flights never satisfy an active return-date constraint.
		if f.ReturnDate == "" {
			return false
		}
		d, dok := parseDate(f.ReturnDate)
		if !dok || !inRange(d, start, end) {
			return false
		}
	}
	return true
}

func airlineIn(airline string, preferred []string) bool {
	for _, p := range preferred {
		if strings.EqualFold(airline, strings.TrimSpace(p)) {
			return true
		}
	}
	return false
}

// rank scores the filtered set in place and sorts descending. The sort is
// stable so ties keep original catalog order: identical inputs always yield
// identically ordered output.
func rank(flights []model.Flight, criteria model.FlightCriteria) {
	if len(flights) == 0 {
		return
	}

	maxPrice := flights[0].PriceUSD
	for _, f := range flights[1:] {
		if f.PriceUSD > maxPrice {
			maxPrice = f.PriceUSD
		}
	}

	for i := range flights {
		f := &flights[i]
		layovers := len(f.Layovers)

		score := float64(3-min(layovers, 3)) * 10
		if layovers == 0 {
			score += 15
		}
		if maxPrice > 0 {
			score += math.Max(0, (maxPrice-f.PriceUSD)/maxPrice*20)
		}
		if f.Refundable {
			score += 5
		}
		if criteria.Alliance != "" && f.Alliance == string(criteria.Alliance) {
			score += 8
		}

		f.MatchScore = math.Round(score*100) / 100
	}

	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].MatchScore > flights[j].MatchScore
	})
}
