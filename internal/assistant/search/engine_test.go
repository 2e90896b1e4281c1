package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
)

func intPtr(n int) *int           { return &n }
func floatPtr(v float64) *float64 { return &v }

func testCatalog() []model.Flight {
	return []model.Flight{
		{
			Airline:       "Thai Airways",
			Alliance:      "Star Alliance",
			Origin:        "Bangkok",
			Destination:   "Tokyo",
			DepartureDate: "2026-10-05",
			ReturnDate:    "2026-10-12",
			PriceUSD:      600,
			Refundable:    true,
		},
		{
			Airline:       "Japan Airlines",
			Alliance:      "Oneworld",
			Origin:        "Bangkok",
			Destination:   "Tokyo",
			DepartureDate: "2026-10-06",
			ReturnDate:    "2026-10-13",
			Layovers:      []string{"Taipei"},
			PriceUSD:      400,
		},
		{
			Airline:          "Scoot",
			Origin:           "Bangkok",
			Destination:      "Tokyo",
			DepartureDate:    "2026-10-07",
			Layovers:         []string{"Singapore", "Manila"},
			PriceUSD:         200,
			OvernightLayover: true,
		},
		{
			Airline:       "EVA Air",
			Alliance:      "Star Alliance",
			Origin:        "Bangkok",
			Destination:   "Osaka",
			DepartureDate: "2026-11-01",
			ReturnDate:    "2026-11-08",
			PriceUSD:      550,
		},
	}
}

func TestSearchRequiresDestination(t *testing.T) {
	engine := NewEngine(testCatalog())

	for _, dest := range []string{"", "   "} {
		got := engine.Search(model.FlightCriteria{Destination: dest})
		assert.Empty(t, got)
	}
}

func TestSearchDestinationCaseInsensitive(t *testing.T) {
	engine := NewEngine(testCatalog())

	got := engine.Search(model.FlightCriteria{Destination: "tokyo"})
	require.Len(t, got, 3)
	for _, f := range got {
		assert.Equal(t, "Tokyo", f.Destination)
	}
}

func TestSearchFilters(t *testing.T) {
	engine := NewEngine(testCatalog())

	tests := []struct {
		name     string
		criteria model.FlightCriteria
		airlines []string
	}{
		{
			name:     "origin",
			criteria: model.FlightCriteria{Destination: "Osaka", Origin: "bangkok"},
			airlines: []string{"EVA Air"},
		},
		{
			name:     "alliance",
			criteria: model.FlightCriteria{Destination: "Tokyo", Alliance: model.Oneworld},
			airlines: []string{"Japan Airlines"},
		},
		{
			name: "preferred airlines",
			criteria: model.FlightCriteria{
				Destination:       "Tokyo",
				PreferredAirlines: []string{"scoot", "Japan Airlines"},
			},
			airlines: []string{"Japan Airlines", "Scoot"},
		},
		{
			name:     "avoid overnight layover",
			criteria: model.FlightCriteria{Destination: "Tokyo", AvoidOvernightLayover: true},
			airlines: []string{"Thai Airways", "Japan Airlines"},
		},
		{
			name:     "max layovers zero keeps direct only",
			criteria: model.FlightCriteria{Destination: "Tokyo", MaxLayovers: intPtr(0)},
			airlines: []string{"Thai Airways"},
		},
		{
			name:     "max price",
			criteria: model.FlightCriteria{Destination: "Tokyo", MaxPriceUSD: floatPtr(450)},
			airlines: []string{"Japan Airlines", "Scoot"},
		},
		{
			name:     "refundable only",
			criteria: model.FlightCriteria{Destination: "Tokyo", RefundableOnly: true},
			airlines: []string{"Thai Airways"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Search(tt.criteria)
			var names []string
			for _, f := range got {
				names = append(names, f.Airline)
			}
			assert.ElementsMatch(t, tt.airlines, names)
		})
	}
}

func TestSearchDepartureDateRange(t *testing.T) {
	engine := NewEngine(testCatalog())

	got := engine.Search(model.FlightCriteria{
		Destination:   "Tokyo",
		DepartureDate: "2026-10-05 to 2026-10-06",
	})
	require.Len(t, got, 2)
	for _, f := range got {
		assert.NotEqual(t, "Scoot", f.Airline)
	}
}

func TestSearchDateSentinelsDisableFilter(t *testing.T) {
	engine := NewEngine(testCatalog())

	for _, v := range []string{"", "flexible", "null", "Flexible "} {
		got := engine.Search(model.FlightCriteria{Destination: "Tokyo", DepartureDate: v})
		assert.Len(t, got, 3, "sentinel %q", v)
	}
}

func TestSearchUnparseableCatalogDateExcluded(t *testing.T) {
	catalog := testCatalog()
	catalog[0].DepartureDate = "sometime in October"
	engine := NewEngine(catalog)

	got := engine.Search(model.FlightCriteria{
		Destination:   "Tokyo",
		DepartureDate: "2026-10-01 to 2026-10-31",
	})
	require.Len(t, got, 2)
	for _, f := range got {
		assert.NotEqual(t, "Thai Airways", f.Airline)
	}
}

func TestSearchReturnDateExcludesOneWay(t *testing.T) {
	engine := NewEngine(testCatalog())

	got := engine.Search(model.FlightCriteria{
		Destination: "Tokyo",
		ReturnDate:  "2026-10-10 to 2026-10-15",
	})
	require.Len(t, got, 2)
	for _, f := range got {
		assert.NotEmpty(t, f.ReturnDate)
	}
}

// With prices 200/400/600 the price discount relative to the 600 maximum is
// 13.33/6.67/0, so the direct 600 flight still wins on the layover bonus.
func TestSearchRanking(t *testing.T) {
	engine := NewEngine(testCatalog())

	got := engine.Search(model.FlightCriteria{Destination: "Tokyo"})
	require.Len(t, got, 3)

	assert.Equal(t, "Thai Airways", got[0].Airline)
	assert.Equal(t, "Japan Airlines", got[1].Airline)
	assert.Equal(t, "Scoot", got[2].Airline)

	// direct + zero layover bonus + refundable: 30 + 15 + 0 + 5
	assert.InDelta(t, 50.0, got[0].MatchScore, 0.001)
	// one layover + discount on 600 max: 20 + (200/600)*20 = 26.67
	assert.InDelta(t, 26.67, got[1].MatchScore, 0.001)
	// two layovers + full discount: 10 + (400/600)*20 = 23.33
	assert.InDelta(t, 23.33, got[2].MatchScore, 0.001)
}

// Three direct non-refundable flights differing only in price rank strictly
// by price discount: 200 then 400 then 600.
func TestSearchPriceDiscountOrdering(t *testing.T) {
	catalog := []model.Flight{
		{Airline: "P600", Origin: "Bangkok", Destination: "Tokyo", DepartureDate: "2026-10-01", PriceUSD: 600},
		{Airline: "P200", Origin: "Bangkok", Destination: "Tokyo", DepartureDate: "2026-10-02", PriceUSD: 200},
		{Airline: "P400", Origin: "Bangkok", Destination: "Tokyo", DepartureDate: "2026-10-03", PriceUSD: 400},
	}
	engine := NewEngine(catalog)

	got := engine.Search(model.FlightCriteria{Destination: "Tokyo"})
	require.Len(t, got, 3)
	assert.Equal(t, "P200", got[0].Airline)
	assert.Equal(t, "P400", got[1].Airline)
	assert.Equal(t, "P600", got[2].Airline)

	// shared base 45 (direct bonus) plus (600-price)/600*20
	assert.InDelta(t, 58.33, got[0].MatchScore, 0.001)
	assert.InDelta(t, 51.67, got[1].MatchScore, 0.001)
	assert.InDelta(t, 45.0, got[2].MatchScore, 0.001)
}

func TestSearchAllianceBonus(t *testing.T) {
	engine := NewEngine(testCatalog())

	got := engine.Search(model.FlightCriteria{
		Destination: "Tokyo",
		Alliance:    model.StarAlliance,
	})
	require.Len(t, got, 1)
	// single result: max price equals own price, so no discount component.
	// 30 + 15 + 0 + 5 + 8
	assert.InDelta(t, 58.0, got[0].MatchScore, 0.001)
}

func TestSearchDeterministic(t *testing.T) {
	engine := NewEngine(testCatalog())
	criteria := model.FlightCriteria{Destination: "Tokyo"}

	first := engine.Search(criteria)
	for i := 0; i < 5; i++ {
		again := engine.Search(criteria)
		assert.Equal(t, first, again)
	}
}

func TestSearchTiesKeepCatalogOrder(t *testing.T) {
	catalog := []model.Flight{
		{Airline: "A1", Origin: "Bangkok", Destination: "Tokyo", DepartureDate: "2026-10-01", PriceUSD: 300},
		{Airline: "A2", Origin: "Bangkok", Destination: "Tokyo", DepartureDate: "2026-10-02", PriceUSD: 300},
		{Airline: "A3", Origin: "Bangkok", Destination: "Tokyo", DepartureDate: "2026-10-03", PriceUSD: 300},
	}
	engine := NewEngine(catalog)

	got := engine.Search(model.FlightCriteria{Destination: "Tokyo"})
	require.Len(t, got, 3)
	assert.Equal(t, "A1", got[0].Airline)
	assert.Equal(t, "A2", got[1].Airline)
	assert.Equal(t, "A3", got[2].Airline)
}

func TestSearchDoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()
	engine := NewEngine(catalog)

	_ = engine.Search(model.FlightCriteria{Destination: "Tokyo"})
	for _, f := range catalog {
		assert.Zero(t, f.MatchScore)
	}
}
