package model

import "fmt"

// Flight is a single catalog listing. The catalog source uses the short
// `from`/`to` field names; the struct keeps those as JSON aliases.
//
// MatchScore is a per-search transient: the search engine returns scored
// copies and never writes back into the shared catalog.
type Flight struct {
	Airline          string   `json:"airline"`
	Alliance         string   `json:"alliance,omitempty"`
	Origin           string   `json:"from"`
	Destination      string   `json:"to"`
	DepartureDate    string   `json:"departure_date"`
	ReturnDate       string   `json:"return_date,omitempty"`
	Layovers         []string `json:"layovers,omitempty"`
	PriceUSD         float64  `json:"price_usd"`
	Refundable       bool     `json:"refundable"`
	OvernightLayover bool     `json:"overnight_layover"`
	MatchScore       float64  `json:"match_score,omitempty"`
}

// Summary renders a one-line description for logging.
func (f Flight) Summary() string {
	return fmt.Sprintf("%s | %s -> %s | dep: %s | $%.0f",
		f.Airline, f.Origin, f.Destination, f.DepartureDate, f.PriceUSD)
}
