package search

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	errx "github.com/Voyago-core-poc-v1/server/internal/core/error"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// catalogRow mirrors model.Flight but keeps overnight_layover optional so a
// missing value can be derived at load time.
type catalogRow struct {
	Airline          string   `json:"airline"`
	Alliance         string   `json:"alliance"`
	Origin           string   `json:"from"`
	Destination      string   `json:"to"`
	DepartureDate    string   `json:"departure_date"`
	ReturnDate       string   `json:"return_date"`
	Layovers         []string `json:"layovers"`
	PriceUSD         float64  `json:"price_usd"`
	Refundable       bool     `json:"refundable"`
	OvernightLayover *bool    `json:"overnight_layover"`
}

// LoadCatalog reads the flight catalog from a JSON array. The catalog must
// exist and every row must be well formed: a failure here aborts startup.
func LoadCatalog(path string) ([]model.Flight, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errx.New(err, http.StatusInternalServerError, errx.CatalogErrorMessage)
	}

	var rows []catalogRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errx.New(err, http.StatusInternalServerError, errx.CatalogErrorMessage)
	}

	flights := make([]model.Flight, 0, len(rows))
	for i, row := range rows {
		if err := validateRow(row); err != nil {
			return nil, errx.New(
				fmt.Errorf("row %d: %w", i, err),
				http.StatusInternalServerError,
				errx.CatalogErrorMessage,
			)
		}
		f := model.Flight{
			Airline:       row.Airline,
			Alliance:      row.Alliance,
			Origin:        row.Origin,
			Destination:   row.Destination,
			DepartureDate: row.DepartureDate,
			ReturnDate:    row.ReturnDate,
			Layovers:      row.Layovers,
			PriceUSD:      row.PriceUSD,
			Refundable:    row.Refundable,
		}
		if row.OvernightLayover != nil {
			f.OvernightLayover = *row.OvernightLayover
		} else {
			// Derived default: two or more layovers imply an overnight stop.
			f.OvernightLayover = len(row.Layovers) > 1
		}
		flights = append(flights, f)
	}

	logx.Info().Int("flights", len(flights)).Str("path", path).Msg("loaded flight catalog")
	return flights, nil
}

func validateRow(row catalogRow) error {
	switch {
	case row.Airline == "":
		return fmt.Errorf("missing airline")
	case row.Origin == "":
		return fmt.Errorf("missing origin")
	case row.Destination == "":
		return fmt.Errorf("missing destination")
	case row.DepartureDate == "":
		return fmt.Errorf("missing departure_date")
	case row.PriceUSD < 0:
		return fmt.Errorf("negative price_usd")
	}
	return nil
}
