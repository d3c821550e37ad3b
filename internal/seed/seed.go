package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cx-tal-miterani/flight-booking-system/internal/service"
	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
	"gopkg.in/yaml.v3"
)

//go:embed flights.yaml
var defaultFlights []byte

type file struct {
	Flights []models.CreateFlightRequest `yaml:"flights"`
}

// Parse decodes a seed document. Unknown keys are an error.
func Parse(r io.Reader) ([]models.CreateFlightRequest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode seed flights: %w", err)
	}
	return f.Flights, nil
}

// Load reads the seed flights from path, or the built-in sample flights when path is empty
func Load(path string) ([]models.CreateFlightRequest, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultFlights))
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()

	return Parse(fh)
}

// Apply registers every seed flight, stopping at the first failure
func Apply(ctx context.Context, svc service.BookingService, flights []models.CreateFlightRequest, logger *slog.Logger) error {
	for i := range flights {
		resp, err := svc.AddFlight(ctx, &flights[i])
		if err != nil {
			return fmt.Errorf("seed flight %d: %w", flights[i].FlightNumber, err)
		}
		if logger != nil {
			logger.Debug("Seed flight registered", "flightNumber", resp.Flight.FlightNumber, "result", resp.Result)
		}
	}
	if logger != nil {
		logger.Info("Seed flights loaded", "count", len(flights))
	}
	return nil
}
