package config

import (
	"fmt"

	"github.com/cx-tal-miterani/flight-booking-system/internal/registry"
	"github.com/cx-tal-miterani/flight-booking-system/internal/service"
	"github.com/kelseyhightower/envconfig"
)

// Server holds the API server configuration, read from the environment
type Server struct {
	Port string `envconfig:"API_PORT" default:"8080"`

	// Empty means the built-in sample flights
	SeedFile string `envconfig:"SEED_FILE"`

	BucketCount     int    `envconfig:"BUCKET_COUNT" default:"20"`
	QueueCapacity   int    `envconfig:"QUEUE_CAPACITY" default:"50"`
	SeatCapacity    int    `envconfig:"SEAT_CAPACITY" default:"10"`
	SeatAssignment  string `envconfig:"SEAT_ASSIGNMENT" default:"derived"`
	DuplicatePolicy string `envconfig:"DUPLICATE_POLICY" default:"shadow"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads the configuration from the environment and validates it
func Load() (Server, error) {
	var c Server
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// Validate rejects sizes and policy names the store cannot run with
func (c Server) Validate() error {
	if c.BucketCount <= 0 {
		return fmt.Errorf("BUCKET_COUNT must be positive, got %d", c.BucketCount)
	}
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("QUEUE_CAPACITY must be positive, got %d", c.QueueCapacity)
	}
	if c.SeatCapacity <= 0 {
		return fmt.Errorf("SEAT_CAPACITY must be positive, got %d", c.SeatCapacity)
	}
	if _, err := service.ParseSeatAssignment(c.SeatAssignment); err != nil {
		return fmt.Errorf("SEAT_ASSIGNMENT: %w", err)
	}
	if _, err := registry.ParseDuplicatePolicy(c.DuplicatePolicy); err != nil {
		return fmt.Errorf("DUPLICATE_POLICY: %w", err)
	}
	return nil
}
