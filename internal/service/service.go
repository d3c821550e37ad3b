package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/cx-tal-miterani/flight-booking-system/internal/ledger"
	"github.com/cx-tal-miterani/flight-booking-system/internal/queue"
	"github.com/cx-tal-miterani/flight-booking-system/internal/registry"
	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
	"github.com/google/uuid"
)

const (
	DefaultSeatCapacity = 10
	PassengerIDBase     = 10000

	MaxNameLength   = 100
	MaxPlaceLength  = 50
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrInsufficientSeats = errors.New("insufficient seats")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrInvalidSeatCount  = errors.New("seat count must be positive")
	ErrDuplicateFlight   = errors.New("flight already registered")
	ErrInvalidFlight     = errors.New("invalid flight")
	ErrNameRequired      = errors.New("passenger name required")
	ErrInvalidName       = errors.New("invalid passenger name")
	ErrQueueFull         = queue.ErrQueueFull
)

// BookingService defines the booking service interface
type BookingService interface {
	AddFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.AddFlightResponse, error)
	ListFlights(ctx context.Context) []models.FlightSummary
	GetFlight(ctx context.Context, flightNumber int) (*models.FlightSummary, error)
	ListPassengers(ctx context.Context, flightNumber int) ([]models.PassengerSummary, error)
	BookSeats(ctx context.Context, flightNumber, seats int, names NameSource) (*models.BookingConfirmation, error)
	CancelSeat(ctx context.Context, passengerID, flightNumber int) (*models.CancellationResult, error)
}

// Notifier receives seat changes after they are committed
type Notifier interface {
	SeatsBooked(flightNumber int, seats []models.BookedSeat, available int)
	SeatCancelled(flightNumber int, passengerID, seatNumber, available int)
}

// SeatAssignment selects how passenger ids and seat numbers are chosen
type SeatAssignment string

const (
	// AssignDerived computes both from the available-seat count at assignment time.
	// Ids and seat numbers can repeat once cancellations have happened.
	AssignDerived SeatAssignment = "derived"
	// AssignMonotonic hands out increasing ids and the lowest free seat number
	AssignMonotonic SeatAssignment = "monotonic"
)

// ParseSeatAssignment maps a config value to a SeatAssignment
func ParseSeatAssignment(s string) (SeatAssignment, error) {
	switch a := SeatAssignment(s); a {
	case AssignDerived, AssignMonotonic:
		return a, nil
	case "":
		return AssignDerived, nil
	default:
		return "", fmt.Errorf("unknown seat assignment %q", s)
	}
}

// Options configures an Engine
type Options struct {
	SeatCapacity   int
	SeatAssignment SeatAssignment
	Logger         *slog.Logger
	Notifier       Notifier
}

// Engine implements BookingService over a flight registry and a booking queue.
// A single mutex guards the registry, every ledger and the queue.
type Engine struct {
	mu       sync.Mutex
	registry *registry.Registry
	queue    *queue.Queue
	capacity int
	assign   SeatAssignment
	lastID   int
	logger   *slog.Logger
	notifier Notifier
}

// NewEngine creates an Engine. The registry and queue are owned by the engine from then on.
func NewEngine(reg *registry.Registry, q *queue.Queue, opts Options) *Engine {
	if opts.SeatCapacity <= 0 {
		opts.SeatCapacity = DefaultSeatCapacity
	}
	if opts.SeatAssignment == "" {
		opts.SeatAssignment = AssignDerived
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		registry: reg,
		queue:    q,
		capacity: opts.SeatCapacity,
		assign:   opts.SeatAssignment,
		lastID:   PassengerIDBase,
		logger:   opts.Logger,
		notifier: opts.Notifier,
	}
}

func (e *Engine) AddFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.AddFlightResponse, error) {
	if err := validateFlight(req); err != nil {
		return nil, err
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = e.capacity
	}

	f := &registry.Flight{
		Number:         req.FlightNumber,
		Capacity:       capacity,
		AvailableSeats: capacity,
		TicketCost:     req.TicketCost,
		Date:           req.Date,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		Source:         req.Source,
		Destination:    req.Destination,
		Passengers:     ledger.New(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	result := e.registry.Add(f)
	if result == registry.Rejected {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateFlight, req.FlightNumber)
	}
	if result == registry.Shadowed {
		e.logger.Warn("Flight number registered twice, earlier entry shadowed", "flightNumber", f.Number)
	}
	e.logger.Info("Flight added", "flightNumber", f.Number, "result", result.String(), "bucket", e.registry.Hash(f.Number))

	return &models.AddFlightResponse{
		Flight: summarize(f),
		Result: result.String(),
	}, nil
}

func (e *Engine) ListFlights(ctx context.Context) []models.FlightSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	flights := e.registry.All()
	out := make([]models.FlightSummary, 0, len(flights))
	for _, f := range flights {
		out = append(out, summarize(f))
	}
	return out
}

func (e *Engine) GetFlight(ctx context.Context, flightNumber int) (*models.FlightSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, ok := e.registry.Find(flightNumber)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrFlightNotFound, flightNumber)
	}
	s := summarize(f)
	return &s, nil
}

func (e *Engine) ListPassengers(ctx context.Context, flightNumber int) ([]models.PassengerSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, ok := e.registry.Find(flightNumber)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrFlightNotFound, flightNumber)
	}

	passengers := f.Passengers.All()
	out := make([]models.PassengerSummary, 0, len(passengers))
	for _, p := range passengers {
		out = append(out, models.PassengerSummary{
			PassengerID: p.ID,
			Name:        p.Name,
			SeatNumber:  p.SeatNumber,
		})
	}
	return out, nil
}

// BookSeats books seats on a flight, asking names for one passenger name per seat in seat order.
// Either every seat is booked or nothing changes. The engine lock is held while names are read.
func (e *Engine) BookSeats(ctx context.Context, flightNumber, seats int, names NameSource) (*models.BookingConfirmation, error) {
	if seats <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeatCount, seats)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f, ok := e.registry.Find(flightNumber)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrFlightNotFound, flightNumber)
	}
	if seats > f.AvailableSeats {
		return nil, fmt.Errorf("%w: only %d seats available on flight %d", ErrInsufficientSeats, f.AvailableSeats, flightNumber)
	}

	if err := e.queue.Enqueue(queue.BookingRequest{FlightNumber: flightNumber, Seats: seats}); err != nil {
		e.logger.Warn("Booking request rejected", "flightNumber", flightNumber, "seats", seats, "queued", e.queue.Len(), "capacity", e.queue.Cap())
		return nil, fmt.Errorf("flight %d: %w", flightNumber, err)
	}
	e.logger.Debug("Booking request admitted", "flightNumber", flightNumber, "seats", seats)

	// Requests are admitted and drained within the same call.
	req, err := e.queue.Dequeue()
	if err != nil {
		return nil, fmt.Errorf("flight %d: %w", flightNumber, err)
	}

	totalCost := float64(req.Seats) * f.TicketCost

	pending := make([]ledger.Passenger, 0, req.Seats)
	available := f.AvailableSeats
	lastID := e.lastID
	for i := 1; i <= req.Seats; i++ {
		name, err := names.NextName(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("passenger %d: %w", i, err)
		}
		name, err = validateName(name)
		if err != nil {
			return nil, fmt.Errorf("passenger %d: %w", i, err)
		}

		p := ledger.Passenger{Name: name}
		switch e.assign {
		case AssignMonotonic:
			lastID++
			p.ID = lastID
			p.SeatNumber = lowestFreeSeat(f, pending)
		default:
			p.ID = PassengerIDBase + available
			p.SeatNumber = f.Capacity - available + 1
		}
		pending = append(pending, p)
		available--
	}

	booked := make([]models.BookedSeat, 0, len(pending))
	for _, p := range pending {
		f.Passengers.InsertFront(p)
		booked = append(booked, models.BookedSeat{PassengerID: p.ID, Name: p.Name, SeatNumber: p.SeatNumber})
	}
	f.AvailableSeats = available
	e.lastID = lastID

	confirmation := &models.BookingConfirmation{
		FlightNumber:     flightNumber,
		ConfirmationCode: newConfirmationCode(),
		Seats:            booked,
		TotalCost:        totalCost,
		AvailableSeats:   f.AvailableSeats,
	}

	e.logger.Info("Booking confirmed",
		"flightNumber", flightNumber,
		"seats", len(booked),
		"totalCost", totalCost,
		"confirmation", confirmation.ConfirmationCode,
		"available", f.AvailableSeats,
	)
	if e.notifier != nil {
		e.notifier.SeatsBooked(flightNumber, booked, f.AvailableSeats)
	}

	return confirmation, nil
}

func (e *Engine) CancelSeat(ctx context.Context, passengerID, flightNumber int) (*models.CancellationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, ok := e.registry.Find(flightNumber)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrFlightNotFound, flightNumber)
	}

	p, ok := f.Passengers.RemoveByID(passengerID)
	if !ok {
		return nil, fmt.Errorf("%w: passenger %d on flight %d", ErrPassengerNotFound, passengerID, flightNumber)
	}
	f.AvailableSeats++

	e.logger.Info("Cancellation confirmed",
		"flightNumber", flightNumber,
		"passengerID", passengerID,
		"seat", p.SeatNumber,
		"available", f.AvailableSeats,
	)
	if e.notifier != nil {
		e.notifier.SeatCancelled(flightNumber, passengerID, p.SeatNumber, f.AvailableSeats)
	}

	return &models.CancellationResult{
		PassengerID:    passengerID,
		FlightNumber:   flightNumber,
		SeatNumber:     p.SeatNumber,
		AvailableSeats: f.AvailableSeats,
	}, nil
}

func lowestFreeSeat(f *registry.Flight, pending []ledger.Passenger) int {
	for seat := 1; seat <= f.Capacity; seat++ {
		if f.Passengers.SeatTaken(seat) {
			continue
		}
		taken := false
		for _, p := range pending {
			if p.SeatNumber == seat {
				taken = true
				break
			}
		}
		if !taken {
			return seat
		}
	}
	// unreachable while capacity - available == ledger size
	return f.Capacity
}

func newConfirmationCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

func summarize(f *registry.Flight) models.FlightSummary {
	return models.FlightSummary{
		FlightNumber:   f.Number,
		Date:           f.Date,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		Source:         f.Source,
		Destination:    f.Destination,
		TicketCost:     f.TicketCost,
		TotalSeats:     f.Capacity,
		AvailableSeats: f.AvailableSeats,
	}
}

func validateFlight(req *models.CreateFlightRequest) error {
	if req.FlightNumber <= 0 {
		return fmt.Errorf("%w: flight number must be positive", ErrInvalidFlight)
	}
	if math.IsNaN(req.TicketCost) || math.IsInf(req.TicketCost, 0) || req.TicketCost < 0 {
		return fmt.Errorf("%w: ticket cost must be a non-negative amount", ErrInvalidFlight)
	}
	if req.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidFlight)
	}
	if _, err := time.Parse(DateLayout, req.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidFlight, req.Date)
	}
	if _, err := time.Parse(TimeOfDayLayout, req.DepartureTime); err != nil {
		return fmt.Errorf("%w: departure time %q is not HH:MM", ErrInvalidFlight, req.DepartureTime)
	}
	if _, err := time.Parse(TimeOfDayLayout, req.ArrivalTime); err != nil {
		return fmt.Errorf("%w: arrival time %q is not HH:MM", ErrInvalidFlight, req.ArrivalTime)
	}
	places := []struct{ field, value string }{
		{"source", req.Source},
		{"destination", req.Destination},
	}
	for _, p := range places {
		if strings.TrimSpace(p.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidFlight, p.field)
		}
		if utf8.RuneCountInString(p.value) > MaxPlaceLength {
			return fmt.Errorf("%w: %s longer than %d characters", ErrInvalidFlight, p.field, MaxPlaceLength)
		}
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidName, MaxNameLength)
	}
	return name, nil
}
