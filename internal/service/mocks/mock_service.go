package mocks

import (
	"context"

	"github.com/cx-tal-miterani/flight-booking-system/internal/service"
	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
	"github.com/stretchr/testify/mock"
)

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

var _ service.BookingService = (*MockBookingService)(nil)

func (m *MockBookingService) AddFlight(ctx context.Context, req *models.CreateFlightRequest) (*models.AddFlightResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddFlightResponse), args.Error(1)
}

func (m *MockBookingService) ListFlights(ctx context.Context) []models.FlightSummary {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.FlightSummary)
}

func (m *MockBookingService) GetFlight(ctx context.Context, flightNumber int) (*models.FlightSummary, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightSummary), args.Error(1)
}

func (m *MockBookingService) ListPassengers(ctx context.Context, flightNumber int) ([]models.PassengerSummary, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PassengerSummary), args.Error(1)
}

func (m *MockBookingService) BookSeats(ctx context.Context, flightNumber, seats int, names service.NameSource) (*models.BookingConfirmation, error) {
	args := m.Called(ctx, flightNumber, seats, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingConfirmation), args.Error(1)
}

func (m *MockBookingService) CancelSeat(ctx context.Context, passengerID, flightNumber int) (*models.CancellationResult, error) {
	args := m.Called(ctx, passengerID, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CancellationResult), args.Error(1)
}
