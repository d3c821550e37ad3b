package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cx-tal-miterani/flight-booking-system/internal/client"
	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListFlights(ctx context.Context) ([]models.FlightSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlightSummary), args.Error(1)
}

func (m *mockAPI) GetFlight(ctx context.Context, flightNumber int) (*models.FlightSummary, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightSummary), args.Error(1)
}

func (m *mockAPI) ListPassengers(ctx context.Context, flightNumber int) ([]models.PassengerSummary, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PassengerSummary), args.Error(1)
}

func (m *mockAPI) BookSeats(ctx context.Context, flightNumber int, names []string) (*models.BookingConfirmation, error) {
	args := m.Called(ctx, flightNumber, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingConfirmation), args.Error(1)
}

func (m *mockAPI) CancelSeat(ctx context.Context, flightNumber, passengerID int) (*models.CancellationResult, error) {
	args := m.Called(ctx, flightNumber, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CancellationResult), args.Error(1)
}

var flight101 = &models.FlightSummary{
	FlightNumber:   101,
	Date:           "2024-10-29",
	DepartureTime:  "10:00",
	ArrivalTime:    "12:30",
	Source:         "Mumbai",
	Destination:    "South Korea",
	TicketCost:     200,
	TotalSeats:     10,
	AvailableSeats: 10,
}

func run(t *testing.T, api API, input string) string {
	t.Helper()

	var out bytes.Buffer
	require.NoError(t, New(api, strings.NewReader(input), &out).Run(context.Background()))
	return out.String()
}

func TestMenu_DisplayFlights(t *testing.T) {
	api := new(mockAPI)
	api.On("ListFlights", mock.Anything).Return([]models.FlightSummary{*flight101}, nil)

	out := run(t, api, "1\n5\n")

	assert.Contains(t, out, "Flight No")
	assert.Contains(t, out, "South Korea")
	assert.Contains(t, out, "$200.00")
	assert.Contains(t, out, "Exiting program.")
	api.AssertExpectations(t)
}

func TestMenu_BookSeats(t *testing.T) {
	api := new(mockAPI)
	api.On("GetFlight", mock.Anything, 101).Return(flight101, nil)
	api.On("BookSeats", mock.Anything, 101, []string{"Alice", "Bob"}).Return(&models.BookingConfirmation{
		FlightNumber:     101,
		ConfirmationCode: "AB12CD34",
		Seats: []models.BookedSeat{
			{PassengerID: 10010, Name: "Alice", SeatNumber: 1},
			{PassengerID: 10009, Name: "Bob", SeatNumber: 2},
		},
		TotalCost:      400,
		AvailableSeats: 8,
	}, nil)

	out := run(t, api, "2\n101\n2\nAlice\n  Bob  \n5\n")

	assert.Contains(t, out, "Total cost for booking 2 seats: $400.00")
	assert.Contains(t, out, "Enter name for passenger 2 (max 100 characters): ")
	assert.Contains(t, out, "Seat 1 booked for Alice (Passenger ID: 10010).")
	assert.Contains(t, out, "Seat 2 booked for Bob (Passenger ID: 10009).")
	assert.Contains(t, out, "Confirmation: AB12CD34")
	api.AssertExpectations(t)
}

func TestMenu_BookSeats_NotEnoughSeats(t *testing.T) {
	api := new(mockAPI)
	api.On("GetFlight", mock.Anything, 101).Return(flight101, nil)

	out := run(t, api, "2\n101\n11\n5\n")

	assert.Contains(t, out, "Error: Only 10 seats available on flight 101.")
	assert.NotContains(t, out, "Enter name for passenger")
	api.AssertNotCalled(t, "BookSeats", mock.Anything, mock.Anything, mock.Anything)
}

func TestMenu_BookSeats_UnknownFlight(t *testing.T) {
	api := new(mockAPI)
	api.On("GetFlight", mock.Anything, 999).Return(nil, &client.APIError{StatusCode: 404, Message: "flight not found: 999"})

	out := run(t, api, "2\n999\n1\n5\n")

	assert.Contains(t, out, "Error: flight not found: 999")
}

func TestMenu_DisplayPassengers(t *testing.T) {
	api := new(mockAPI)
	api.On("GetFlight", mock.Anything, 101).Return(flight101, nil)
	api.On("ListPassengers", mock.Anything, 101).Return([]models.PassengerSummary{
		{PassengerID: 10009, Name: "Bob", SeatNumber: 2},
		{PassengerID: 10010, Name: "Alice", SeatNumber: 1},
	}, nil)

	out := run(t, api, "3\n101\n5\n")

	assert.Contains(t, out, "Passengers on Flight 101 (Date: 2024-10-29):")
	assert.Less(t, strings.Index(out, "Bob"), strings.Index(out, "Alice"))
	api.AssertExpectations(t)
}

func TestMenu_CancelSeat(t *testing.T) {
	api := new(mockAPI)
	api.On("CancelSeat", mock.Anything, 101, 10009).Return(&models.CancellationResult{
		PassengerID:    10009,
		FlightNumber:   101,
		SeatNumber:     2,
		AvailableSeats: 9,
	}, nil)

	out := run(t, api, "4\n10009\n101\n5\n")

	assert.Contains(t, out, "Cancellation confirmed: Passenger ID 10009 has been removed from flight 101.")
	api.AssertExpectations(t)
}

func TestMenu_InvalidInput(t *testing.T) {
	api := new(mockAPI)

	out := run(t, api, "9\n2\nabc\n5\n")

	assert.Contains(t, out, "Invalid choice. Please try again.")
	assert.Contains(t, out, "Invalid input. Please enter a number.")
	api.AssertExpectations(t)
}

func TestMenu_EndOfInput(t *testing.T) {
	api := new(mockAPI)
	api.On("GetFlight", mock.Anything, 101).Return(flight101, nil)

	out := run(t, api, "2\n101\n2\nAlice")

	assert.Contains(t, out, "Enter name for passenger 2")
	api.AssertNotCalled(t, "BookSeats", mock.Anything, mock.Anything, mock.Anything)
}
