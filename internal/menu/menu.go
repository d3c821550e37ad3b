package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cx-tal-miterani/flight-booking-system/internal/client"
	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
)

// API is the part of the booking API the menu drives. *client.Client satisfies it.
type API interface {
	ListFlights(ctx context.Context) ([]models.FlightSummary, error)
	GetFlight(ctx context.Context, flightNumber int) (*models.FlightSummary, error)
	ListPassengers(ctx context.Context, flightNumber int) ([]models.PassengerSummary, error)
	BookSeats(ctx context.Context, flightNumber int, names []string) (*models.BookingConfirmation, error)
	CancelSeat(ctx context.Context, flightNumber, passengerID int) (*models.CancellationResult, error)
}

var _ API = (*client.Client)(nil)

const maxNameLength = 100

// Menu is the interactive five-option booking menu
type Menu struct {
	api API
	in  *bufio.Reader
	out io.Writer
}

// New creates a menu reading choices from in and writing to out
func New(api API, in io.Reader, out io.Writer) *Menu {
	return &Menu{api: api, in: bufio.NewReader(in), out: out}
}

// Run loops until the user picks Exit or input ends
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, "\n1. Display Flights\n2. Book Seats\n3. Display Passengers\n4. Cancel Seat\n5. Exit\n")

		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			err = m.displayFlights(ctx)
		case "2":
			err = m.bookSeats(ctx)
		case "3":
			err = m.displayPassengers(ctx)
		case "4":
			err = m.cancelSeat(ctx)
		case "5":
			fmt.Fprintln(m.out, "Exiting program.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (m *Menu) displayFlights(ctx context.Context) error {
	flights, err := m.api.ListFlights(ctx)
	if err != nil {
		m.reportError(err)
		return nil
	}

	fmt.Fprintln(m.out)
	w := tabwriter.NewWriter(m.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Flight No\tDate\tDeparture\tArrival\tSource\tDestination\tTicket Cost\tAvailable Seats")
	for _, f := range flights {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t$%.2f\t%d\n",
			f.FlightNumber,
			f.Date,
			f.DepartureTime,
			f.ArrivalTime,
			f.Source,
			f.Destination,
			f.TicketCost,
			f.AvailableSeats,
		)
	}
	return w.Flush()
}

func (m *Menu) bookSeats(ctx context.Context) error {
	flightNumber, ok, err := m.promptInt("Enter Flight Number: ")
	if err != nil || !ok {
		return err
	}
	seats, ok, err := m.promptInt("Enter Number of Seats to Book: ")
	if err != nil || !ok {
		return err
	}
	if seats <= 0 {
		fmt.Fprintln(m.out, "Error: Number of seats must be positive.")
		return nil
	}

	flight, err := m.api.GetFlight(ctx, flightNumber)
	if err != nil {
		m.reportError(err)
		return nil
	}
	if flight.AvailableSeats < seats {
		fmt.Fprintf(m.out, "Error: Only %d seats available on flight %d.\n", flight.AvailableSeats, flightNumber)
		return nil
	}
	fmt.Fprintf(m.out, "Total cost for booking %d seats: $%.2f\n", seats, float64(seats)*flight.TicketCost)

	names := make([]string, 0, seats)
	for i := 1; i <= seats; i++ {
		name, err := m.prompt(fmt.Sprintf("Enter name for passenger %d (max %d characters): ", i, maxNameLength))
		if err != nil {
			return err
		}
		names = append(names, name)
	}

	confirmation, err := m.api.BookSeats(ctx, flightNumber, names)
	if err != nil {
		m.reportError(err)
		return nil
	}
	for _, s := range confirmation.Seats {
		fmt.Fprintf(m.out, "Seat %d booked for %s (Passenger ID: %d).\n", s.SeatNumber, s.Name, s.PassengerID)
	}
	fmt.Fprintf(m.out, "Booking confirmed for %d seats on flight %d. Total cost: $%.2f (Confirmation: %s)\n",
		len(confirmation.Seats), confirmation.FlightNumber, confirmation.TotalCost, confirmation.ConfirmationCode)
	return nil
}

func (m *Menu) displayPassengers(ctx context.Context) error {
	flightNumber, ok, err := m.promptInt("Enter Flight Number: ")
	if err != nil || !ok {
		return err
	}

	flight, err := m.api.GetFlight(ctx, flightNumber)
	if err != nil {
		m.reportError(err)
		return nil
	}
	passengers, err := m.api.ListPassengers(ctx, flightNumber)
	if err != nil {
		m.reportError(err)
		return nil
	}

	fmt.Fprintf(m.out, "\nPassengers on Flight %d (Date: %s):\n", flightNumber, flight.Date)
	w := tabwriter.NewWriter(m.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Passenger ID\tName\tSeat Number")
	for _, p := range passengers {
		fmt.Fprintf(w, "%d\t%s\t%d\n", p.PassengerID, p.Name, p.SeatNumber)
	}
	return w.Flush()
}

func (m *Menu) cancelSeat(ctx context.Context) error {
	passengerID, ok, err := m.promptInt("Enter Passenger ID: ")
	if err != nil || !ok {
		return err
	}
	flightNumber, ok, err := m.promptInt("Enter Flight Number: ")
	if err != nil || !ok {
		return err
	}

	result, err := m.api.CancelSeat(ctx, flightNumber, passengerID)
	if err != nil {
		m.reportError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Cancellation confirmed: Passenger ID %d has been removed from flight %d.\n",
		result.PassengerID, result.FlightNumber)
	return nil
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt reads an integer; ok is false when the line was not a number
func (m *Menu) promptInt(label string) (int, bool, error) {
	line, err := m.prompt(label)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input. Please enter a number.")
		return 0, false, nil
	}
	return n, true, nil
}

func (m *Menu) reportError(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(m.out, "Error: %s\n", apiErr.Message)
		return
	}
	fmt.Fprintf(m.out, "Error: %v\n", err)
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
