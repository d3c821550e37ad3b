package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cx-tal-miterani/flight-booking-system/internal/client"
	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
	"github.com/spf13/viper"
)

func newClient() *client.Client {
	return client.NewClient(viper.GetString("server"))
}

func parseNumber(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return n, nil
}

func printFlights(out io.Writer, flights []models.FlightSummary) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Flight No\tDate\tDeparture\tArrival\tSource\tDestination\tTicket Cost\tAvailable Seats")
	for _, f := range flights {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t$%.2f\t%d/%d\n",
			f.FlightNumber,
			f.Date,
			f.DepartureTime,
			f.ArrivalTime,
			f.Source,
			f.Destination,
			f.TicketCost,
			f.AvailableSeats,
			f.TotalSeats,
		)
	}
	return w.Flush()
}

func printPassengers(out io.Writer, passengers []models.PassengerSummary) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Passenger ID\tName\tSeat Number")
	for _, p := range passengers {
		fmt.Fprintf(w, "%d\t%s\t%d\n", p.PassengerID, p.Name, p.SeatNumber)
	}
	return w.Flush()
}
