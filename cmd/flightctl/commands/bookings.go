package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var BookCmd = &cobra.Command{
	Use:   "book [flight] [name...]",
	Short: "Book one seat per passenger name",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0], "flight number")
		if err != nil {
			return err
		}

		confirmation, err := newClient().BookSeats(cmd.Context(), number, args[1:])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, s := range confirmation.Seats {
			fmt.Fprintf(out, "Seat %d booked for %s (Passenger ID: %d)\n", s.SeatNumber, s.Name, s.PassengerID)
		}
		fmt.Fprintf(out, "Confirmation %s: %d seats on flight %d, total $%.2f, %d seats left\n",
			confirmation.ConfirmationCode,
			len(confirmation.Seats),
			confirmation.FlightNumber,
			confirmation.TotalCost,
			confirmation.AvailableSeats,
		)
		return nil
	},
}

var PassengersCmd = &cobra.Command{
	Use:   "passengers [flight]",
	Short: "Show a flight's passengers, most recent booking first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0], "flight number")
		if err != nil {
			return err
		}

		passengers, err := newClient().ListPassengers(cmd.Context(), number)
		if err != nil {
			return err
		}
		return printPassengers(cmd.OutOrStdout(), passengers)
	},
}

var CancelCmd = &cobra.Command{
	Use:   "cancel [flight] [passenger_id]",
	Short: "Cancel a passenger's seat",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0], "flight number")
		if err != nil {
			return err
		}
		passengerID, err := parseNumber(args[1], "passenger ID")
		if err != nil {
			return err
		}

		result, err := newClient().CancelSeat(cmd.Context(), number, passengerID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cancelled passenger %d on flight %d, seat %d released (%d seats left)\n",
			result.PassengerID, result.FlightNumber, result.SeatNumber, result.AvailableSeats)
		return nil
	},
}
