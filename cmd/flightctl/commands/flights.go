package commands

import (
	"fmt"

	"github.com/cx-tal-miterani/flight-booking-system/shared/models"
	"github.com/spf13/cobra"
)

var FlightsCmd = &cobra.Command{
	Use:     "flights [number]",
	Aliases: []string{"ls"},
	Short:   "List flights, or show one flight",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()

		if len(args) == 0 {
			flights, err := c.ListFlights(cmd.Context())
			if err != nil {
				return err
			}
			return printFlights(cmd.OutOrStdout(), flights)
		}

		number, err := parseNumber(args[0], "flight number")
		if err != nil {
			return err
		}
		flight, err := c.GetFlight(cmd.Context(), number)
		if err != nil {
			return err
		}
		return printFlights(cmd.OutOrStdout(), []models.FlightSummary{*flight})
	},
}

var AddFlightCmd = &cobra.Command{
	Use:   "add-flight",
	Short: "Register a flight",
	Long: `Registers a flight. How a flight number that is already registered
is handled depends on the server's duplicate policy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		req := &models.CreateFlightRequest{}
		req.FlightNumber, _ = flags.GetInt("number")
		req.TicketCost, _ = flags.GetFloat64("cost")
		req.Date, _ = flags.GetString("date")
		req.DepartureTime, _ = flags.GetString("departure")
		req.ArrivalTime, _ = flags.GetString("arrival")
		req.Source, _ = flags.GetString("from")
		req.Destination, _ = flags.GetString("to")
		req.Capacity, _ = flags.GetInt("capacity")

		resp, err := newClient().AddFlight(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Flight %d %s (%d seats)\n", resp.Flight.FlightNumber, resp.Result, resp.Flight.TotalSeats)
		return nil
	},
}

func init() {
	flags := AddFlightCmd.Flags()
	flags.Int("number", 0, "flight number")
	flags.Float64("cost", 0, "ticket cost")
	flags.String("date", "", "departure date (YYYY-MM-DD)")
	flags.String("departure", "", "departure time (HH:MM)")
	flags.String("arrival", "", "arrival time (HH:MM)")
	flags.String("from", "", "source")
	flags.String("to", "", "destination")
	flags.Int("capacity", 0, "seat capacity (0 uses the server default)")
	AddFlightCmd.MarkFlagRequired("number")
}
