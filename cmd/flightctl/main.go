package main

import (
	"fmt"
	"os"

	"github.com/cx-tal-miterani/flight-booking-system/cmd/flightctl/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	server  string
)

var rootCmd = &cobra.Command{
	Use:   "flightctl",
	Short: "CLI for the flight booking API",
	Long: `A command line interface for listing flights, booking and
cancelling seats, and reading passenger manifests.`,
	SilenceUsage: true,
}

func main() {
	// Register commands
	rootCmd.AddCommand(commands.FlightsCmd)
	rootCmd.AddCommand(commands.AddFlightCmd)
	rootCmd.AddCommand(commands.BookCmd)
	rootCmd.AddCommand(commands.PassengersCmd)
	rootCmd.AddCommand(commands.CancelCmd)
	rootCmd.AddCommand(commands.MenuCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.flightctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&server, "server", "http://localhost:8080", "flight booking API URL")

	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".flightctl")
	}

	viper.SetEnvPrefix("FLIGHTCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Failed to read config %s: %v\n", cfgFile, err)
	}
}
