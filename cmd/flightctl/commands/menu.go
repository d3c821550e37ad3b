package commands

import (
	"github.com/cx-tal-miterani/flight-booking-system/internal/menu"
	"github.com/spf13/cobra"
)

var MenuCmd = &cobra.Command{
	Use:     "menu",
	Aliases: []string{"i"},
	Short:   "Start the interactive booking menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		return menu.New(newClient(), cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
	},
}
