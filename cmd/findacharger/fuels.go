package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaed-rp/findacharger/internal/station"
)

var fuelsCmd = &cobra.Command{
	Use:   "fuels",
	Short: "List the fuel type and connector codes accepted by search",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Fuel types:")
		printVocab(station.FuelTypes())

		fmt.Println("Connector types:")
		printVocab(station.ConnectorTypes())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fuelsCmd)
}
