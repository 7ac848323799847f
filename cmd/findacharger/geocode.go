package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaed-rp/findacharger/internal/geo"
)

var (
	reverseLat float64
	reverseLng float64
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode [query]",
	Short: "Resolve an address to coordinates, or coordinates to an address",
	Example: `  # Forward lookup
  findacharger geocode "600 E Grand Blvd, Detroit, MI"

  # Reverse lookup
  findacharger geocode --lat 42.3712 --lng -83.0277`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		geocoder := newGeocoder()

		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
				return errors.New("a reverse lookup needs both --lat and --lng")
			}
			name, err := geocoder.ReverseGeocode(ctx, reverseLat, reverseLng)
			if err != nil {
				return err
			}
			fmt.Println(name)
			return nil
		}

		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return errors.New("provide a query to geocode, or --lat and --lng for a reverse lookup")
		}
		coord, err := geocoder.GeocodeAddress(ctx, query)
		if err != nil {
			return err
		}
		fmt.Println(geo.FormatCoordinates(coord))
		return nil
	},
}

func init() {
	geocodeCmd.Flags().Float64Var(&reverseLat, "lat", 0, "latitude for a reverse lookup")
	geocodeCmd.Flags().Float64Var(&reverseLng, "lng", 0, "longitude for a reverse lookup")

	rootCmd.AddCommand(geocodeCmd)
}
