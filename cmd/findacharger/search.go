package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shaed-rp/findacharger/internal/geo"
	"github.com/shaed-rp/findacharger/internal/models"
	"github.com/shaed-rp/findacharger/internal/prefs"
	"github.com/shaed-rp/findacharger/internal/search"
)

var (
	searchAddress  string
	searchLat      float64
	searchLng      float64
	searchRadius   float64
	searchFuels    []string
	searchLimit    int
	searchPage     int
	searchPageSize int
	searchAll      bool
	searchView     string
	searchWatch    bool
	searchEvery    time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for charging stations near a location",
	Long: `Search the station directory around an origin given either as a free-text
address (geocoded first) or as an explicit latitude/longitude pair.

Results come back ordered by distance. Use --page/--page-size to fetch a
single page, --all to walk every page, or --watch to keep the search running
and refresh it on an interval.`,
	Example: `  # Search around an address
  findacharger search --address "600 E Grand Blvd, Detroit, MI" --radius 10

  # Search around a coordinate, DC fast charging only
  findacharger search --lat 42.3314 --lng -83.0458 --fuel ELEC --view json

  # Keep the search running, refreshing every minute
  findacharger search --address "Ferry St, Detroit" --watch --every 1m`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchAddress, "address", "a", "", "address or place to search near (geocoded)")
	searchCmd.Flags().Float64Var(&searchLat, "lat", 0, "latitude of the search origin")
	searchCmd.Flags().Float64Var(&searchLng, "lng", 0, "longitude of the search origin")
	searchCmd.Flags().Float64VarP(&searchRadius, "radius", "r", 25, "search radius in miles")
	searchCmd.Flags().StringSliceVar(&searchFuels, "fuel", nil, "fuel type codes to include, repeatable (see 'findacharger fuels')")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum number of results, 0 for the provider default")
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "one-based page to fetch, 0 disables paging")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", 20, "results per page for --page and --all")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "fetch every page until the directory runs out")
	searchCmd.Flags().StringVar(&searchView, "view", "", "output format, table or json (remembered as the default)")
	searchCmd.Flags().BoolVarP(&searchWatch, "watch", "w", false, "keep the search running and refresh it on an interval")
	searchCmd.Flags().DurationVar(&searchEvery, "every", 30*time.Second, "refresh interval for --watch")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if searchAll && searchWatch {
		return errors.New("--all and --watch cannot be combined")
	}

	origin, err := resolveOrigin(ctx, cmd)
	if err != nil {
		return err
	}

	params := models.SearchParams{
		Location:  origin,
		Radius:    searchRadius,
		FuelTypes: searchFuels,
		Limit:     searchLimit,
	}
	if searchPage > 0 {
		params = params.WithPage(searchPage, searchPageSize)
	}

	view, err := resolveView(cmd)
	if err != nil {
		return err
	}

	svc, err := newSearchService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if searchAll {
		return searchAllPages(ctx, svc, params, view)
	}

	q := svc.Query(params)
	defer q.Release()

	stations, err := q.Get(ctx)
	if err != nil {
		return err
	}
	if err := renderStations(stations, view); err != nil {
		return err
	}

	if !searchWatch {
		return nil
	}
	return watchSearch(q, view)
}

// resolveOrigin turns the location flags into a coordinate. An address wins
// over --lat/--lng when both are given.
func resolveOrigin(ctx context.Context, cmd *cobra.Command) (models.Coordinate, error) {
	if searchAddress != "" {
		coord, err := newGeocoder().GeocodeAddress(ctx, searchAddress)
		if err != nil {
			return models.Coordinate{}, fmt.Errorf("geocoding %q: %w", searchAddress, err)
		}
		log.Debug().
			Str("address", searchAddress).
			Str("location", geo.FormatCoordinates(coord)).
			Msg("resolved search origin")
		return coord, nil
	}

	if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
		return models.Coordinate{}, errors.New("provide --address, or both --lat and --lng")
	}
	return models.Coordinate{Lat: searchLat, Lng: searchLng}, nil
}

// resolveView picks the output format. An explicit --view is validated and
// remembered for future runs; otherwise the stored preference applies.
func resolveView(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("view") {
		if searchView != prefs.ViewTable && searchView != prefs.ViewJSON {
			return "", fmt.Errorf("invalid view %q (valid: %s, %s)", searchView, prefs.ViewTable, prefs.ViewJSON)
		}
		if err := prefs.Save(prefs.Preferences{ViewMode: searchView}, ""); err != nil {
			log.Warn().Err(err).Msg("could not save view preference")
		}
		return searchView, nil
	}

	stored, err := prefs.Load("")
	if err != nil {
		log.Warn().Err(err).Msg("could not load preferences, using table view")
		return prefs.ViewTable, nil
	}
	return stored.ViewMode, nil
}

func searchAllPages(ctx context.Context, svc *search.Service, params models.SearchParams, view string) error {
	iq := svc.InfiniteQuery(params, searchPageSize)
	for iq.HasMore() {
		if _, err := iq.Next(ctx); err != nil {
			return err
		}
	}
	return renderStations(iq.Stations(), view)
}

// watchSearch re-runs the search on a fixed interval until interrupted. Each
// tick forces a refresh so the output reflects the directory, not the cache.
func watchSearch(q *search.Query, view string) error {
	if searchEvery <= 0 {
		return errors.New("--every must be positive")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	defer func() { _ = scheduler.Shutdown() }()

	_, err = scheduler.NewJob(
		gocron.DurationJob(searchEvery),
		gocron.NewTask(func() {
			stations, err := q.Refetch(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("search refresh failed")
				return
			}
			if err := renderStations(stations, view); err != nil {
				log.Error().Err(err).Msg("rendering results failed")
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("scheduling refresh job: %w", err)
	}

	scheduler.Start()
	log.Info().Dur("every", searchEvery).Msg("watching search, press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("stopping watch")
	return nil
}
