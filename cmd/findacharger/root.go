package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shaed-rp/findacharger/internal/config"
	"github.com/shaed-rp/findacharger/internal/geocode"
	"github.com/shaed-rp/findacharger/internal/search"
	"github.com/shaed-rp/findacharger/internal/station"
	"github.com/shaed-rp/findacharger/pkg/http/client"
)

var (
	envFile  string
	logLevel string
	appCfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "findacharger",
	Short: "Find EV charging stations near an address or coordinate",
	Long: `findacharger searches the alternative fuel station directory for electric
vehicle charging stations near a location. Results are cached, can be paged
through, and a watch mode keeps re-running a search on an interval.

The directory requires an API key in STATION_API_KEY (a .env file in the
working directory is picked up automatically).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("loading env file: %w", err)
			}
		} else {
			// A missing .env is fine; the environment still applies.
			_ = godotenv.Load()
		}

		appCfg = config.LoadFromEnv()
		if logLevel != "" {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", logLevel)
			}
			appCfg.LogLevel = level
		}
		appCfg.InitializeLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before reading configuration (default .env if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error; default from LOG_LEVEL)")
}

// newSearchService wires the station client and the caching search layer
// from the loaded configuration. Callers own Close.
func newSearchService() (*search.Service, error) {
	stations, err := station.New(appCfg, nil)
	if err != nil {
		return nil, err
	}
	return search.New(stations, nil)
}

func newGeocoder() *geocode.Client {
	return geocode.New(client.New(client.Options{
		BaseURL:   appCfg.GeocodeBaseURL,
		Timeout:   appCfg.HTTPTimeout,
		UserAgent: appCfg.UserAgent,
	}))
}
