package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dbURL      string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "godshot",
	Short: "Godshot espresso brew journal",
	Long:  `Godshot tracks beans, bags, and brews, and names them for you when you don't bother to.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json, text)")
}

func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger from the persistent flags.
func newLogger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	var log zerolog.Logger
	switch logFormat {
	case "json":
		log = zerolog.New(os.Stderr)
	case "text":
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	default:
		return zerolog.Logger{}, fmt.Errorf("invalid log format %q", logFormat)
	}
	return log.Level(level).With().Timestamp().Logger(), nil
}
