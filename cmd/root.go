package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/saisearch/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFile string
	logger     *slog.Logger
	cfg        *config.Config

	// v collects flag bindings from every command before the config is decoded.
	v = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "saisearch",
	Short: "Search stratospheric aerosol injection deployments",
	Long: `saisearch narrows latitude, longitude, altitude and injection rate ranges
to find aerosol deployments that reach a cooling target while keeping ozone
depletion under a cap.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ReadFile(v, configFile); err != nil {
			return err
		}

		loaded, err := config.Decode(v)
		if err != nil {
			return err
		}
		cfg = loaded

		logger = newLogger(cfg.Log.Level)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./saisearch.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	mustBind(v, "log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func newLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// mustBind ties a flag to a config key; an unknown flag is a programming error.
func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag for %s: %v", key, err))
	}
}
