// Package cli implements the cloudmock command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/siegeai/cloudmock/config"
)

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cloudmock",
		Short:         "Serve a mock cloud REST API generated from API description documents",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")

	for _, sub := range []*cobra.Command{newServeCmd(), newRoutesCmd()} {
		sub.SetFlagErrorFunc(flagError)
		cmd.AddCommand(sub)
	}
	cmd.SetFlagErrorFunc(flagError)

	return cmd
}

func flagError(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}

// resolveConfig layers defaults, the config file, the environment and finally the
// flags that were set explicitly, then installs the logger.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(strings.TrimSpace(path))
	if err != nil {
		return nil, newUsageError(err.Error())
	}

	if err := applyFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, newUsageError(err.Error())
	}

	if err := setupLogging(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config) error {
	strs := map[string]*string{
		"log-level": &cfg.LogLevel,
		"specs":     &cfg.SpecsPath,
		"addr":      &cfg.Addr,
		"token":     &cfg.AuthToken,
	}
	for name, dst := range strs {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	if flags.Lookup("services") != nil && flags.Changed("services") {
		value, err := flags.GetStringSlice("services")
		if err != nil {
			return err
		}
		cfg.Services = value
	}
	return nil
}

func setupLogging(w io.Writer, level string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(level))
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
	return err
}
