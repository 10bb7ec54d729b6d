package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/barback/internal/app"
	"github.com/MrSnakeDoc/barback/internal/config"
	"github.com/MrSnakeDoc/barback/internal/convert"
	"github.com/MrSnakeDoc/barback/internal/version"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	cmd := &cobra.Command{
		Use:   "barback",
		Short: "Cocktail recipe service",
		Long: `barback serves a cocktail catalog mirrored from TheCocktailDB, keeps
saved and user-authored recipes, and converts ingredient measures between
metric and imperial units.

Configuration is read from BARBACK_* and REDIS_* environment variables.
Without a subcommand, barback runs the HTTP server.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	cmd.AddCommand(serve, newConvertCmd(), newVersionCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
}

func newConvertCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <quantity>",
		Short: "Convert an ingredient measure",
		Example: `  barback convert 2 oz --to metric
  barback convert "1 1/2 cups"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to = strings.ToLower(strings.TrimSpace(to))
			if to != "metric" && to != "imperial" {
				return fmt.Errorf("--to must be metric or imperial, got %q", to)
			}
			quantity := strings.Join(args, " ")
			_, err := fmt.Fprintln(cmd.OutOrStdout(), convert.Convert(quantity, convert.ParseSystem(to)))
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "imperial", "Target unit system (metric, imperial)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
