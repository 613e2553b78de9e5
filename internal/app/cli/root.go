// Package cli implements stockhawkctl, the admin command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stockhawk/internal/app/di"
	"stockhawk/internal/platform/config"
	infradb "stockhawk/internal/platform/db"
	jwtmw "stockhawk/internal/platform/jwt"
)

// Options supplies the configuration and component graph to commands.
type Options struct {
	LoadConfig func(ctx context.Context) (config.Config, error)
	Build      func(ctx context.Context, cfg config.Config) (*di.Container, error)
}

// DefaultOptions reads the environment and opens real stores.
func DefaultOptions() Options {
	return Options{LoadConfig: config.Load, Build: di.Build}
}

// NewRootCommand returns the stockhawkctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "stockhawkctl",
		Short:         "Administer a stockhawk watchlist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// withContainer loads config, wires the graph and closes it afterwards.
	withContainer := func(run func(cmd *cobra.Command, args []string, c *di.Container) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}
			c, err := opts.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close()
			return run(cmd, args, c)
		}
	}

	root.AddCommand(
		newSyncCommand(withContainer),
		newSymbolsCommand(withContainer),
		newModeCommand(withContainer),
		newTokenCommand(opts),
		newMigrateCommand(opts),
	)
	return root
}

type containerRunner func(run func(cmd *cobra.Command, args []string, c *di.Container) error) func(*cobra.Command, []string) error

func newSyncCommand(with containerRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch quotes for every watched symbol now",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, args []string, c *di.Container) error {
			report, err := c.Sync.SyncAll(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "requested: %d\n", report.Requested)
			fmt.Fprintf(out, "updated:   %v\n", report.Updated)
			fmt.Fprintf(out, "failed:    %v\n", report.Failed)
			return nil
		}),
	}
}

func newSymbolsCommand(with containerRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Manage the watched symbol set",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List watched symbols",
			Args:  cobra.NoArgs,
			RunE: with(func(cmd *cobra.Command, args []string, c *di.Container) error {
				symbols, err := c.Preference.ListSymbols(cmd.Context())
				if err != nil {
					return err
				}
				for _, s := range symbols {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add SYMBOL",
			Short: "Validate a symbol against the quote service, watch it and sync",
			Args:  cobra.ExactArgs(1),
			RunE: with(func(cmd *cobra.Command, args []string, c *di.Container) error {
				res, err := c.Add.Add(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", res.Symbol, res.Name)

				// このプロセスではスケジューラが動いていないため、その場で同期する
				report, err := c.Sync.SyncAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "synced: %v failed: %v\n", report.Updated, report.Failed)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove SYMBOL",
			Short: "Unwatch a symbol and delete its stored quote",
			Args:  cobra.ExactArgs(1),
			RunE: with(func(cmd *cobra.Command, args []string, c *di.Container) error {
				if err := c.Board.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			}),
		},
	)
	return cmd
}

func newModeCommand(with containerRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Show or flip the change display mode",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the display mode",
			Args:  cobra.NoArgs,
			RunE: with(func(cmd *cobra.Command, args []string, c *di.Container) error {
				mode, err := c.Preference.DisplayMode(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mode)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between absolute and percent",
			Args:  cobra.NoArgs,
			RunE: with(func(cmd *cobra.Command, args []string, c *di.Container) error {
				mode, err := c.Preference.ToggleDisplayMode(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mode)
				return nil
			}),
		},
	)
	return cmd
}

func newTokenCommand(opts Options) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if !cfg.Auth.Enabled() {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			token, err := jwtmw.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL).GenerateToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "stockhawkctl", "token subject")
	return cmd
}

func newMigrateCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}
			db, err := infradb.OpenDB(cfg.DB, true)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
