package cli

import (
	"fmt"

	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command group.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := opts.dbURL()
			if err != nil {
				return err
			}
			utils.Logger.Infof("Migrating %s up", utils.RedactDBURL(url))
			if err := opts.migrator.Up(url); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			return printVersion(cmd, opts, url)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations (all of them unless --steps is set)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := opts.dbURL()
			if err != nil {
				return err
			}
			utils.Logger.Infof("Migrating %s down (steps=%d)", utils.RedactDBURL(url), steps)
			if err := opts.migrator.Down(url, steps); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			return printVersion(cmd, opts, url)
		},
	}
	down.Flags().IntVar(&steps, "steps", 0, "number of migrations to roll back (0 = all)")
	cmd.AddCommand(down)

	return cmd
}

func printVersion(cmd *cobra.Command, opts *RootOptions, url string) error {
	version, dirty, err := opts.migrator.Version(url)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
