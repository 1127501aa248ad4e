package cli

import (
	"fmt"

	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/app"
	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var withEditor bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default taxonomy and the default editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd.Context(), func(b Backend) error {
				if err := app.SeedDefaults(cmd.Context(), b.Terms(), b.Editors(), withEditor); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "seed complete")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&withEditor, "with-editor", true, "also create the default editor")
	return cmd
}
