package cli

import (
	"fmt"

	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/spf13/cobra"
)

// NewCreateEditorCommand creates the create-editor command.
func NewCreateEditorCommand(opts *RootOptions) *cobra.Command {
	var req services.CreateEditorRequest

	cmd := &cobra.Command{
		Use:   "create-editor",
		Short: "Create a back-office editor account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd.Context(), func(b Backend) error {
				// Editor creation never signs tokens, so no key is needed.
				auth := services.NewAuthService(b.Editors(), nil, 0)
				editor, err := auth.CreateEditor(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s %q (%s)\n", editor.Role, editor.Username, editor.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "login name (required)")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "name shown to other editors")
	cmd.Flags().StringVar(&req.Email, "email", "", "address for edit-conflict notices")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password, at least 8 characters (required)")
	cmd.Flags().StringVar(&req.Role, "role", utils.EditorRole, "editor or admin")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
