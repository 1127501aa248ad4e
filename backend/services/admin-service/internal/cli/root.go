package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Backend is the slice of storage the management commands touch.
type Backend interface {
	Editors() repositories.EditorRepository
	Terms() repositories.TermRepository
	Close()
}

// Opener connects to the database at dbURL.
type Opener func(ctx context.Context, dbURL string) (Backend, error)

// Migrator applies and rolls back schema migrations.
type Migrator struct {
	Up      func(dbURL string) error
	Down    func(dbURL string, steps int) error
	Version func(dbURL string) (uint, bool, error)
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	v        *viper.Viper
	open     Opener
	migrator Migrator
}

func (o *RootOptions) dbURL() (string, error) {
	url := strings.TrimSpace(o.v.GetString("DB_URL"))
	if url == "" {
		return "", errors.New("database URL missing: pass --db-url or set DB_URL")
	}
	return url, nil
}

// NewRootCommand creates the newsroomctl root command.
func NewRootCommand(open Opener, migrator Migrator) *cobra.Command {
	v := viper.New()
	v.AutomaticEnv()
	opts := &RootOptions{v: v, open: open, migrator: migrator}

	cmd := &cobra.Command{
		Use:           "newsroomctl",
		Short:         "Newsroom back office management",
		Long:          "Schema migrations, editor accounts and default data for the newsroom admin service.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().String("db-url", "", "Postgres URL (defaults to $DB_URL)")
	_ = v.BindPFlag("DB_URL", cmd.PersistentFlags().Lookup("db-url"))

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCreateEditorCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	return cmd
}

// withBackend opens the database for the duration of fn.
func (o *RootOptions) withBackend(ctx context.Context, fn func(Backend) error) error {
	url, err := o.dbURL()
	if err != nil {
		return err
	}
	b, err := o.open(ctx, url)
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(b)
}
