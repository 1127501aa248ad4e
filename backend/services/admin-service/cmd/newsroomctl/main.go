package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/cli"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type pgBackend struct {
	pool *pgxpool.Pool
}

func (b pgBackend) Editors() repositories.EditorRepository {
	return repositories.NewEditorRepository(b.pool)
}
func (b pgBackend) Terms() repositories.TermRepository { return repositories.NewTermRepository(b.pool) }
func (b pgBackend) Close()                             { b.pool.Close() }

func openPostgres(ctx context.Context, dbURL string) (cli.Backend, error) {
	pool, err := pgxpool.Connect(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", utils.RedactDBURL(dbURL), err)
	}
	return pgBackend{pool: pool}, nil
}

func main() {
	utils.InitLogger("newsroomctl")

	root := cli.NewRootCommand(openPostgres, cli.Migrator{
		Up:      repositories.MigrateUp,
		Down:    repositories.MigrateDown,
		Version: repositories.MigrationVersion,
	})
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
