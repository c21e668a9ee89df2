package repositories

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/cockroachdb/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/utils"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Migrater struct {
	pgConfig infra.PgConfig
}

func NewMigrater(pgConfig infra.PgConfig) Migrater {
	return Migrater{pgConfig: pgConfig}
}

func (m Migrater) Run(ctx context.Context) error {
	logger := utils.LoggerFromContext(ctx)

	db, err := sql.Open("pgx", m.pgConfig.GetConnectionString())
	if err != nil {
		return errors.Wrap(err, "unable to connect to database")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "unable to ping database")
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, mustSubFS(embedMigrations, "migrations"))
	if err != nil {
		return errors.Wrap(err, "unable to create migration provider")
	}

	logger.InfoContext(ctx, "running database migrations")
	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to run migrations")
	}
	for _, result := range results {
		logger.InfoContext(ctx, "applied migration",
			"source", result.Source.Path,
			"duration", result.Duration.String())
	}
	return nil
}

func mustSubFS(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
