package store

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"

	"laptudirm.com/x/arena/pkg/arena/match"
)

//go:embed schema.sql
var schema embed.FS

// DB is the optional game archive. Games play fine without one; a DB
// is only opened when an archive URL is configured.
type DB struct{ *pgxpool.Pool }

func Open(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{pool}, nil
}

func (db *DB) Close() { db.Pool.Close() }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// SaveGame archives a finished game's report.
func (db *DB) SaveGame(ctx context.Context, report *match.Report) error {
	_, err := db.Exec(ctx, `
        INSERT INTO games(white, black, result, termination, reason, plies, final_fen, offending)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `,
		report.White, report.Black,
		report.Result.String(), report.Termination.String(), report.Reason,
		report.Plies, report.FinalFEN, report.Offending,
	)
	return err
}
