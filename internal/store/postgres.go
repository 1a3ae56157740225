package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/startup-research/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, satisfied by pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS entities (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	data         JSONB NOT NULL,
	last_updated TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, rec *model.EntityRecord) error {
	rec.LastUpdated = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal record")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO entities (id, name, data, last_updated) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			last_updated = excluded.last_updated`,
		rec.ID, rec.Name, data, rec.LastUpdated,
	)
	return eris.Wrapf(err, "postgres: put %s", rec.ID)
}

func (s *PostgresStore) Get(ctx context.Context, idOrName string) (*model.EntityRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT data FROM entities WHERE id = $1 OR name = $1`,
		idOrName,
	)

	var data []byte
	err := row.Scan(&data)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get %s", idOrName)
	}

	var rec model.EntityRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal %s", idOrName)
	}
	return &rec, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]model.EntityRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM entities ORDER BY last_updated`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list")
	}
	defer rows.Close()

	var recs []model.EntityRecord
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		var rec model.EntityRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal record")
		}
		recs = append(recs, rec)
	}
	return recs, eris.Wrap(rows.Err(), "postgres: list iterate")
}

func (s *PostgresStore) Search(ctx context.Context, term string) ([]model.EntityRecord, error) {
	recs, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterRecords(recs, term), nil
}
