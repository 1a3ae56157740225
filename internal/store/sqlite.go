package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/startup-research/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS entities (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	data         TEXT NOT NULL,
	last_updated TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Put(ctx context.Context, rec *model.EntityRecord) error {
	rec.LastUpdated = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal record")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entities (id, name, data, last_updated) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			last_updated = excluded.last_updated`,
		rec.ID, rec.Name, string(data), rec.LastUpdated.Format(time.RFC3339Nano),
	)
	return eris.Wrapf(err, "sqlite: put %s", rec.ID)
}

func (s *SQLiteStore) Get(ctx context.Context, idOrName string) (*model.EntityRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT data FROM entities WHERE id = ? OR name = ?`,
		idOrName, idOrName,
	)

	var data string
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get %s", idOrName)
	}

	var rec model.EntityRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal %s", idOrName)
	}
	return &rec, nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]model.EntityRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM entities ORDER BY rowid`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list")
	}
	defer rows.Close()

	var recs []model.EntityRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		var rec model.EntityRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal record")
		}
		recs = append(recs, rec)
	}
	return recs, eris.Wrap(rows.Err(), "sqlite: list iterate")
}

func (s *SQLiteStore) Search(ctx context.Context, term string) ([]model.EntityRecord, error) {
	recs, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterRecords(recs, term), nil
}
