package authlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PgArchive mirrors appended events into Postgres: a cumulative events
// table, a per-day partition table and a metadata row. Event payloads
// land as jsonb so the tables stay document-shaped.
type PgArchive struct {
	db *sql.DB
}

var _ Archive = (*PgArchive)(nil)

// OpenPg connects through the pgx stdlib driver.
func OpenPg(dsn string) (*PgArchive, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &PgArchive{db: db}, nil
}

// NewPgArchive wraps an existing handle; used by tests.
func NewPgArchive(db *sql.DB) *PgArchive {
	return &PgArchive{db: db}
}

func (p *PgArchive) Close() error { return p.db.Close() }

// Ping reports whether the backing store is reachable.
func (p *PgArchive) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

// EnsureSchema creates the tables and indexes used by the archive.
func (p *PgArchive) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`create table if not exists auth_events (
			id text primary key,
			user_id text not null,
			event_type text not null,
			logged_at timestamptz not null,
			payload jsonb not null
		)`,
		`create table if not exists auth_events_daily (
			id text primary key,
			day date not null,
			payload jsonb not null
		)`,
		`create table if not exists auth_events_meta (
			version text primary key,
			total_events bigint not null,
			last_updated timestamptz not null
		)`,
		`create index if not exists auth_events_user_id_idx on auth_events (user_id)`,
		`create index if not exists auth_events_event_type_idx on auth_events (event_type)`,
		`create index if not exists auth_events_logged_at_idx on auth_events (logged_at desc)`,
		`create index if not exists auth_events_daily_day_idx on auth_events_daily (day)`,
	}
	for _, stmt := range stmts {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Append inserts the event into the cumulative and day-partition tables and
// bumps the metadata row, in one transaction.
func (p *PgArchive) Append(ctx context.Context, e Event, all []Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	loggedAt := time.UnixMilli(e.TimestampUnix).UTC()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		insert into auth_events(id, user_id, event_type, logged_at, payload)
		values ($1,$2,$3,$4,$5)
	`, e.ID, e.UserID, e.EventType, loggedAt, payload); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		insert into auth_events_daily(id, day, payload)
		values ($1,$2,$3)
	`, e.ID, eventDay(e), payload); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		insert into auth_events_meta(version, total_events, last_updated)
		values ($1,$2,now())
		on conflict (version) do update
		set total_events = $2, last_updated = now()
	`, schemaVersion, len(all)); err != nil {
		return err
	}
	return tx.Commit()
}

// Count reports the number of archived events.
func (p *PgArchive) Count(ctx context.Context) (int64, error) {
	var n int64
	err := p.db.QueryRowContext(ctx, `select count(*) from auth_events`).Scan(&n)
	return n, err
}
