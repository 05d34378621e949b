package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"UploadTimeAdvisor/internal/domain"
	"UploadTimeAdvisor/internal/ports"
)

const holidaysTable = "holidays"

const schema = `CREATE TABLE IF NOT EXISTS holidays (
    date       DATE PRIMARY KEY,
    name       TEXT NOT NULL,
    kind       TEXT NOT NULL DEFAULT 'holiday',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists imported holidays into Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.HolidayRepository = (*PostgresRepository)(nil)

// Open connects with the lib/pq driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the holidays table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create holidays table: %w", err)
	}
	return nil
}

// ListHolidays returns every stored holiday ordered by date.
func (r *PostgresRepository) ListHolidays(ctx context.Context) ([]domain.HolidayEntry, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := listQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query holidays: %w", err)
	}

	var result []domain.HolidayEntry
	for rows.Next() {
		var (
			day  time.Time
			name string
			kind string
		)
		if err := rows.Scan(&day, &name, &kind); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		result = append(result, domain.HolidayEntry{
			Date: domain.DateOf(day),
			Name: name,
			Kind: domain.HolidayKind(kind),
		})
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// SaveHolidays upserts entries keyed by date.
func (r *PostgresRepository) SaveHolidays(ctx context.Context, entries []domain.HolidayEntry) error {
	if r.db == nil || len(entries) == 0 {
		return nil
	}

	query, args, err := upsertQuery(entries).ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert holidays: %w", err)
	}

	return nil
}

func listQuery() sq.SelectBuilder {
	return psql.Select("date", "name", "kind").
		From(holidaysTable).
		OrderBy("date")
}

// upsertQuery collapses duplicate dates so one statement never touches a row twice.
func upsertQuery(entries []domain.HolidayEntry) sq.InsertBuilder {
	latest := make(map[domain.Date]int, len(entries))
	order := make([]domain.Date, 0, len(entries))
	for i, e := range entries {
		if _, seen := latest[e.Date]; !seen {
			order = append(order, e.Date)
		}
		latest[e.Date] = i
	}

	b := psql.Insert(holidaysTable).Columns("date", "name", "kind")
	for _, d := range order {
		e := entries[latest[d]]
		kind := e.Kind
		if kind == "" {
			kind = domain.HolidayKindHoliday
		}
		b = b.Values(e.Date.String(), e.Name, string(kind))
	}

	return b.Suffix("ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name, kind = EXCLUDED.kind, updated_at = NOW()")
}
