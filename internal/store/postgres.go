package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

const uniqueViolation = "23505"

const recordColumns = `id, long_url, short_code, hits, expires_at, created_at`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed record store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) FindByCode(ctx context.Context, code shortener.Code) (*shortener.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM short_links WHERE short_code = $1`

	return p.queryOne(ctx, query, string(code))
}

func (p *PostgresStore) FindByLongURL(ctx context.Context, longURL string) (*shortener.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM short_links
		WHERE long_url = $1
		ORDER BY id
		LIMIT 1
	`

	return p.queryOne(ctx, query, longURL)
}

func (p *PostgresStore) Insert(ctx context.Context, record *shortener.Record) (*shortener.Record, error) {
	query := `
		INSERT INTO short_links (long_url, short_code, hits, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + recordColumns

	stored, err := p.queryOne(ctx, query,
		record.LongURL,
		string(record.Code),
		record.Hits,
		record.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, shortener.ErrUniqueViolation
		}

		return nil, err
	}

	return stored, nil
}

// IncrementHits relies on the row lock taken by UPDATE, so concurrent calls never lose
// an increment.
func (p *PostgresStore) IncrementHits(ctx context.Context, id int64) (*shortener.Record, error) {
	query := `
		UPDATE short_links
		SET hits = hits + 1
		WHERE id = $1
		RETURNING ` + recordColumns

	return p.queryOne(ctx, query, id)
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresStore) queryOne(ctx context.Context, query string, args ...any) (*shortener.Record, error) {
	var (
		record shortener.Record
		code   string
	)

	err := p.pool.QueryRow(ctx, query, args...).Scan(
		&record.ID,
		&record.LongURL,
		&code,
		&record.Hits,
		&record.ExpiresAt,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("postgres: %w", err)
	}

	record.Code = shortener.Code(code)

	return &record, nil
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
