package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/Dosada05/sports-management/models"
)

// Connect opens a PostgreSQL handle and verifies it within timeout.
func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return conn, nil
}

// OpenPostgres connects, migrates and returns a store keeping each document
// as JSONB next to its unique key.
func OpenPostgres(ctx context.Context, dsn string, timeout time.Duration, logger *slog.Logger) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres DSN is empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	conn, err := Connect(dsn, timeout)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(conn); err != nil {
		conn.Close()
		return nil, err
	}
	logger.Info("postgres migrations applied")

	return NewPostgresStore(conn), nil
}

// NewPostgresStore wraps an already migrated connection.
func NewPostgresStore(conn *sql.DB) *Store {
	return &Store{
		People:  &postgresCollection[models.Person]{db: conn, schema: PersonsSchema},
		Matches: &postgresCollection[models.Match]{db: conn, schema: MatchesSchema},
		Reviews: &postgresCollection[models.VideoReview]{db: conn, schema: ReviewsSchema},
		close: func(context.Context) error {
			return conn.Close()
		},
	}
}

type postgresCollection[T any] struct {
	db     *sql.DB
	schema Schema
}

func (c *postgresCollection[T]) table() string {
	return pq.QuoteIdentifier(c.schema.Name)
}

// firstMatch selects the key of the first document matching $1.
func (c *postgresCollection[T]) firstMatch() string {
	return fmt.Sprintf(`SELECT key FROM %s WHERE doc @> $1::jsonb ORDER BY key LIMIT 1`, c.table())
}

// JSON parameters are passed as text; lib/pq would send []byte as bytea.
func filterJSON(filter Filter) (string, error) {
	if filter == nil {
		filter = Filter{}
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		return "", fmt.Errorf("marshaling filter: %w", err)
	}
	return string(raw), nil
}

// orderBy sorts RFC 3339 text as instants and everything else by its JSON
// value, ties broken by key. Text order would put "05.1Z" after "05.12Z".
func orderBy(sort *Sort) string {
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	field := pq.QuoteLiteral(sort.Field)
	return fmt.Sprintf(` ORDER BY CASE WHEN jsonb_typeof(doc -> %[1]s) = 'string' AND doc ->> %[1]s ~ '^\d{4}-\d{2}-\d{2}T' THEN (doc ->> %[1]s)::timestamptz END %[2]s, doc -> %[1]s %[2]s, key`, field, dir)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (c *postgresCollection[T]) decode(raw []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding %s document: %w", c.schema.Name, err)
	}
	return &out, nil
}

func (c *postgresCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	f, err := filterJSON(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE doc @> $1::jsonb ORDER BY key LIMIT 1`, c.table())

	var raw []byte
	err = c.db.QueryRowContext(ctx, query, f).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDocuments
		}
		return nil, fmt.Errorf("querying %s: %w", c.schema.Name, err)
	}
	return c.decode(raw)
}

func (c *postgresCollection[T]) Find(ctx context.Context, filter Filter, sort *Sort) ([]T, error) {
	f, err := filterJSON(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE doc @> $1::jsonb`, c.table())
	if sort != nil && sort.Field != "" {
		query += orderBy(sort)
	} else {
		query += ` ORDER BY key`
	}

	rows, err := c.db.QueryContext(ctx, query, f)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", c.schema.Name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", c.schema.Name, err)
		}
		doc, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", c.schema.Name, err)
	}
	return out, nil
}

func (c *postgresCollection[T]) Insert(ctx context.Context, doc *T) error {
	d, err := toDocument(doc)
	if err != nil {
		return err
	}
	key, err := keyText(d, c.schema)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling %s document: %w", c.schema.Name, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (key, doc) VALUES ($1, $2::jsonb)`, c.table())
	if _, err := c.db.ExecContext(ctx, query, key, string(raw)); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("inserting into %s: %w", c.schema.Name, err)
	}
	return nil
}

func (c *postgresCollection[T]) Update(ctx context.Context, filter Filter, fields Fields) (*T, error) {
	f, err := filterJSON(filter)
	if err != nil {
		return nil, err
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshaling update: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET doc = %[1]s.doc || $2::jsonb,
			key = (%[1]s.doc || $2::jsonb) ->> %[2]s
		WHERE key = (%[3]s)
		RETURNING doc`,
		c.table(), pq.QuoteLiteral(c.schema.Key), c.firstMatch())

	var raw []byte
	err = c.db.QueryRowContext(ctx, query, f, string(patch)).Scan(&raw)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNoDocuments
		case isUniqueViolation(err):
			return nil, ErrDuplicateKey
		default:
			return nil, fmt.Errorf("updating %s: %w", c.schema.Name, err)
		}
	}
	return c.decode(raw)
}

func (c *postgresCollection[T]) Delete(ctx context.Context, filter Filter) (*T, error) {
	f, err := filterJSON(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE key = (%s) RETURNING doc`, c.table(), c.firstMatch())

	var raw []byte
	err = c.db.QueryRowContext(ctx, query, f).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDocuments
		}
		return nil, fmt.Errorf("deleting from %s: %w", c.schema.Name, err)
	}
	return c.decode(raw)
}
