package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type (
	// Config holds the connection settings for one database.
	Config struct {
		Host     string
		Port     int
		User     string
		Password string
		Database string
		SSLMode  string
	}

	// Client is a thin connection to a PostgreSQL database. It exposes the
	// two operations the core pipeline needs: running a read query for
	// catalog names and executing a single schema statement.
	Client struct {
		db *sql.DB
	}
)

// maintenanceDatabase is the database used for server-level operations such
// as checking whether the target database exists.
const maintenanceDatabase = "postgres"

// DSN returns the connection string for the configuration.
func (c Config) DSN() string {
	host := c.Host
	if c.Port > 0 {
		host = fmt.Sprintf("%s:%d", c.Host, c.Port)
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   host,
		Path:   "/" + c.Database,
	}

	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.SSLMode}}.Encode()
	}

	return u.String()
}

// Connect opens a connection to the configured database and verifies it with
// a ping.
//
// Example usage:
//
//	client, err := postgres.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open connection")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to connect to %s@%s/%s", cfg.User, cfg.Host, cfg.Database)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// RunQuery executes a read query and returns the first column of each row as
// trimmed text, skipping empty values. A query returning no rows yields an
// empty result, not an error.
func (c *Client) RunQuery(ctx context.Context, query string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "query failed")
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}

		if name := strings.TrimSpace(value.String); name != "" {
			names = append(names, name)
		}
	}

	return names, rows.Err()
}

// RunStatement executes a single schema statement.
func (c *Client) RunStatement(ctx context.Context, stmt string) error {
	_, err := c.db.ExecContext(ctx, stmt)
	return errors.Wrap(err, "statement failed")
}

// EnsureDatabase creates the configured database when it does not exist yet,
// connecting through the server's maintenance database. It returns true when
// the database was created by this call.
func EnsureDatabase(ctx context.Context, cfg Config) (bool, error) {
	maint := cfg
	maint.Database = maintenanceDatabase

	client, err := Connect(ctx, maint)
	if err != nil {
		return false, errors.Wrap(err, "failed to connect to maintenance database")
	}
	defer func() { _ = client.Close() }()

	var exists bool
	row := client.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Database)
	if err := row.Scan(&exists); err != nil {
		return false, errors.Wrap(err, "failed to check for database")
	}

	if exists {
		return false, nil
	}

	// CREATE DATABASE does not accept bind parameters; the name is quoted as
	// an identifier instead.
	stmt := "CREATE DATABASE " + pq.QuoteIdentifier(cfg.Database)
	if _, err := client.db.ExecContext(ctx, stmt); err != nil {
		return false, errors.Wrapf(err, "failed to create database %s", cfg.Database)
	}

	return true, nil
}
