package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// Dialect selects the SQL flavour a query is sent in.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

const pingTimeout = 5 * time.Second

var placeholderPattern = regexp.MustCompile(`\$\d+`)

// Rebind rewrites $1..$n placeholders into the dialect's form. Queries must
// reference each placeholder once and in order.
func (d Dialect) Rebind(query string) string {
	if d == MySQL {
		return placeholderPattern.ReplaceAllString(query, "?")
	}
	return query
}

// DB is a *sql.DB that knows its dialect. Repositories write queries with
// $n placeholders and go through these helpers.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// New wraps an existing connection pool.
func New(db *sql.DB, dialect Dialect) *DB {
	return &DB{DB: db, Dialect: dialect}
}

// Open connects to the relational store named by driver ("postgres" or "mysql").
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	return open(ctx, driver, dsn, false)
}

func open(ctx context.Context, driver, dsn string, multiStatements bool) (*DB, error) {
	var db *sql.DB
	dialect := Dialect(driver)

	switch dialect {
	case Postgres:
		var err error
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
		}

	case MySQL:
		// connStr should be: user:password@tcp(host:port)/dbname
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid MySQL DSN: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		cfg.ParseTime = true
		// report matched rather than changed rows so updates can detect missing ids
		cfg.ClientFoundRows = true
		cfg.MultiStatements = multiStatements
		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w", err)
		}
		db = sql.OpenDB(connector)

	default:
		return nil, fmt.Errorf("unsupported database driver: %s. Must be postgres or mysql", driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", driver, err)
	}

	return New(db, dialect), nil
}

// QueryRow runs a single-row query.
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.QueryRowContext(ctx, db.Dialect.Rebind(query), args...)
}

// Query runs a multi-row query.
func (db *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.QueryContext(ctx, db.Dialect.Rebind(query), args...)
}

// Exec runs a statement and returns the number of affected rows.
func (db *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, db.Dialect.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Insert runs an INSERT and returns the generated id column.
func (db *DB) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	if db.Dialect == Postgres {
		var id int64
		err := db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
		return id, err
	}

	res, err := db.ExecContext(ctx, db.Dialect.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
