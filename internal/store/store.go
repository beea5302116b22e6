// Package store persists students and their error logs through database/sql.
// PostgreSQL is served by the pgx driver; sqlite:// URLs open a local file
// with the pure Go SQLite driver so the service runs without a database
// server.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = sql.ErrNoRows

// ErrDuplicateName is returned when a student name is already taken.
var ErrDuplicateName = errors.New("student name already exists")

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const pgUniqueViolation = "23505"

// Dialect selects driver specific SQL.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Options tunes the connection pool. SQLite always uses one connection.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB wraps the pool and remembers its dialect.
type DB struct {
	SQL     *sql.DB
	dialect Dialect
}

// Open connects to dsn and verifies the connection. Accepted forms:
// postgres:// or postgresql:// URLs, key=value Postgres DSNs, and
// sqlite:///relative/path.db, sqlite:////absolute/path.db or sqlite://
// (in memory).
func Open(ctx context.Context, dsn string, opts Options) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("database url is empty")
	}
	driver, source, dialect := parseDSN(dsn)
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dialect == SQLite {
		// One writer; an in-memory database lives as long as its connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		if opts.MaxOpenConns > 0 {
			db.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if opts.MaxIdleConns > 0 {
			db.SetMaxIdleConns(opts.MaxIdleConns)
		}
		if opts.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(opts.ConnMaxLifetime)
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{SQL: db, dialect: dialect}, nil
}

// parseDSN maps a database URL to a driver name and driver source.
func parseDSN(dsn string) (driver, source string, d Dialect) {
	if !strings.HasPrefix(dsn, "sqlite:") {
		return "pgx", dsn, Postgres
	}
	path := strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite:"), "//")
	// sqlite:///x.db is relative, sqlite:////x.db absolute.
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		path = ":memory:"
	}
	return "sqlite", "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", SQLite
}

func (d *DB) Close() error { return d.SQL.Close() }

func (d *DB) Ping(ctx context.Context) error { return d.SQL.PingContext(ctx) }

// Dialect reports which SQL flavor the pool speaks.
func (d *DB) Dialect() Dialect { return d.dialect }

// rebind turns ? placeholders into $n for PostgreSQL.
func (d *DB) rebind(q string) string {
	if d.dialect != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var postgresSchema = []string{
	`create table if not exists students (
  id         bigserial primary key,
  name       text not null unique,
  created_at timestamptz not null default now()
)`,
	`create table if not exists error_logs (
  id             bigserial primary key,
  student_id     bigint not null references students(id) on delete cascade,
  submission_id  text not null default '',
  original_text  text not null,
  corrected_text text not null,
  error_type     text not null,
  original_span  text not null,
  corrected_span text not null,
  created_at     timestamptz not null default now()
)`,
	`create index if not exists error_logs_student_id_idx on error_logs (student_id, id)`,
}

var sqliteSchema = []string{
	`create table if not exists students (
  id         integer primary key autoincrement,
  name       text not null unique,
  created_at timestamp not null default current_timestamp
)`,
	`create table if not exists error_logs (
  id             integer primary key autoincrement,
  student_id     integer not null references students(id) on delete cascade,
  submission_id  text not null default '',
  original_text  text not null,
  corrected_text text not null,
  error_type     text not null,
  original_span  text not null,
  corrected_span text not null,
  created_at     timestamp not null default current_timestamp
)`,
	`create index if not exists error_logs_student_id_idx on error_logs (student_id, id)`,
}

// Migrate creates the schema if it does not exist yet.
func (d *DB) Migrate(ctx context.Context) error {
	schema := postgresSchema
	if d.dialect == SQLite {
		schema = sqliteSchema
	}
	for _, stmt := range schema {
		if _, err := d.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// now is the created_at value written with new rows. Both drivers store and
// return it as a timestamp.
func now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
