package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"life-tracker/internal/models"

	// Import postgres driver
	_ "github.com/jackc/pgx/v5/stdlib"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// DB is the relational Store. It wraps a sql.DB connection to SQLite or
// PostgreSQL and adds no logic beyond mapping rows; every call hits the
// database.
type DB struct {
	conn    *sql.DB
	dialect dialect
	now     func() time.Time
}

// NewDB opens a SQLite database and runs migrations. Use ":memory:" for a
// throwaway database.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared and avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)
	return open(conn, dialectSQLite)
}

// NewPostgresDB opens a PostgreSQL database through pgx and runs migrations.
func NewPostgresDB(url string) (*DB, error) {
	conn, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	return open(conn, dialectPostgres)
}

func open(conn *sql.DB, d dialect) (*DB, error) {
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn, dialect: d, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *DB) migrate() error {
	types := strings.NewReplacer(
		"{{id}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{real}}", "REAL",
		"{{time}}", "TIMESTAMP",
		"{{json}}", "TEXT",
		"{{true}}", "1",
		"{{false}}", "0",
	)
	if db.dialect == dialectPostgres {
		types = strings.NewReplacer(
			"{{id}}", "BIGSERIAL PRIMARY KEY",
			"{{real}}", "DOUBLE PRECISION",
			"{{time}}", "TIMESTAMPTZ",
			"{{json}}", "JSONB",
			"{{true}}", "TRUE",
			"{{false}}", "FALSE",
		)
	}

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id {{id}},
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			display_name TEXT NOT NULL,
			dark_mode BOOLEAN NOT NULL DEFAULT {{false}}
		)`,
		`CREATE TABLE IF NOT EXISTS activities (
			id {{id}},
			user_id INTEGER NOT NULL,
			category TEXT NOT NULL,
			description TEXT,
			start_time {{time}} NOT NULL,
			end_time {{time}},
			duration INTEGER NOT NULL,
			created_at {{time}} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id {{id}},
			user_id INTEGER NOT NULL,
			amount {{real}} NOT NULL,
			category TEXT NOT NULL,
			description TEXT,
			date {{time}} NOT NULL,
			created_at {{time}} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS goals (
			id {{id}},
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			target_value {{real}} NOT NULL,
			current_value {{real}} NOT NULL DEFAULT 0,
			unit TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT {{true}},
			created_at {{time}} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS devices (
			id {{id}},
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			device_id TEXT NOT NULL,
			last_synced {{time}},
			active BOOLEAN NOT NULL DEFAULT {{true}},
			created_at {{time}} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS backups (
			id {{id}},
			user_id INTEGER NOT NULL,
			data {{json}} NOT NULL,
			created_at {{time}} NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS activities_user_id ON activities (user_id)`,
		`CREATE INDEX IF NOT EXISTS expenses_user_id ON expenses (user_id)`,
		`CREATE INDEX IF NOT EXISTS goals_user_id ON goals (user_id)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(types.Replace(m)); err != nil {
			return err
		}
	}

	// Goals created before direction was stored have an empty value and fall
	// back to the inferred direction on read.
	// We ignore the error here because the column might already exist
	_, _ = db.conn.Exec(`ALTER TABLE goals ADD COLUMN direction TEXT NOT NULL DEFAULT ''`)

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, db.rebind(query), utcArgs(args)...)
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, db.rebind(query), utcArgs(args)...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.rebind(query), utcArgs(args)...)
}

// utcArgs converts time arguments to UTC. SQLite keeps timestamps as text, so
// ORDER BY on a time column only follows the instant when every stored value
// carries the same offset.
func utcArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case time.Time:
			out[i] = v.UTC()
		case sql.NullTime:
			if v.Valid {
				v.Time = v.Time.UTC()
			}
			out[i] = v
		default:
			out[i] = arg
		}
	}
	return out
}

// insert runs an INSERT ... RETURNING id statement and returns the new id.
func (db *DB) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	if err := db.queryRow(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// deleteByID removes one row, reporting ErrNotFound when nothing matched.
func (db *DB) deleteByID(ctx context.Context, table, entity string, id int64) error {
	res, err := db.exec(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

type rowScanner interface {
	Scan(dest ...any) error
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

const userColumns = "id, username, password_hash, display_name, dark_mode"

func scanUser(r rowScanner) (*models.User, error) {
	var u models.User
	if err := r.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.DarkMode); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser creates a new user. The password must already be hashed.
func (db *DB) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	id, err := db.insert(ctx,
		"INSERT INTO users (username, password_hash, display_name, dark_mode) VALUES (?, ?, ?, ?)",
		u.Username, u.PasswordHash, u.DisplayName, u.DarkMode,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", u.Username, ErrDuplicate)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	return &u, nil
}

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(db.queryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", id)
	}
	return u, err
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(db.queryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return u, err
}

// UpdateUser applies a partial update to a user.
func (db *DB) UpdateUser(ctx context.Context, id int64, p models.UserPatch) (*models.User, error) {
	u, err := db.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(u)
	_, err = db.exec(ctx,
		"UPDATE users SET username = ?, password_hash = ?, display_name = ?, dark_mode = ? WHERE id = ?",
		u.Username, u.PasswordHash, u.DisplayName, u.DarkMode, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", u.Username, ErrDuplicate)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount(ctx context.Context) (int, error) {
	var count int
	err := db.queryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
