package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"redline/internal/log"
)

var (
	// ErrNotOpen is returned by every operation on a closed database.
	ErrNotOpen = errors.New("database not open")
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")
)

// Database is the persistent store for accounts and save slots.
type Database interface {
	OpenDatabase(ctx context.Context, filename string) error
	CloseDatabase() error
	GetDatabaseOpen() bool

	SaveUser(ctx context.Context, user UserRecord) error
	LoadUser(ctx context.Context, username string) (UserRecord, error)
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]UserRecord, error)

	SaveSlot(ctx context.Context, slot SlotRecord) error
	LoadSlot(ctx context.Context, username string) (SlotRecord, error)
	DeleteSlot(ctx context.Context, username string) error
	ListSlots(ctx context.Context) ([]SlotRecord, error)

	// GetDB exposes the handle for advanced operations
	GetDB() *sql.DB
}

// SQLiteDatabase implements Database interface using SQLite
type SQLiteDatabase struct {
	mu       sync.RWMutex
	db       *sql.DB
	dbOpen   bool
	filename string
}

// NewDatabase creates a new, closed SQLite database instance
func NewDatabase() *SQLiteDatabase {
	return &SQLiteDatabase{}
}

// Open is a convenience that creates and opens a database in one call.
func Open(ctx context.Context, filename string) (*SQLiteDatabase, error) {
	d := NewDatabase()
	if err := d.OpenDatabase(ctx, filename); err != nil {
		return nil, err
	}
	return d, nil
}

// OpenDatabase opens (creating if needed) the SQLite file and brings the
// schema up to date.
func (d *SQLiteDatabase) OpenDatabase(ctx context.Context, filename string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dbOpen {
		return fmt.Errorf("database already open")
	}

	log.Info("opening database", "file", filename)

	db, err := sql.Open("sqlite", filename+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	d.db = db
	if err = d.runMigrations(ctx); err != nil {
		db.Close()
		d.db = nil
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.filename = filename
	d.dbOpen = true
	return nil
}

// CloseDatabase closes the database connection
func (d *SQLiteDatabase) CloseDatabase() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.dbOpen {
		return nil
	}
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	d.dbOpen = false
	d.filename = ""
	d.db = nil
	log.Info("database closed")
	return nil
}

// GetDatabaseOpen reports whether the database is open.
func (d *SQLiteDatabase) GetDatabaseOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dbOpen
}

func (d *SQLiteDatabase) GetDB() *sql.DB {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.db
}

// handle returns the open handle or ErrNotOpen.
func (d *SQLiteDatabase) handle() (*sql.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.dbOpen {
		return nil, ErrNotOpen
	}
	return d.db, nil
}

// SaveUser inserts or replaces a user row.
func (d *SQLiteDatabase) SaveUser(ctx context.Context, u UserRecord) error {
	db, err := d.handle()
	if err != nil {
		return err
	}

	var lastLogin sql.NullString
	if u.LastLogin != nil {
		lastLogin = sql.NullString{String: formatTime(*u.LastLogin), Valid: true}
	}

	query := `
	INSERT OR REPLACE INTO users
		(username, password_hash, created_at, last_login, login_count, reputation, is_active, failed_attempts)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
	_, err = db.ExecContext(ctx, query,
		u.Username, u.PasswordHash, formatTime(u.CreatedAt), lastLogin,
		u.LoginCount, u.Reputation, u.IsActive, u.FailedAttempts)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", u.Username, err)
	}
	return nil
}

const userColumns = `username, password_hash, created_at, last_login, login_count, reputation, is_active, failed_attempts`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (UserRecord, error) {
	var (
		u         UserRecord
		createdAt string
		lastLogin sql.NullString
	)
	if err := row.Scan(&u.Username, &u.PasswordHash, &createdAt, &lastLogin,
		&u.LoginCount, &u.Reputation, &u.IsActive, &u.FailedAttempts); err != nil {
		return UserRecord{}, err
	}

	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return UserRecord{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if lastLogin.Valid {
		t, err := parseTime(lastLogin.String)
		if err != nil {
			return UserRecord{}, fmt.Errorf("failed to parse last_login: %w", err)
		}
		u.LastLogin = &t
	}
	return u, nil
}

// LoadUser retrieves a user by name.
func (d *SQLiteDatabase) LoadUser(ctx context.Context, username string) (UserRecord, error) {
	db, err := d.handle()
	if err != nil {
		return UserRecord{}, err
	}

	row := db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?;`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRecord{}, ErrNotFound
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("failed to load user %s: %w", username, err)
	}
	return u, nil
}

// DeleteUser removes a user and their save slot.
func (d *SQLiteDatabase) DeleteUser(ctx context.Context, username string) error {
	db, err := d.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = ?;`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", username, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM saves WHERE username = ?;`, username); err != nil {
		return fmt.Errorf("failed to delete save slot for %s: %w", username, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}
	return nil
}

// ListUsers returns every user ordered by name.
func (d *SQLiteDatabase) ListUsers(ctx context.Context) ([]UserRecord, error) {
	db, err := d.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveSlot writes the user's save slot, replacing any previous one.
func (d *SQLiteDatabase) SaveSlot(ctx context.Context, s SlotRecord) error {
	db, err := d.handle()
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO saves (username, version, saved_at, payload) VALUES (?, ?, ?, ?);`
	if _, err := db.ExecContext(ctx, query, s.Username, s.Version, formatTime(s.SavedAt), s.Payload); err != nil {
		return fmt.Errorf("failed to save slot for %s: %w", s.Username, err)
	}
	log.Debug("save slot written", "username", s.Username, "bytes", len(s.Payload))
	return nil
}

func scanSlot(row rowScanner) (SlotRecord, error) {
	var (
		s       SlotRecord
		savedAt string
	)
	if err := row.Scan(&s.Username, &s.Version, &savedAt, &s.Payload); err != nil {
		return SlotRecord{}, err
	}
	t, err := parseTime(savedAt)
	if err != nil {
		return SlotRecord{}, fmt.Errorf("failed to parse saved_at: %w", err)
	}
	s.SavedAt = t
	return s, nil
}

// LoadSlot reads the user's save slot.
func (d *SQLiteDatabase) LoadSlot(ctx context.Context, username string) (SlotRecord, error) {
	db, err := d.handle()
	if err != nil {
		return SlotRecord{}, err
	}

	row := db.QueryRowContext(ctx, `SELECT username, version, saved_at, payload FROM saves WHERE username = ?;`, username)
	s, err := scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SlotRecord{}, ErrNotFound
	}
	if err != nil {
		return SlotRecord{}, fmt.Errorf("failed to load slot for %s: %w", username, err)
	}
	return s, nil
}

// DeleteSlot removes the user's save slot.
func (d *SQLiteDatabase) DeleteSlot(ctx context.Context, username string) error {
	db, err := d.handle()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM saves WHERE username = ?;`, username)
	if err != nil {
		return fmt.Errorf("failed to delete slot for %s: %w", username, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSlots returns every save slot, newest first.
func (d *SQLiteDatabase) ListSlots(ctx context.Context) ([]SlotRecord, error) {
	db, err := d.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT username, version, saved_at, payload FROM saves ORDER BY saved_at DESC, username;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var slots []SlotRecord
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
