package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/userboard/userboard/internal/domain/entity"
	"github.com/userboard/userboard/internal/domain/repository"
)

// ErrStore marks any failure of the backing store (open, SQL, commit).
var ErrStore = errors.New("user store failure")

const createTableSQL = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	name TEXT,
	username TEXT,
	email TEXT,
	phone TEXT,
	website TEXT
)`

// UserRepository persists users in a single-table SQLite file.
//
// Connections are scoped to one operation: each call opens the file and
// closes it on every exit path. Nothing holds a process-wide handle.
type UserRepository struct {
	path string
}

func NewUserRepository(path string) *UserRepository {
	return &UserRepository{path: path}
}

func (r *UserRepository) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStore, r.path, err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ensure table: %v", ErrStore, err)
	}
	return db, nil
}

// UpsertAll writes every user as a whole-row INSERT OR REPLACE inside one
// transaction. Previously stored rows whose ids are absent from users are
// not deleted; the table only grows or updates.
func (r *UserRepository) UpsertAll(ctx context.Context, users []entity.User) error {
	db, err := r.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStore, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO users (id, name, username, email, phone, website)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: prepare upsert: %v", ErrStore, err)
	}
	defer func() { _ = stmt.Close() }()

	for _, u := range users {
		if _, err := stmt.ExecContext(ctx, u.ID, u.Name, u.Username, u.Email, u.Phone, u.Website); err != nil {
			return fmt.Errorf("%w: upsert row: %v", ErrStore, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStore, err)
	}
	return nil
}

// ReadAll returns all rows in the store's natural iteration order.
func (r *UserRepository) ReadAll(ctx context.Context) ([]entity.User, error) {
	db, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `SELECT id, name, username, email, phone, website FROM users`)
	if err != nil {
		return nil, fmt.Errorf("%w: select: %v", ErrStore, err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]entity.User, 0)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Website); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrStore, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate: %v", ErrStore, err)
	}
	return users, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
