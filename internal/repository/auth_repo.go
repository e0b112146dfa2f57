package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"home_dashboard/internal/models"
)

// ErrOperatorExists is returned by Create for a username already taken.
var ErrOperatorExists = errors.New("operator already exists")

const (
	insertOperatorSQL           = `INSERT INTO operators (username, password_hash) VALUES (?, ?)`
	selectOperatorByUsernameSQL = `SELECT id, username, password_hash FROM operators WHERE username = ?`
)

type OperatorSQLite struct {
	db *sql.DB
}

func NewOperatorSQLite(db *sql.DB) *OperatorSQLite {
	return &OperatorSQLite{db: db}
}

var _ Operators = (*OperatorSQLite)(nil)

func (r *OperatorSQLite) Create(ctx context.Context, username, hash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertOperatorSQL, username, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", ErrOperatorExists, username)
		}
		return 0, fmt.Errorf("insert operator %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("operator %q id: %w", username, err)
	}
	return int(id), nil
}

func (r *OperatorSQLite) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	op := &models.Operator{}
	err := r.db.QueryRowContext(ctx, selectOperatorByUsernameSQL, username).
		Scan(&op.ID, &op.Username, &op.PasswordHash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("load operator %q: %w", username, err)
	}
	return op, nil
}

// modernc reports constraint failures only through the message text.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
