package repository

import (
	"context"
	"database/sql"
	"time"

	"home_dashboard/internal/models"
)

// Operators stores dashboard operator accounts.
type Operators interface {
	Create(ctx context.Context, username, hash string) (int, error)
	// GetByUsername returns (nil, nil) for an unknown username.
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
}

type SectionRepo interface {
	Save(ctx context.Context, s models.Section) error
	Load(ctx context.Context, contentID string) (models.Section, bool, error)
	List(ctx context.Context) ([]models.Section, error)
}

type HistoryRepo interface {
	Append(ctx context.Context, e models.HistoryEntry) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.HistoryEntry, error)
}

type Repository struct {
	SectionRepo SectionRepo
	HistoryRepo HistoryRepo
	Operators   Operators
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SectionRepo: NewSectionSQLite(db),
		HistoryRepo: NewHistorySQLite(db),
		Operators:   NewOperatorSQLite(db),
	}
}
