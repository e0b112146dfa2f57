package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"home_dashboard/internal/models"
)

type SectionSQLite struct {
	db *sql.DB
}

func NewSectionSQLite(db *sql.DB) *SectionSQLite {
	return &SectionSQLite{db: db}
}

const (
	upsertSectionSQL = `
		INSERT INTO dashboard_sections (content_id, icon_id, expanded, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(content_id) DO UPDATE SET
			icon_id=excluded.icon_id,
			expanded=excluded.expanded,
			updated_at=excluded.updated_at
	`

	selectSectionSQL = `
		SELECT content_id, icon_id, expanded
		FROM dashboard_sections WHERE content_id=?
	`

	selectSectionsSQL = `
		SELECT content_id, icon_id, expanded
		FROM dashboard_sections ORDER BY content_id ASC
	`
)

// Save inserts or updates the row keyed by ContentID.
func (r *SectionSQLite) Save(ctx context.Context, s models.Section) error {
	_, err := r.db.ExecContext(ctx, upsertSectionSQL,
		s.ContentID,
		s.IconID,
		s.Expanded,
		time.Now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

// Load returns the section and whether it exists.
func (r *SectionSQLite) Load(ctx context.Context, contentID string) (models.Section, bool, error) {
	var s models.Section
	err := r.db.QueryRowContext(ctx, selectSectionSQL, contentID).Scan(&s.ContentID, &s.IconID, &s.Expanded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Section{}, false, nil
		}
		return models.Section{}, false, err
	}
	return s, true, nil
}

// List returns every persisted section ordered by content id.
func (r *SectionSQLite) List(ctx context.Context) ([]models.Section, error) {
	rows, err := r.db.QueryContext(ctx, selectSectionsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ContentID, &s.IconID, &s.Expanded); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
