package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"home_dashboard/internal/models"

	"github.com/google/uuid"
)

// sqliteTimeLayout is how timestamps are stored and compared.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const insertHistorySQL = `
		INSERT INTO dashboard_history (id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`

type HistorySQLite struct {
	db *sql.DB
}

func NewHistorySQLite(db *sql.DB) *HistorySQLite { return &HistorySQLite{db: db} }

// Append inserts a new entry. Missing EntryID or OccurredAt are filled in.
func (r *HistorySQLite) Append(ctx context.Context, e models.HistoryEntry) error {
	if e.EntryID == "" {
		e.EntryID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertHistorySQL,
		e.EntryID,
		e.OccurredAt.Format(sqliteTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		metaPtr,
	)
	return err
}

// List returns entries filtered by [from, to] (inclusive) and/or type, oldest first.
func (r *HistorySQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.HistoryEntry, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, occurred_at, type, message, meta FROM dashboard_history`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC, rowid ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.HistoryEntry, 0, 64)
	for rows.Next() {
		var e models.HistoryEntry
		var metaStr sql.NullString
		if err := rows.Scan(&e.EntryID, &e.OccurredAt, &e.Type, &e.Description, &metaStr); err != nil {
			return nil, err
		}
		e.OccurredAt = e.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				e.Metadata = v
			} else {
				e.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
