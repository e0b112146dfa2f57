package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"home_dashboard/internal/logger"
	"home_dashboard/internal/models"
	"home_dashboard/internal/repository"

	"github.com/google/uuid"
)

type HistoryService struct {
	repo repository.HistoryRepo
	log  *logger.Logger
}

func NewHistoryService(repo repository.HistoryRepo, log *logger.Logger) *HistoryService {
	if log == nil {
		log = logger.Nop()
	}
	return &HistoryService{repo: repo, log: log}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEntryType trims spaces and uppercases the type filter.
func normalizeEntryType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f HistoryFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	return from, to, normalizeEntryType(f.Type), nil
}

func (s *HistoryService) List(ctx context.Context, f HistoryFilter) ([]models.HistoryEntry, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, from, to, typ)
}

// Record appends an entry. Failures are logged, never returned.
func (s *HistoryService) Record(ctx context.Context, typ, description string, meta map[string]any) {
	e := models.HistoryEntry{
		EntryID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: description,
	}
	if meta != nil {
		e.Metadata = meta
	}
	if err := s.repo.Append(ctx, e); err != nil {
		s.log.Warnw("history_append_failed", "type", typ, "error", err)
	}
}
