package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"home_dashboard/internal/logger"
	"home_dashboard/internal/models"
	"home_dashboard/internal/repository"
)

var ErrInvalidSection = errors.New("content_id and icon_id are required")

// SectionService flips collapsible panels and keeps them in sqlite.
type SectionService struct {
	repo repository.SectionRepo
	view *ViewStore
	log  *logger.Logger
}

func NewSectionService(repo repository.SectionRepo, view *ViewStore, log *logger.Logger) *SectionService {
	if log == nil {
		log = logger.Nop()
	}
	return &SectionService{repo: repo, view: view, log: log}
}

// Toggle flips the expanded flag of the panel. The view only changes once the
// new state is stored.
func (s *SectionService) Toggle(ctx context.Context, contentID, iconID string) (models.Section, error) {
	contentID = strings.TrimSpace(contentID)
	iconID = strings.TrimSpace(iconID)
	if contentID == "" || iconID == "" {
		return models.Section{}, ErrInvalidSection
	}

	sec, _ := s.view.Section(contentID)
	sec = models.Section{ContentID: contentID, IconID: iconID, Expanded: !sec.Expanded}

	if err := s.repo.Save(ctx, sec); err != nil {
		return models.Section{}, fmt.Errorf("save section %q: %w", contentID, err)
	}
	s.view.SetSections(sec)
	s.log.Debugw("section_toggled", "content_id", contentID, "expanded", sec.Expanded)
	return sec, nil
}

// Restore loads every stored panel into the view.
func (s *SectionService) Restore(ctx context.Context) error {
	sections, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list sections: %w", err)
	}
	s.view.SetSections(sections...)
	s.log.Infow("sections_restored", "count", len(sections))
	return nil
}
