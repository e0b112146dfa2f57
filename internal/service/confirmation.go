package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dashboard "home_dashboard"
	"home_dashboard/internal/logger"
	"home_dashboard/internal/metrics"
	"home_dashboard/internal/models"
)

var (
	ErrInvalidChoice    = errors.New(`choice must be "yes" or "no"`)
	ErrAlreadySubmitted = errors.New("a save choice was already submitted for this prompt")
)

// ConfirmationService sends the operator's answer to the save prompt.
type ConfirmationService struct {
	backend Backend
	view    *ViewStore
	history *HistoryService
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewConfirmationService(b Backend, view *ViewStore, history *HistoryService, log *logger.Logger, m *metrics.Metrics) *ConfirmationService {
	if log == nil {
		log = logger.Nop()
	}
	return &ConfirmationService{backend: b, view: view, history: history, log: log, metrics: m}
}

// Choose posts the choice at most once per prompt. A second call for the same
// prompt returns ErrAlreadySubmitted without any request.
func (s *ConfirmationService) Choose(ctx context.Context, choice string) (dashboard.SaveChoiceResponse, error) {
	choice = strings.ToLower(strings.TrimSpace(choice))
	if choice != dashboard.ChoiceYes && choice != dashboard.ChoiceNo {
		s.metrics.CountSaveChoice("invalid", metrics.ResultInvalid)
		return dashboard.SaveChoiceResponse{}, ErrInvalidChoice
	}

	if !s.view.BeginChoice() {
		s.metrics.CountSaveChoice(choice, metrics.ResultIgnored)
		s.log.Debugw("save_choice_ignored", "choice", choice)
		return dashboard.SaveChoiceResponse{}, ErrAlreadySubmitted
	}

	resp, err := s.backend.ConfirmSave(ctx, choice)
	if err != nil {
		s.log.Errorw("save_choice_failed", "choice", choice, "error", err)
		s.view.ShowMessage(fmt.Sprintf(fmtSaveFailed, err))
		s.history.Record(ctx, models.HistoryError, err.Error(), map[string]any{"choice": choice})
		s.metrics.CountSaveChoice(choice, metrics.ResultError)
		return dashboard.SaveChoiceResponse{}, err
	}

	s.view.ShowMessage(resp.Message)
	s.history.Record(ctx, models.HistorySaveChoice, choice, map[string]any{"message": resp.Message})
	s.metrics.CountSaveChoice(choice, metrics.ResultOK)
	s.log.Infow("save_choice_sent", "choice", choice)
	return resp, nil
}
