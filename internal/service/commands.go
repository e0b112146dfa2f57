package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	dashboard "home_dashboard"
	"home_dashboard/internal/logger"
	"home_dashboard/internal/metrics"
	"home_dashboard/internal/models"
	"home_dashboard/internal/render"
)

var ErrEmptyCommand = errors.New("command is empty")

// CommandService forwards operator commands to POST /enviar_comando.
type CommandService struct {
	backend     Backend
	view        *ViewStore
	history     *HistoryService
	appendReply bool
	log         *logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewCommandService(b Backend, view *ViewStore, history *HistoryService, st Settings, log *logger.Logger, m *metrics.Metrics) *CommandService {
	if log == nil {
		log = logger.Nop()
	}
	return &CommandService{
		backend:     b,
		view:        view,
		history:     history,
		appendReply: st.AppendReply,
		log:         log,
		metrics:     m,
		now:         time.Now,
	}
}

// Submit sends one command. The command line is added to the log before the
// request; the reply line and the save prompt follow the response.
func (s *CommandService) Submit(ctx context.Context, text string) (dashboard.CommandResponse, error) {
	command := strings.TrimSpace(text)
	if command == "" {
		s.view.ShowMessage(MsgEmptyCommand)
		s.metrics.CountCommand(metrics.ResultInvalid)
		return dashboard.CommandResponse{}, ErrEmptyCommand
	}

	s.view.AppendLog(render.LogItem(dashboard.LogEntry{
		Time:    s.now().Format(logTimeLayout),
		Kind:    kindCommand,
		Source:  sourceUser,
		Message: html.EscapeString(command),
	}))
	s.history.Record(ctx, models.HistoryCommand, command, nil)

	resp, err := s.backend.SendCommand(ctx, command)
	if err != nil {
		s.log.Errorw("command_submit_failed", "command", command, "error", err)
		s.view.ShowMessage(MsgCommandFailed)
		s.view.AppendLog(render.LogItem(systemLine(s.now(), fmt.Sprintf(fmtCommandFailed, err))))
		s.history.Record(ctx, models.HistoryError, err.Error(), map[string]any{"command": command})
		s.metrics.CountCommand(metrics.ResultError)
		return dashboard.CommandResponse{}, err
	}

	if s.appendReply {
		s.view.AppendLog(render.LogItem(dashboard.LogEntry{
			Time:    s.now().Format(logTimeLayout),
			Kind:    kindReply,
			Source:  sourceAI,
			Message: resp.ResponseText,
		}))
	}
	s.view.OfferPrompt(resp.ShouldOfferToSave)
	s.history.Record(ctx, models.HistoryReply, resp.ResponseText, map[string]any{
		"command":              command,
		"should_offer_to_save": resp.ShouldOfferToSave,
	})
	s.metrics.CountCommand(metrics.ResultOK)
	s.log.Infow("command_submitted", "command", command, "offer_save", resp.ShouldOfferToSave)
	return resp, nil
}
