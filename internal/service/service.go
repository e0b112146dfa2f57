package service

import (
	"context"
	"time"

	dashboard "home_dashboard"
	"home_dashboard/internal/logger"
	"home_dashboard/internal/metrics"
	"home_dashboard/internal/models"
	"home_dashboard/internal/repository"
)

// Authorization manages operator accounts and bearer tokens.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// View exposes the current dashboard snapshot and change notifications.
type View interface {
	Snapshot() models.View
	CloseMessage()
	Subscribe() (<-chan struct{}, func())
}

// Poller refreshes the view from the backend.
// Run stops when ctx is canceled.
type Poller interface {
	Step(ctx context.Context) error
	Run(ctx context.Context, interval time.Duration)
}

// Commands forwards operator commands to the backend.
type Commands interface {
	Submit(ctx context.Context, text string) (dashboard.CommandResponse, error)
}

// Confirmation drives the save prompt.
type Confirmation interface {
	Choose(ctx context.Context, choice string) (dashboard.SaveChoiceResponse, error)
}

// Sections toggles collapsible panels.
type Sections interface {
	Toggle(ctx context.Context, contentID, iconID string) (models.Section, error)
	Restore(ctx context.Context) error
}

// History exposes operator interactions with filtering access.
type History interface {
	List(ctx context.Context, f HistoryFilter) ([]models.HistoryEntry, error)
}

// Backend is the assistant API as seen by the services.
type Backend interface {
	FetchState(ctx context.Context) (dashboard.StateResponse, error)
	SendCommand(ctx context.Context, command string) (dashboard.CommandResponse, error)
	ConfirmSave(ctx context.Context, choice string) (dashboard.SaveChoiceResponse, error)
}

type Service struct {
	View
	Poller
	Commands
	Confirmation
	Sections
	History
	Authorization
}

// Deps groups what NewService wires together.
type Deps struct {
	Repos    *repository.Repository
	Backend  Backend
	Settings Settings
	Log      *logger.Logger
	Metrics  *metrics.Metrics
}

func NewService(d Deps) *Service {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	view := NewViewStore()
	history := NewHistoryService(d.Repos.HistoryRepo, d.Log)

	return &Service{
		View:          view,
		Poller:        NewPollerService(d.Backend, view, d.Settings, d.Log, d.Metrics),
		Commands:      NewCommandService(d.Backend, view, history, d.Settings, d.Log, d.Metrics),
		Confirmation:  NewConfirmationService(d.Backend, view, history, d.Log, d.Metrics),
		Sections:      NewSectionService(d.Repos.SectionRepo, view, d.Log),
		History:       history,
		Authorization: NewAuthService(d.Repos.Operators, d.Settings.SigningKey, d.Settings.TokenTTL),
	}
}
