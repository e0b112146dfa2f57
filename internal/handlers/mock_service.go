package handlers

import (
	"context"
	"net/http"
	"time"

	dashboard "home_dashboard"
	"home_dashboard/internal/models"
	"home_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockCommands struct {
	resp     dashboard.CommandResponse
	err      error
	lastText string
	calls    int
}

func (m *mockCommands) Submit(ctx context.Context, text string) (dashboard.CommandResponse, error) {
	m.calls++
	m.lastText = text
	return m.resp, m.err
}

type mockConfirmation struct {
	resp       dashboard.SaveChoiceResponse
	err        error
	lastChoice string
}

func (m *mockConfirmation) Choose(ctx context.Context, choice string) (dashboard.SaveChoiceResponse, error) {
	m.lastChoice = choice
	return m.resp, m.err
}

type mockSections struct {
	err         error
	lastContent string
	lastIcon    string
}

func (m *mockSections) Toggle(ctx context.Context, contentID, iconID string) (models.Section, error) {
	m.lastContent = contentID
	m.lastIcon = iconID
	if m.err != nil {
		return models.Section{}, m.err
	}
	return models.Section{ContentID: contentID, IconID: iconID, Expanded: true}, nil
}

func (m *mockSections) Restore(ctx context.Context) error { return nil }

type mockPoller struct {
	err   error
	steps int
}

func (m *mockPoller) Step(ctx context.Context) error {
	m.steps++
	return m.err
}

func (m *mockPoller) Run(ctx context.Context, interval time.Duration) {}

type mockHistory struct {
	resp     []models.HistoryEntry
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockHistory) List(ctx context.Context, f service.HistoryFilter) ([]models.HistoryEntry, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	if s.View == nil {
		s.View = service.NewViewStore()
	}
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
