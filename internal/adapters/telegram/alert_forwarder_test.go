package telegram

import (
	"AdDashboard/internal/adapters/hub"
	"AdDashboard/internal/core/domain"
	"AdDashboard/internal/core/ports"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

// MockBotClient is a mock for the BotClientPort
type MockBotClient struct {
	mock.Mock
}

var _ ports.BotClientPort = (*MockBotClient)(nil)

func (m *MockBotClient) SendMessage(ctx context.Context, params ports.SendMessageParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}

// MockErrorReporter captures handler failures reported by the hub
type MockErrorReporter struct {
	mock.Mock
}

func (m *MockErrorReporter) Report(failure ports.HandlerFailure) {
	m.Called(failure)
}

// --- Tests ---

const chatID = int64(-100123)

func newForwarder(t *testing.T) (*AlertForwarder, ports.NotificationHub, *MockBotClient, *MockErrorReporter) {
	t.Helper()
	nopLogger := zerolog.Nop()
	reporter := new(MockErrorReporter)
	notifications := hub.NewNotificationHub(&nopLogger, reporter)
	client := new(MockBotClient)

	f := NewAlertForwarder(notifications, client, chatID, &nopLogger)
	require.NoError(t, f.Start(context.Background()))
	t.Cleanup(f.Stop)
	return f, notifications, client, reporter
}

func TestAlertForwarder_ActiveEntityChanged(t *testing.T) {
	_, notifications, client, _ := newForwarder(t)

	current := domain.EntityRef{Kind: domain.EntityCampaign, ID: uuid.New(), Name: "Spring_Sale"}
	change := domain.ActiveEntityChange{
		Kind:      domain.EntityCampaign,
		Current:   &current,
		ChangedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	client.On("SendMessage", mock.Anything, mock.MatchedBy(func(p ports.SendMessageParams) bool {
		return p.ChatID == chatID &&
			p.DisableNotification &&
			strings.HasPrefix(p.Text, "*Active campaign changed*") &&
			strings.Contains(p.Text, "Spring\\_Sale") &&
			!strings.Contains(p.Text, "*Was:*")
	})).Return(7, nil).Once()

	require.NoError(t, ports.Publish(notifications, ports.ActiveEntityChanged, change))
	client.AssertExpectations(t)
}

func TestAlertForwarder_ActiveEntityCleared(t *testing.T) {
	_, notifications, client, _ := newForwarder(t)

	prev := domain.EntityRef{Kind: domain.EntityAdGroup, ID: uuid.New()}
	client.On("SendMessage", mock.Anything, mock.MatchedBy(func(p ports.SendMessageParams) bool {
		return strings.HasPrefix(p.Text, "*Active ad\\_group cleared*") &&
			strings.Contains(p.Text, "*Was:* "+strings.ReplaceAll(prev.ID.String(), "-", "\\-"))
	})).Return(8, nil).Once()

	require.NoError(t, ports.Publish(notifications, ports.ActiveEntityChanged, domain.ActiveEntityChange{
		Kind:     domain.EntityAdGroup,
		Previous: &prev,
	}))
	client.AssertExpectations(t)
}

func TestAlertForwarder_FilterToggled(t *testing.T) {
	_, notifications, client, _ := newForwarder(t)

	client.On("SendMessage", mock.Anything, mock.MatchedBy(func(p ports.SendMessageParams) bool {
		return p.Text == "*Filter selected*\n"+
			"*Scope:* campaigns\\.status\n"+
			"*Option:* active\n"+
			"*Selection:* paused, active"
	})).Return(9, nil).Once()

	require.NoError(t, ports.Publish(notifications, ports.FilterToggled, domain.FilterToggle{
		Scope:     "campaigns.status",
		Option:    "active",
		Selected:  true,
		Selection: []string{"paused", "active"},
	}))
	client.AssertExpectations(t)
}

func TestAlertForwarder_SendFailureIsReported(t *testing.T) {
	_, notifications, client, reporter := newForwarder(t)

	sendErr := errors.New("telegram unavailable")
	client.On("SendMessage", mock.Anything, mock.Anything).Return(0, sendErr).Once()
	reporter.On("Report", mock.MatchedBy(func(f ports.HandlerFailure) bool {
		return f.Channel == ports.FilterToggled.Name() && errors.Is(f.Err, sendErr)
	})).Once()

	require.NoError(t, ports.Publish(notifications, ports.FilterToggled, domain.FilterToggle{Scope: "s", Option: "o"}))
	client.AssertExpectations(t)
	reporter.AssertExpectations(t)
}

func TestAlertForwarder_Stop(t *testing.T) {
	f, notifications, client, _ := newForwarder(t)

	f.Stop()
	f.Stop() // idempotent

	require.NoError(t, ports.Publish(notifications, ports.FilterToggled, domain.FilterToggle{Scope: "s", Option: "o"}))
	client.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)

	// Can be started again after Stop
	require.NoError(t, f.Start(context.Background()))
}

func TestAlertForwarder_StartTwice(t *testing.T) {
	f, _, _, _ := newForwarder(t)
	assert.Error(t, f.Start(context.Background()))
}
