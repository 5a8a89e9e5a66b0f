package notify

import (
	"errors"
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(c botApi.Chattable) (botApi.Message, error) {
	args := m.Called(c)
	return botApi.Message{}, args.Error(0)
}

func messageContaining(chatID int64, parts ...string) any {
	return mock.MatchedBy(func(c botApi.Chattable) bool {
		msg, ok := c.(botApi.MessageConfig)
		if !ok || msg.ChatID != chatID {
			return false
		}
		for _, part := range parts {
			if !strings.Contains(msg.Text, part) {
				return false
			}
		}
		return true
	})
}

func Test_Telegram_ForwardsApplications(t *testing.T) {

	api := &mockSender{}
	api.On("Send", messageContaining(42, "Senior Full-Stack Developer", "Ada Lovelace <ada@example.com>",
		"LinkedIn: https://linkedin.com/in/ada", "I love compilers")).Return(nil).Once()

	bus := EventBus.New()
	notifier, err := newTelegram(api, 42, bus)
	require.NoError(t, err)

	bus.Publish(events.ApplicationReceivedTopic, events.ApplicationReceived{Application: entities.JobApplication{
		JobTitle:    "Senior Full-Stack Developer",
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		LinkedIn:    "https://linkedin.com/in/ada",
		CoverLetter: "I love compilers",
	}})
	notifier.Stop()

	api.AssertExpectations(t)
}

func Test_Telegram_SendErrorsAreSwallowed(t *testing.T) {

	api := &mockSender{}
	api.On("Send", messageContaining(7, "Grace <grace@example.com>")).Return(errors.New("forbidden")).Once()

	bus := EventBus.New()
	notifier, err := newTelegram(api, 7, bus)
	require.NoError(t, err)

	bus.Publish(events.ContactSubmittedTopic, events.ContactSubmitted{Name: "Grace", Email: "grace@example.com"})
	notifier.Stop()

	api.AssertExpectations(t)
}

func Test_Telegram_RequiresBus(t *testing.T) {
	_, err := newTelegram(&mockSender{}, 1, nil)
	assert.Error(t, err)
}
