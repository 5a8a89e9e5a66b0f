package notify

import (
	"errors"
	"fmt"
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/quantumstack/site/internal/events"
	"github.com/quantumstack/site/internal/logger"
	log "github.com/sirupsen/logrus"
	"strings"
)

type sender interface {
	Send(c botApi.Chattable) (botApi.Message, error)
}

// Telegram forwards site events to a single staff chat.
type Telegram struct {
	api    sender
	chatID int64
	bus    EventBus.Bus
}

func NewTelegram(token string, chatID int64, bus EventBus.Bus) (*Telegram, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}

	return newTelegram(api, chatID, bus)
}

func newTelegram(api sender, chatID int64, bus EventBus.Bus) (*Telegram, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	t := &Telegram{api: api, chatID: chatID, bus: bus}

	if err := bus.SubscribeAsync(events.ApplicationReceivedTopic, t.onApplicationReceived, false); err != nil {
		return nil, err
	}
	if err := bus.SubscribeAsync(events.ContactSubmittedTopic, t.onContactSubmitted, false); err != nil {
		return nil, err
	}
	return t, nil
}

// Stop waits for pending notifications and detaches from the bus.
func (t *Telegram) Stop() {
	t.bus.WaitAsync()
	_ = t.bus.Unsubscribe(events.ApplicationReceivedTopic, t.onApplicationReceived)
	_ = t.bus.Unsubscribe(events.ContactSubmittedTopic, t.onContactSubmitted)
}

func (t *Telegram) onApplicationReceived(event events.ApplicationReceived) {
	a := event.Application

	var b strings.Builder
	fmt.Fprintf(&b, "New application for \"%s\"\n", a.JobTitle)
	fmt.Fprintf(&b, "%s <%s>\n", a.FullName, a.Email)
	for _, line := range [][2]string{{"Phone", a.Phone}, {"LinkedIn", a.LinkedIn}, {"Portfolio", a.PortfolioURL}} {
		if line[1] != "" {
			fmt.Fprintf(&b, "%s: %s\n", line[0], line[1])
		}
	}
	b.WriteString("\n" + a.CoverLetter)

	t.send(b.String())
}

func (t *Telegram) onContactSubmitted(event events.ContactSubmitted) {
	t.send(fmt.Sprintf("New contact message from %s <%s>", event.Name, event.Email))
}

func (t *Telegram) send(text string) {
	msg := botApi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("error occured while sending message: %v", err)
	}
}
