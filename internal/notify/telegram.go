package notify

import (
	"fmt"
	"html"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier delivers alerts as Telegram messages to a single chat.
// Pending alerts live in memory; DispatchDue runs on the scheduler and
// sends everything whose fire time has passed.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    zerolog.Logger

	mu      sync.Mutex
	pending map[string]Alert
}

func NewTelegramNotifier(token string, chatID int64, log zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{
		bot:     bot,
		chatID:  chatID,
		log:     log.With().Str("component", "notify").Logger(),
		pending: make(map[string]Alert),
	}, nil
}

func (n *TelegramNotifier) Schedule(a Alert) {
	n.mu.Lock()
	n.pending[a.ID] = a
	n.mu.Unlock()
	n.log.Debug().Str("alert_id", a.ID).Time("fire_at", a.FireAt).Msg("scheduled alert")
}

func (n *TelegramNotifier) Cancel(id string) {
	n.mu.Lock()
	_, ok := n.pending[id]
	delete(n.pending, id)
	n.mu.Unlock()
	if ok {
		n.log.Debug().Str("alert_id", id).Msg("cancelled alert")
	}
}

// DispatchDue sends every alert whose fire time has passed and drops it
// from the pending set whether or not delivery succeeded.
func (n *TelegramNotifier) DispatchDue(now time.Time) {
	n.mu.Lock()
	var due []Alert
	for id, a := range n.pending {
		if !a.FireAt.After(now) {
			due = append(due, a)
			delete(n.pending, id)
		}
	}
	n.mu.Unlock()

	for _, a := range due {
		text := fmt.Sprintf("⏰ <b>%s</b>\n%s", html.EscapeString(a.Title), html.EscapeString(a.Body))
		if err := n.send(text); err != nil {
			n.log.Warn().Err(err).Str("alert_id", a.ID).Msg("alert delivery failed")
		}
	}
}

// SendSummary delivers a prebuilt daily summary message.
func (n *TelegramNotifier) SendSummary(text string) {
	if err := n.send(text); err != nil {
		n.log.Warn().Err(err).Msg("summary delivery failed")
	}
}

func (n *TelegramNotifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := n.bot.Send(msg)
	return err
}
