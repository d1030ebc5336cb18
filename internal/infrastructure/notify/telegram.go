package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// messageSender is the part of *tgbotapi.BotAPI the sink uses.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink posts events to the volunteer group chat.
type TelegramSink struct {
	api    messageSender
	chatID int64
}

// NewTelegramSink authorises the bot token and targets chatID.
func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	return &TelegramSink{api: api, chatID: chatID}, nil
}

func (s *TelegramSink) Name() string { return "telegram" }

func (s *TelegramSink) Send(_ context.Context, e domain.DonationEvent) error {
	if _, err := s.api.Send(tgbotapi.NewMessage(s.chatID, Message(e))); err != nil {
		return fmt.Errorf("telegram: send %s: %w", e.Type, err)
	}
	return nil
}
