package telegram

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
	"github.com/kirillkom/telegram-gemini-bot/internal/core/usecase"
	"github.com/kirillkom/telegram-gemini-bot/internal/observability/metrics"
)

// Bot runs the long-polling loop: updates in, dispatcher outcomes out.
// Each update is handled on its own goroutine so one user's slow provider
// call does not stall another user's events.
type Bot struct {
	api         *tgbotapi.BotAPI
	dispatcher  *usecase.Dispatcher
	limiter     *ChatLimiter
	metrics     *metrics.BotMetrics
	pollTimeout int
}

func NewBot(
	api *tgbotapi.BotAPI,
	dispatcher *usecase.Dispatcher,
	limiter *ChatLimiter,
	botMetrics *metrics.BotMetrics,
	pollTimeout int,
) *Bot {
	if pollTimeout <= 0 {
		pollTimeout = 30
	}
	return &Bot{
		api:         api,
		dispatcher:  dispatcher,
		limiter:     limiter,
		metrics:     botMetrics,
		pollTimeout: pollTimeout,
	}
}

func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	slog.Info("bot_polling_started", "username", b.api.Self.UserName)

	var wg sync.WaitGroup
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			wg.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				wg.Wait()
				return nil
			}
			event, ok := MapUpdate(update)
			if !ok {
				continue
			}
			if b.limiter != nil && !b.limiter.Allow(event.ChatID) {
				slog.Warn("event_rate_limited", "chat_id", event.ChatID, "kind", event.Kind.String())
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.handle(ctx, event)
			}()
		}
	}
}

func (b *Bot) handle(ctx context.Context, event domain.InboundEvent) {
	start := time.Now()
	if b.metrics != nil {
		b.metrics.StartEvent()
		defer func() {
			b.metrics.FinishEvent(event.Kind.String(), time.Since(start))
		}()
	}

	outcome := b.dispatcher.Dispatch(ctx, event)
	b.send(event.ChatID, outcome)
}

// send delivers the outcome messages in order; a failed send is logged and
// does not abort the remaining segments.
func (b *Bot) send(chatID int64, outcome usecase.Outcome) {
	for i, text := range outcome.Messages {
		msg := tgbotapi.NewMessage(chatID, text)
		if outcome.RequestContact && i == 0 {
			msg.ReplyMarkup = tgbotapi.NewOneTimeReplyKeyboard(
				tgbotapi.NewKeyboardButtonRow(
					tgbotapi.NewKeyboardButtonContact("Share Contact"),
				),
			)
		}
		if _, err := b.api.Send(msg); err != nil {
			slog.Error("send_message_failed", "chat_id", chatID, "segment", i, "error", err)
			if b.metrics != nil {
				b.metrics.SendError()
			}
		}
	}
}
