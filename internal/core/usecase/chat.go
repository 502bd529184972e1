package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
	"github.com/kirillkom/telegram-gemini-bot/internal/core/ports"
)

// ChatUseCase forwards a text message to the provider and appends the
// exchange to the user's history. The reply is computed first; a history
// write failure is logged and never suppresses the reply.
type ChatUseCase struct {
	provider ports.Provider
	profiles ports.ProfileStore
}

func NewChatUseCase(provider ports.Provider, profiles ports.ProfileStore) *ChatUseCase {
	return &ChatUseCase{
		provider: provider,
		profiles: profiles,
	}
}

func (uc *ChatUseCase) Handle(ctx context.Context, event domain.InboundEvent) Outcome {
	botResponse, err := uc.provider.GenerateText(ctx, event.Text)
	if err != nil || botResponse == "" {
		if err != nil {
			slog.Warn("chat_provider_failed", "chat_id", event.ChatID, "error", err)
		}
		botResponse = msgFallback
	}

	entry := domain.ChatEntry{
		UserInput:   event.Text,
		BotResponse: botResponse,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.profiles.AppendChatEntry(ctx, event.ChatID, entry); err != nil {
		slog.Error("chat_history_append_failed", "chat_id", event.ChatID, "error", err)
	}

	return reply(botResponse)
}
