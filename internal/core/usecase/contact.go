package usecase

import (
	"context"
	"log/slog"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
	"github.com/kirillkom/telegram-gemini-bot/internal/core/ports"
)

// SaveContactUseCase stores a shared phone number. It deliberately calls
// neither the provider nor the history recorder.
type SaveContactUseCase struct {
	profiles ports.ProfileStore
}

func NewSaveContactUseCase(profiles ports.ProfileStore) *SaveContactUseCase {
	return &SaveContactUseCase{profiles: profiles}
}

func (uc *SaveContactUseCase) Handle(ctx context.Context, event domain.InboundEvent) Outcome {
	if err := uc.profiles.UpdatePhone(ctx, event.ChatID, event.Phone); err != nil {
		slog.Error("save_contact_failed", "chat_id", event.ChatID, "error", err)
		return reply(msgFallback)
	}
	return reply(msgContactSaved)
}
