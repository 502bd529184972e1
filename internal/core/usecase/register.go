package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
	"github.com/kirillkom/telegram-gemini-bot/internal/core/ports"
)

// RegisterUseCase creates a profile on first contact and asks the user to
// share their phone number. A repeated trigger leaves the stored profile,
// including any phone number, untouched.
type RegisterUseCase struct {
	profiles ports.ProfileStore
}

func NewRegisterUseCase(profiles ports.ProfileStore) *RegisterUseCase {
	return &RegisterUseCase{profiles: profiles}
}

func (uc *RegisterUseCase) Handle(ctx context.Context, event domain.InboundEvent) Outcome {
	created, err := uc.profiles.CreateIfAbsent(ctx, domain.UserProfile{
		ChatID:       event.ChatID,
		Username:     event.Username,
		FirstName:    event.FirstName,
		RegisteredAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("register_profile_failed", "chat_id", event.ChatID, "error", err)
		return reply(msgFallback)
	}
	if !created {
		return reply(msgAlreadyRegistered)
	}
	return Outcome{
		Messages:       []string{msgWelcome},
		RequestContact: true,
	}
}
