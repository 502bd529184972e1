package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
)

// Dispatcher routes one inbound event to its handler. State is per-event:
// nothing carries across dispatches except what the profile store holds.
type Dispatcher struct {
	register *RegisterUseCase
	contact  *SaveContactUseCase
	chat     *ChatUseCase
	analyze  *AnalyzeFileUseCase
	search   *WebSearchUseCase
}

func NewDispatcher(
	register *RegisterUseCase,
	contact *SaveContactUseCase,
	chat *ChatUseCase,
	analyze *AnalyzeFileUseCase,
	search *WebSearchUseCase,
) *Dispatcher {
	return &Dispatcher{
		register: register,
		contact:  contact,
		chat:     chat,
		analyze:  analyze,
		search:   search,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event domain.InboundEvent) Outcome {
	start := time.Now()

	var outcome Outcome
	switch event.Kind {
	case domain.EventRegistration:
		outcome = d.register.Handle(ctx, event)
	case domain.EventContactShare:
		outcome = d.contact.Handle(ctx, event)
	case domain.EventTextMessage:
		outcome = d.chat.Handle(ctx, event)
	case domain.EventFileUpload:
		outcome = d.analyze.Handle(ctx, event)
	case domain.EventSearchCommand:
		outcome = d.search.Handle(ctx, event)
	default:
		slog.Warn("dispatch_unknown_event_kind", "kind", int(event.Kind), "chat_id", event.ChatID)
		return Outcome{}
	}

	slog.Info("event_dispatched",
		"kind", event.Kind.String(),
		"chat_id", event.ChatID,
		"messages", len(outcome.Messages),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)
	return outcome
}
