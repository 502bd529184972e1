package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
	"github.com/kirillkom/telegram-gemini-bot/internal/core/ports"
)

// WebSearchUseCase answers the search command with a provider-generated
// summary. An empty query gets the usage hint without a provider call.
// Search outcomes are not written to history.
type WebSearchUseCase struct {
	provider ports.Provider
}

func NewWebSearchUseCase(provider ports.Provider) *WebSearchUseCase {
	return &WebSearchUseCase{provider: provider}
}

func (uc *WebSearchUseCase) Handle(ctx context.Context, event domain.InboundEvent) Outcome {
	query := strings.TrimSpace(event.Text)
	if query == "" {
		return reply(msgSearchUsage)
	}

	summary, err := uc.provider.GenerateText(ctx, promptSearchSummary+query)
	if err != nil {
		slog.Warn("search_provider_failed", "chat_id", event.ChatID, "error", err)
		return reply(fmt.Sprintf("Error during search: %s. Please try again.", err))
	}
	if summary == "" {
		summary = msgFallback
	}
	return reply(fmt.Sprintf(searchHeaderFormat, query, summary))
}
