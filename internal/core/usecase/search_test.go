package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
)

func searchEvent(query string) domain.InboundEvent {
	return domain.InboundEvent{
		Kind:   domain.EventSearchCommand,
		ChatID: 42,
		Text:   query,
	}
}

func TestSearchEmptyQueryReturnsUsageHint(t *testing.T) {
	provider := &providerFake{}
	uc := NewWebSearchUseCase(provider)

	for _, query := range []string{"", "   "} {
		outcome := uc.Handle(context.Background(), searchEvent(query))
		if len(outcome.Messages) != 1 || outcome.Messages[0] != msgSearchUsage {
			t.Fatalf("expected usage hint for %q, got %+v", query, outcome)
		}
	}
	if len(provider.prompts) != 0 {
		t.Fatalf("provider called for empty query")
	}
}

func TestSearchFormatsHeaderAndBody(t *testing.T) {
	provider := &providerFake{textResponse: "three results about go"}
	uc := NewWebSearchUseCase(provider)

	outcome := uc.Handle(context.Background(), searchEvent("golang generics"))
	want := fmt.Sprintf(searchHeaderFormat, "golang generics", "three results about go")
	if len(outcome.Messages) != 1 || outcome.Messages[0] != want {
		t.Fatalf("unexpected reply %+v", outcome)
	}
	if !strings.Contains(provider.prompts[0], "golang generics") {
		t.Fatalf("query missing from prompt %q", provider.prompts[0])
	}
}

func TestSearchProviderErrorReported(t *testing.T) {
	provider := &providerFake{textErr: errors.New("backend gone")}
	uc := NewWebSearchUseCase(provider)

	outcome := uc.Handle(context.Background(), searchEvent("anything"))
	if !strings.HasPrefix(outcome.Messages[0], "Error during search:") {
		t.Fatalf("expected search error reply, got %q", outcome.Messages[0])
	}
}

func TestSearchEmptyProviderResponseFallsBack(t *testing.T) {
	provider := &providerFake{textResponse: ""}
	uc := NewWebSearchUseCase(provider)

	outcome := uc.Handle(context.Background(), searchEvent("query"))
	want := fmt.Sprintf(searchHeaderFormat, "query", msgFallback)
	if outcome.Messages[0] != want {
		t.Fatalf("expected header with fallback body, got %q", outcome.Messages[0])
	}
}
