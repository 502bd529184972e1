package usecase

import (
	"context"
	"testing"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/chunking"
)

type dispatchFixture struct {
	dispatcher *Dispatcher
	profiles   *profileStoreFake
	provider   *providerFake
	source     *fileSourceFake
	staging    *stagingStoreFake
}

func newDispatchFixture() *dispatchFixture {
	profiles := newProfileStoreFake()
	provider := &providerFake{textResponse: "generated"}
	source := &fileSourceFake{content: "file-bytes"}
	staging := newStagingStoreFake()
	extractor := &extractorFake{text: "extracted"}

	dispatcher := NewDispatcher(
		NewRegisterUseCase(profiles),
		NewSaveContactUseCase(profiles),
		NewChatUseCase(provider, profiles),
		NewAnalyzeFileUseCase(source, staging, extractor, provider, chunking.NewSplitter(4000), &eventSinkFake{}, 2000),
		NewWebSearchUseCase(provider),
	)
	return &dispatchFixture{
		dispatcher: dispatcher,
		profiles:   profiles,
		provider:   provider,
		source:     source,
		staging:    staging,
	}
}

func TestDispatchRegistrationCreatesProfileAndPrompts(t *testing.T) {
	f := newDispatchFixture()

	outcome := f.dispatcher.Dispatch(context.Background(), domain.InboundEvent{
		Kind:      domain.EventRegistration,
		ChatID:    42,
		Username:  "alice",
		FirstName: "Alice",
	})
	if !outcome.RequestContact {
		t.Fatalf("expected contact-share prompt for new identity")
	}
	if len(outcome.Messages) != 1 || outcome.Messages[0] != msgWelcome {
		t.Fatalf("unexpected messages %+v", outcome.Messages)
	}

	profile := f.profiles.existing[42]
	if profile == nil || profile.Username != "alice" || profile.FirstName != "Alice" {
		t.Fatalf("profile not created correctly: %+v", profile)
	}
	if profile.RegisteredAt.IsZero() {
		t.Fatalf("registration timestamp missing")
	}
}

func TestDispatchRepeatedRegistrationDoesNotDuplicate(t *testing.T) {
	f := newDispatchFixture()
	event := domain.InboundEvent{Kind: domain.EventRegistration, ChatID: 42, Username: "alice"}

	f.dispatcher.Dispatch(context.Background(), event)
	f.dispatcher.Dispatch(context.Background(), domain.InboundEvent{
		Kind: domain.EventContactShare, ChatID: 42, Phone: "+15550001111",
	})

	outcome := f.dispatcher.Dispatch(context.Background(), event)
	if outcome.RequestContact {
		t.Fatalf("second registration must not prompt for contact")
	}
	if outcome.Messages[0] != msgAlreadyRegistered {
		t.Fatalf("expected already-registered reply, got %q", outcome.Messages[0])
	}
	if len(f.profiles.existing) != 1 {
		t.Fatalf("expected exactly one profile, got %d", len(f.profiles.existing))
	}
	if f.profiles.existing[42].PhoneNumber != "+15550001111" {
		t.Fatalf("phone number overwritten by repeated registration")
	}
}

func TestDispatchContactShareConfirmsWithoutProviderOrHistory(t *testing.T) {
	f := newDispatchFixture()
	f.dispatcher.Dispatch(context.Background(), domain.InboundEvent{Kind: domain.EventRegistration, ChatID: 42})

	outcome := f.dispatcher.Dispatch(context.Background(), domain.InboundEvent{
		Kind:   domain.EventContactShare,
		ChatID: 42,
		Phone:  "+15550001111",
	})
	if outcome.Messages[0] != msgContactSaved {
		t.Fatalf("expected confirmation, got %q", outcome.Messages[0])
	}
	if len(f.provider.prompts) != 0 || len(f.provider.instructions) != 0 {
		t.Fatalf("contact share must not call the provider")
	}
	if len(f.profiles.history[42]) != 0 {
		t.Fatalf("contact share must not be recorded to history")
	}
}

func TestDispatchTextMessageRepliesAndRecords(t *testing.T) {
	f := newDispatchFixture()

	outcome := f.dispatcher.Dispatch(context.Background(), domain.InboundEvent{
		Kind:   domain.EventTextMessage,
		ChatID: 42,
		Text:   "what is go?",
	})
	if outcome.Messages[0] != "generated" {
		t.Fatalf("unexpected reply %+v", outcome)
	}
	if len(f.profiles.history[42]) != 1 {
		t.Fatalf("expected one history entry")
	}
}

func TestDispatchSearchWithoutArgsSkipsProvider(t *testing.T) {
	f := newDispatchFixture()

	outcome := f.dispatcher.Dispatch(context.Background(), domain.InboundEvent{
		Kind:   domain.EventSearchCommand,
		ChatID: 42,
		Text:   "",
	})
	if outcome.Messages[0] != msgSearchUsage {
		t.Fatalf("expected usage hint, got %q", outcome.Messages[0])
	}
	if len(f.provider.prompts) != 0 {
		t.Fatalf("provider called without a query")
	}
}

func TestDispatchUnsupportedUploadRepliesImmediately(t *testing.T) {
	f := newDispatchFixture()

	outcome := f.dispatcher.Dispatch(context.Background(), domain.InboundEvent{
		Kind:   domain.EventFileUpload,
		ChatID: 42,
		File:   domain.FileRef{Kind: domain.FileDocument, Name: "tool.exe"},
	})
	if outcome.Messages[0] != msgUnsupportedFile {
		t.Fatalf("expected unsupported notice, got %q", outcome.Messages[0])
	}
	if f.source.fetches != 0 || len(f.staging.saved) != 0 {
		t.Fatalf("unsupported upload must not touch fetcher or staging")
	}
}

func TestDispatchFileUploadSkipsHistory(t *testing.T) {
	f := newDispatchFixture()
	f.provider.textResponse = "summary"

	f.dispatcher.Dispatch(context.Background(), domain.InboundEvent{
		Kind:   domain.EventFileUpload,
		ChatID: 42,
		File:   domain.FileRef{Kind: domain.FileDocument, Name: "report.pdf"},
	})
	if len(f.profiles.history[42]) != 0 {
		t.Fatalf("file uploads must not be recorded to history")
	}
}
