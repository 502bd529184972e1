package ports

import (
	"context"
	"io"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
)

// ProfileStore persists user profiles and their chat history.
type ProfileStore interface {
	// CreateIfAbsent inserts a new profile and reports whether it was
	// created; an existing profile is left untouched.
	CreateIfAbsent(ctx context.Context, profile domain.UserProfile) (bool, error)
	UpdatePhone(ctx context.Context, chatID int64, phone string) error
	AppendChatEntry(ctx context.Context, chatID int64, entry domain.ChatEntry) error
	GetByChatID(ctx context.Context, chatID int64) (*domain.UserProfile, error)
	ListChatHistory(ctx context.Context, chatID int64, limit int) ([]domain.ChatEntry, error)
}

// FileSource retrieves the bytes behind a platform file reference.
type FileSource interface {
	Fetch(ctx context.Context, ref domain.FileRef) (io.ReadCloser, error)
}

// StagingStore holds downloaded payloads pending analysis.
type StagingStore interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// TextExtractor extracts plain text from a staged document.
type TextExtractor interface {
	Extract(ctx context.Context, key string) (string, error)
}

// Provider is the generative inference backend.
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	DescribeImage(ctx context.Context, instruction string, mimeType string, image []byte) (string, error)
}

// Chunker splits an outbound reply into platform-sized segments.
type Chunker interface {
	Split(text string) []string
}

// EventSink publishes staged-file lifecycle events for out-of-band cleanup.
type EventSink interface {
	PublishFileAnalyzed(ctx context.Context, stagingKey string) error
	SubscribeFileAnalyzed(ctx context.Context, handler func(context.Context, string) error) error
}
