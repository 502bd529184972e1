package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
)

type profileStoreFake struct {
	existing  map[int64]*domain.UserProfile
	history   map[int64][]domain.ChatEntry
	createErr error
	appendErr error
	phoneErr  error

	createCalls int
	phoneCalls  []string
}

func newProfileStoreFake() *profileStoreFake {
	return &profileStoreFake{
		existing: make(map[int64]*domain.UserProfile),
		history:  make(map[int64][]domain.ChatEntry),
	}
}

func (f *profileStoreFake) CreateIfAbsent(_ context.Context, profile domain.UserProfile) (bool, error) {
	f.createCalls++
	if f.createErr != nil {
		return false, f.createErr
	}
	if _, ok := f.existing[profile.ChatID]; ok {
		return false, nil
	}
	copyProfile := profile
	f.existing[profile.ChatID] = &copyProfile
	return true, nil
}

func (f *profileStoreFake) UpdatePhone(_ context.Context, chatID int64, phone string) error {
	f.phoneCalls = append(f.phoneCalls, phone)
	if f.phoneErr != nil {
		return f.phoneErr
	}
	if profile, ok := f.existing[chatID]; ok {
		profile.PhoneNumber = phone
	}
	return nil
}

func (f *profileStoreFake) AppendChatEntry(_ context.Context, chatID int64, entry domain.ChatEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.history[chatID] = append(f.history[chatID], entry)
	return nil
}

func (f *profileStoreFake) GetByChatID(_ context.Context, chatID int64) (*domain.UserProfile, error) {
	return f.existing[chatID], nil
}

func (f *profileStoreFake) ListChatHistory(_ context.Context, chatID int64, _ int) ([]domain.ChatEntry, error) {
	return f.history[chatID], nil
}

type providerFake struct {
	textResponse  string
	textErr       error
	imageResponse string
	imageErr      error

	prompts      []string
	instructions []string
	images       [][]byte
}

func (f *providerFake) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.textResponse, nil
}

func (f *providerFake) DescribeImage(_ context.Context, instruction string, _ string, image []byte) (string, error) {
	f.instructions = append(f.instructions, instruction)
	f.images = append(f.images, image)
	if f.imageErr != nil {
		return "", f.imageErr
	}
	return f.imageResponse, nil
}

type fileSourceFake struct {
	content string
	err     error
	fetches int
}

func (f *fileSourceFake) Fetch(context.Context, domain.FileRef) (io.ReadCloser, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

type stagingStoreFake struct {
	saved   map[string]string
	saveErr error
	openErr error
}

func newStagingStoreFake() *stagingStoreFake {
	return &stagingStoreFake{saved: make(map[string]string)}
}

func (f *stagingStoreFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.saved[key] = string(raw)
	return nil
}

func (f *stagingStoreFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	content, ok := f.saved[key]
	if !ok {
		return nil, errors.New("not staged")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (f *stagingStoreFake) Remove(_ context.Context, key string) error {
	delete(f.saved, key)
	return nil
}

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type eventSinkFake struct {
	published []string
	err       error
}

func (f *eventSinkFake) PublishFileAnalyzed(_ context.Context, stagingKey string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, stagingKey)
	return nil
}

func (f *eventSinkFake) SubscribeFileAnalyzed(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}
