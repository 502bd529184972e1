package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
)

// PlatformFileSource resolves file references against the Telegram file API
// and streams the payload over HTTP.
type PlatformFileSource struct {
	api    *tgbotapi.BotAPI
	client *http.Client
}

func NewPlatformFileSource(api *tgbotapi.BotAPI) *PlatformFileSource {
	return &PlatformFileSource{
		api:    api,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *PlatformFileSource) Fetch(ctx context.Context, ref domain.FileRef) (io.ReadCloser, error) {
	url, err := s.api.GetFileDirectURL(ref.ID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrFetch, "telegram.fetch", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.WrapError(domain.ErrFetch, "telegram.fetch", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrFetch, "telegram.fetch", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, domain.WrapError(domain.ErrFetch, "telegram.fetch",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return resp.Body, nil
}
