package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
)

const (
	commandStart     = "start"
	commandWebSearch = "websearch"
)

// MapUpdate converts a platform update into an InboundEvent. The priority
// order makes the mapping total and mutually exclusive: document > photo >
// contact > command > text. Updates that carry none of these are ignored.
func MapUpdate(update tgbotapi.Update) (domain.InboundEvent, bool) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return domain.InboundEvent{}, false
	}

	event := domain.InboundEvent{
		ChatID:    msg.Chat.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
	}

	switch {
	case msg.Document != nil:
		event.Kind = domain.EventFileUpload
		event.File = domain.FileRef{
			Kind:     domain.FileDocument,
			ID:       msg.Document.FileID,
			Name:     msg.Document.FileName,
			MimeType: msg.Document.MimeType,
		}
	case len(msg.Photo) > 0:
		photo := pickLargestPhoto(msg.Photo)
		event.Kind = domain.EventFileUpload
		event.File = domain.FileRef{
			Kind:     domain.FilePhoto,
			ID:       photo.FileID,
			MimeType: "image/jpeg",
		}
	case msg.Contact != nil:
		event.Kind = domain.EventContactShare
		event.Phone = msg.Contact.PhoneNumber
	case msg.IsCommand():
		switch msg.Command() {
		case commandStart:
			event.Kind = domain.EventRegistration
		case commandWebSearch:
			event.Kind = domain.EventSearchCommand
			event.Text = normalizeQuery(msg.CommandArguments())
		default:
			return domain.InboundEvent{}, false
		}
	case msg.Text != "":
		event.Kind = domain.EventTextMessage
		event.Text = msg.Text
	default:
		return domain.InboundEvent{}, false
	}

	return event, true
}

// pickLargestPhoto selects the highest-resolution variant the platform
// offers for a single photo.
func pickLargestPhoto(items []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := items[0]
	for _, item := range items[1:] {
		if item.Width*item.Height > best.Width*best.Height {
			best = item
		}
	}
	return best
}

func normalizeQuery(args string) string {
	return strings.Join(strings.Fields(args), " ")
}
