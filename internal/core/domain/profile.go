package domain

import "time"

// UserProfile is the durable per-user record. ChatID is the platform-assigned
// identity and never changes after creation.
type UserProfile struct {
	ChatID       int64     `json:"chat_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ChatEntry is one recorded exchange. Entries are append-only and ordered
// by arrival.
type ChatEntry struct {
	UserInput   string    `json:"user_input"`
	BotResponse string    `json:"bot_response"`
	CreatedAt   time.Time `json:"created_at"`
}
