package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
)

// ProfileRepository persists user profiles and chat history in Postgres.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ProfileRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across bot/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083001)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS users (
	chat_id BIGINT PRIMARY KEY,
	username TEXT NOT NULL DEFAULT '',
	first_name TEXT NOT NULL DEFAULT '',
	phone_number TEXT,
	registered_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_history (
	id BIGSERIAL PRIMARY KEY,
	chat_id BIGINT NOT NULL REFERENCES users(chat_id),
	user_input TEXT NOT NULL,
	bot_response TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_history_chat_id_id ON chat_history(chat_id, id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ProfileRepository) CreateIfAbsent(ctx context.Context, profile domain.UserProfile) (bool, error) {
	registeredAt := profile.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (chat_id, username, first_name, registered_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (chat_id) DO NOTHING
`, profile.ChatID, profile.Username, profile.FirstName, registeredAt)
	if err != nil {
		return false, domain.WrapError(domain.ErrPersistence, "create profile", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, domain.WrapError(domain.ErrPersistence, "create profile", err)
	}
	return affected > 0, nil
}

func (r *ProfileRepository) UpdatePhone(ctx context.Context, chatID int64, phone string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users SET phone_number = $2 WHERE chat_id = $1
`, chatID, phone)
	if err != nil {
		return domain.WrapError(domain.ErrPersistence, "update phone", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(domain.ErrPersistence, "update phone", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrPersistence, "update phone", fmt.Errorf("profile %d not found", chatID))
	}
	return nil
}

func (r *ProfileRepository) AppendChatEntry(ctx context.Context, chatID int64, entry domain.ChatEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO chat_history (chat_id, user_input, bot_response, created_at)
VALUES ($1, $2, $3, $4)
`, chatID, entry.UserInput, entry.BotResponse, createdAt)
	if err != nil {
		return domain.WrapError(domain.ErrPersistence, "append chat entry", err)
	}
	return nil
}

func (r *ProfileRepository) GetByChatID(ctx context.Context, chatID int64) (*domain.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT chat_id, username, first_name, COALESCE(phone_number, ''), registered_at
FROM users
WHERE chat_id = $1
`, chatID)

	var profile domain.UserProfile
	if err := row.Scan(
		&profile.ChatID,
		&profile.Username,
		&profile.FirstName,
		&profile.PhoneNumber,
		&profile.RegisteredAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.WrapError(domain.ErrPersistence, "get profile", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) ListChatHistory(ctx context.Context, chatID int64, limit int) ([]domain.ChatEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT user_input, bot_response, created_at
FROM chat_history
WHERE chat_id = $1
ORDER BY id ASC
LIMIT $2
`, chatID, limit)
	if err != nil {
		return nil, domain.WrapError(domain.ErrPersistence, "list chat history", err)
	}
	defer rows.Close()

	out := make([]domain.ChatEntry, 0, limit)
	for rows.Next() {
		var entry domain.ChatEntry
		if err := rows.Scan(&entry.UserInput, &entry.BotResponse, &entry.CreatedAt); err != nil {
			return nil, domain.WrapError(domain.ErrPersistence, "scan chat entry", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrPersistence, "list chat history", err)
	}
	return out, nil
}
