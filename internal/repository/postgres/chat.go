package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arefin-dev/messwallet/internal/models"
)

type ChatStore struct {
	pool *pgxpool.Pool
}

func NewChatStore(pool *pgxpool.Pool) *ChatStore {
	return &ChatStore{pool: pool}
}

func (s *ChatStore) CreateMessage(ctx context.Context, senderID uuid.UUID, content *string) (*models.ChatMessage, error) {
	query := `
		INSERT INTO chat_messages (sender_id, content, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		RETURNING id, sender_id, content, created_at, updated_at`

	var m models.ChatMessage
	err := s.pool.QueryRow(ctx, query, senderID, content).Scan(
		&m.ID,
		&m.SenderID,
		&m.Content,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chat message: %w", err)
	}
	return &m, nil
}

func (s *ChatStore) ListMessages(ctx context.Context) ([]models.ChatMessage, error) {
	query := `
		SELECT id, sender_id, content, created_at, updated_at
		FROM chat_messages
		ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0)
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.Content, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}
	return messages, nil
}

// DeleteMessage removes a message; image/reaction/seen rows go with it via
// FK cascade.
func (s *ChatStore) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM chat_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete chat message: %w", err)
	}
	return nil
}

func (s *ChatStore) DeleteAllMessages(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM chat_messages`)
	if err != nil {
		return fmt.Errorf("delete all chat messages: %w", err)
	}
	return nil
}

func (s *ChatStore) CreateImage(ctx context.Context, messageID uuid.UUID, imageURL string) (*models.ChatMessageImage, error) {
	query := `
		INSERT INTO chat_message_images (message_id, image_url, created_at)
		VALUES ($1, $2, now())
		RETURNING id, message_id, image_url, created_at`

	var img models.ChatMessageImage
	err := s.pool.QueryRow(ctx, query, messageID, imageURL).Scan(
		&img.ID, &img.MessageID, &img.ImageURL, &img.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert chat image: %w", err)
	}
	return &img, nil
}

func (s *ChatStore) ListImagesByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]models.ChatMessageImage, error) {
	query := `
		SELECT id, message_id, image_url, created_at
		FROM chat_message_images
		WHERE message_id = ANY($1)`
	return s.listImages(ctx, query, messageIDs)
}

func (s *ChatStore) ListImagesByMessage(ctx context.Context, messageID uuid.UUID) ([]models.ChatMessageImage, error) {
	query := `
		SELECT id, message_id, image_url, created_at
		FROM chat_message_images
		WHERE message_id = $1`
	return s.listImages(ctx, query, messageID)
}

func (s *ChatStore) ListAllImages(ctx context.Context) ([]models.ChatMessageImage, error) {
	query := `
		SELECT id, message_id, image_url, created_at
		FROM chat_message_images
		ORDER BY created_at DESC`
	return s.listImages(ctx, query)
}

func (s *ChatStore) listImages(ctx context.Context, query string, args ...any) ([]models.ChatMessageImage, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chat images: %w", err)
	}
	defer rows.Close()

	images := make([]models.ChatMessageImage, 0)
	for rows.Next() {
		var img models.ChatMessageImage
		if err := rows.Scan(&img.ID, &img.MessageID, &img.ImageURL, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat images: %w", err)
	}
	return images, nil
}

func (s *ChatStore) GetReaction(ctx context.Context, messageID, userID uuid.UUID, reaction string) (*models.ChatReaction, error) {
	query := `
		SELECT id, message_id, user_id, reaction, created_at
		FROM chat_reactions
		WHERE message_id = $1 AND user_id = $2 AND reaction = $3`

	var r models.ChatReaction
	err := s.pool.QueryRow(ctx, query, messageID, userID, reaction).Scan(
		&r.ID, &r.MessageID, &r.UserID, &r.Reaction, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat reaction: %w", err)
	}
	return &r, nil
}

func (s *ChatStore) CreateReaction(ctx context.Context, messageID, userID uuid.UUID, reaction string) (*models.ChatReaction, error) {
	query := `
		INSERT INTO chat_reactions (message_id, user_id, reaction, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, message_id, user_id, reaction, created_at`

	var r models.ChatReaction
	err := s.pool.QueryRow(ctx, query, messageID, userID, reaction).Scan(
		&r.ID, &r.MessageID, &r.UserID, &r.Reaction, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert chat reaction: %w", err)
	}
	return &r, nil
}

func (s *ChatStore) DeleteReaction(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM chat_reactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete chat reaction: %w", err)
	}
	return nil
}

func (s *ChatStore) ListReactionsByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]models.ChatReaction, error) {
	query := `
		SELECT id, message_id, user_id, reaction, created_at
		FROM chat_reactions
		WHERE message_id = ANY($1)`

	rows, err := s.pool.Query(ctx, query, messageIDs)
	if err != nil {
		return nil, fmt.Errorf("list chat reactions: %w", err)
	}
	defer rows.Close()

	reactions := make([]models.ChatReaction, 0)
	for rows.Next() {
		var r models.ChatReaction
		if err := rows.Scan(&r.ID, &r.MessageID, &r.UserID, &r.Reaction, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat reaction: %w", err)
		}
		reactions = append(reactions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat reactions: %w", err)
	}
	return reactions, nil
}

// UpsertSeen is idempotent: marking a message seen twice keeps the first
// timestamp.
func (s *ChatStore) UpsertSeen(ctx context.Context, messageID, userID uuid.UUID) error {
	query := `
		INSERT INTO chat_seen (message_id, user_id, seen_at)
		VALUES ($1, $2, now())
		ON CONFLICT (message_id, user_id) DO NOTHING`

	if _, err := s.pool.Exec(ctx, query, messageID, userID); err != nil {
		return fmt.Errorf("upsert chat seen: %w", err)
	}
	return nil
}

func (s *ChatStore) ListSeenByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]models.ChatSeen, error) {
	query := `
		SELECT id, message_id, user_id, seen_at
		FROM chat_seen
		WHERE message_id = ANY($1)`

	rows, err := s.pool.Query(ctx, query, messageIDs)
	if err != nil {
		return nil, fmt.Errorf("list chat seen: %w", err)
	}
	defer rows.Close()

	seen := make([]models.ChatSeen, 0)
	for rows.Next() {
		var cs models.ChatSeen
		if err := rows.Scan(&cs.ID, &cs.MessageID, &cs.UserID, &cs.SeenAt); err != nil {
			return nil, fmt.Errorf("scan chat seen: %w", err)
		}
		seen = append(seen, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat seen: %w", err)
	}
	return seen, nil
}
