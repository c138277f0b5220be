package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/models"
	"github.com/arefin-dev/messwallet/internal/realtime"
	"github.com/arefin-dev/messwallet/internal/repository"
	"github.com/arefin-dev/messwallet/internal/storage"
)

// ChangePublisher announces a chat-table change to the realtime feed.
type ChangePublisher interface {
	Publish(ctx context.Context, table, action string)
}

// ChatService owns the house chat: messages plus their image, reaction,
// and seen child rows, joined in memory against the profile map. Every
// mutation publishes a change event; connected clients refetch.
type ChatService struct {
	chat     repository.ChatRepository
	profiles repository.ProfileRepository

	blobs      storage.BlobStore
	chatBucket string
	publisher  ChangePublisher
	logger     *zap.Logger
}

func NewChatService(
	chat repository.ChatRepository,
	profiles repository.ProfileRepository,
	blobs storage.BlobStore,
	chatBucket string,
	publisher ChangePublisher,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chat:       chat,
		profiles:   profiles,
		blobs:      blobs,
		chatBucket: chatBucket,
		publisher:  publisher,
		logger:     logger,
	}
}

// ListMessages fetches all messages ascending, then images, reactions, and
// seen rows by message-id set, and assembles them in memory.
func (s *ChatService) ListMessages(ctx context.Context) ([]models.ChatMessage, error) {
	messages, err := s.chat.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return messages, nil
	}

	messageIDs := make([]uuid.UUID, len(messages))
	for i, m := range messages {
		messageIDs[i] = m.ID
	}

	images, err := s.chat.ListImagesByMessageIDs(ctx, messageIDs)
	if err != nil {
		return nil, err
	}
	reactions, err := s.chat.ListReactionsByMessageIDs(ctx, messageIDs)
	if err != nil {
		return nil, err
	}
	seen, err := s.chat.ListSeenByMessageIDs(ctx, messageIDs)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	lookup := profileLookup(profiles)

	imagesByMessage := make(map[uuid.UUID][]models.ChatMessageImage)
	for _, img := range images {
		imagesByMessage[img.MessageID] = append(imagesByMessage[img.MessageID], img)
	}
	reactionsByMessage := make(map[uuid.UUID][]models.ChatReaction)
	for _, r := range reactions {
		if p, ok := lookup[r.UserID]; ok {
			r.UserName = p.FullName
			r.UserAvatar = p.AvatarURL
		}
		reactionsByMessage[r.MessageID] = append(reactionsByMessage[r.MessageID], r)
	}
	seenByMessage := make(map[uuid.UUID][]models.ChatSeen)
	for _, cs := range seen {
		if p, ok := lookup[cs.UserID]; ok {
			cs.UserName = p.FullName
			cs.UserAvatar = p.AvatarURL
		}
		seenByMessage[cs.MessageID] = append(seenByMessage[cs.MessageID], cs)
	}

	for i := range messages {
		m := &messages[i]
		if p, ok := lookup[m.SenderID]; ok {
			m.SenderName = p.FullName
			m.SenderAvatar = p.AvatarURL
		}
		m.Images = imagesByMessage[m.ID]
		if m.Images == nil {
			m.Images = []models.ChatMessageImage{}
		}
		m.Reactions = reactionsByMessage[m.ID]
		if m.Reactions == nil {
			m.Reactions = []models.ChatReaction{}
		}
		m.SeenBy = seenByMessage[m.ID]
		if m.SeenBy == nil {
			m.SeenBy = []models.ChatSeen{}
		}
	}
	return messages, nil
}

// ImageUpload is one attachment in a send.
type ImageUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// Send inserts the message row, then uploads each attachment in turn and
// inserts its image row, then marks the message seen by the sender. A
// failed upload is logged and skipped; the message keeps its other
// attachments. Nothing here is transactional.
func (s *ChatService) Send(ctx context.Context, p Principal, content *string, images []ImageUpload) (*models.ChatMessage, error) {
	message, err := s.chat.CreateMessage(ctx, p.UserID, content)
	if err != nil {
		return nil, err
	}

	for _, img := range images {
		key := fmt.Sprintf("%s/%d-%d-%s", p.UserID, time.Now().UnixMilli(), rand.Intn(1_000_000), img.FileName)
		url, err := s.blobs.Upload(ctx, s.chatBucket, key, img.Body, img.ContentType)
		if err != nil {
			s.logger.Warn("chat image upload failed",
				zap.String("message_id", message.ID.String()),
				zap.String("file", img.FileName),
				zap.Error(err),
			)
			continue
		}
		if _, err := s.chat.CreateImage(ctx, message.ID, url); err != nil {
			s.logger.Warn("chat image row insert failed",
				zap.String("message_id", message.ID.String()),
				zap.Error(err),
			)
		}
	}

	if err := s.chat.UpsertSeen(ctx, message.ID, p.UserID); err != nil {
		s.logger.Warn("sender seen insert failed", zap.Error(err))
	}

	s.publisher.Publish(ctx, "chat_messages", realtime.ActionInsert)
	return message, nil
}

// ToggleReaction adds the emoji for this user, or removes it if the same
// reaction already exists.
func (s *ChatService) ToggleReaction(ctx context.Context, p Principal, messageID uuid.UUID, reaction string) error {
	existing, err := s.chat.GetReaction(ctx, messageID, p.UserID, reaction)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := s.chat.DeleteReaction(ctx, existing.ID); err != nil {
			return err
		}
		s.publisher.Publish(ctx, "chat_reactions", realtime.ActionDelete)
		return nil
	}
	if _, err := s.chat.CreateReaction(ctx, messageID, p.UserID, reaction); err != nil {
		return err
	}
	s.publisher.Publish(ctx, "chat_reactions", realtime.ActionInsert)
	return nil
}

func (s *ChatService) MarkSeen(ctx context.Context, p Principal, messageID uuid.UUID) error {
	if err := s.chat.UpsertSeen(ctx, messageID, p.UserID); err != nil {
		return err
	}
	s.publisher.Publish(ctx, "chat_seen", realtime.ActionInsert)
	return nil
}

// DeleteMessage removes a message's blobs from storage, then the row;
// child rows cascade in the database.
func (s *ChatService) DeleteMessage(ctx context.Context, p Principal, messageID uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}

	images, err := s.chat.ListImagesByMessage(ctx, messageID)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(images))
	for _, img := range images {
		if key := s.blobs.KeyFromURL(s.chatBucket, img.ImageURL); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) > 0 {
		if err := s.blobs.Remove(ctx, s.chatBucket, keys); err != nil {
			s.logger.Warn("chat image blob removal failed", zap.Error(err))
		}
	}

	if err := s.chat.DeleteMessage(ctx, messageID); err != nil {
		return err
	}
	s.publisher.Publish(ctx, "chat_messages", realtime.ActionDelete)
	return nil
}

// DeleteAll wipes the whole chat: every stored blob, then every message.
func (s *ChatService) DeleteAll(ctx context.Context, p Principal) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}

	images, err := s.chat.ListAllImages(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(images))
	for _, img := range images {
		if key := s.blobs.KeyFromURL(s.chatBucket, img.ImageURL); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) > 0 {
		if err := s.blobs.Remove(ctx, s.chatBucket, keys); err != nil {
			s.logger.Warn("chat blob removal failed", zap.Error(err))
		}
	}

	if err := s.chat.DeleteAllMessages(ctx); err != nil {
		return err
	}
	s.publisher.Publish(ctx, "chat_messages", realtime.ActionDelete)
	return nil
}

// Media lists every image attachment newest first with sender info joined.
func (s *ChatService) Media(ctx context.Context) ([]models.ChatMessageImage, error) {
	images, err := s.chat.ListAllImages(ctx)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return images, nil
	}

	messages, err := s.chat.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	lookup := profileLookup(profiles)
	senderByMessage := make(map[uuid.UUID]uuid.UUID, len(messages))
	for _, m := range messages {
		senderByMessage[m.ID] = m.SenderID
	}

	for i := range images {
		if senderID, ok := senderByMessage[images[i].MessageID]; ok {
			if p, ok := lookup[senderID]; ok {
				images[i].SenderName = p.FullName
				images[i].SenderAvatar = p.AvatarURL
			}
		}
	}
	return images, nil
}
