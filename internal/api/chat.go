package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/service"
)

// maxChatImageSize caps each chat attachment at 10 MB.
const maxChatImageSize = 10 << 20

type ChatHandler struct {
	chat   *service.ChatService
	logger *zap.Logger
}

func NewChatHandler(chat *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// ListMessages handles GET /v1/chat/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	messages, err := h.chat.ListMessages(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list chat messages", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage handles POST /v1/chat/messages. The body is multipart:
// an optional "content" field and zero or more "images" files. A message
// needs at least one of the two.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}

	var content *string
	if values := form.Value["content"]; len(values) > 0 && values[0] != "" {
		content = &values[0]
	}
	files := form.File["images"]
	if content == nil && len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message needs content or images"})
		return
	}

	uploads := make([]service.ImageUpload, 0, len(files))
	for _, header := range files {
		if header.Size > maxChatImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds 10MB"})
			return
		}
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded image"})
			return
		}
		defer file.Close()
		uploads = append(uploads, service.ImageUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
	}

	message, err := h.chat.Send(c.Request.Context(), principal(c), content, uploads)
	if err != nil {
		h.logger.Error("failed to send chat message", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

type reactionRequest struct {
	Reaction string `json:"reaction" binding:"required"`
}

// ToggleReaction handles POST /v1/chat/messages/:id/reactions
func (h *ChatHandler) ToggleReaction(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.chat.ToggleReaction(c.Request.Context(), principal(c), messageID, req.Reaction); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "toggled"})
}

// MarkSeen handles POST /v1/chat/messages/:id/seen
func (h *ChatHandler) MarkSeen(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.chat.MarkSeen(c.Request.Context(), principal(c), messageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "seen"})
}

// DeleteMessage handles DELETE /v1/chat/messages/:id
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.chat.DeleteMessage(c.Request.Context(), principal(c), messageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// DeleteAll handles DELETE /v1/chat
func (h *ChatHandler) DeleteAll(c *gin.Context) {
	if err := h.chat.DeleteAll(c.Request.Context(), principal(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// Media handles GET /v1/chat/media
func (h *ChatHandler) Media(c *gin.Context) {
	images, err := h.chat.Media(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list chat media", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}
