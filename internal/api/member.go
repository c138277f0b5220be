package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/models"
	"github.com/arefin-dev/messwallet/internal/service"
)

// maxAvatarSize caps avatar uploads at 5 MB.
const maxAvatarSize = 5 << 20

type MemberHandler struct {
	members *service.MemberService
	logger  *zap.Logger
}

func NewMemberHandler(members *service.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{members: members, logger: logger}
}

// List handles GET /v1/members
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.members.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list members", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// Me handles GET /v1/me
func (h *MemberHandler) Me(c *gin.Context) {
	p := principal(c)
	profile, role, err := h.members.Me(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	roleName := models.RoleMember
	if role != nil {
		roleName = role.Role
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"role":       roleName,
		"is_admin":   roleName.IsAdmin(),
		"is_founder": roleName.IsFounder(),
	})
}

type updateProfileRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Phone    *string `json:"phone"`
}

// UpdateMe handles PATCH /v1/me
func (h *MemberHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.members.UpdateProfile(c.Request.Context(), principal(c), req.FullName, req.Phone); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// MarkWelcome handles POST /v1/me/welcome
func (h *MemberHandler) MarkWelcome(c *gin.Context) {
	if err := h.members.MarkWelcomeShown(c.Request.Context(), principal(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadAvatar handles POST /v1/me/avatar
func (h *MemberHandler) UploadAvatar(c *gin.Context) {
	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	if header.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar exceeds 5MB"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read avatar file"})
		return
	}
	defer file.Close()

	url, err := h.members.UploadAvatar(c.Request.Context(), principal(c),
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.logger.Error("avatar upload failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

type updateRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// UpdateRole handles PUT /v1/members/:id/role
func (h *MemberHandler) UpdateRole(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.members.UpdateRole(c.Request.Context(), principal(c), targetID, req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type reorderRequest struct {
	Order []uuid.UUID `json:"order" binding:"required"`
}

// Reorder handles PUT /v1/members/order
func (h *MemberHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.members.Reorder(c.Request.Context(), principal(c), req.Order); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reordered"})
}

// Delete handles DELETE /v1/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	if err := h.members.Delete(c.Request.Context(), principal(c), targetID); err != nil {
		h.logger.Error("member delete failed", zap.String("member_id", targetID.String()), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
