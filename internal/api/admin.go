package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/service"
)

type AdminHandler struct {
	admin  *service.AdminService
	logger *zap.Logger
}

func NewAdminHandler(admin *service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// ClearData handles POST /v1/admin/clear-data
func (h *AdminHandler) ClearData(c *gin.Context) {
	if err := h.admin.ClearAllData(c.Request.Context(), principal(c)); err != nil {
		h.logger.Error("clear data failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
