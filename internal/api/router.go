package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arefin-dev/messwallet/internal/db"
	"github.com/arefin-dev/messwallet/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Members       *MemberHandler
	Ledger        *LedgerHandler
	Meals         *MealHandler
	Budgets       *BudgetHandler
	Notifications *NotificationHandler
	Chat          *ChatHandler
	Admin         *AdminHandler
	WS            *WSHandler
}

// NewRouter mounts the full route surface. Health and auth are public;
// everything else sits behind the JWT middleware. The /admin group gets
// RequireAdmin on top, though the services re-check the role themselves.
func NewRouter(h Handlers, database *db.DB, jwtSecret string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/v1/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/v1/auth/signup", h.Auth.Signup)
	router.POST("/v1/auth/login", h.Auth.Login)

	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(jwtSecret))

	v1.GET("/me", h.Members.Me)
	v1.PATCH("/me", h.Members.UpdateMe)
	v1.POST("/me/avatar", h.Members.UploadAvatar)
	v1.POST("/me/welcome", h.Members.MarkWelcome)

	v1.GET("/members", h.Members.List)
	v1.PUT("/members/order", h.Members.Reorder)
	v1.PUT("/members/:id/role", h.Members.UpdateRole)
	v1.DELETE("/members/:id", h.Members.Delete)

	v1.GET("/expenses", h.Ledger.ListExpenses)
	v1.POST("/expenses", h.Ledger.CreateExpense)
	v1.DELETE("/expenses/:id", h.Ledger.DeleteExpense)
	v1.GET("/categories", h.Ledger.ListCategories)

	v1.GET("/deposits", h.Ledger.ListDeposits)
	v1.POST("/deposits", h.Ledger.CreateDeposit)
	v1.POST("/deposits/bulk", h.Ledger.BulkDeposit)
	v1.DELETE("/deposits/:id", h.Ledger.DeleteDeposit)

	v1.GET("/stats", h.Ledger.Stats)

	v1.GET("/meals", h.Meals.ListByDate)
	v1.GET("/meals/today", h.Meals.Today)
	v1.GET("/meals/history", h.Meals.History)
	v1.PUT("/meals", h.Meals.Upsert)

	v1.GET("/budgets", h.Budgets.List)
	v1.GET("/budgets/current", h.Budgets.Current)
	v1.POST("/budgets", h.Budgets.Create)
	v1.PUT("/budgets/:id", h.Budgets.Update)
	v1.DELETE("/budgets/:id", h.Budgets.Delete)

	v1.GET("/notifications", h.Notifications.List)
	v1.GET("/notifications/unread", h.Notifications.UnreadCount)
	v1.POST("/notifications/:id/read", h.Notifications.MarkRead)
	v1.POST("/notifications/read-all", h.Notifications.MarkAllRead)
	v1.POST("/notifications/broadcast", h.Notifications.Broadcast)

	v1.GET("/chat/messages", h.Chat.ListMessages)
	v1.POST("/chat/messages", h.Chat.SendMessage)
	v1.POST("/chat/messages/:id/reactions", h.Chat.ToggleReaction)
	v1.POST("/chat/messages/:id/seen", h.Chat.MarkSeen)
	v1.DELETE("/chat/messages/:id", h.Chat.DeleteMessage)
	v1.DELETE("/chat", h.Chat.DeleteAll)
	v1.GET("/chat/media", h.Chat.Media)

	v1.GET("/ws", h.WS.Serve)

	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.POST("/clear-data", h.Admin.ClearData)

	return router
}
