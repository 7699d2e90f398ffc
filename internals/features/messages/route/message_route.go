// file: internals/features/messages/route/message_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	messageController "sekolahku_backend/internals/features/messages/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func MessageRoutes(app *fiber.App, db *gorm.DB) {
	ctl := messageController.NewMessageController(db)

	messages := app.Group("/api/messages", authMw.AuthMiddleware(db))
	messages.Post("/", ctl.Send)
	messages.Get("/inbox", ctl.Inbox)
	messages.Get("/sent", ctl.Sent)
	messages.Get("/archived", ctl.Archived)
	messages.Get("/starred", ctl.Starred)
	messages.Get("/unread-count", ctl.UnreadCount)
	messages.Get("/thread/:threadId", ctl.Thread)
	messages.Put("/:id/read", ctl.MarkRead)
	messages.Put("/:id/star", ctl.ToggleStar)
	messages.Put("/:id/archive", ctl.ToggleArchive)
	messages.Delete("/:id", ctl.Delete)
}
