// file: internals/features/academics/sessions/route/session_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	sessionController "sekolahku_backend/internals/features/academics/sessions/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func SessionRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &sessionController.SessionController{DB: db}

	r := app.Group("/api/sessions", authMw.AuthMiddleware(db))
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.Detail)

	admin := r.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("session management"), constants.RoleAdmin))
	admin.Post("/", ctl.Create)
	admin.Put("/:id", ctl.Update)
	admin.Put("/:id/activate", ctl.Activate)
	admin.Delete("/:id", ctl.Delete)
}
