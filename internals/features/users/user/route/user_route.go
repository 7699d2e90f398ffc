// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	userController "sekolahku_backend/internals/features/users/user/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &userController.UserController{DB: db}

	r := app.Group("/api/users",
		authMw.AuthMiddleware(db),
		authMw.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.RoleAdmin),
	)

	r.Get("/", ctl.List)
	r.Post("/", ctl.Create)
	r.Get("/:id", ctl.Detail)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
	r.Post("/:id/profile-image", ctl.UploadProfileImage)
}
