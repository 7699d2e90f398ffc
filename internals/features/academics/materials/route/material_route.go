// file: internals/features/academics/materials/route/material_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	materialController "sekolahku_backend/internals/features/academics/materials/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func MaterialRoutes(app *fiber.App, db *gorm.DB) {
	ctl := materialController.NewMaterialController(db)

	materials := app.Group("/api/study-materials", authMw.AuthMiddleware(db))
	materials.Get("/", ctl.List)
	materials.Get("/:id/download", ctl.Download)

	staff := materials.Group("", authMw.OnlyRoles(constants.RoleErrorStaff("study materials"), constants.StaffRoles...))
	staff.Post("/", ctl.Upload)
	staff.Delete("/:id", ctl.Delete)
}
