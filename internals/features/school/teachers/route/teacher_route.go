// file: internals/features/school/teachers/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	teacherController "sekolahku_backend/internals/features/school/teachers/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func TeacherRoutes(app *fiber.App, db *gorm.DB) {
	ctl := teacherController.NewTeacherController(db)

	teachers := app.Group("/api/teachers", authMw.AuthMiddleware(db))
	teachers.Get("/", ctl.List)
	teachers.Get("/:id", ctl.Detail)

	admin := teachers.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("teacher management"), constants.RoleAdmin))
	admin.Post("/", ctl.Create)
	admin.Put("/:id", ctl.Update)
	admin.Put("/:id/assignments", ctl.Assign)
	admin.Delete("/:id", ctl.Delete)
}
