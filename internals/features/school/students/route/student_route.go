// file: internals/features/school/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	studentController "sekolahku_backend/internals/features/school/students/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func StudentRoutes(app *fiber.App, db *gorm.DB) {
	ctl := studentController.NewStudentController(db)

	students := app.Group("/api/students", authMw.AuthMiddleware(db))
	students.Get("/", ctl.List)
	students.Get("/:id", ctl.Detail)

	admin := students.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("student management"), constants.RoleAdmin))
	admin.Post("/", ctl.Create)
	admin.Put("/:id", ctl.Update)
	admin.Delete("/:id", ctl.Delete)
	admin.Post("/:id/documents", ctl.UploadDocument)
	admin.Delete("/:id/documents/:docId", ctl.DeleteDocument)
}
