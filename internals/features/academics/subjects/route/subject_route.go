// file: internals/features/academics/subjects/route/subject_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	subjectController "sekolahku_backend/internals/features/academics/subjects/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func SubjectRoutes(app *fiber.App, db *gorm.DB) {
	ctl := subjectController.NewSubjectController(db)

	subjects := app.Group("/api/subjects", authMw.AuthMiddleware(db))
	subjects.Get("/", ctl.List)
	subjects.Get("/:id", ctl.Detail)

	admin := subjects.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("subject management"), constants.RoleAdmin))
	admin.Post("/", ctl.Create)
	admin.Put("/:id", ctl.Update)
	admin.Delete("/:id", ctl.Delete)
}
