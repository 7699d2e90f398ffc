// file: internals/features/academics/exams/route/exam_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	examController "sekolahku_backend/internals/features/academics/exams/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func ExamRoutes(app *fiber.App, db *gorm.DB) {
	examCtl := examController.NewExamController(db)
	markCtl := examController.NewMarkController(db)

	exams := app.Group("/api/exams", authMw.AuthMiddleware(db))

	exams.Get("/types", examCtl.ListTypes)
	typeAdmin := exams.Group("/types", authMw.OnlyRoles(constants.RoleErrorAdmin("exam types"), constants.RoleAdmin))
	typeAdmin.Post("/", examCtl.CreateType)
	typeAdmin.Delete("/:id", examCtl.DeleteType)

	exams.Get("/marks/student/:studentId", markCtl.ListByStudent)

	exams.Get("/", examCtl.List)
	exams.Get("/:id", examCtl.Detail)
	exams.Get("/:id/marks", markCtl.ListByExam)

	staff := exams.Group("", authMw.OnlyRoles(constants.RoleErrorStaff("exam management"), constants.StaffRoles...))
	staff.Post("/:id/marks", markCtl.BulkEnter)

	admin := exams.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("exam scheduling"), constants.RoleAdmin))
	admin.Post("/", examCtl.Create)
	admin.Put("/:id", examCtl.Update)
	admin.Delete("/:id", examCtl.Delete)
}
