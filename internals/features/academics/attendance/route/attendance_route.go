// file: internals/features/academics/attendance/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	attendanceController "sekolahku_backend/internals/features/academics/attendance/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func AttendanceRoutes(app *fiber.App, db *gorm.DB) {
	ctl := attendanceController.NewAttendanceController(db)

	attendance := app.Group("/api/attendance", authMw.AuthMiddleware(db))
	attendance.Get("/", ctl.List)
	attendance.Get("/student/:id/percentage", ctl.StudentPercentage)

	// The class-wide summary exposes every student's counts, so it is
	// staff-only; teachers are further narrowed to assigned classes in
	// the controller.
	staff := attendance.Group("", authMw.OnlyRoles(constants.RoleErrorStaff("attendance marking"), constants.StaffRoles...))
	staff.Get("/class/:id/summary", ctl.ClassSummary)
	staff.Post("/mark", ctl.Mark)
	staff.Put("/:id", ctl.Update)
}
