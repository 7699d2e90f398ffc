// file: internals/features/reports/route/report_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	reportController "sekolahku_backend/internals/features/reports/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func ReportRoutes(app *fiber.App, db *gorm.DB) {
	ctl := reportController.NewReportController(db)

	reports := app.Group("/api/reports", authMw.AuthMiddleware(db))

	// The report card is also readable by the student and their
	// parents; the scope check lives in the controller.
	reports.Get("/report-card/:studentId", ctl.ReportCard)

	staff := reports.Group("", authMw.OnlyRoles(constants.RoleErrorStaff("reports"), constants.StaffRoles...))
	staff.Get("/attendance", ctl.Attendance)
	staff.Get("/exam-results", ctl.ExamResults)
	staff.Get("/fee-collection", ctl.FeeCollection)
}
