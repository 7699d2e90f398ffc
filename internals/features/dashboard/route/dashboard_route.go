// file: internals/features/dashboard/route/dashboard_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardController "sekolahku_backend/internals/features/dashboard/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func DashboardRoutes(app *fiber.App, db *gorm.DB) {
	ctl := dashboardController.NewDashboardController(db)

	app.Get("/api/dashboard", authMw.AuthMiddleware(db), ctl.Summary)
}
