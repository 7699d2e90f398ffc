// file: internals/features/notices/route/notice_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	noticeController "sekolahku_backend/internals/features/notices/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func NoticeRoutes(app *fiber.App, db *gorm.DB) {
	ctl := noticeController.NewNoticeController(db)

	notices := app.Group("/api/notices", authMw.AuthMiddleware(db))
	notices.Get("/", ctl.List)
	notices.Get("/:id", ctl.Detail)

	// Teachers may create notices, but only targeted at their own
	// classes; the controller enforces the targeting.
	staff := notices.Group("", authMw.OnlyRoles(constants.RoleErrorStaff("notice publishing"), constants.StaffRoles...))
	staff.Post("/", ctl.Create)

	admin := notices.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("notice management"), constants.RoleAdmin))
	admin.Put("/:id", ctl.Update)
	admin.Delete("/:id", ctl.Delete)
}
