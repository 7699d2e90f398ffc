// file: internals/features/fees/route/fee_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	feeController "sekolahku_backend/internals/features/fees/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func FeeRoutes(app *fiber.App, db *gorm.DB) {
	structureCtl := feeController.NewFeeStructureController(db)
	paymentCtl := feeController.NewPaymentController(db)

	// The gateway calls back without a session; AuthMiddleware skips
	// this path explicitly.
	app.Post("/api/fees/payments/notification", authMw.AuthMiddleware(db), paymentCtl.Notification)

	fees := app.Group("/api/fees", authMw.AuthMiddleware(db))

	fees.Get("/types", structureCtl.ListTypes)
	fees.Get("/structures", structureCtl.List)
	fees.Get("/payments", paymentCtl.List)
	fees.Get("/student/:id/dues", paymentCtl.StudentDues)
	fees.Post("/payments/online", paymentCtl.InitiateOnline)

	staff := fees.Group("", authMw.OnlyRoles(constants.RoleErrorStaff("fee collection"), constants.StaffRoles...))
	staff.Post("/payments", paymentCtl.Record)

	admin := fees.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("fee management"), constants.RoleAdmin))
	admin.Post("/types", structureCtl.CreateType)
	admin.Delete("/types/:id", structureCtl.DeleteType)
	admin.Post("/structures", structureCtl.Create)
	admin.Put("/structures/:id", structureCtl.Update)
	admin.Delete("/structures/:id", structureCtl.Delete)
}
