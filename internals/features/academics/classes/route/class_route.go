// file: internals/features/academics/classes/route/class_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	classController "sekolahku_backend/internals/features/academics/classes/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func ClassRoutes(app *fiber.App, db *gorm.DB) {
	classCtl := &classController.ClassController{DB: db}
	sectionCtl := &classController.SectionController{DB: db}

	classes := app.Group("/api/classes", authMw.AuthMiddleware(db))
	classes.Get("/", classCtl.List)
	classes.Get("/:id", classCtl.Detail)

	classAdmin := classes.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("class management"), constants.RoleAdmin))
	classAdmin.Post("/", classCtl.Create)
	classAdmin.Put("/:id", classCtl.Update)
	classAdmin.Delete("/:id", classCtl.Delete)

	sections := app.Group("/api/sections", authMw.AuthMiddleware(db))
	sections.Get("/", sectionCtl.List)

	sectionAdmin := sections.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("section management"), constants.RoleAdmin))
	sectionAdmin.Post("/", sectionCtl.Create)
	sectionAdmin.Put("/:id", sectionCtl.Update)
	sectionAdmin.Delete("/:id", sectionCtl.Delete)
}
