// file: internals/features/library/route/library_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	libraryController "sekolahku_backend/internals/features/library/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func LibraryRoutes(app *fiber.App, db *gorm.DB) {
	ctl := libraryController.NewLibraryController(db)

	library := app.Group("/api/library", authMw.AuthMiddleware(db))
	library.Get("/books", ctl.ListBooks)
	library.Get("/books/:id", ctl.BookDetail)
	library.Get("/issues", ctl.ListIssues)

	staff := library.Group("", authMw.OnlyRoles(constants.RoleErrorStaff("library circulation"), constants.StaffRoles...))
	staff.Post("/issues", ctl.IssueBook)
	staff.Put("/issues/:id/return", ctl.ReturnBook)

	admin := library.Group("", authMw.OnlyRoles(constants.RoleErrorAdmin("library catalogue"), constants.RoleAdmin))
	admin.Post("/books", ctl.CreateBook)
	admin.Put("/books/:id", ctl.UpdateBook)
	admin.Delete("/books/:id", ctl.DeleteBook)
}
