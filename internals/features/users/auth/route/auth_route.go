// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	authController "sekolahku_backend/internals/features/users/auth/controller"
	middlewares "sekolahku_backend/internals/middlewares"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &authController.AuthController{DB: db}

	r := app.Group("/api/auth")

	// public
	r.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	r.Post("/google", middlewares.LoginRateLimiter(), ctl.LoginGoogle)
	r.Post("/refresh-token", ctl.Refresh)
	r.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctl.ForgotPassword)
	r.Post("/reset-password/:token", ctl.ResetPassword)

	// authenticated
	priv := r.Group("", authMw.AuthMiddleware(db))
	priv.Get("/me", ctl.Me)
	priv.Post("/logout", ctl.Logout)
	priv.Post("/change-password", ctl.ChangePassword)
	priv.Post("/register",
		middlewares.RegisterRateLimiter(),
		authMw.OnlyRoles(constants.RoleErrorAdmin("user registration"), constants.RoleAdmin),
		ctl.Register,
	)
}
