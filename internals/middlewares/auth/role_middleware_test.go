package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/constants"
)

// appWithRole mounts a staff-gated route the way the feature route
// files compose it, with the caller's role injected into locals.
func appWithRole(role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_role", role)
		return c.Next()
	})
	staff := app.Group("", OnlyRoles(constants.RoleErrorStaff("attendance marking"), constants.StaffRoles...))
	staff.Get("/api/attendance/class/:id/summary", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestOnlyRolesClassSummary(t *testing.T) {
	cases := []struct {
		role string
		want int
	}{
		{constants.RoleAdmin, fiber.StatusOK},
		{constants.RoleTeacher, fiber.StatusOK},
		{constants.RoleStudent, fiber.StatusForbidden},
		{constants.RoleParent, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			app := appWithRole(tc.role)
			req := httptest.NewRequest(fiber.MethodGet, "/api/attendance/class/11111111-1111-1111-1111-111111111111/summary", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestOnlyRolesMissingRole(t *testing.T) {
	app := fiber.New()
	app.Get("/guarded", OnlyRoles("", constants.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
