// file: internals/helpers/auth/locals.go
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// Principal is the authenticated user attached to the request by the JWT
// middleware. Ownership links (student profile, children, teaching
// assignments) are resolved lazily per request, never cached across requests.
type Principal struct {
	UserID   uuid.UUID
	UserName string
	Role     string
}

func (p Principal) IsAdmin() bool   { return p.Role == constants.RoleAdmin }
func (p Principal) IsTeacher() bool { return p.Role == constants.RoleTeacher }
func (p Principal) IsStudent() bool { return p.Role == constants.RoleStudent }
func (p Principal) IsParent() bool  { return p.Role == constants.RoleParent }

// GetPrincipal reads the principal stored by the auth middleware.
func GetPrincipal(c *fiber.Ctx) (Principal, error) {
	idStr, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return Principal{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user identity")
	}
	role, _ := c.Locals("user_role").(string)
	if !constants.IsValidRole(role) {
		return Principal{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role information")
	}
	name, _ := c.Locals("user_name").(string)
	return Principal{UserID: id, UserName: name, Role: role}, nil
}
