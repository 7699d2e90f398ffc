// file: internals/features/notices/service/visibility.go
//
// Notice visibility as a pure predicate so the exact audience rules
// are unit-testable apart from the HTTP layer.
package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/notices/model"
)

// Viewer is what visibility is decided against. IncludeExpired lets a
// caller opt back into notices past their expiry date; every other
// rule still applies.
type Viewer struct {
	UserID         uuid.UUID
	Role           string
	ClassID        *uuid.UUID // student's own class, or a parent's child's class
	IncludeExpired bool
}

// audienceMatches checks the role against the audience list. "All"
// admits everyone; role names compare case-insensitively.
func audienceMatches(audience []string, role string) bool {
	for _, a := range audience {
		if strings.EqualFold(a, "All") || strings.EqualFold(a, role+"s") || strings.EqualFold(a, role) {
			return true
		}
	}
	return false
}

// classMatches is vacuously true when the notice targets no classes.
func classMatches(targetClassIDs []string, classID *uuid.UUID) bool {
	if len(targetClassIDs) == 0 {
		return true
	}
	if classID == nil {
		return false
	}
	want := classID.String()
	for _, id := range targetClassIDs {
		if id == want {
			return true
		}
	}
	return false
}

// VisibleTo decides whether a viewer may see a notice. Admins see
// everything; everyone else needs the notice published, unexpired and
// addressed to their role (and class, when the notice targets classes).
func VisibleTo(n *model.NoticeModel, v Viewer, now time.Time) bool {
	if v.Role == constants.RoleAdmin {
		return true
	}
	if !n.IsPublished {
		return false
	}
	if n.PublishDate != nil && now.Before(*n.PublishDate) {
		return false
	}
	if n.ExpiryDate != nil && !v.IncludeExpired && now.After(*n.ExpiryDate) {
		return false
	}
	if !audienceMatches(n.TargetAudience, v.Role) {
		return false
	}
	if v.Role == constants.RoleStudent || v.Role == constants.RoleParent {
		return classMatches(n.TargetClassIDs, v.ClassID)
	}
	return true
}
