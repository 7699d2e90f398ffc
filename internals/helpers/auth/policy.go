// file: internals/helpers/auth/policy.go
package auth

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   Role-scoped query authorization.

   Every list/detail endpoint pre-scopes its query by the
   principal's role and ownership links BEFORE applying any
   caller-supplied filter; caller filters only ever narrow
   the result. The links are re-resolved on every request
   because assignments and parent-child links change.
========================================================= */

// ClassAssignment is one entry of a teacher's assigned_classes JSON column.
type ClassAssignment struct {
	ClassID        uuid.UUID  `json:"class_id"`
	SectionID      *uuid.UUID `json:"section_id,omitempty"`
	IsClassTeacher bool       `json:"is_class_teacher"`
}

// SubjectAssignment is one entry of a teacher's assigned_subjects JSON column.
type SubjectAssignment struct {
	SubjectID uuid.UUID   `json:"subject_id"`
	ClassIDs  []uuid.UUID `json:"class_ids"`
}

// Links holds the ownership relations of a principal, resolved per request.
type Links struct {
	StudentID       *uuid.UUID  // student role: own student record
	StudentClassID  *uuid.UUID  // student role: own class
	ChildIDs        []uuid.UUID // parent role: registered children
	TeacherClassIDs []uuid.UUID // teacher role: classes from assigned_classes + assigned_subjects
	TeacherSubjects []uuid.UUID // teacher role: subjects from assigned_subjects
}

// ScopeFilter is the pre-scope for a list query: either everything (admin)
// or an IN-restriction on a column.
type ScopeFilter struct {
	All    bool
	Column string
	IDs    []uuid.UUID
}

// Apply narrows q to the scope. An empty non-admin scope matches nothing.
func (f ScopeFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.All {
		return q
	}
	if len(f.IDs) == 0 {
		return q.Where("1 = 0")
	}
	return q.Where(f.Column+" IN ?", f.IDs)
}

// Allows reports whether id falls inside the scope.
func (f ScopeFilter) Allows(id uuid.UUID) bool {
	if f.All {
		return true
	}
	for _, v := range f.IDs {
		if v == id {
			return true
		}
	}
	return false
}

/* =========================================================
   Link resolution (DB)
========================================================= */

// ResolveLinks loads the principal's ownership links from the store.
func ResolveLinks(db *gorm.DB, p Principal) (Links, error) {
	var links Links
	switch {
	case p.IsStudent():
		var row struct {
			ID      uuid.UUID
			ClassID *uuid.UUID
		}
		err := db.Table("students").
			Select("id, class_id").
			Where("user_id = ? AND deleted_at IS NULL", p.UserID).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return links, nil // no student profile yet: empty scope
			}
			return links, err
		}
		links.StudentID = &row.ID
		links.StudentClassID = row.ClassID

	case p.IsParent():
		var ids []uuid.UUID
		if err := db.Table("students").
			Select("id").
			Where("parent_id = ? AND deleted_at IS NULL", p.UserID).
			Scan(&ids).Error; err != nil {
			return links, err
		}
		links.ChildIDs = ids

	case p.IsTeacher():
		var row struct {
			AssignedClasses  []byte
			AssignedSubjects []byte
		}
		err := db.Table("teachers").
			Select("assigned_classes, assigned_subjects").
			Where("user_id = ? AND deleted_at IS NULL", p.UserID).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return links, nil
			}
			return links, err
		}
		classIDs, subjectIDs, err := ParseAssignments(row.AssignedClasses, row.AssignedSubjects)
		if err != nil {
			return links, err
		}
		links.TeacherClassIDs = classIDs
		links.TeacherSubjects = subjectIDs
	}
	return links, nil
}

// ParseAssignments decodes the two assignment JSON columns into the distinct
// class and subject id sets they reference.
func ParseAssignments(assignedClasses, assignedSubjects []byte) ([]uuid.UUID, []uuid.UUID, error) {
	classSet := map[uuid.UUID]struct{}{}
	var subjectIDs []uuid.UUID

	if len(assignedClasses) > 0 {
		var cas []ClassAssignment
		if err := json.Unmarshal(assignedClasses, &cas); err != nil {
			return nil, nil, err
		}
		for _, ca := range cas {
			classSet[ca.ClassID] = struct{}{}
		}
	}
	if len(assignedSubjects) > 0 {
		var sas []SubjectAssignment
		if err := json.Unmarshal(assignedSubjects, &sas); err != nil {
			return nil, nil, err
		}
		for _, sa := range sas {
			subjectIDs = append(subjectIDs, sa.SubjectID)
			for _, cid := range sa.ClassIDs {
				classSet[cid] = struct{}{}
			}
		}
	}

	classIDs := make([]uuid.UUID, 0, len(classSet))
	for id := range classSet {
		classIDs = append(classIDs, id)
	}
	return classIDs, subjectIDs, nil
}

/* =========================================================
   Scope builders (pure: principal + links -> filter)
========================================================= */

// StudentRecordScope scopes rows that reference a student via column.
func StudentRecordScope(p Principal, links Links, column string) ScopeFilter {
	switch {
	case p.IsAdmin():
		return ScopeFilter{All: true}
	case p.IsStudent():
		if links.StudentID == nil {
			return ScopeFilter{Column: column}
		}
		return ScopeFilter{Column: column, IDs: []uuid.UUID{*links.StudentID}}
	case p.IsParent():
		return ScopeFilter{Column: column, IDs: links.ChildIDs}
	default: // teacher sees through class scoping instead
		return ScopeFilter{All: true}
	}
}

// ClassRecordScope scopes rows that reference a class via column.
func ClassRecordScope(p Principal, links Links, column string) ScopeFilter {
	switch {
	case p.IsAdmin():
		return ScopeFilter{All: true}
	case p.IsTeacher():
		return ScopeFilter{Column: column, IDs: links.TeacherClassIDs}
	case p.IsStudent():
		if links.StudentClassID == nil {
			return ScopeFilter{Column: column}
		}
		return ScopeFilter{Column: column, IDs: []uuid.UUID{*links.StudentClassID}}
	default:
		return ScopeFilter{All: true}
	}
}

/* =========================================================
   Convenience wrappers used by controllers
========================================================= */

// RequirePrincipalLinks bundles GetPrincipal + ResolveLinks.
func RequirePrincipalLinks(c *fiber.Ctx, db *gorm.DB) (Principal, Links, error) {
	p, err := GetPrincipal(c)
	if err != nil {
		return Principal{}, Links{}, err
	}
	links, err := ResolveLinks(db, p)
	if err != nil {
		return Principal{}, Links{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve access scope")
	}
	return p, links, nil
}

// EnsureAdmin returns 403 unless the principal is an admin.
func EnsureAdmin(p Principal, feature string) error {
	if !p.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "Only admins may access "+feature)
	}
	return nil
}

// EnsureStaff returns 403 unless the principal is an admin or teacher.
func EnsureStaff(p Principal, feature string) error {
	if !p.IsAdmin() && !p.IsTeacher() {
		return fiber.NewError(fiber.StatusForbidden, "Only teachers or admins may access "+feature)
	}
	return nil
}
