package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/constants"
)

func TestParseAssignments(t *testing.T) {
	classA := uuid.New()
	classB := uuid.New()
	subject := uuid.New()

	classesJSON := []byte(`[{"class_id":"` + classA.String() + `","is_class_teacher":true}]`)
	subjectsJSON := []byte(`[{"subject_id":"` + subject.String() + `","class_ids":["` + classA.String() + `","` + classB.String() + `"]}]`)

	classIDs, subjectIDs, err := ParseAssignments(classesJSON, subjectsJSON)
	require.NoError(t, err)

	// classA appears in both columns but must be reported once
	assert.Len(t, classIDs, 2)
	assert.Contains(t, classIDs, classA)
	assert.Contains(t, classIDs, classB)
	assert.Equal(t, []uuid.UUID{subject}, subjectIDs)
}

func TestParseAssignmentsEmpty(t *testing.T) {
	classIDs, subjectIDs, err := ParseAssignments(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, classIDs)
	assert.Empty(t, subjectIDs)
}

func TestParseAssignmentsBadJSON(t *testing.T) {
	_, _, err := ParseAssignments([]byte(`{not json`), nil)
	assert.Error(t, err)
}

func TestScopeFilterAllows(t *testing.T) {
	id := uuid.New()
	other := uuid.New()

	assert.True(t, ScopeFilter{All: true}.Allows(other))
	assert.True(t, ScopeFilter{Column: "class_id", IDs: []uuid.UUID{id}}.Allows(id))
	assert.False(t, ScopeFilter{Column: "class_id", IDs: []uuid.UUID{id}}.Allows(other))
	assert.False(t, ScopeFilter{Column: "class_id"}.Allows(other), "empty scope matches nothing")
}

func TestStudentRecordScope(t *testing.T) {
	studentID := uuid.New()
	childA := uuid.New()
	childB := uuid.New()

	admin := Principal{Role: constants.RoleAdmin}
	assert.True(t, StudentRecordScope(admin, Links{}, "student_id").All)

	student := Principal{Role: constants.RoleStudent}
	scope := StudentRecordScope(student, Links{StudentID: &studentID}, "student_id")
	assert.Equal(t, []uuid.UUID{studentID}, scope.IDs)
	assert.False(t, scope.All)

	// student without a profile gets an empty scope, not everything
	empty := StudentRecordScope(student, Links{}, "student_id")
	assert.False(t, empty.All)
	assert.Empty(t, empty.IDs)

	parent := Principal{Role: constants.RoleParent}
	scope = StudentRecordScope(parent, Links{ChildIDs: []uuid.UUID{childA, childB}}, "student_id")
	assert.ElementsMatch(t, []uuid.UUID{childA, childB}, scope.IDs)

	// teachers pass through here; class scoping happens separately
	teacher := Principal{Role: constants.RoleTeacher}
	assert.True(t, StudentRecordScope(teacher, Links{}, "student_id").All)
}

func TestClassRecordScope(t *testing.T) {
	classID := uuid.New()

	teacher := Principal{Role: constants.RoleTeacher}
	scope := ClassRecordScope(teacher, Links{TeacherClassIDs: []uuid.UUID{classID}}, "class_id")
	assert.Equal(t, []uuid.UUID{classID}, scope.IDs)
	assert.True(t, scope.Allows(classID))
	assert.False(t, scope.Allows(uuid.New()))

	// teacher with no assignments sees no classes
	assert.Empty(t, ClassRecordScope(teacher, Links{}, "class_id").IDs)

	student := Principal{Role: constants.RoleStudent}
	scope = ClassRecordScope(student, Links{StudentClassID: &classID}, "class_id")
	assert.Equal(t, []uuid.UUID{classID}, scope.IDs)

	unassigned := ClassRecordScope(student, Links{}, "class_id")
	assert.False(t, unassigned.All)
	assert.Empty(t, unassigned.IDs)

	admin := Principal{Role: constants.RoleAdmin}
	assert.True(t, ClassRecordScope(admin, Links{}, "class_id").All)
}
