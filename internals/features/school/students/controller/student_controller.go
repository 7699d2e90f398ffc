// file: internals/features/school/students/controller/student_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/students/dto"
	"sekolahku_backend/internals/features/school/students/model"
	authService "sekolahku_backend/internals/features/users/auth/service"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/sequence"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

var validateStudent = validator.New()

var studentSortColumns = map[string]string{
	"admission_number": "admission_number",
	"admission_date":   "admission_date",
	"roll_number":      "roll_number",
	"created_at":       "created_at",
}

/* =======================================================
   LIST & DETAIL (role scoped)
======================================================= */

// List pre-scopes by role before any caller filter is applied:
// students see themselves, parents their children, teachers the
// students of their assigned classes, admins everyone.
func (ctl *StudentController) List(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)
	sort := helper.ResolveSort(c, studentSortColumns, "admission_number ASC")

	q := ctl.DB.Model(&model.StudentModel{})
	if p.IsTeacher() {
		q = helperAuth.ClassRecordScope(p, links, "class_id").Apply(q)
	} else {
		q = helperAuth.StudentRecordScope(p, links, "id").Apply(q)
	}

	if classID := c.Query("class_id"); classID != "" {
		q = q.Where("class_id = ?", classID)
	}
	if sectionID := c.Query("section_id"); sectionID != "" {
		q = q.Where("section_id = ?", sectionID)
	}
	if sessionID := c.Query("session_id"); sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"admission_number ILIKE ? OR user_id IN (SELECT id FROM users WHERE LOWER(user_name) LIKE ? OR LOWER(email) LIKE ?)",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count students")
	}

	var students []model.StudentModel
	if err := q.Order(sort).
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list students")
	}

	resp := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		resp = append(resp, ctl.withNames(&students[i]))
	}

	return helper.JsonList(c, "Students retrieved", resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

func (ctl *StudentController) Detail(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.StudentModel
	if err := ctl.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if !ctl.canSee(p, links, &student) {
		// Out-of-scope rows are indistinguishable from missing ones.
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	return helper.JsonOK(c, "Student detail", ctl.withNames(&student))
}

// canSee mirrors the list scope for a single row.
func (ctl *StudentController) canSee(p helperAuth.Principal, links helperAuth.Links, s *model.StudentModel) bool {
	if p.IsTeacher() {
		if s.ClassID == nil {
			return false
		}
		return helperAuth.ClassRecordScope(p, links, "class_id").Allows(*s.ClassID)
	}
	return helperAuth.StudentRecordScope(p, links, "id").Allows(s.ID)
}

func (ctl *StudentController) withNames(s *model.StudentModel) dto.StudentResponse {
	resp := dto.FromStudentModel(s)

	var user struct {
		UserName string
		Email    string
	}
	if err := ctl.DB.Table("users").
		Select("user_name, email").
		Where("id = ?", s.UserID).
		Take(&user).Error; err == nil {
		resp.UserName = user.UserName
		resp.Email = user.Email
	}
	if s.ClassID != nil {
		ctl.DB.Table("classes").Select("name").Where("id = ?", *s.ClassID).Scan(&resp.ClassName)
	}
	if s.SectionID != nil {
		ctl.DB.Table("sections").Select("name").Where("id = ?", *s.SectionID).Scan(&resp.SectionName)
	}
	return resp
}

/* =======================================================
   CREATE (admission)
======================================================= */

// Create admits a student: user account, profile and generated
// admission number all commit in one transaction.
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateStudent.Struct(req); err != nil {
		return err
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	admissionDate, err := time.Parse("2006-01-02", req.AdmissionDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid admission date")
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	student := &model.StudentModel{
		AdmissionDate: admissionDate,
		RollNumber:    req.RollNumber,
		SessionID:     sessionID,
		Status:        model.StudentStatusActive,
	}
	if req.ClassID != nil {
		id, err := uuid.Parse(*req.ClassID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid class id")
		}
		student.ClassID = &id
	}
	if req.SectionID != nil {
		id, err := uuid.Parse(*req.SectionID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
		}
		student.SectionID = &id
	}
	if req.ParentID != nil {
		id, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid parent id")
		}
		student.ParentID = &id
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date of birth")
		}
		student.DateOfBirth = &dob
	}
	student.Gender = req.Gender
	student.BloodGroup = req.BloodGroup
	student.Phone = req.Phone
	student.Address = req.Address

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userModel.UserModel{}).
			Where("LOWER(email) = ?", strings.ToLower(req.Email)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Email already registered")
		}

		user := &userModel.UserModel{
			UserName: req.UserName,
			Email:    strings.ToLower(req.Email),
			Password: hashed,
			Role:     constants.RoleStudent,
		}
		user.SetDefaultValues()
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		admissionNumber, err := sequence.NextStudentID(tx, admissionDate.Year())
		if err != nil {
			return err
		}
		student.UserID = user.ID
		student.AdmissionNumber = admissionNumber
		return tx.Create(student).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to admit student")
	}

	return helper.JsonCreated(c, "Student admitted", ctl.withNames(student))
}

/* =======================================================
   UPDATE / DELETE
======================================================= */

func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateStudent.Struct(req); err != nil {
		return err
	}

	var student model.StudentModel
	if err := ctl.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if err := req.Apply(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id in payload")
	}

	if student.SectionID != nil && student.ClassID != nil {
		var count int64
		ctl.DB.Table("sections").
			Where("id = ? AND class_id = ? AND deleted_at IS NULL", *student.SectionID, *student.ClassID).
			Count(&count)
		if count == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Section does not belong to the assigned class")
		}
	}

	if err := ctl.DB.Save(&student).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return helper.JsonUpdated(c, "Student updated", ctl.withNames(&student))
}

// Delete soft-deletes the profile and deactivates the login. The
// admission number stays reserved.
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.StudentModel
	if err := ctl.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&student).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).
			Where("id = ?", student.UserID).
			Update("is_active", false).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}

	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"id": student.ID})
}

/* =======================================================
   DOCUMENTS
======================================================= */

func (ctl *StudentController) UploadDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.StudentModel
	if err := ctl.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Document title is required")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Document file is required")
	}

	uploaded, err := helper.SaveUpload(helper.UploadDocument, fh)
	if err != nil {
		return err
	}

	docs := []model.StudentDocument{}
	if len(student.Documents) > 0 {
		if err := json.Unmarshal(student.Documents, &docs); err != nil {
			docs = []model.StudentDocument{}
		}
	}
	doc := model.StudentDocument{
		ID:         uuid.New(),
		Title:      title,
		Filename:   uploaded.Filename,
		MimeType:   uploaded.MimeType,
		Size:       uploaded.Size,
		Path:       uploaded.Path,
		UploadedAt: time.Now(),
	}
	docs = append(docs, doc)

	raw, err := json.Marshal(docs)
	if err != nil {
		helper.RemoveUpload(uploaded.Path)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store document")
	}
	if err := ctl.DB.Model(&student).Update("documents", raw).Error; err != nil {
		helper.RemoveUpload(uploaded.Path)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store document")
	}

	return helper.JsonCreated(c, "Document uploaded", doc)
}

func (ctl *StudentController) DeleteDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}
	docID, err := uuid.Parse(c.Params("docId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	var student model.StudentModel
	if err := ctl.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	docs := []model.StudentDocument{}
	if len(student.Documents) > 0 {
		_ = json.Unmarshal(student.Documents, &docs)
	}

	kept := docs[:0]
	var removed *model.StudentDocument
	for i := range docs {
		if docs[i].ID == docID {
			d := docs[i]
			removed = &d
			continue
		}
		kept = append(kept, docs[i])
	}
	if removed == nil {
		return fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	raw, err := json.Marshal(kept)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update documents")
	}
	if err := ctl.DB.Model(&student).Update("documents", raw).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update documents")
	}
	helper.RemoveUpload(removed.Path)

	return helper.JsonDeleted(c, "Document deleted", fiber.Map{"id": docID})
}
