// file: internals/features/academics/exams/controller/exam_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/academics/exams/dto"
	"sekolahku_backend/internals/features/academics/exams/model"
	"sekolahku_backend/internals/features/academics/exams/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ExamController struct {
	DB *gorm.DB
}

func NewExamController(db *gorm.DB) *ExamController {
	return &ExamController{DB: db}
}

var validateExam = validator.New()

var examSortColumns = map[string]string{
	"date":       "date",
	"name":       "name",
	"created_at": "created_at",
}

/* =======================================================
   EXAM TYPES
======================================================= */

func (ctl *ExamController) ListTypes(c *fiber.Ctx) error {
	var types []model.ExamTypeModel
	if err := ctl.DB.Order("name ASC").Find(&types).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list exam types")
	}
	resp := make([]dto.ExamTypeResponse, 0, len(types))
	for i := range types {
		resp = append(resp, dto.FromExamTypeModel(&types[i]))
	}
	return helper.JsonOK(c, "Exam types retrieved", resp)
}

func (ctl *ExamController) CreateType(c *fiber.Ctx) error {
	var req dto.CreateExamTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateExam.Struct(req); err != nil {
		return err
	}

	examType := &model.ExamTypeModel{Name: req.Name, Description: req.Description}
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ExamTypeModel{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Exam type name already exists")
		}
		return tx.Create(examType).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create exam type")
	}

	return helper.JsonCreated(c, "Exam type created", dto.FromExamTypeModel(examType))
}

func (ctl *ExamController) DeleteType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid exam type id")
	}

	var count int64
	ctl.DB.Model(&model.ExamModel{}).Where("exam_type_id = ?", id).Count(&count)
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Exam type is still used by scheduled exams")
	}

	res := ctl.DB.Delete(&model.ExamTypeModel{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete exam type")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Exam type not found")
	}
	return helper.JsonDeleted(c, "Exam type deleted", fiber.Map{"id": id})
}

/* =======================================================
   EXAMS
======================================================= */

// List pre-scopes exams by class: students and teachers only see exams
// of classes inside their scope.
func (ctl *ExamController) List(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)
	sort := helper.ResolveSort(c, examSortColumns, "date ASC")

	q := helperAuth.ClassRecordScope(p, links, "class_id").Apply(ctl.DB.Model(&model.ExamModel{}))
	if p.IsParent() {
		q = ctl.scopeForParent(links)
	}

	if classID := c.Query("class_id"); classID != "" {
		q = q.Where("class_id = ?", classID)
	}
	if subjectID := c.Query("subject_id"); subjectID != "" {
		q = q.Where("subject_id = ?", subjectID)
	}
	if sessionID := c.Query("session_id"); sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count exams")
	}

	var exams []model.ExamModel
	if err := q.Order(sort).
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&exams).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list exams")
	}

	resp := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		resp = append(resp, ctl.withNames(&exams[i]))
	}
	return helper.JsonList(c, "Exams retrieved", resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

// scopeForParent restricts exams to the classes the parent's children sit in.
func (ctl *ExamController) scopeForParent(links helperAuth.Links) *gorm.DB {
	q := ctl.DB.Model(&model.ExamModel{})
	if len(links.ChildIDs) == 0 {
		return q.Where("1 = 0")
	}
	return q.Where("class_id IN (SELECT class_id FROM students WHERE id IN ? AND class_id IS NOT NULL)", links.ChildIDs)
}

func (ctl *ExamController) Detail(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid exam id")
	}

	var exam model.ExamModel
	if err := ctl.DB.First(&exam, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Exam not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch exam")
	}

	if !ctl.canSeeExam(p, links, &exam) {
		return fiber.NewError(fiber.StatusNotFound, "Exam not found")
	}

	return helper.JsonOK(c, "Exam detail", ctl.withNames(&exam))
}

func (ctl *ExamController) canSeeExam(p helperAuth.Principal, links helperAuth.Links, exam *model.ExamModel) bool {
	if p.IsParent() {
		var count int64
		ctl.scopeForParent(links).Where("id = ?", exam.ID).Count(&count)
		return count > 0
	}
	return helperAuth.ClassRecordScope(p, links, "class_id").Allows(exam.ClassID)
}

func (ctl *ExamController) withNames(exam *model.ExamModel) dto.ExamResponse {
	resp := dto.FromExamModel(exam)
	ctl.DB.Table("exam_types").Select("name").Where("id = ?", exam.ExamTypeID).Scan(&resp.ExamType)
	ctl.DB.Table("classes").Select("name").Where("id = ?", exam.ClassID).Scan(&resp.ClassName)
	ctl.DB.Table("subjects").Select("name").Where("id = ?", exam.SubjectID).Scan(&resp.SubjectName)
	return resp
}

// Create schedules an exam. The overlap check runs inside the insert
// transaction so two concurrent schedulers cannot both pass it.
func (ctl *ExamController) Create(c *fiber.Ctx) error {
	var req dto.CreateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateExam.Struct(req); err != nil {
		return err
	}

	startMin, endMin, err := service.ValidateSchedule(req.StartTime, req.EndTime)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid exam date")
	}

	exam := &model.ExamModel{
		Name:         req.Name,
		ExamTypeID:   uuid.MustParse(req.ExamTypeID),
		ClassID:      uuid.MustParse(req.ClassID),
		SubjectID:    uuid.MustParse(req.SubjectID),
		SessionID:    uuid.MustParse(req.SessionID),
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		TotalMarks:   req.TotalMarks,
		PassingMarks: req.PassingMarks,
		RoomNumber:   req.RoomNumber,
		Status:       model.ExamStatusScheduled,
	}
	if req.SectionID != nil {
		sid := uuid.MustParse(*req.SectionID)
		exam.SectionID = &sid
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, ref := range []struct {
			table string
			id    uuid.UUID
			msg   string
		}{
			{"exam_types", exam.ExamTypeID, "Exam type not found"},
			{"classes", exam.ClassID, "Class not found"},
			{"subjects", exam.SubjectID, "Subject not found"},
			{"academic_sessions", exam.SessionID, "Session not found"},
		} {
			var count int64
			if err := tx.Table(ref.table).Where("id = ? AND deleted_at IS NULL", ref.id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fiber.NewError(fiber.StatusBadRequest, ref.msg)
			}
		}

		// Marks left unset inherit the subject's defaults.
		if exam.TotalMarks == 0 || exam.PassingMarks == 0 {
			var subject struct {
				TotalMarks   int
				PassingMarks int
			}
			if err := tx.Table("subjects").
				Select("total_marks, passing_marks").
				Where("id = ?", exam.SubjectID).
				Take(&subject).Error; err != nil {
				return err
			}
			if exam.TotalMarks == 0 {
				exam.TotalMarks = subject.TotalMarks
			}
			if exam.PassingMarks == 0 {
				exam.PassingMarks = subject.PassingMarks
			}
		}
		if exam.PassingMarks >= exam.TotalMarks {
			return fiber.NewError(fiber.StatusBadRequest, "Passing marks must be below the total marks")
		}

		var siblings []model.ExamModel
		if err := tx.Where("class_id = ? AND date = ? AND status <> ?",
			exam.ClassID, exam.Date, model.ExamStatusCancelled).
			Find(&siblings).Error; err != nil {
			return err
		}
		for _, sib := range siblings {
			sibStart, sibEnd, err := service.ValidateSchedule(sib.StartTime, sib.EndTime)
			if err != nil {
				continue
			}
			if service.Overlaps(startMin, endMin, sibStart, sibEnd) {
				return fiber.NewError(fiber.StatusBadRequest,
					"Exam overlaps with "+sib.Name+" ("+sib.StartTime+"-"+sib.EndTime+")")
			}
		}
		return tx.Create(exam).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to schedule exam")
	}

	return helper.JsonCreated(c, "Exam scheduled", ctl.withNames(exam))
}

func (ctl *ExamController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid exam id")
	}

	var req dto.UpdateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateExam.Struct(req); err != nil {
		return err
	}

	var exam model.ExamModel
	if err := ctl.DB.First(&exam, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Exam not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch exam")
	}

	if req.Name != nil {
		exam.Name = *req.Name
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid exam date")
		}
		exam.Date = date
	}
	if req.StartTime != nil {
		exam.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		exam.EndTime = *req.EndTime
	}
	if req.TotalMarks != nil {
		exam.TotalMarks = *req.TotalMarks
	}
	if req.PassingMarks != nil {
		exam.PassingMarks = *req.PassingMarks
	}
	if exam.PassingMarks >= exam.TotalMarks {
		return fiber.NewError(fiber.StatusBadRequest, "Passing marks must be below the total marks")
	}
	if req.RoomNumber != nil {
		exam.RoomNumber = req.RoomNumber
	}
	if req.Status != nil {
		exam.Status = model.ExamStatus(*req.Status)
	}

	startMin, endMin, err := service.ValidateSchedule(exam.StartTime, exam.EndTime)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var siblings []model.ExamModel
		if err := tx.Where("class_id = ? AND date = ? AND id <> ? AND status <> ?",
			exam.ClassID, exam.Date, exam.ID, model.ExamStatusCancelled).
			Find(&siblings).Error; err != nil {
			return err
		}
		for _, sib := range siblings {
			sibStart, sibEnd, err := service.ValidateSchedule(sib.StartTime, sib.EndTime)
			if err != nil {
				continue
			}
			if service.Overlaps(startMin, endMin, sibStart, sibEnd) {
				return fiber.NewError(fiber.StatusBadRequest,
					"Exam overlaps with "+sib.Name+" ("+sib.StartTime+"-"+sib.EndTime+")")
			}
		}
		return tx.Save(&exam).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update exam")
	}

	return helper.JsonUpdated(c, "Exam updated", ctl.withNames(&exam))
}

// Delete refuses once marks exist; results must be cleared first.
func (ctl *ExamController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid exam id")
	}

	var markCount int64
	ctl.DB.Model(&model.ExamMarkModel{}).Where("exam_id = ?", id).Count(&markCount)
	if markCount > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Exam already has marks entered and cannot be deleted")
	}

	res := ctl.DB.Delete(&model.ExamModel{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete exam")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Exam not found")
	}
	return helper.JsonDeleted(c, "Exam deleted", fiber.Map{"id": id})
}
