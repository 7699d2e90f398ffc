// file: internals/features/academics/attendance/controller/attendance_controller.go
package controller

import (
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/academics/attendance/dto"
	"sekolahku_backend/internals/features/academics/attendance/model"
	"sekolahku_backend/internals/features/academics/attendance/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

var validateAttendance = validator.New()

/* =======================================================
   MARK (bulk, one class one date)
======================================================= */

// Mark records a class register. A register that already exists for
// the class and date is rejected outright; corrections go through the
// single-row update instead.
func (ctl *AttendanceController) Mark(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAttendance.Struct(req); err != nil {
		return err
	}

	classID := uuid.MustParse(req.ClassID)
	sessionID := uuid.MustParse(req.SessionID)
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date")
	}

	if p.IsTeacher() && !helperAuth.ClassRecordScope(p, links, "class_id").Allows(classID) {
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
	}

	var sectionID *uuid.UUID
	if req.SectionID != nil {
		sid := uuid.MustParse(*req.SectionID)
		sectionID = &sid
	}

	rows := make([]model.AttendanceModel, 0, len(req.Entries))
	seen := map[uuid.UUID]struct{}{}
	for _, e := range req.Entries {
		studentID := uuid.MustParse(e.StudentID)
		if _, dup := seen[studentID]; dup {
			return fiber.NewError(fiber.StatusBadRequest, "Register lists a student twice")
		}
		seen[studentID] = struct{}{}
		rows = append(rows, model.AttendanceModel{
			StudentID: studentID,
			ClassID:   classID,
			SectionID: sectionID,
			SessionID: sessionID,
			Date:      date,
			Status:    model.AttendanceStatus(e.Status),
			Remarks:   e.Remarks,
			MarkedBy:  p.UserID,
		})
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.AttendanceModel{}).
			Where("class_id = ? AND date = ?", classID, date).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Attendance already marked for this class and date")
		}

		studentIDs := make([]uuid.UUID, 0, len(rows))
		for _, r := range rows {
			studentIDs = append(studentIDs, r.StudentID)
		}
		var count int64
		if err := tx.Table("students").
			Where("id IN ? AND class_id = ? AND deleted_at IS NULL", studentIDs, classID).
			Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(studentIDs)) {
			return fiber.NewError(fiber.StatusBadRequest, "Register includes a student outside this class")
		}

		return tx.Create(&rows).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark attendance")
	}

	resp := make([]dto.AttendanceResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromAttendanceModel(&rows[i]))
	}
	return helper.JsonCreated(c, "Attendance marked", resp)
}

/* =======================================================
   LIST & UPDATE
======================================================= */

func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)

	q := ctl.DB.Model(&model.AttendanceModel{})
	if p.IsTeacher() {
		q = helperAuth.ClassRecordScope(p, links, "class_id").Apply(q)
	} else {
		q = helperAuth.StudentRecordScope(p, links, "student_id").Apply(q)
	}

	if classID := c.Query("class_id"); classID != "" {
		q = q.Where("class_id = ?", classID)
	}
	if studentID := c.Query("student_id"); studentID != "" {
		q = q.Where("student_id = ?", studentID)
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
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count attendance")
	}

	var rows []model.AttendanceModel
	if err := q.Order("date DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list attendance")
	}

	resp := make([]dto.AttendanceResponse, 0, len(rows))
	for i := range rows {
		r := dto.FromAttendanceModel(&rows[i])
		ctl.DB.Table("students").
			Select("users.user_name").
			Joins("JOIN users ON users.id = students.user_id").
			Where("students.id = ?", rows[i].StudentID).
			Scan(&r.StudentName)
		resp = append(resp, r)
	}
	return helper.JsonList(c, "Attendance retrieved", resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

// Update corrects a single register row.
func (ctl *AttendanceController) Update(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAttendance.Struct(req); err != nil {
		return err
	}

	var row model.AttendanceModel
	if err := ctl.DB.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Attendance record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance record")
	}

	if p.IsTeacher() && !helperAuth.ClassRecordScope(p, links, "class_id").Allows(row.ClassID) {
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
	}

	row.Status = model.AttendanceStatus(req.Status)
	if req.Remarks != nil {
		row.Remarks = req.Remarks
	}
	row.MarkedBy = p.UserID

	if err := ctl.DB.Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update attendance")
	}
	return helper.JsonUpdated(c, "Attendance updated", dto.FromAttendanceModel(&row))
}

/* =======================================================
   DERIVED FIGURES
======================================================= */

func (ctl *AttendanceController) countsFor(q *gorm.DB) (service.Counts, error) {
	var rows []struct {
		Status string
		N      int
	}
	if err := q.Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return service.Counts{}, err
	}
	var counts service.Counts
	for _, r := range rows {
		switch model.AttendanceStatus(r.Status) {
		case model.AttendancePresent:
			counts.Present = r.N
		case model.AttendanceAbsent:
			counts.Absent = r.N
		case model.AttendanceLate:
			counts.Late = r.N
		case model.AttendanceExcused:
			counts.Excused = r.N
		}
	}
	return counts, nil
}

// StudentPercentage reports the strict figure: only Present days count.
func (ctl *AttendanceController) StudentPercentage(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}
	if !p.IsTeacher() && !helperAuth.StudentRecordScope(p, links, "student_id").Allows(studentID) {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	q := ctl.DB.Model(&model.AttendanceModel{}).Where("student_id = ?", studentID)
	from, to := c.Query("from"), c.Query("to")
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	counts, err := ctl.countsFor(q)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute attendance")
	}

	return helper.JsonOK(c, "Attendance percentage", dto.StudentPercentageResponse{
		StudentID:  studentID,
		From:       from,
		To:         to,
		Present:    counts.Present,
		Absent:     counts.Absent,
		Late:       counts.Late,
		Excused:    counts.Excused,
		TotalDays:  counts.Total(),
		Percentage: service.StrictPercentage(counts),
	})
}

// ClassSummary reports the lenient per-student figures for one class:
// Present, Late and Excused all count as attended.
func (ctl *AttendanceController) ClassSummary(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid class id")
	}
	if p.IsTeacher() && !helperAuth.ClassRecordScope(p, links, "class_id").Allows(classID) {
		return fiber.NewError(fiber.StatusNotFound, "Class not found")
	}

	from, to := c.Query("from"), c.Query("to")

	var students []struct {
		ID       uuid.UUID
		UserName string
	}
	if err := ctl.DB.Table("students").
		Select("students.id, users.user_name").
		Joins("JOIN users ON users.id = students.user_id").
		Where("students.class_id = ? AND students.deleted_at IS NULL", classID).
		Scan(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list class students")
	}

	summary := dto.ClassSummaryResponse{
		ClassID:  classID,
		From:     from,
		To:       to,
		Students: make([]dto.ClassSummaryRow, 0, len(students)),
	}

	var sum float64
	var counted int
	for _, s := range students {
		q := ctl.DB.Model(&model.AttendanceModel{}).Where("student_id = ?", s.ID)
		if from != "" {
			q = q.Where("date >= ?", from)
		}
		if to != "" {
			q = q.Where("date <= ?", to)
		}
		counts, err := ctl.countsFor(q)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute attendance")
		}
		pct := service.LenientPercentage(counts)
		summary.Students = append(summary.Students, dto.ClassSummaryRow{
			StudentID:   s.ID,
			StudentName: s.UserName,
			Present:     counts.Present,
			Absent:      counts.Absent,
			Late:        counts.Late,
			Excused:     counts.Excused,
			TotalDays:   counts.Total(),
			Percentage:  pct,
		})
		if counts.Total() > 0 {
			sum += pct
			counted++
		}
	}
	if counted > 0 {
		summary.ClassAverage = math.Round(sum/float64(counted)*100) / 100
	}

	return helper.JsonOK(c, "Class attendance summary", summary)
}
