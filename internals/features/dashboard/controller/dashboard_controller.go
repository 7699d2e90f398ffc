// file: internals/features/dashboard/controller/dashboard_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "sekolahku_backend/internals/features/academics/attendance/model"
	attendanceService "sekolahku_backend/internals/features/academics/attendance/service"
	feeModel "sekolahku_backend/internals/features/fees/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Summary returns the counters for the caller's role. Each role gets a
// different shape; the client renders whatever keys come back.
func (ctl *DashboardController) Summary(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	switch {
	case p.IsAdmin():
		return ctl.adminSummary(c)
	case p.IsTeacher():
		return ctl.teacherSummary(c, p, links)
	case p.IsParent():
		return ctl.parentSummary(c, p, links)
	default:
		return ctl.studentSummary(c, p, links)
	}
}

func (ctl *DashboardController) adminSummary(c *fiber.Ctx) error {
	var students, teachers, classes, books, issued int64
	ctl.DB.Table("students").Where("deleted_at IS NULL AND status = ?", "Active").Count(&students)
	ctl.DB.Table("teachers").Where("deleted_at IS NULL").Count(&teachers)
	ctl.DB.Table("classes").Where("deleted_at IS NULL").Count(&classes)
	ctl.DB.Table("books").Where("deleted_at IS NULL").Count(&books)
	ctl.DB.Table("book_issues").
		Where("deleted_at IS NULL AND status = ?", "Issued").Count(&issued)

	monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day()).Format("2006-01-02")
	var collected struct {
		Total float64
	}
	ctl.DB.Table("fee_payments").
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("deleted_at IS NULL AND status IN ? AND payment_date >= ?",
			[]feeModel.PaymentStatus{feeModel.PaymentStatusPaid, feeModel.PaymentStatusPartial}, monthStart).
		Scan(&collected)

	var pendingPayments int64
	ctl.DB.Table("fee_payments").
		Where("deleted_at IS NULL AND status = ?", feeModel.PaymentStatusPending).
		Count(&pendingPayments)

	return helper.JsonOK(c, "Dashboard retrieved", fiber.Map{
		"role":                 "Admin",
		"total_students":       students,
		"total_teachers":       teachers,
		"total_classes":        classes,
		"total_books":          books,
		"books_issued":         issued,
		"fees_collected_month": collected.Total,
		"pending_payments":     pendingPayments,
	})
}

func (ctl *DashboardController) teacherSummary(c *fiber.Ctx, p helperAuth.Principal, links helperAuth.Links) error {
	classIDs := links.TeacherClassIDs

	var students, upcoming int64
	if len(classIDs) > 0 {
		ctl.DB.Table("students").
			Where("deleted_at IS NULL AND status = ? AND class_id IN ?", "Active", classIDs).
			Count(&students)
		ctl.DB.Table("exams").
			Where("deleted_at IS NULL AND status = ? AND date >= ? AND class_id IN ?",
				"Scheduled", time.Now().Format("2006-01-02"), classIDs).
			Count(&upcoming)
	}

	return helper.JsonOK(c, "Dashboard retrieved", fiber.Map{
		"role":             "Teacher",
		"assigned_classes": len(classIDs),
		"total_students":   students,
		"upcoming_exams":   upcoming,
		"unread_messages":  ctl.unreadMessages(p.UserID),
	})
}

func (ctl *DashboardController) studentSummary(c *fiber.Ctx, p helperAuth.Principal, links helperAuth.Links) error {
	resp := fiber.Map{
		"role":            "Student",
		"unread_messages": ctl.unreadMessages(p.UserID),
	}
	if links.StudentID == nil {
		return helper.JsonOK(c, "Dashboard retrieved", resp)
	}

	resp["attendance_percentage"] = ctl.attendancePercentage(*links.StudentID)
	resp["pending_dues"] = ctl.pendingDues(*links.StudentID)

	if links.StudentClassID != nil {
		var upcoming int64
		ctl.DB.Table("exams").
			Where("deleted_at IS NULL AND status = ? AND date >= ? AND class_id = ?",
				"Scheduled", time.Now().Format("2006-01-02"), *links.StudentClassID).
			Count(&upcoming)
		resp["upcoming_exams"] = upcoming
	}

	return helper.JsonOK(c, "Dashboard retrieved", resp)
}

func (ctl *DashboardController) parentSummary(c *fiber.Ctx, p helperAuth.Principal, links helperAuth.Links) error {
	children := make([]fiber.Map, 0, len(links.ChildIDs))
	for _, childID := range links.ChildIDs {
		var child struct {
			AdmissionNumber string
			UserName        string
		}
		ctl.DB.Table("students").
			Select("students.admission_number, users.user_name").
			Joins("JOIN users ON users.id = students.user_id").
			Where("students.id = ?", childID).
			Scan(&child)
		children = append(children, fiber.Map{
			"student_id":            childID,
			"student_name":          child.UserName,
			"admission_number":      child.AdmissionNumber,
			"attendance_percentage": ctl.attendancePercentage(childID),
			"pending_dues":          ctl.pendingDues(childID),
		})
	}

	return helper.JsonOK(c, "Dashboard retrieved", fiber.Map{
		"role":            "Parent",
		"children":        children,
		"unread_messages": ctl.unreadMessages(p.UserID),
	})
}

func (ctl *DashboardController) unreadMessages(userID uuid.UUID) int64 {
	var n int64
	ctl.DB.Table("messages").
		Where("deleted_at IS NULL AND recipient_id = ? AND is_read = false AND recipient_deleted = false", userID).
		Count(&n)
	return n
}

func (ctl *DashboardController) attendancePercentage(studentID uuid.UUID) float64 {
	var rows []attendanceModel.AttendanceModel
	ctl.DB.Where("student_id = ?", studentID).Find(&rows)
	var cnt attendanceService.Counts
	for _, r := range rows {
		switch r.Status {
		case attendanceModel.AttendancePresent:
			cnt.Present++
		case attendanceModel.AttendanceAbsent:
			cnt.Absent++
		case attendanceModel.AttendanceLate:
			cnt.Late++
		case attendanceModel.AttendanceExcused:
			cnt.Excused++
		}
	}
	return attendanceService.StrictPercentage(cnt)
}

// pendingDues counts fee structures of the student's class that have
// no payment row yet.
func (ctl *DashboardController) pendingDues(studentID uuid.UUID) int64 {
	var n int64
	ctl.DB.Table("fee_structures").
		Where("deleted_at IS NULL").
		Where("class_id = (SELECT class_id FROM students WHERE id = ? AND deleted_at IS NULL)", studentID).
		Where("id NOT IN (SELECT fee_structure_id FROM fee_payments WHERE student_id = ? AND deleted_at IS NULL)", studentID).
		Count(&n)
	return n
}
