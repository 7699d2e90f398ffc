// file: internals/features/reports/controller/report_controller.go
package controller

import (
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "sekolahku_backend/internals/features/academics/attendance/model"
	attendanceService "sekolahku_backend/internals/features/academics/attendance/service"
	examModel "sekolahku_backend/internals/features/academics/exams/model"
	grading "sekolahku_backend/internals/features/academics/exams/service"
	feeModel "sekolahku_backend/internals/features/fees/model"
	feeService "sekolahku_backend/internals/features/fees/service"
	"sekolahku_backend/internals/features/reports/dto"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func parseDateParam(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+" date, expected YYYY-MM-DD")
	}
	return &t, nil
}

/* =========================================================
   Attendance report
========================================================= */

// Attendance builds the per-student attendance sheet of one class,
// reporting the strict and the lenient percentage side by side.
func (ctl *ReportController) Attendance(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(c.Query("class_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "class_id is required")
	}
	scope := helperAuth.ClassRecordScope(p, links, "class_id")
	if !scope.Allows(classID) {
		return fiber.NewError(fiber.StatusForbidden, "You have no access to this class")
	}

	from, err := parseDateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		return err
	}

	var students []struct {
		ID              uuid.UUID
		AdmissionNumber string
		UserName        string
	}
	if err := ctl.DB.Table("students").
		Select("students.id, students.admission_number, users.user_name").
		Joins("JOIN users ON users.id = students.user_id").
		Where("students.class_id = ? AND students.deleted_at IS NULL", classID).
		Order("users.user_name ASC").
		Scan(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}

	q := ctl.DB.Model(&attendanceModel.AttendanceModel{}).Where("class_id = ?", classID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	var rows []attendanceModel.AttendanceModel
	if err := q.Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load attendance")
	}

	counts := make(map[uuid.UUID]attendanceService.Counts, len(students))
	for _, r := range rows {
		cnt := counts[r.StudentID]
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
		counts[r.StudentID] = cnt
	}

	report := dto.AttendanceReport{ClassID: classID, Rows: make([]dto.AttendanceReportRow, 0, len(students))}
	if from != nil {
		report.From = from.Format("2006-01-02")
	}
	if to != nil {
		report.To = to.Format("2006-01-02")
	}
	for _, s := range students {
		cnt := counts[s.ID]
		report.Rows = append(report.Rows, dto.AttendanceReportRow{
			StudentID:         s.ID,
			StudentName:       s.UserName,
			AdmissionNumber:   s.AdmissionNumber,
			Present:           cnt.Present,
			Absent:            cnt.Absent,
			Late:              cnt.Late,
			Excused:           cnt.Excused,
			TotalDays:         cnt.Total(),
			StrictPercentage:  attendanceService.StrictPercentage(cnt),
			LenientPercentage: attendanceService.LenientPercentage(cnt),
		})
	}

	return helper.JsonOK(c, "Attendance report generated", report)
}

/* =========================================================
   Exam result report
========================================================= */

// ExamResults aggregates one exam's marks: average, extremes, pass
// rate over appeared students, and the grade distribution.
func (ctl *ReportController) ExamResults(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	examID, err := uuid.Parse(c.Query("exam_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "exam_id is required")
	}

	var exam examModel.ExamModel
	if err := ctl.DB.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Exam not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load exam")
	}
	if !helperAuth.ClassRecordScope(p, links, "class_id").Allows(exam.ClassID) {
		return fiber.NewError(fiber.StatusNotFound, "Exam not found")
	}

	var marks []examModel.ExamMarkModel
	if err := ctl.DB.Where("exam_id = ?", examID).Find(&marks).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load marks")
	}

	report := dto.ExamResultReport{
		ExamID:            exam.ID,
		ExamName:          exam.Name,
		TotalStudents:     len(marks),
		GradeDistribution: map[string]int{},
	}
	ctl.DB.Table("subjects").Select("name").Where("id = ?", exam.SubjectID).Scan(&report.SubjectName)

	var sum float64
	passed := 0
	for _, m := range marks {
		report.GradeDistribution[m.Grade]++
		if m.IsAbsent {
			report.Absent++
			continue
		}
		report.Appeared++
		sum += m.MarksObtained
		if report.Appeared == 1 {
			report.Highest = m.MarksObtained
			report.Lowest = m.MarksObtained
		} else {
			report.Highest = math.Max(report.Highest, m.MarksObtained)
			report.Lowest = math.Min(report.Lowest, m.MarksObtained)
		}
		if m.IsPassed {
			passed++
		}
	}
	if report.Appeared > 0 {
		report.Average = math.Round(sum/float64(report.Appeared)*100) / 100
		report.PassRate = math.Round(float64(passed)/float64(report.Appeared)*10000) / 100
	}

	return helper.JsonOK(c, "Exam result report generated", report)
}

/* =========================================================
   Fee collection report
========================================================= */

// FeeCollection sums paid and partial payments over a date range,
// broken down by method, status, fee type and class, plus the pending
// and overdue totals still outstanding.
func (ctl *ReportController) FeeCollection(c *fiber.Ctx) error {
	from, err := parseDateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		return err
	}

	q := ctl.DB.Model(&feeModel.FeePaymentModel{})
	if from != nil {
		q = q.Where("payment_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("payment_date <= ?", *to)
	}
	var payments []feeModel.FeePaymentModel
	if err := q.Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payments")
	}

	report := dto.FeeCollectionReport{
		ByMethod:       map[string]float64{},
		ByStatus:       map[string]int{},
		ByFeeType:      map[string]float64{},
		ByClass:        map[string]float64{},
		PendingByClass: map[string]float64{},
		OverdueByClass: map[string]float64{},
	}
	if from != nil {
		report.From = from.Format("2006-01-02")
	}
	if to != nil {
		report.To = to.Format("2006-01-02")
	}

	structureIDs := make([]uuid.UUID, 0, len(payments))
	for _, pmt := range payments {
		structureIDs = append(structureIDs, pmt.FeeStructureID)
	}
	typeNames := map[uuid.UUID]string{}
	classNames := map[uuid.UUID]string{}
	if len(structureIDs) > 0 {
		var rows []struct {
			ID        uuid.UUID
			TypeName  string
			ClassName string
		}
		if err := ctl.DB.Table("fee_structures").
			Select("fee_structures.id, fee_types.name AS type_name, classes.name AS class_name").
			Joins("JOIN fee_types ON fee_types.id = fee_structures.fee_type_id").
			Joins("JOIN classes ON classes.id = fee_structures.class_id").
			Where("fee_structures.id IN ?", structureIDs).
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load fee structures")
		}
		for _, r := range rows {
			typeNames[r.ID] = r.TypeName
			classNames[r.ID] = r.ClassName
		}
	}

	for _, pmt := range payments {
		report.ByStatus[string(pmt.Status)]++
		if pmt.Status != feeModel.PaymentStatusPaid && pmt.Status != feeModel.PaymentStatusPartial {
			continue
		}
		report.TotalPayments++
		report.TotalAmount += pmt.TotalAmount
		report.TotalLateFees += pmt.LateFee
		report.ByMethod[string(pmt.PaymentMethod)] += pmt.TotalAmount
		if name, ok := typeNames[pmt.FeeStructureID]; ok {
			report.ByFeeType[name] += pmt.TotalAmount
		}
		if name, ok := classNames[pmt.FeeStructureID]; ok {
			report.ByClass[name] += pmt.TotalAmount
		}
	}

	// Dues: every structure-student pair of the structure's class with
	// no payment row still owes the net amount.
	var structures []feeModel.FeeStructureModel
	if err := ctl.DB.Find(&structures).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load fee structures")
	}

	dueClassNames := map[uuid.UUID]string{}
	if len(structures) > 0 {
		classIDs := make([]uuid.UUID, 0, len(structures))
		for _, s := range structures {
			classIDs = append(classIDs, s.ClassID)
		}
		var classes []struct {
			ID   uuid.UUID
			Name string
		}
		if err := ctl.DB.Table("classes").
			Select("id, name").
			Where("id IN ?", classIDs).
			Scan(&classes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load classes")
		}
		for _, cl := range classes {
			dueClassNames[cl.ID] = cl.Name
		}
	}

	now := time.Now()
	for _, s := range structures {
		var unpaid int64
		if err := ctl.DB.Table("students").
			Where("deleted_at IS NULL AND status = ? AND class_id = ?", "Active", s.ClassID).
			Where("id NOT IN (SELECT student_id FROM fee_payments WHERE fee_structure_id = ? AND deleted_at IS NULL)", s.ID).
			Count(&unpaid).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute dues")
		}
		if unpaid == 0 {
			continue
		}
		due := float64(unpaid) * feeService.NetAmount(s.Amount, s.DiscountType, s.DiscountValue)
		className := dueClassNames[s.ClassID]
		if feeService.DueStatus(s.DueDate, now) == feeModel.PaymentStatusOverdue {
			report.OverdueTotal += due
			report.OverdueByClass[className] += due
		} else {
			report.PendingTotal += due
			report.PendingByClass[className] += due
		}
	}

	return helper.JsonOK(c, "Fee collection report generated", report)
}

/* =========================================================
   Report card
========================================================= */

// ReportCard collects one student's marks across all exams plus the
// strict attendance figure. The overall grade is taken from the summed
// marks, not averaged per subject, so every exam weighs by its total.
func (ctl *ReportController) ReportCard(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var student studentModel.StudentModel
	if err := ctl.DB.First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
	}
	visible := helperAuth.StudentRecordScope(p, links, "id").Allows(studentID)
	if p.IsTeacher() {
		visible = student.ClassID != nil &&
			helperAuth.ClassRecordScope(p, links, "class_id").Allows(*student.ClassID)
	}
	if !visible {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	card := dto.ReportCard{
		StudentID:       student.ID,
		AdmissionNumber: student.AdmissionNumber,
		Subjects:        []dto.ReportCardSubject{},
	}
	ctl.DB.Table("users").Select("user_name").Where("id = ?", student.UserID).Scan(&card.StudentName)
	if student.ClassID != nil {
		ctl.DB.Table("classes").Select("name").Where("id = ?", *student.ClassID).Scan(&card.ClassName)
	}

	var results []struct {
		examModel.ExamMarkModel
		ExamName    string
		SubjectName string
		TotalMarks  int
	}
	if err := ctl.DB.Table("exam_marks").
		Select("exam_marks.*, exams.name AS exam_name, exams.total_marks, subjects.name AS subject_name").
		Joins("JOIN exams ON exams.id = exam_marks.exam_id AND exams.deleted_at IS NULL").
		Joins("JOIN subjects ON subjects.id = exams.subject_id").
		Where("exam_marks.student_id = ? AND exam_marks.deleted_at IS NULL", studentID).
		Order("exams.date ASC").
		Scan(&results).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load marks")
	}

	var obtained, total float64
	for _, r := range results {
		card.Subjects = append(card.Subjects, dto.ReportCardSubject{
			SubjectName:   r.SubjectName,
			ExamName:      r.ExamName,
			MarksObtained: r.MarksObtained,
			TotalMarks:    r.TotalMarks,
			Percentage:    r.Percentage,
			Grade:         r.Grade,
			IsPassed:      r.IsPassed,
			IsAbsent:      r.IsAbsent,
		})
		obtained += r.MarksObtained
		total += float64(r.TotalMarks)
	}
	if total > 0 {
		card.OverallPercentage = math.Round(obtained/total*10000) / 100
	}
	card.OverallGrade = grading.GradeFor(int(math.Round(card.OverallPercentage)))

	var attRows []attendanceModel.AttendanceModel
	if err := ctl.DB.Where("student_id = ?", studentID).Find(&attRows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load attendance")
	}
	var cnt attendanceService.Counts
	for _, r := range attRows {
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
	card.AttendancePercentage = attendanceService.StrictPercentage(cnt)

	return helper.JsonOK(c, "Report card generated", card)
}
