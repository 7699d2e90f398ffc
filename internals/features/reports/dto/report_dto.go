package dto

import "github.com/google/uuid"

// AttendanceReportRow carries both attendance readings side by side so
// the report can show the difference between them.
type AttendanceReportRow struct {
	StudentID         uuid.UUID `json:"student_id"`
	StudentName       string    `json:"student_name"`
	AdmissionNumber   string    `json:"admission_number"`
	Present           int       `json:"present"`
	Absent            int       `json:"absent"`
	Late              int       `json:"late"`
	Excused           int       `json:"excused"`
	TotalDays         int       `json:"total_days"`
	StrictPercentage  float64   `json:"strict_percentage"`
	LenientPercentage float64   `json:"lenient_percentage"`
}

type AttendanceReport struct {
	ClassID uuid.UUID             `json:"class_id"`
	From    string                `json:"from,omitempty"`
	To      string                `json:"to,omitempty"`
	Rows    []AttendanceReportRow `json:"rows"`
}

type ExamResultReport struct {
	ExamID            uuid.UUID      `json:"exam_id"`
	ExamName          string         `json:"exam_name"`
	SubjectName       string         `json:"subject_name"`
	TotalStudents     int            `json:"total_students"`
	Appeared          int            `json:"appeared"`
	Absent            int            `json:"absent"`
	Average           float64        `json:"average"`
	Highest           float64        `json:"highest"`
	Lowest            float64        `json:"lowest"`
	PassRate          float64        `json:"pass_rate"`
	GradeDistribution map[string]int `json:"grade_distribution"`
}

type FeeCollectionReport struct {
	From          string             `json:"from,omitempty"`
	To            string             `json:"to,omitempty"`
	TotalPayments int                `json:"total_payments"`
	TotalAmount   float64            `json:"total_amount"`
	TotalLateFees float64            `json:"total_late_fees"`
	PendingTotal  float64            `json:"pending_total"`
	OverdueTotal  float64            `json:"overdue_total"`
	ByMethod       map[string]float64 `json:"by_method"`
	ByStatus       map[string]int     `json:"by_status"`
	ByFeeType      map[string]float64 `json:"by_fee_type"`
	ByClass        map[string]float64 `json:"by_class"`
	PendingByClass map[string]float64 `json:"pending_by_class"`
	OverdueByClass map[string]float64 `json:"overdue_by_class"`
}

type ReportCardSubject struct {
	SubjectName   string  `json:"subject_name"`
	ExamName      string  `json:"exam_name"`
	MarksObtained float64 `json:"marks_obtained"`
	TotalMarks    int     `json:"total_marks"`
	Percentage    int     `json:"percentage"`
	Grade         string  `json:"grade"`
	IsPassed      bool    `json:"is_passed"`
	IsAbsent      bool    `json:"is_absent"`
}

type ReportCard struct {
	StudentID            uuid.UUID           `json:"student_id"`
	StudentName          string              `json:"student_name"`
	AdmissionNumber      string              `json:"admission_number"`
	ClassName            string              `json:"class_name,omitempty"`
	Subjects             []ReportCardSubject `json:"subjects"`
	OverallPercentage    float64             `json:"overall_percentage"`
	OverallGrade         string              `json:"overall_grade"`
	AttendancePercentage float64             `json:"attendance_percentage"`
}
