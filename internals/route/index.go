// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "sekolahku_backend/internals/features/academics/attendance/route"
	classRoute "sekolahku_backend/internals/features/academics/classes/route"
	examRoute "sekolahku_backend/internals/features/academics/exams/route"
	materialRoute "sekolahku_backend/internals/features/academics/materials/route"
	sessionRoute "sekolahku_backend/internals/features/academics/sessions/route"
	subjectRoute "sekolahku_backend/internals/features/academics/subjects/route"
	dashboardRoute "sekolahku_backend/internals/features/dashboard/route"
	feeRoute "sekolahku_backend/internals/features/fees/route"
	libraryRoute "sekolahku_backend/internals/features/library/route"
	messageRoute "sekolahku_backend/internals/features/messages/route"
	noticeRoute "sekolahku_backend/internals/features/notices/route"
	reportRoute "sekolahku_backend/internals/features/reports/route"
	studentRoute "sekolahku_backend/internals/features/school/students/route"
	teacherRoute "sekolahku_backend/internals/features/school/teachers/route"
	authRoute "sekolahku_backend/internals/features/users/auth/route"
	userRoute "sekolahku_backend/internals/features/users/user/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH / USER BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up UserRoutes...")
	userRoute.UserRoutes(app, db)

	// ===================== ACADEMICS =====================
	log.Println("[INFO] Mounting Academics routes...")
	sessionRoute.SessionRoutes(app, db)
	classRoute.ClassRoutes(app, db)
	subjectRoute.SubjectRoutes(app, db)
	examRoute.ExamRoutes(app, db)
	attendanceRoute.AttendanceRoutes(app, db)
	materialRoute.MaterialRoutes(app, db)

	// ===================== SCHOOL =====================
	log.Println("[INFO] Mounting School routes...")
	studentRoute.StudentRoutes(app, db)
	teacherRoute.TeacherRoutes(app, db)

	// ===================== FINANCE =====================
	log.Println("[INFO] Mounting Fee routes...")
	feeRoute.FeeRoutes(app, db)

	// ===================== SUPPORT =====================
	log.Println("[INFO] Mounting Library routes...")
	libraryRoute.LibraryRoutes(app, db)

	log.Println("[INFO] Mounting Message routes...")
	messageRoute.MessageRoutes(app, db)

	log.Println("[INFO] Mounting Notice routes...")
	noticeRoute.NoticeRoutes(app, db)

	// ===================== REPORTING =====================
	log.Println("[INFO] Mounting Report routes...")
	reportRoute.ReportRoutes(app, db)
	dashboardRoute.DashboardRoutes(app, db)
}
