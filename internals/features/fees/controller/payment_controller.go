// file: internals/features/fees/controller/payment_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/fees/dto"
	"sekolahku_backend/internals/features/fees/model"
	"sekolahku_backend/internals/features/fees/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/sequence"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

func (ctl *PaymentController) resp(m *model.FeePaymentModel) dto.PaymentResponse {
	r := dto.FromPaymentModel(m)
	ctl.DB.Table("students").
		Select("users.user_name").
		Joins("JOIN users ON users.id = students.user_id").
		Where("students.id = ?", m.StudentID).
		Scan(&r.StudentName)
	ctl.DB.Table("fee_types").
		Select("fee_types.name").
		Joins("JOIN fee_structures ON fee_structures.fee_type_id = fee_types.id").
		Where("fee_structures.id = ?", m.FeeStructureID).
		Scan(&r.FeeTypeName)
	return r
}

/* =======================================================
   OFFLINE PAYMENT (staff)
======================================================= */

// Record enters a Cash or Cheque payment. The receipt number, the total
// and the Paid/Partial status are all derived inside the transaction.
func (ctl *PaymentController) Record(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFee.Struct(req); err != nil {
		return err
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payment date")
	}

	studentID := uuid.MustParse(req.StudentID)
	structureID := uuid.MustParse(req.FeeStructureID)

	payment := &model.FeePaymentModel{
		StudentID:      studentID,
		FeeStructureID: structureID,
		AmountPaid:     req.AmountPaid,
		LateFee:        req.LateFee,
		Discount:       req.Discount,
		TotalAmount:    service.PaymentTotal(req.AmountPaid, req.LateFee, req.Discount),
		PaymentDate:    paymentDate,
		PaymentMethod:  model.PaymentMethod(req.PaymentMethod),
		CollectedBy:    &p.UserID,
		Remarks:        req.Remarks,
	}
	if payment.TotalAmount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Payment total must be positive")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var structure model.FeeStructureModel
		if err := tx.First(&structure, "id = ?", structureID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Fee structure not found")
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.FeePaymentModel{}).
			Where("student_id = ? AND fee_structure_id = ?", studentID, structureID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fee already paid for this student and structure")
		}

		receipt, err := sequence.NextReceiptNumber(tx, paymentDate)
		if err != nil {
			return err
		}
		payment.ReceiptNumber = receipt

		netDue := service.NetAmount(structure.Amount, structure.DiscountType, structure.DiscountValue)
		payment.Status = service.PaymentStatusFor(payment.TotalAmount, netDue)

		return tx.Create(payment).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusBadRequest, "Fee already paid for this student and structure")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	return helper.JsonCreated(c, "Payment recorded", ctl.resp(payment))
}

/* =======================================================
   ONLINE PAYMENT (Midtrans Snap)
======================================================= */

// InitiateOnline opens a Snap transaction for the full net amount of a
// due fee. The row starts Pending; the gateway notification settles it.
func (ctl *PaymentController) InitiateOnline(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	var req dto.OnlinePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFee.Struct(req); err != nil {
		return err
	}

	studentID := uuid.MustParse(req.StudentID)
	structureID := uuid.MustParse(req.FeeStructureID)

	if !p.IsAdmin() && !helperAuth.StudentRecordScope(p, links, "student_id").Allows(studentID) {
		return fiber.NewError(fiber.StatusForbidden, "You may only pay fees for your own student record")
	}

	payment := &model.FeePaymentModel{
		StudentID:      studentID,
		FeeStructureID: structureID,
		PaymentDate:    time.Now(),
		PaymentMethod:  model.PaymentMethodOnline,
		Status:         model.PaymentStatusPending,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var structure model.FeeStructureModel
		if err := tx.First(&structure, "id = ?", structureID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Fee structure not found")
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.FeePaymentModel{}).
			Where("student_id = ? AND fee_structure_id = ?", studentID, structureID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fee already paid for this student and structure")
		}

		receipt, err := sequence.NextReceiptNumber(tx, payment.PaymentDate)
		if err != nil {
			return err
		}
		payment.ReceiptNumber = receipt

		net := service.NetAmount(structure.Amount, structure.DiscountType, structure.DiscountValue)
		payment.AmountPaid = net
		payment.TotalAmount = net

		return tx.Create(payment).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to initiate payment")
	}

	var payer struct {
		UserName string
		Email    string
	}
	ctl.DB.Table("users").Select("user_name, email").Where("id = ?", p.UserID).Take(&payer)

	token, redirectURL, err := service.GenerateSnapToken(*payment, payer.UserName, payer.Email)
	if err != nil {
		// Roll the pending row back so the payer can retry.
		ctl.DB.Unscoped().Delete(payment)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create payment token")
	}

	payment.SnapToken = &token
	payment.RedirectURL = &redirectURL
	ctl.DB.Model(payment).Updates(map[string]interface{}{
		"snap_token":   token,
		"redirect_url": redirectURL,
	})

	return helper.JsonCreated(c, "Payment initiated, continue in the payment page", ctl.resp(payment))
}

// Notification is the Midtrans webhook. It is unauthenticated; the
// order id in the payload is our receipt number.
func (ctl *PaymentController) Notification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid webhook"})
	}

	orderID, _ := body["order_id"].(string)
	transactionStatus, _ := body["transaction_status"].(string)
	if orderID == "" || transactionStatus == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid webhook"})
	}

	var payment model.FeePaymentModel
	if err := ctl.DB.Where("receipt_number = ?", orderID).First(&payment).Error; err != nil {
		log.Println("[WARN] payment notification for unknown order:", orderID)
		return c.SendStatus(fiber.StatusOK)
	}

	switch transactionStatus {
	case "settlement", "capture", "success":
		transactionID, _ := body["transaction_id"].(string)
		updates := map[string]any{"status": model.PaymentStatusPaid}
		if transactionID != "" {
			updates["transaction_id"] = transactionID
		}
		if err := ctl.DB.Model(&payment).Updates(updates).Error; err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
	case "deny", "cancel", "expire", "failure":
		// Free the student+structure slot so the payer can retry.
		if err := ctl.DB.Unscoped().Delete(&payment).Error; err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
	default:
		// pending and friends: leave the row as is
	}

	return c.SendStatus(fiber.StatusOK)
}

/* =======================================================
   READS
======================================================= */

func (ctl *PaymentController) List(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)

	q := ctl.DB.Model(&model.FeePaymentModel{})
	if !p.IsTeacher() {
		q = helperAuth.StudentRecordScope(p, links, "student_id").Apply(q)
	}

	if studentID := c.Query("student_id"); studentID != "" {
		q = q.Where("student_id = ?", studentID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if method := c.Query("payment_method"); method != "" {
		q = q.Where("payment_method = ?", method)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("payment_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("payment_date <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count payments")
	}

	var payments []model.FeePaymentModel
	if err := q.Order("payment_date DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list payments")
	}

	resp := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, ctl.resp(&payments[i]))
	}
	return helper.JsonList(c, "Payments retrieved", resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

// StudentDues lists a student's unpaid structures with their current
// Pending/Overdue status.
func (ctl *PaymentController) StudentDues(c *fiber.Ctx) error {
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

	var student struct {
		ClassID   *uuid.UUID
		SessionID uuid.UUID
	}
	if err := ctl.DB.Table("students").
		Select("class_id, session_id").
		Where("id = ? AND deleted_at IS NULL", studentID).
		Take(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	resp := dto.StudentDuesResponse{StudentID: studentID, Dues: []dto.DueItem{}}
	if student.ClassID == nil {
		return helper.JsonOK(c, "Student dues", resp)
	}

	var structures []model.FeeStructureModel
	if err := ctl.DB.
		Where("class_id = ?", *student.ClassID).
		Where("id NOT IN (SELECT fee_structure_id FROM fee_payments WHERE student_id = ? AND deleted_at IS NULL)", studentID).
		Order("due_date ASC").
		Find(&structures).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list dues")
	}

	now := time.Now()
	for _, s := range structures {
		net := service.NetAmount(s.Amount, s.DiscountType, s.DiscountValue)
		var feeTypeName string
		ctl.DB.Table("fee_types").Select("name").Where("id = ?", s.FeeTypeID).Scan(&feeTypeName)
		resp.Dues = append(resp.Dues, dto.DueItem{
			FeeStructureID: s.ID,
			FeeTypeName:    feeTypeName,
			Amount:         s.Amount,
			NetAmount:      net,
			DueDate:        s.DueDate.Format("2006-01-02"),
			Status:         string(service.DueStatus(s.DueDate, now)),
		})
		resp.TotalDue += net
	}

	return helper.JsonOK(c, "Student dues", resp)
}
