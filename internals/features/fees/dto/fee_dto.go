package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/fees/model"
)

/* =======================================================
   FEE TYPES
======================================================= */

type CreateFeeTypeRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type FeeTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromFeeTypeModel(m *model.FeeTypeModel) FeeTypeResponse {
	return FeeTypeResponse{ID: m.ID, Name: m.Name, Description: m.Description, CreatedAt: m.CreatedAt}
}

/* =======================================================
   FEE STRUCTURES
======================================================= */

type CreateFeeStructureRequest struct {
	ClassID       string   `json:"class_id" validate:"required,uuid"`
	FeeTypeID     string   `json:"fee_type_id" validate:"required,uuid"`
	SessionID     string   `json:"session_id" validate:"required,uuid"`
	Amount        float64  `json:"amount" validate:"required,gt=0"`
	DiscountType  *string  `json:"discount_type" validate:"omitempty,oneof=fixed percent"`
	DiscountValue *float64 `json:"discount_value" validate:"omitempty,min=0"`
	DueDate       string   `json:"due_date" validate:"required,datetime=2006-01-02"`
}

type UpdateFeeStructureRequest struct {
	Amount        *float64 `json:"amount" validate:"omitempty,gt=0"`
	DiscountType  *string  `json:"discount_type" validate:"omitempty,oneof=fixed percent"`
	DiscountValue *float64 `json:"discount_value" validate:"omitempty,min=0"`
	DueDate       *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

type FeeStructureResponse struct {
	ID            uuid.UUID `json:"id"`
	ClassID       uuid.UUID `json:"class_id"`
	ClassName     string    `json:"class_name,omitempty"`
	FeeTypeID     uuid.UUID `json:"fee_type_id"`
	FeeTypeName   string    `json:"fee_type_name,omitempty"`
	SessionID     uuid.UUID `json:"session_id"`
	Amount        float64   `json:"amount"`
	DiscountType  *string   `json:"discount_type,omitempty"`
	DiscountValue float64   `json:"discount_value"`
	NetAmount     float64   `json:"net_amount"`
	DueDate       string    `json:"due_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromFeeStructureModel(m *model.FeeStructureModel, netAmount float64) FeeStructureResponse {
	var dt *string
	if m.DiscountType != nil {
		s := string(*m.DiscountType)
		dt = &s
	}
	return FeeStructureResponse{
		ID:            m.ID,
		ClassID:       m.ClassID,
		FeeTypeID:     m.FeeTypeID,
		SessionID:     m.SessionID,
		Amount:        m.Amount,
		DiscountType:  dt,
		DiscountValue: m.DiscountValue,
		NetAmount:     netAmount,
		DueDate:       m.DueDate.Format("2006-01-02"),
		CreatedAt:     m.CreatedAt,
	}
}

/* =======================================================
   PAYMENTS
======================================================= */

// RecordPaymentRequest is an offline (Cash/Cheque) payment entered by staff.
type RecordPaymentRequest struct {
	StudentID      string  `json:"student_id" validate:"required,uuid"`
	FeeStructureID string  `json:"fee_structure_id" validate:"required,uuid"`
	AmountPaid     float64 `json:"amount_paid" validate:"required,gt=0"`
	LateFee        float64 `json:"late_fee" validate:"omitempty,min=0"`
	Discount       float64 `json:"discount" validate:"omitempty,min=0"`
	PaymentDate    string  `json:"payment_date" validate:"required,datetime=2006-01-02"`
	PaymentMethod  string  `json:"payment_method" validate:"required,oneof=Cash Cheque"`
	Remarks        *string `json:"remarks" validate:"omitempty,max=255"`
}

// OnlinePaymentRequest opens a Midtrans Snap transaction for a due fee.
type OnlinePaymentRequest struct {
	StudentID      string `json:"student_id" validate:"required,uuid"`
	FeeStructureID string `json:"fee_structure_id" validate:"required,uuid"`
}

type PaymentResponse struct {
	ID             uuid.UUID `json:"id"`
	StudentID      uuid.UUID `json:"student_id"`
	StudentName    string    `json:"student_name,omitempty"`
	FeeStructureID uuid.UUID `json:"fee_structure_id"`
	FeeTypeName    string    `json:"fee_type_name,omitempty"`
	ReceiptNumber  string    `json:"receipt_number"`
	AmountPaid     float64   `json:"amount_paid"`
	LateFee        float64   `json:"late_fee"`
	Discount       float64   `json:"discount"`
	TotalAmount    float64   `json:"total_amount"`
	PaymentDate    string    `json:"payment_date"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	SnapToken      *string   `json:"snap_token,omitempty"`
	RedirectURL    *string   `json:"redirect_url,omitempty"`
	Remarks        *string   `json:"remarks,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromPaymentModel(m *model.FeePaymentModel) PaymentResponse {
	return PaymentResponse{
		ID:             m.ID,
		StudentID:      m.StudentID,
		FeeStructureID: m.FeeStructureID,
		ReceiptNumber:  m.ReceiptNumber,
		AmountPaid:     m.AmountPaid,
		LateFee:        m.LateFee,
		Discount:       m.Discount,
		TotalAmount:    m.TotalAmount,
		PaymentDate:    m.PaymentDate.Format("2006-01-02"),
		PaymentMethod:  string(m.PaymentMethod),
		Status:         string(m.Status),
		SnapToken:      m.SnapToken,
		RedirectURL:    m.RedirectURL,
		Remarks:        m.Remarks,
		CreatedAt:      m.CreatedAt,
	}
}

// DueItem is one outstanding fee of a student.
type DueItem struct {
	FeeStructureID uuid.UUID `json:"fee_structure_id"`
	FeeTypeName    string    `json:"fee_type_name"`
	Amount         float64   `json:"amount"`
	NetAmount      float64   `json:"net_amount"`
	DueDate        string    `json:"due_date"`
	Status         string    `json:"status"`
}

type StudentDuesResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	Dues      []DueItem `json:"dues"`
	TotalDue  float64   `json:"total_due"`
}
