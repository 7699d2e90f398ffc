package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountFixed   DiscountType = "fixed"
	DiscountPercent DiscountType = "percent"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPartial PaymentStatus = "Partial"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodCheque PaymentMethod = "Cheque"
	PaymentMethodOnline PaymentMethod = "Online"
)

// FeeTypeModel maps the fee_types table (Tuition, Transport, Library...).
type FeeTypeModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"size:50;not null;uniqueIndex" json:"name" validate:"required,min=1,max=50"`
	Description *string        `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FeeTypeModel) TableName() string { return "fee_types" }

// FeeStructureModel maps fee_structures: one amount per class, fee type
// and session. An optional discount never pushes the net below zero.
type FeeStructureModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClassID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_fee_class_type_session" json:"class_id"`
	FeeTypeID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_fee_class_type_session" json:"fee_type_id"`
	SessionID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_fee_class_type_session" json:"session_id"`
	Amount        float64        `gorm:"not null" json:"amount"`
	DiscountType  *DiscountType  `gorm:"type:varchar(10)" json:"discount_type,omitempty"`
	DiscountValue float64        `gorm:"not null;default:0" json:"discount_value"`
	DueDate       time.Time      `gorm:"type:date;not null" json:"due_date"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FeeStructureModel) TableName() string { return "fee_structures" }

// FeePaymentModel maps fee_payments: at most one payment row per
// student per fee structure. ReceiptNumber doubles as the Midtrans
// order id for online payments.
type FeePaymentModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_payment_student_structure;index" json:"student_id"`
	FeeStructureID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_payment_student_structure" json:"fee_structure_id"`
	ReceiptNumber  string         `gorm:"size:20;not null;uniqueIndex" json:"receipt_number"`
	AmountPaid     float64        `gorm:"not null" json:"amount_paid"`
	LateFee        float64        `gorm:"not null;default:0" json:"late_fee"`
	Discount       float64        `gorm:"not null;default:0" json:"discount"`
	TotalAmount    float64        `gorm:"not null" json:"total_amount"`
	PaymentDate    time.Time      `gorm:"type:date;not null" json:"payment_date"`
	PaymentMethod  PaymentMethod  `gorm:"type:varchar(10);not null" json:"payment_method"`
	Status         PaymentStatus  `gorm:"type:varchar(10);not null" json:"status"`
	TransactionID  *string        `gorm:"size:100" json:"transaction_id,omitempty"`
	SnapToken      *string        `gorm:"size:100" json:"snap_token,omitempty"`
	RedirectURL    *string        `gorm:"size:255" json:"redirect_url,omitempty"`
	CollectedBy    *uuid.UUID     `gorm:"type:uuid" json:"collected_by,omitempty"`
	Remarks        *string        `gorm:"size:255" json:"remarks,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FeePaymentModel) TableName() string { return "fee_payments" }
