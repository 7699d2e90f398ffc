// file: internals/helpers/sequence/sequence.go
package sequence

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SequenceCounterModel backs the year-scoped ID generators. One atomic
// upsert per allocation means concurrent creations can no longer mint
// duplicate IDs; the external ID formats are unchanged.
type SequenceCounterModel struct {
	Scope string `gorm:"type:varchar(64);primaryKey"`
	Value int64  `gorm:"not null"`
}

func (SequenceCounterModel) TableName() string { return "sequence_counters" }

// Next allocates the next value for a scope in a single statement.
func Next(tx *gorm.DB, scope string) (int64, error) {
	var value int64
	err := tx.Raw(`
		INSERT INTO sequence_counters (scope, value) VALUES (?, 1)
		ON CONFLICT (scope) DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value`, scope).Scan(&value).Error
	return value, err
}

/* =========================================================
   ID formats (kept bit-for-bit with the legacy system)
========================================================= */

// StudentID: <year><seq4>, e.g. 20240001
func StudentID(year int, seq int64) string {
	return fmt.Sprintf("%d%04d", year, seq)
}

// EmployeeID: T<year><seq3>, e.g. T2024001
func EmployeeID(year int, seq int64) string {
	return fmt.Sprintf("T%d%03d", year, seq)
}

// ReceiptNumber: RCP<year><month2><seq4>, e.g. RCP2024010001
func ReceiptNumber(year int, month time.Month, seq int64) string {
	return fmt.Sprintf("RCP%d%02d%04d", year, int(month), seq)
}

// NextStudentID allocates and formats an admission number for the year.
func NextStudentID(tx *gorm.DB, year int) (string, error) {
	seq, err := Next(tx, fmt.Sprintf("student:%d", year))
	if err != nil {
		return "", err
	}
	return StudentID(year, seq), nil
}

// NextEmployeeID allocates and formats an employee id for the year.
func NextEmployeeID(tx *gorm.DB, year int) (string, error) {
	seq, err := Next(tx, fmt.Sprintf("teacher:%d", year))
	if err != nil {
		return "", err
	}
	return EmployeeID(year, seq), nil
}

// NextReceiptNumber allocates and formats a fee receipt number for the month.
func NextReceiptNumber(tx *gorm.DB, now time.Time) (string, error) {
	seq, err := Next(tx, fmt.Sprintf("receipt:%d:%02d", now.Year(), int(now.Month())))
	if err != nil {
		return "", err
	}
	return ReceiptNumber(now.Year(), now.Month(), seq), nil
}
