package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDFormats(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"student first of year", StudentID(2024, 1), "20240001"},
		{"student four digits", StudentID(2024, 123), "20240123"},
		{"student overflow keeps digits", StudentID(2024, 10001), "202410001"},
		{"employee first", EmployeeID(2024, 1), "T2024001"},
		{"employee three digits", EmployeeID(2025, 42), "T2025042"},
		{"receipt january", ReceiptNumber(2024, time.January, 1), "RCP2024010001"},
		{"receipt december", ReceiptNumber(2024, time.December, 250), "RCP2024120250"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
