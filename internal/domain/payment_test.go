package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaymentStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want PaymentStatus
	}{
		{raw: "Pending", want: PaymentPending},
		{raw: "pending", want: PaymentPending},
		{raw: "Completed", want: PaymentCompleted},
		{raw: "success", want: PaymentCompleted},
		{raw: "complete", want: PaymentCompleted},
		{raw: "Failed", want: PaymentFailed},
		{raw: "cancelled", want: PaymentFailed},
		{raw: " Pending ", want: PaymentPending},
		{raw: "Reversed", want: PaymentStatus("Reversed")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ParsePaymentStatus(tt.raw))
		})
	}
}
