package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		paid     int64
		expected FeeStatus
	}{
		{"nothing paid", 1000, 0, FeeStatusUnpaid},
		{"partially paid", 1000, 400, FeeStatusPartial},
		{"fully paid", 1000, 1000, FeeStatusPaid},
		{"zero total", 0, 0, FeeStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.NewFromInt(tt.total)
			paid := decimal.NewFromInt(tt.paid)
			assert.Equal(t, tt.expected, DeriveStatus(total, paid, total.Sub(paid)))
		})
	}
}

func TestApplyDiscount(t *testing.T) {
	master := decimal.NewFromInt(1000)

	pct := &FeesDiscount{Type: DiscountPercentage, Amount: decimal.NewFromInt(20)}
	assert.True(t, ApplyDiscount(master, pct).Equal(decimal.NewFromInt(800)))

	fixed := &FeesDiscount{Type: DiscountFixed, Amount: decimal.NewFromInt(150)}
	assert.True(t, ApplyDiscount(master, fixed).Equal(decimal.NewFromInt(850)))

	// A fixed discount exceeding the amount floors at zero.
	oversized := &FeesDiscount{Type: DiscountFixed, Amount: decimal.NewFromInt(1200)}
	assert.True(t, ApplyDiscount(master, oversized).Equal(decimal.Zero))

	assert.True(t, ApplyDiscount(master, nil).Equal(master))
}

func TestApplyDiscountRounding(t *testing.T) {
	// 33.33% of 100.00 keeps two decimal places.
	pct := &FeesDiscount{Type: DiscountPercentage, Amount: decimal.RequireFromString("33.33")}
	got := ApplyDiscount(decimal.NewFromInt(100), pct)
	assert.True(t, got.Equal(decimal.RequireFromString("66.67")), "got %s", got)
}

func TestApplyPaymentMaintainsInvariant(t *testing.T) {
	assign := &FeesAssign{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.Zero,
		Balance:     decimal.NewFromInt(1000),
		Status:      FeeStatusUnpaid,
	}

	require.NoError(t, assign.ApplyPayment(decimal.NewFromInt(400)))
	assert.Equal(t, FeeStatusPartial, assign.Status)
	assert.True(t, assign.Balance.Equal(assign.TotalAmount.Sub(assign.PaidAmount)))

	require.NoError(t, assign.ApplyPayment(decimal.NewFromInt(600)))
	assert.Equal(t, FeeStatusPaid, assign.Status)
	assert.True(t, assign.Balance.IsZero())

	err := assign.ApplyPayment(decimal.NewFromInt(1))
	require.Error(t, err)
}

func TestApplyPaymentRejectsInvalidAmounts(t *testing.T) {
	assign := &FeesAssign{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.NewFromInt(400),
		Balance:     decimal.NewFromInt(600),
		Status:      FeeStatusPartial,
	}

	require.Error(t, assign.ApplyPayment(decimal.Zero))
	require.Error(t, assign.ApplyPayment(decimal.NewFromInt(-5)))
	require.Error(t, assign.ApplyPayment(decimal.NewFromInt(601)))

	// Failed applications leave the row untouched.
	assert.True(t, assign.PaidAmount.Equal(decimal.NewFromInt(400)))
	assert.True(t, assign.Balance.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, FeeStatusPartial, assign.Status)
}

func TestNewCarryForward(t *testing.T) {
	due := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	src := &FeesAssign{
		ID:           "assign-1",
		SchoolID:     "school-1",
		StudentID:    "student-1",
		FeesMasterID: "master-1",
		TotalAmount:  decimal.NewFromInt(1000),
		PaidAmount:   decimal.NewFromInt(700),
		Balance:      decimal.NewFromInt(300),
		Status:       FeeStatusPartial,
		DueDate:      &due,
	}

	fresh := src.NewCarryForward()
	assert.Empty(t, fresh.ID)
	assert.True(t, fresh.TotalAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, fresh.Balance.Equal(decimal.NewFromInt(300)))
	assert.True(t, fresh.PaidAmount.IsZero())
	assert.Equal(t, FeeStatusUnpaid, fresh.Status)
	assert.True(t, fresh.CarriedForward)
	assert.Nil(t, fresh.DueDate)
}
