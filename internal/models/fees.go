package models

import (
	"time"

	"github.com/shopspring/decimal"

	appErrors "github.com/edustack/school-api/pkg/errors"
)

// FeeStatus tracks how much of an assignment has been settled.
type FeeStatus string

const (
	FeeStatusUnpaid  FeeStatus = "unpaid"
	FeeStatusPartial FeeStatus = "partial"
	FeeStatusPaid    FeeStatus = "paid"
)

// DiscountType distinguishes percentage from fixed-amount discounts.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PaymentMethod enumerates accepted payment channels.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOnline       PaymentMethod = "online"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

// VerificationStatus is the lifecycle of an offline payment's review.
// Direct collections are created VERIFIED; bank transfers start PENDING
// and move to VERIFIED or REJECTED exactly once.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// ReminderType enumerates reminder delivery channels.
type ReminderType string

const (
	ReminderEmail ReminderType = "email"
	ReminderSMS   ReminderType = "sms"
	ReminderInApp ReminderType = "in_app"
)

// FeesType is a fee category: tuition, transport, lab, library.
type FeesType struct {
	ID          string    `db:"id" json:"id"`
	SchoolID    string    `db:"school_id" json:"school_id"`
	Name        string    `db:"name" json:"name"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// FeesGroup is a cohort grouping for fee structures ("Grade 1-5 Fees").
type FeesGroup struct {
	ID          string    `db:"id" json:"id"`
	SchoolID    string    `db:"school_id" json:"school_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// FeesMaster links a group and type to a priced amount for an academic period.
type FeesMaster struct {
	ID           string          `db:"id" json:"id"`
	SchoolID     string          `db:"school_id" json:"school_id"`
	FeesGroupID  string          `db:"fees_group_id" json:"fees_group_id"`
	FeesTypeID   string          `db:"fees_type_id" json:"fees_type_id"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	DueDate      *time.Time      `db:"due_date" json:"due_date,omitempty"`
	AcademicYear string          `db:"academic_year" json:"academic_year"`
	Term         string          `db:"term" json:"term,omitempty"`
	Active       bool            `db:"active" json:"active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// FeesDiscount is a percentage or fixed reduction applied at assignment time.
type FeesDiscount struct {
	ID          string          `db:"id" json:"id"`
	SchoolID    string          `db:"school_id" json:"school_id"`
	Name        string          `db:"name" json:"name"`
	Code        string          `db:"code" json:"code"`
	Type        DiscountType    `db:"discount_type" json:"discount_type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Description string          `db:"description" json:"description,omitempty"`
	Active      bool            `db:"active" json:"active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// FeesAssign is one student's obligation toward one fees master row.
// Invariant: Balance = TotalAmount - PaidAmount, never negative, and Status
// follows the balance (see DeriveStatus).
type FeesAssign struct {
	ID             string          `db:"id" json:"id"`
	SchoolID       string          `db:"school_id" json:"school_id"`
	StudentID      string          `db:"student_id" json:"student_id"`
	FeesMasterID   string          `db:"fees_master_id" json:"fees_master_id"`
	DiscountID     *string         `db:"discount_id" json:"discount_id,omitempty"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	PaidAmount     decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	Balance        decimal.Decimal `db:"balance" json:"balance"`
	Status         FeeStatus       `db:"status" json:"status"`
	DueDate        *time.Time      `db:"due_date" json:"due_date,omitempty"`
	CarriedForward bool            `db:"is_carried_forward" json:"is_carried_forward"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// FeesAssignDetail enriches an assignment with display names.
type FeesAssignDetail struct {
	FeesAssign
	StudentName   string `db:"student_name" json:"student_name,omitempty"`
	FeesTypeName  string `db:"fees_type_name" json:"fees_type_name,omitempty"`
	FeesGroupName string `db:"fees_group_name" json:"fees_group_name,omitempty"`
}

// FeesPayment is an immutable payment transaction against one assignment.
type FeesPayment struct {
	ID            string          `db:"id" json:"id"`
	SchoolID      string          `db:"school_id" json:"school_id"`
	StudentID     string          `db:"student_id" json:"student_id"`
	FeesAssignID  string          `db:"fees_assign_id" json:"fees_assign_id"`
	FeesMasterID  string          `db:"fees_master_id" json:"fees_master_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Method        PaymentMethod   `db:"payment_method" json:"payment_method"`
	PaidAt        time.Time       `db:"paid_at" json:"paid_at"`
	TransactionID string          `db:"transaction_id" json:"transaction_id,omitempty"`
	ReceiptNumber string          `db:"receipt_number" json:"receipt_number"`
	BankName      string          `db:"bank_name" json:"bank_name,omitempty"`
	ChequeNumber  string          `db:"cheque_number" json:"cheque_number,omitempty"`
	ChequeDate    *time.Time      `db:"cheque_date" json:"cheque_date,omitempty"`
	Note          string          `db:"note" json:"note,omitempty"`
	CollectedBy   string          `db:"collected_by" json:"collected_by,omitempty"`

	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	VerifiedBy         *string            `db:"verified_by" json:"verified_by,omitempty"`
	VerifiedAt         *time.Time         `db:"verified_at" json:"verified_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FeesPaymentDetail enriches a payment with the student's name.
type FeesPaymentDetail struct {
	FeesPayment
	StudentName string `db:"student_name" json:"student_name,omitempty"`
}

// FeesReminder is an append-only record of a dunning message.
type FeesReminder struct {
	ID           string       `db:"id" json:"id"`
	SchoolID     string       `db:"school_id" json:"school_id"`
	FeesAssignID string       `db:"fees_assign_id" json:"fees_assign_id"`
	StudentID    string       `db:"student_id" json:"student_id"`
	Type         ReminderType `db:"reminder_type" json:"reminder_type"`
	Message      string       `db:"message" json:"message,omitempty"`
	SentBy       string       `db:"sent_by" json:"sent_by,omitempty"`
	SentAt       time.Time    `db:"sent_at" json:"sent_at"`
}

// CarryForwardPreview aggregates a student's outstanding items for the
// read-only carry-forward preview.
type CarryForwardPreview struct {
	StudentID    string          `db:"student_id" json:"student_id"`
	StudentName  string          `db:"student_name" json:"student_name"`
	TotalBalance decimal.Decimal `db:"total_balance" json:"total_balance"`
	ItemsCount   int             `db:"items_count" json:"items_count"`
}

// PaymentFilter captures search criteria for payments.
type PaymentFilter struct {
	SchoolID           string
	StudentID          string
	Method             PaymentMethod
	VerificationStatus VerificationStatus
	DateFrom           *time.Time
	DateTo             *time.Time
}

// DueFeesFilter captures search criteria for outstanding assignments.
type DueFeesFilter struct {
	SchoolID     string
	StudentID    string
	FeesGroupID  string
	Status       FeeStatus
	AcademicYear string
}

// CarryForwardFilter selects the source assignments for a carry-forward
// run: open balances whose fee master belongs to the academic period
// being closed, optionally narrowed to a term and to named students.
type CarryForwardFilter struct {
	SchoolID         string
	FromAcademicYear string
	FromTerm         string
	StudentIDs       []string
}

// DeriveStatus returns the status implied by the current amounts: paid when
// nothing is outstanding, partial when something has been paid, unpaid
// otherwise.
func DeriveStatus(total, paid, balance decimal.Decimal) FeeStatus {
	switch {
	case balance.LessThanOrEqual(decimal.Zero):
		return FeeStatusPaid
	case paid.GreaterThan(decimal.Zero) && paid.LessThan(total):
		return FeeStatusPartial
	default:
		return FeeStatusUnpaid
	}
}

// ApplyPayment mutates the assignment for a payment of the given amount,
// keeping the balance/status invariants. It rejects non-positive amounts,
// overpayment and payments against settled assignments.
func (a *FeesAssign) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return appErrors.Clone(appErrors.ErrValidation, "payment amount must be positive")
	}
	if a.Status == FeeStatusPaid {
		return appErrors.ErrAlreadyPaid
	}
	if amount.GreaterThan(a.Balance) {
		return appErrors.Clone(appErrors.ErrPaymentExceedsBalance,
			"payment amount ("+amount.StringFixed(2)+") exceeds balance ("+a.Balance.StringFixed(2)+")")
	}

	a.PaidAmount = a.PaidAmount.Add(amount)
	a.Balance = a.TotalAmount.Sub(a.PaidAmount)
	a.Status = DeriveStatus(a.TotalAmount, a.PaidAmount, a.Balance)
	return nil
}

// ApplyDiscount reduces a master amount by the given discount, rounding the
// result to 2 decimal places and flooring fixed reductions at zero. A nil
// discount returns the amount rounded unchanged.
func ApplyDiscount(amount decimal.Decimal, discount *FeesDiscount) decimal.Decimal {
	if discount == nil {
		return amount.Round(2)
	}
	switch discount.Type {
	case DiscountPercentage:
		factor := decimal.NewFromInt(1).Sub(discount.Amount.Div(decimal.NewFromInt(100)))
		return amount.Mul(factor).Round(2)
	default:
		reduced := amount.Sub(discount.Amount)
		if reduced.IsNegative() {
			return decimal.Zero.Round(2)
		}
		return reduced.Round(2)
	}
}

// NewCarryForward converts this assignment's outstanding balance into a
// fresh obligation. The source row is left untouched; the new row starts
// unpaid with no due date and is flagged as carried forward.
func (a *FeesAssign) NewCarryForward() *FeesAssign {
	return &FeesAssign{
		SchoolID:       a.SchoolID,
		StudentID:      a.StudentID,
		FeesMasterID:   a.FeesMasterID,
		DiscountID:     a.DiscountID,
		TotalAmount:    a.Balance,
		PaidAmount:     decimal.Zero,
		Balance:        a.Balance,
		Status:         FeeStatusUnpaid,
		DueDate:        nil,
		CarriedForward: true,
	}
}
