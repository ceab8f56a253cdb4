package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edustack/school-api/internal/models"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

func newLedgerMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func assignRows(total, paid, balance string, status models.FeeStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "school_id", "student_id", "fees_master_id", "discount_id", "total_amount", "paid_amount", "balance", "status", "due_date", "is_carried_forward", "created_at", "updated_at"}).
		AddRow("assign-1", "school-1", "student-1", "master-1", nil, total, paid, balance, status, nil, false, now, now)
}

func TestFeesLedgerRepositoryCollectPayment(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewFeesLedgerRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM fees_assigns WHERE id = \\$1 AND school_id = \\$2 FOR UPDATE").
		WithArgs("assign-1", "school-1").
		WillReturnRows(assignRows("1000", "0", "1000", models.FeeStatusUnpaid))
	mock.ExpectExec("UPDATE fees_assigns SET paid_amount").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO fees_payments").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	payment := &models.FeesPayment{
		ID:                 "payment-1",
		SchoolID:           "school-1",
		StudentID:          "student-1",
		FeesAssignID:       "assign-1",
		FeesMasterID:       "master-1",
		Amount:             decimal.NewFromInt(400),
		Method:             models.PaymentMethodCash,
		ReceiptNumber:      "RCP-school-1-1700000000-assign-1",
		VerificationStatus: models.VerificationVerified,
	}

	assign, err := repo.CollectPayment(context.Background(), payment)
	require.NoError(t, err)
	assert.True(t, assign.PaidAmount.Equal(decimal.NewFromInt(400)))
	assert.True(t, assign.Balance.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, models.FeeStatusPartial, assign.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeesLedgerRepositoryCollectPaymentFullSettlement(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewFeesLedgerRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM fees_assigns WHERE id = \\$1 AND school_id = \\$2 FOR UPDATE").
		WithArgs("assign-1", "school-1").
		WillReturnRows(assignRows("1000", "400", "600", models.FeeStatusPartial))
	mock.ExpectExec("UPDATE fees_assigns SET paid_amount").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO fees_payments").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	payment := &models.FeesPayment{
		ID:                 "payment-2",
		SchoolID:           "school-1",
		StudentID:          "student-1",
		FeesAssignID:       "assign-1",
		FeesMasterID:       "master-1",
		Amount:             decimal.NewFromInt(600),
		Method:             models.PaymentMethodOnline,
		ReceiptNumber:      "RCP-school-1-1700000001-assign-1",
		VerificationStatus: models.VerificationVerified,
	}

	assign, err := repo.CollectPayment(context.Background(), payment)
	require.NoError(t, err)
	assert.True(t, assign.Balance.IsZero())
	assert.Equal(t, models.FeeStatusPaid, assign.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeesLedgerRepositoryCollectPaymentOverpayment(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewFeesLedgerRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM fees_assigns WHERE id = \\$1 AND school_id = \\$2 FOR UPDATE").
		WithArgs("assign-1", "school-1").
		WillReturnRows(assignRows("1000", "400", "600", models.FeeStatusPartial))
	mock.ExpectRollback()

	payment := &models.FeesPayment{
		SchoolID:     "school-1",
		StudentID:    "student-1",
		FeesAssignID: "assign-1",
		Amount:       decimal.NewFromInt(601),
	}

	_, err := repo.CollectPayment(context.Background(), payment)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrPaymentExceedsBalance.Code, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeesLedgerRepositoryVerifyPaymentAlreadyFinalised(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewFeesLedgerRepository(db)

	now := time.Now()
	verifiedBy := "admin-1"
	paymentRows := sqlmock.NewRows([]string{"id", "school_id", "student_id", "fees_assign_id", "fees_master_id", "amount", "payment_method", "paid_at", "transaction_id", "receipt_number", "bank_name", "cheque_number", "cheque_date", "note", "collected_by", "verification_status", "verified_by", "verified_at", "created_at", "updated_at"}).
		AddRow("payment-1", "school-1", "student-1", "assign-1", "master-1", "300", models.PaymentMethodBankTransfer, now, "", "OBP-school-1-1700000000-assign-1", "BCA", "", nil, "", "", models.VerificationVerified, &verifiedBy, &now, now, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM fees_payments WHERE id = \\$1 AND school_id = \\$2 FOR UPDATE").
		WithArgs("payment-1", "school-1").
		WillReturnRows(paymentRows)
	mock.ExpectRollback()

	_, err := repo.VerifyPayment(context.Background(), "school-1", "payment-1", "admin-2")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAlreadyVerified.Code, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeesLedgerRepositoryListCarryForwardSourcesScopedToPeriod(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewFeesLedgerRepository(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM fees_assigns a\s+JOIN fees_masters fm ON fm\.id = a\.fees_master_id\s+WHERE a\.school_id = \$1 AND a\.balance > 0 AND fm\.academic_year = \$2 AND fm\.term = \$3`).
		WithArgs("school-1", "2024/2025", "1").
		WillReturnRows(assignRows("300", "0", "300", models.FeeStatusUnpaid))

	assigns, err := repo.ListCarryForwardSources(context.Background(), models.CarryForwardFilter{
		SchoolID:         "school-1",
		FromAcademicYear: "2024/2025",
		FromTerm:         "1",
	})
	require.NoError(t, err)
	require.Len(t, assigns, 1)
	assert.Equal(t, "assign-1", assigns[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeesLedgerRepositoryCarryForwardCandidatesScopedToPeriod(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewFeesLedgerRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "student_name", "total_balance", "items_count"}).
		AddRow("student-1", "Budi Santoso", "300", 1)
	mock.ExpectQuery(`(?s)SELECT .+ FROM fees_assigns a\s+JOIN fees_masters fm ON fm\.id = a\.fees_master_id\s+JOIN users u ON u\.id = a\.student_id\s+WHERE a\.school_id = \$1 AND a\.balance > 0 AND fm\.academic_year = \$2`).
		WithArgs("school-1", "2024/2025").
		WillReturnRows(rows)

	previews, err := repo.CarryForwardCandidates(context.Background(), models.CarryForwardFilter{
		SchoolID:         "school-1",
		FromAcademicYear: "2024/2025",
	})
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, "student-1", previews[0].StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeesLedgerRepositoryExistsAssign(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewFeesLedgerRepository(db)

	mock.ExpectQuery("SELECT 1 FROM fees_assigns").
		WithArgs("school-1", "student-1", "master-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsAssign(context.Background(), "school-1", "student-1", "master-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
