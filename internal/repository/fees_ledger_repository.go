package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edustack/school-api/internal/models"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

// FeesLedgerRepository manages fee assignments and payments. Every
// balance mutation runs inside one transaction with the assignment row
// locked, so concurrent payments against the same assignment serialize
// instead of overwriting each other's balance.
type FeesLedgerRepository struct {
	db *sqlx.DB
}

// NewFeesLedgerRepository constructs a FeesLedgerRepository.
func NewFeesLedgerRepository(db *sqlx.DB) *FeesLedgerRepository {
	return &FeesLedgerRepository{db: db}
}

const assignColumns = `id, school_id, student_id, fees_master_id, discount_id, total_amount, paid_amount, balance, status, due_date, is_carried_forward, created_at, updated_at`

// FindAssignByID fetches one assignment scoped to a school.
func (r *FeesLedgerRepository) FindAssignByID(ctx context.Context, schoolID, id string) (*models.FeesAssign, error) {
	query := fmt.Sprintf(`SELECT %s FROM fees_assigns WHERE id = $1 AND school_id = $2`, assignColumns)
	var fa models.FeesAssign
	if err := r.db.GetContext(ctx, &fa, query, id, schoolID); err != nil {
		return nil, err
	}
	return &fa, nil
}

// ExistsAssign reports whether the student already holds a live (not
// carried-forward) assignment for the given fee master.
func (r *FeesLedgerRepository) ExistsAssign(ctx context.Context, schoolID, studentID, feesMasterID string) (bool, error) {
	const query = `SELECT 1 FROM fees_assigns
        WHERE school_id = $1 AND student_id = $2 AND fees_master_id = $3 AND is_carried_forward = false LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, schoolID, studentID, feesMasterID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check fees assign: %w", err)
	}
	return true, nil
}

// CreateAssign inserts a new assignment.
func (r *FeesLedgerRepository) CreateAssign(ctx context.Context, fa *models.FeesAssign) error {
	if fa.ID == "" {
		fa.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if fa.CreatedAt.IsZero() {
		fa.CreatedAt = now
	}
	fa.UpdatedAt = now
	const query = `INSERT INTO fees_assigns (id, school_id, student_id, fees_master_id, discount_id, total_amount, paid_amount, balance, status, due_date, is_carried_forward, created_at, updated_at)
        VALUES (:id, :school_id, :student_id, :fees_master_id, :discount_id, :total_amount, :paid_amount, :balance, :status, :due_date, :is_carried_forward, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fa); err != nil {
		return fmt.Errorf("create fees assign: %w", err)
	}
	return nil
}

// ListDueAssigns returns outstanding assignments matching the filter, with
// display names joined in.
func (r *FeesLedgerRepository) ListDueAssigns(ctx context.Context, filter models.DueFeesFilter) ([]models.FeesAssignDetail, error) {
	base := `SELECT a.id, a.school_id, a.student_id, a.fees_master_id, a.discount_id, a.total_amount, a.paid_amount, a.balance, a.status, a.due_date, a.is_carried_forward, a.created_at, a.updated_at,
        u.full_name AS student_name, ft.name AS fees_type_name, fg.name AS fees_group_name
        FROM fees_assigns a
        JOIN users u ON u.id = a.student_id
        JOIN fees_masters fm ON fm.id = a.fees_master_id
        JOIN fees_types ft ON ft.id = fm.fees_type_id
        JOIN fees_groups fg ON fg.id = fm.fees_group_id`
	args := []interface{}{filter.SchoolID}
	conditions := []string{"a.school_id = $1"}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	} else {
		conditions = append(conditions, "a.status IN ('unpaid', 'partial')")
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("a.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.FeesGroupID != "" {
		conditions = append(conditions, fmt.Sprintf("fm.fees_group_id = $%d", len(args)+1))
		args = append(args, filter.FeesGroupID)
	}
	if filter.AcademicYear != "" {
		conditions = append(conditions, fmt.Sprintf("fm.academic_year = $%d", len(args)+1))
		args = append(args, filter.AcademicYear)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY a.due_date ASC NULLS LAST, a.created_at ASC", base, strings.Join(conditions, " AND "))

	var assigns []models.FeesAssignDetail
	if err := r.db.SelectContext(ctx, &assigns, query, args...); err != nil {
		return nil, fmt.Errorf("list due assigns: %w", err)
	}
	return assigns, nil
}

// ListOutstandingByStudent returns the student's unpaid and partial
// assignments.
func (r *FeesLedgerRepository) ListOutstandingByStudent(ctx context.Context, schoolID, studentID string) ([]models.FeesAssign, error) {
	query := fmt.Sprintf(`SELECT %s FROM fees_assigns
        WHERE school_id = $1 AND student_id = $2 AND status IN ('unpaid', 'partial')
        ORDER BY created_at ASC`, assignColumns)
	var assigns []models.FeesAssign
	if err := r.db.SelectContext(ctx, &assigns, query, schoolID, studentID); err != nil {
		return nil, fmt.Errorf("list outstanding assigns: %w", err)
	}
	return assigns, nil
}

// carryForwardConditions builds the WHERE clause shared by the
// carry-forward preview and run: open balances whose fee master belongs
// to the academic period being closed.
func carryForwardConditions(filter models.CarryForwardFilter) ([]string, []interface{}) {
	args := []interface{}{filter.SchoolID, filter.FromAcademicYear}
	conditions := []string{"a.school_id = $1", "a.balance > 0", "fm.academic_year = $2"}

	if filter.FromTerm != "" {
		conditions = append(conditions, fmt.Sprintf("fm.term = $%d", len(args)+1))
		args = append(args, filter.FromTerm)
	}
	if len(filter.StudentIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("a.student_id = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.StudentIDs))
	}
	return conditions, args
}

// CarryForwardCandidates aggregates outstanding balances per student for
// the read-only carry-forward preview, scoped to the named period.
func (r *FeesLedgerRepository) CarryForwardCandidates(ctx context.Context, filter models.CarryForwardFilter) ([]models.CarryForwardPreview, error) {
	conditions, args := carryForwardConditions(filter)
	query := fmt.Sprintf(`SELECT a.student_id, u.full_name AS student_name,
        SUM(a.balance) AS total_balance, COUNT(*) AS items_count
        FROM fees_assigns a
        JOIN fees_masters fm ON fm.id = a.fees_master_id
        JOIN users u ON u.id = a.student_id
        WHERE %s
        GROUP BY a.student_id, u.full_name
        ORDER BY u.full_name ASC`, strings.Join(conditions, " AND "))
	var previews []models.CarryForwardPreview
	if err := r.db.SelectContext(ctx, &previews, query, args...); err != nil {
		return nil, fmt.Errorf("carry forward preview: %w", err)
	}
	return previews, nil
}

// ListCarryForwardSources returns the individual assignments a
// carry-forward run would roll over, under the same period scoping as
// the preview.
func (r *FeesLedgerRepository) ListCarryForwardSources(ctx context.Context, filter models.CarryForwardFilter) ([]models.FeesAssign, error) {
	conditions, args := carryForwardConditions(filter)
	query := fmt.Sprintf(`SELECT a.id, a.school_id, a.student_id, a.fees_master_id, a.discount_id, a.total_amount, a.paid_amount, a.balance, a.status, a.due_date, a.is_carried_forward, a.created_at, a.updated_at
        FROM fees_assigns a
        JOIN fees_masters fm ON fm.id = a.fees_master_id
        WHERE %s
        ORDER BY a.student_id ASC, a.created_at ASC`, strings.Join(conditions, " AND "))
	var assigns []models.FeesAssign
	if err := r.db.SelectContext(ctx, &assigns, query, args...); err != nil {
		return nil, fmt.Errorf("list carry forward sources: %w", err)
	}
	return assigns, nil
}

const paymentColumns = `id, school_id, student_id, fees_assign_id, fees_master_id, amount, payment_method, paid_at, transaction_id, receipt_number, bank_name, cheque_number, cheque_date, note, collected_by, verification_status, verified_by, verified_at, created_at, updated_at`

// FindPaymentByID fetches one payment scoped to a school.
func (r *FeesLedgerRepository) FindPaymentByID(ctx context.Context, schoolID, id string) (*models.FeesPayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM fees_payments WHERE id = $1 AND school_id = $2`, paymentColumns)
	var fp models.FeesPayment
	if err := r.db.GetContext(ctx, &fp, query, id, schoolID); err != nil {
		return nil, err
	}
	return &fp, nil
}

// FindPaymentDetailByID fetches one payment with the student's name
// joined in, for receipt rendering.
func (r *FeesLedgerRepository) FindPaymentDetailByID(ctx context.Context, schoolID, id string) (*models.FeesPaymentDetail, error) {
	const query = `SELECT p.id, p.school_id, p.student_id, p.fees_assign_id, p.fees_master_id, p.amount, p.payment_method, p.paid_at, p.transaction_id, p.receipt_number, p.bank_name, p.cheque_number, p.cheque_date, p.note, p.collected_by, p.verification_status, p.verified_by, p.verified_at, p.created_at, p.updated_at,
        u.full_name AS student_name
        FROM fees_payments p
        JOIN users u ON u.id = p.student_id
        WHERE p.id = $1 AND p.school_id = $2`
	var fp models.FeesPaymentDetail
	if err := r.db.GetContext(ctx, &fp, query, id, schoolID); err != nil {
		return nil, err
	}
	return &fp, nil
}

// ListPayments returns payments matching the filter, newest first.
func (r *FeesLedgerRepository) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.FeesPaymentDetail, error) {
	base := `SELECT p.id, p.school_id, p.student_id, p.fees_assign_id, p.fees_master_id, p.amount, p.payment_method, p.paid_at, p.transaction_id, p.receipt_number, p.bank_name, p.cheque_number, p.cheque_date, p.note, p.collected_by, p.verification_status, p.verified_by, p.verified_at, p.created_at, p.updated_at,
        u.full_name AS student_name
        FROM fees_payments p
        JOIN users u ON u.id = p.student_id`
	args := []interface{}{filter.SchoolID}
	conditions := []string{"p.school_id = $1"}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("p.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Method != "" {
		conditions = append(conditions, fmt.Sprintf("p.payment_method = $%d", len(args)+1))
		args = append(args, filter.Method)
	}
	if filter.VerificationStatus != "" {
		conditions = append(conditions, fmt.Sprintf("p.verification_status = $%d", len(args)+1))
		args = append(args, filter.VerificationStatus)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("p.paid_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("p.paid_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY p.paid_at DESC", base, strings.Join(conditions, " AND "))

	var payments []models.FeesPaymentDetail
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// CollectPayment atomically applies a payment to its assignment: the
// assignment row is locked, the balance arithmetic re-checked under the
// lock, the assignment updated and the payment inserted in one commit.
// The payment must arrive with ID, receipt number and verification state
// already set. Returns the updated assignment.
func (r *FeesLedgerRepository) CollectPayment(ctx context.Context, payment *models.FeesPayment) (*models.FeesAssign, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin collect payment: %w", err)
	}
	defer tx.Rollback()

	assign, err := lockAssign(ctx, tx, payment.SchoolID, payment.FeesAssignID)
	if err != nil {
		return nil, err
	}
	if assign.StudentID != payment.StudentID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment student does not match assignment student")
	}

	if err := assign.ApplyPayment(payment.Amount); err != nil {
		return nil, err
	}
	if err := updateAssignAmounts(ctx, tx, assign); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = now
	}
	payment.CreatedAt = now
	payment.UpdatedAt = now
	const insert = `INSERT INTO fees_payments (id, school_id, student_id, fees_assign_id, fees_master_id, amount, payment_method, paid_at, transaction_id, receipt_number, bank_name, cheque_number, cheque_date, note, collected_by, verification_status, verified_by, verified_at, created_at, updated_at)
        VALUES (:id, :school_id, :student_id, :fees_assign_id, :fees_master_id, :amount, :payment_method, :paid_at, :transaction_id, :receipt_number, :bank_name, :cheque_number, :cheque_date, :note, :collected_by, :verification_status, :verified_by, :verified_at, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insert, payment); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit collect payment: %w", err)
	}
	return assign, nil
}

// CreatePendingPayment records an offline payment without touching the
// assignment balance. The balance moves only on verification.
func (r *FeesLedgerRepository) CreatePendingPayment(ctx context.Context, payment *models.FeesPayment) error {
	now := time.Now().UTC()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = now
	}
	payment.CreatedAt = now
	payment.UpdatedAt = now
	const query = `INSERT INTO fees_payments (id, school_id, student_id, fees_assign_id, fees_master_id, amount, payment_method, paid_at, transaction_id, receipt_number, bank_name, cheque_number, cheque_date, note, collected_by, verification_status, verified_by, verified_at, created_at, updated_at)
        VALUES (:id, :school_id, :student_id, :fees_assign_id, :fees_master_id, :amount, :payment_method, :paid_at, :transaction_id, :receipt_number, :bank_name, :cheque_number, :cheque_date, :note, :collected_by, :verification_status, :verified_by, :verified_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("insert pending payment: %w", err)
	}
	return nil
}

// VerifyPayment finalises a pending offline payment. Verification locks
// the payment and its assignment, applies the balance update once, and
// rejects a second finalisation attempt. Returns the verified payment.
func (r *FeesLedgerRepository) VerifyPayment(ctx context.Context, schoolID, paymentID, verifierID string) (*models.FeesPayment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin verify payment: %w", err)
	}
	defer tx.Rollback()

	payment, err := lockPayment(ctx, tx, schoolID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.VerificationStatus != models.VerificationPending {
		return nil, appErrors.ErrAlreadyVerified
	}

	assign, err := lockAssign(ctx, tx, schoolID, payment.FeesAssignID)
	if err != nil {
		return nil, err
	}
	if err := assign.ApplyPayment(payment.Amount); err != nil {
		return nil, err
	}
	if err := updateAssignAmounts(ctx, tx, assign); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment.VerificationStatus = models.VerificationVerified
	payment.VerifiedBy = &verifierID
	payment.VerifiedAt = &now
	payment.UpdatedAt = now
	if err := updatePaymentVerification(ctx, tx, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit verify payment: %w", err)
	}
	return payment, nil
}

// RejectPayment finalises a pending offline payment as rejected without
// touching the assignment balance.
func (r *FeesLedgerRepository) RejectPayment(ctx context.Context, schoolID, paymentID, verifierID string) (*models.FeesPayment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reject payment: %w", err)
	}
	defer tx.Rollback()

	payment, err := lockPayment(ctx, tx, schoolID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.VerificationStatus != models.VerificationPending {
		return nil, appErrors.ErrAlreadyVerified
	}

	now := time.Now().UTC()
	payment.VerificationStatus = models.VerificationRejected
	payment.VerifiedBy = &verifierID
	payment.VerifiedAt = &now
	payment.UpdatedAt = now
	if err := updatePaymentVerification(ctx, tx, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reject payment: %w", err)
	}
	return payment, nil
}

func lockAssign(ctx context.Context, tx *sqlx.Tx, schoolID, id string) (*models.FeesAssign, error) {
	query := fmt.Sprintf(`SELECT %s FROM fees_assigns WHERE id = $1 AND school_id = $2 FOR UPDATE`, assignColumns)
	var fa models.FeesAssign
	if err := tx.GetContext(ctx, &fa, query, id, schoolID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee assignment not found")
		}
		return nil, fmt.Errorf("lock fees assign: %w", err)
	}
	return &fa, nil
}

func lockPayment(ctx context.Context, tx *sqlx.Tx, schoolID, id string) (*models.FeesPayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM fees_payments WHERE id = $1 AND school_id = $2 FOR UPDATE`, paymentColumns)
	var fp models.FeesPayment
	if err := tx.GetContext(ctx, &fp, query, id, schoolID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, fmt.Errorf("lock payment: %w", err)
	}
	return &fp, nil
}

func updateAssignAmounts(ctx context.Context, tx *sqlx.Tx, fa *models.FeesAssign) error {
	fa.UpdatedAt = time.Now().UTC()
	const query = `UPDATE fees_assigns SET paid_amount = :paid_amount, balance = :balance, status = :status, updated_at = :updated_at
        WHERE id = :id AND school_id = :school_id`
	if _, err := tx.NamedExecContext(ctx, query, fa); err != nil {
		return fmt.Errorf("update fees assign: %w", err)
	}
	return nil
}

func updatePaymentVerification(ctx context.Context, tx *sqlx.Tx, fp *models.FeesPayment) error {
	const query = `UPDATE fees_payments SET verification_status = :verification_status, verified_by = :verified_by, verified_at = :verified_at, updated_at = :updated_at
        WHERE id = :id AND school_id = :school_id`
	if _, err := tx.NamedExecContext(ctx, query, fp); err != nil {
		return fmt.Errorf("update payment verification: %w", err)
	}
	return nil
}
