package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edustack/school-api/internal/models"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

type mockLedgerRepo struct {
	assigns  map[string]models.FeesAssign
	payments map[string]models.FeesPayment
	// academic year and term per fees master, consulted by the
	// carry-forward selection the way the SQL joins fees_masters.
	masterYears map[string]string
	masterTerms map[string]string
}

func newMockLedgerRepo() *mockLedgerRepo {
	return &mockLedgerRepo{
		assigns:     make(map[string]models.FeesAssign),
		payments:    make(map[string]models.FeesPayment),
		masterYears: make(map[string]string),
		masterTerms: make(map[string]string),
	}
}

func (m *mockLedgerRepo) matchesPeriod(a models.FeesAssign, filter models.CarryForwardFilter) bool {
	if a.SchoolID != filter.SchoolID || !a.Balance.IsPositive() {
		return false
	}
	if m.masterYears[a.FeesMasterID] != filter.FromAcademicYear {
		return false
	}
	if filter.FromTerm != "" && m.masterTerms[a.FeesMasterID] != filter.FromTerm {
		return false
	}
	if len(filter.StudentIDs) > 0 {
		found := false
		for _, id := range filter.StudentIDs {
			if id == a.StudentID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *mockLedgerRepo) FindAssignByID(_ context.Context, schoolID, id string) (*models.FeesAssign, error) {
	if a, ok := m.assigns[id]; ok && a.SchoolID == schoolID {
		copied := a
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLedgerRepo) ExistsAssign(_ context.Context, schoolID, studentID, feesMasterID string) (bool, error) {
	for _, a := range m.assigns {
		if a.SchoolID == schoolID && a.StudentID == studentID && a.FeesMasterID == feesMasterID && !a.CarriedForward {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLedgerRepo) CreateAssign(_ context.Context, fa *models.FeesAssign) error {
	if fa.ID == "" {
		fa.ID = uuid.NewString()
	}
	m.assigns[fa.ID] = *fa
	return nil
}

func (m *mockLedgerRepo) ListDueAssigns(_ context.Context, filter models.DueFeesFilter) ([]models.FeesAssignDetail, error) {
	var out []models.FeesAssignDetail
	for _, a := range m.assigns {
		if a.SchoolID == filter.SchoolID && a.Status != models.FeeStatusPaid {
			out = append(out, models.FeesAssignDetail{FeesAssign: a})
		}
	}
	return out, nil
}

func (m *mockLedgerRepo) ListOutstandingByStudent(_ context.Context, schoolID, studentID string) ([]models.FeesAssign, error) {
	var out []models.FeesAssign
	for _, a := range m.assigns {
		if a.SchoolID == schoolID && a.StudentID == studentID && a.Status != models.FeeStatusPaid {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockLedgerRepo) CarryForwardCandidates(_ context.Context, filter models.CarryForwardFilter) ([]models.CarryForwardPreview, error) {
	byStudent := make(map[string]*models.CarryForwardPreview)
	for _, a := range m.assigns {
		if !m.matchesPeriod(a, filter) {
			continue
		}
		p, ok := byStudent[a.StudentID]
		if !ok {
			p = &models.CarryForwardPreview{StudentID: a.StudentID}
			byStudent[a.StudentID] = p
		}
		p.TotalBalance = p.TotalBalance.Add(a.Balance)
		p.ItemsCount++
	}
	var out []models.CarryForwardPreview
	for _, p := range byStudent {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockLedgerRepo) ListCarryForwardSources(_ context.Context, filter models.CarryForwardFilter) ([]models.FeesAssign, error) {
	var out []models.FeesAssign
	for _, a := range m.assigns {
		if m.matchesPeriod(a, filter) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockLedgerRepo) FindPaymentByID(_ context.Context, schoolID, id string) (*models.FeesPayment, error) {
	if p, ok := m.payments[id]; ok && p.SchoolID == schoolID {
		copied := p
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLedgerRepo) FindPaymentDetailByID(_ context.Context, schoolID, id string) (*models.FeesPaymentDetail, error) {
	if p, ok := m.payments[id]; ok && p.SchoolID == schoolID {
		return &models.FeesPaymentDetail{FeesPayment: p, StudentName: "Test Student"}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLedgerRepo) ListPayments(_ context.Context, filter models.PaymentFilter) ([]models.FeesPaymentDetail, error) {
	var out []models.FeesPaymentDetail
	for _, p := range m.payments {
		if p.SchoolID == filter.SchoolID {
			out = append(out, models.FeesPaymentDetail{FeesPayment: p})
		}
	}
	return out, nil
}

func (m *mockLedgerRepo) CollectPayment(_ context.Context, payment *models.FeesPayment) (*models.FeesAssign, error) {
	assign, ok := m.assigns[payment.FeesAssignID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "fee assignment not found")
	}
	if err := assign.ApplyPayment(payment.Amount); err != nil {
		return nil, err
	}
	m.assigns[payment.FeesAssignID] = assign
	m.payments[payment.ID] = *payment
	return &assign, nil
}

func (m *mockLedgerRepo) CreatePendingPayment(_ context.Context, payment *models.FeesPayment) error {
	m.payments[payment.ID] = *payment
	return nil
}

func (m *mockLedgerRepo) VerifyPayment(_ context.Context, schoolID, paymentID, verifierID string) (*models.FeesPayment, error) {
	payment, ok := m.payments[paymentID]
	if !ok || payment.SchoolID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
	}
	if payment.VerificationStatus != models.VerificationPending {
		return nil, appErrors.ErrAlreadyVerified
	}
	assign := m.assigns[payment.FeesAssignID]
	if err := assign.ApplyPayment(payment.Amount); err != nil {
		return nil, err
	}
	m.assigns[payment.FeesAssignID] = assign
	now := time.Now().UTC()
	payment.VerificationStatus = models.VerificationVerified
	payment.VerifiedBy = &verifierID
	payment.VerifiedAt = &now
	m.payments[paymentID] = payment
	return &payment, nil
}

func (m *mockLedgerRepo) RejectPayment(_ context.Context, schoolID, paymentID, verifierID string) (*models.FeesPayment, error) {
	payment, ok := m.payments[paymentID]
	if !ok || payment.SchoolID != schoolID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
	}
	if payment.VerificationStatus != models.VerificationPending {
		return nil, appErrors.ErrAlreadyVerified
	}
	now := time.Now().UTC()
	payment.VerificationStatus = models.VerificationRejected
	payment.VerifiedBy = &verifierID
	payment.VerifiedAt = &now
	m.payments[paymentID] = payment
	return &payment, nil
}

type mockMasterReader struct {
	masters map[string]models.FeesMaster
}

func (m *mockMasterReader) FindByID(_ context.Context, schoolID, id string) (*models.FeesMaster, error) {
	if fm, ok := m.masters[id]; ok && fm.SchoolID == schoolID {
		copied := fm
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

type mockDiscountReader struct {
	discounts map[string]models.FeesDiscount
}

func (m *mockDiscountReader) FindDiscountByID(_ context.Context, schoolID, id string) (*models.FeesDiscount, error) {
	if fd, ok := m.discounts[id]; ok && fd.SchoolID == schoolID {
		copied := fd
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

type mockRoster struct {
	students map[string]models.User
	byClass  map[string][]string
}

func (m *mockRoster) FindByID(_ context.Context, schoolID, id string) (*models.User, error) {
	if u, ok := m.students[id]; ok && u.SchoolID != nil && *u.SchoolID == schoolID {
		copied := u
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRoster) ListActiveBySchool(_ context.Context, schoolID string) ([]models.User, error) {
	var out []models.User
	for _, u := range m.students {
		if u.SchoolID != nil && *u.SchoolID == schoolID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockRoster) ListActiveByClass(_ context.Context, _, classID string) ([]models.User, error) {
	var out []models.User
	for _, id := range m.byClass[classID] {
		out = append(out, m.students[id])
	}
	return out, nil
}

type mockReminderWriter struct {
	created []models.FeesReminder
}

func (m *mockReminderWriter) Create(_ context.Context, rem *models.FeesReminder) error {
	if rem.ID == "" {
		rem.ID = uuid.NewString()
	}
	m.created = append(m.created, *rem)
	return nil
}

func (m *mockReminderWriter) ListByStudent(_ context.Context, schoolID, studentID string) ([]models.FeesReminder, error) {
	var out []models.FeesReminder
	for _, r := range m.created {
		if r.SchoolID == schoolID && r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

const (
	testSchool = "school-1"
	testYear   = "2024/2025"
)

func newLedgerService(repo *mockLedgerRepo, masters *mockMasterReader, discounts *mockDiscountReader, roster *mockRoster, reminders *mockReminderWriter) *FeesLedgerService {
	if masters == nil {
		masters = &mockMasterReader{masters: map[string]models.FeesMaster{}}
	}
	if discounts == nil {
		discounts = &mockDiscountReader{discounts: map[string]models.FeesDiscount{}}
	}
	if roster == nil {
		roster = &mockRoster{students: map[string]models.User{}}
	}
	if reminders == nil {
		reminders = &mockReminderWriter{}
	}
	return NewFeesLedgerService(repo, masters, discounts, roster, reminders, nil, time.Minute, time.Minute, validator.New(), zap.NewNop())
}

func seedAssign(repo *mockLedgerRepo, id, studentID string, total, paid int64) models.FeesAssign {
	totalD := decimal.NewFromInt(total)
	paidD := decimal.NewFromInt(paid)
	balance := totalD.Sub(paidD)
	assign := models.FeesAssign{
		ID:           id,
		SchoolID:     testSchool,
		StudentID:    studentID,
		FeesMasterID: "master-1",
		TotalAmount:  totalD,
		PaidAmount:   paidD,
		Balance:      balance,
		Status:       models.DeriveStatus(totalD, paidD, balance),
	}
	repo.assigns[id] = assign
	repo.masterYears["master-1"] = testYear
	return assign
}

func TestCollectPaymentPartialThenFull(t *testing.T) {
	repo := newMockLedgerRepo()
	seedAssign(repo, "assign-1", "student-1", 1000, 0)
	svc := newLedgerService(repo, nil, nil, nil, nil)

	payment, assign, err := svc.CollectPayment(context.Background(), testSchool, "admin-1", CollectPaymentRequest{
		FeesAssignID: "assign-1",
		Amount:       decimal.NewFromInt(400),
		Method:       models.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusPartial, assign.Status)
	assert.True(t, assign.Balance.Equal(decimal.NewFromInt(600)))
	assert.True(t, assign.Balance.Equal(assign.TotalAmount.Sub(assign.PaidAmount)))
	assert.Equal(t, models.VerificationVerified, payment.VerificationStatus)
	assert.Contains(t, payment.ReceiptNumber, "RCP-"+testSchool)

	_, assign, err = svc.CollectPayment(context.Background(), testSchool, "admin-1", CollectPaymentRequest{
		FeesAssignID: "assign-1",
		Amount:       decimal.NewFromInt(600),
		Method:       models.PaymentMethodOnline,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusPaid, assign.Status)
	assert.True(t, assign.Balance.IsZero())
}

func TestCollectPaymentRejectsOverpaymentWithoutMutation(t *testing.T) {
	repo := newMockLedgerRepo()
	seedAssign(repo, "assign-1", "student-1", 1000, 400)
	svc := newLedgerService(repo, nil, nil, nil, nil)

	_, _, err := svc.CollectPayment(context.Background(), testSchool, "admin-1", CollectPaymentRequest{
		FeesAssignID: "assign-1",
		Amount:       decimal.NewFromInt(601),
		Method:       models.PaymentMethodCash,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrPaymentExceedsBalance.Code, appErr.Code)

	stored := repo.assigns["assign-1"]
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(400)))
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(600)))
	assert.Empty(t, repo.payments)
}

func TestCollectPaymentRejectsSettledAssignment(t *testing.T) {
	repo := newMockLedgerRepo()
	seedAssign(repo, "assign-1", "student-1", 1000, 1000)
	svc := newLedgerService(repo, nil, nil, nil, nil)

	_, _, err := svc.CollectPayment(context.Background(), testSchool, "admin-1", CollectPaymentRequest{
		FeesAssignID: "assign-1",
		Amount:       decimal.NewFromInt(1),
		Method:       models.PaymentMethodCash,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAlreadyPaid.Code, appErr.Code)
}

func TestQuickAssignAppliesDiscounts(t *testing.T) {
	repo := newMockLedgerRepo()
	school := testSchool
	masters := &mockMasterReader{masters: map[string]models.FeesMaster{
		"master-1": {ID: "master-1", SchoolID: school, Amount: decimal.NewFromInt(1000), Active: true},
	}}
	discounts := &mockDiscountReader{discounts: map[string]models.FeesDiscount{
		"disc-pct":   {ID: "disc-pct", SchoolID: school, Type: models.DiscountPercentage, Amount: decimal.NewFromInt(20), Active: true},
		"disc-fixed": {ID: "disc-fixed", SchoolID: school, Type: models.DiscountFixed, Amount: decimal.NewFromInt(150), Active: true},
	}}
	roster := &mockRoster{students: map[string]models.User{
		"student-1": {ID: "student-1", SchoolID: &school, Role: models.RoleStudent, Active: true},
	}}
	svc := newLedgerService(repo, masters, discounts, roster, nil)

	result, err := svc.QuickAssignFees(context.Background(), school, QuickAssignRequest{
		FeesMasterID: "master-1",
		DiscountID:   "disc-pct",
		StudentIDs:   []string{"student-1"},
	})
	require.NoError(t, err)
	require.Len(t, result.Assigned, 1)
	assert.True(t, result.Assigned[0].TotalAmount.Equal(decimal.NewFromInt(800)), "got %s", result.Assigned[0].TotalAmount)
	assert.Equal(t, models.FeeStatusUnpaid, result.Assigned[0].Status)
}

func TestQuickAssignIsIdempotentPerStudentAndMaster(t *testing.T) {
	repo := newMockLedgerRepo()
	school := testSchool
	masters := &mockMasterReader{masters: map[string]models.FeesMaster{
		"master-1": {ID: "master-1", SchoolID: school, Amount: decimal.NewFromInt(500), Active: true},
	}}
	roster := &mockRoster{students: map[string]models.User{
		"student-1": {ID: "student-1", SchoolID: &school, Role: models.RoleStudent, Active: true},
	}}
	svc := newLedgerService(repo, masters, nil, roster, nil)

	first, err := svc.QuickAssignFees(context.Background(), school, QuickAssignRequest{
		FeesMasterID: "master-1",
		StudentIDs:   []string{"student-1"},
	})
	require.NoError(t, err)
	assert.Len(t, first.Assigned, 1)

	second, err := svc.QuickAssignFees(context.Background(), school, QuickAssignRequest{
		FeesMasterID: "master-1",
		StudentIDs:   []string{"student-1"},
	})
	require.NoError(t, err)
	assert.Empty(t, second.Assigned)
	assert.Equal(t, []string{"student-1"}, second.Skipped)
	assert.Len(t, repo.assigns, 1)
}

func TestCarryForwardCreatesFreshObligation(t *testing.T) {
	repo := newMockLedgerRepo()
	source := seedAssign(repo, "assign-1", "student-1", 1000, 700)
	svc := newLedgerService(repo, nil, nil, nil, nil)

	result, err := svc.CarryForward(context.Background(), testSchool, CarryForwardRequest{
		FromAcademicYear: testYear,
		StudentIDs:       []string{"student-1"},
	})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)

	fresh := result.Created[0]
	assert.True(t, fresh.TotalAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, fresh.Balance.Equal(decimal.NewFromInt(300)))
	assert.True(t, fresh.PaidAmount.IsZero())
	assert.True(t, fresh.CarriedForward)
	assert.Equal(t, models.FeeStatusUnpaid, fresh.Status)
	assert.Nil(t, fresh.DueDate)

	// Source row untouched.
	stored := repo.assigns[source.ID]
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(300)))
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(700)))
	assert.False(t, stored.CarriedForward)
}

func TestCarryForwardRequiresAcademicYear(t *testing.T) {
	repo := newMockLedgerRepo()
	seedAssign(repo, "assign-1", "student-1", 1000, 700)
	svc := newLedgerService(repo, nil, nil, nil, nil)

	_, err := svc.CarryForward(context.Background(), testSchool, CarryForwardRequest{})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Len(t, repo.assigns, 1)
}

func TestCarryForwardScopedToAcademicPeriod(t *testing.T) {
	repo := newMockLedgerRepo()
	// Closing period: one open balance.
	seedAssign(repo, "assign-old", "student-1", 300, 0)

	// Current period: open balance under a different year's master; must
	// not be swept when closing the old year.
	current := models.FeesAssign{
		ID:           "assign-current",
		SchoolID:     testSchool,
		StudentID:    "student-1",
		FeesMasterID: "master-2",
		TotalAmount:  decimal.NewFromInt(500),
		PaidAmount:   decimal.Zero,
		Balance:      decimal.NewFromInt(500),
		Status:       models.FeeStatusUnpaid,
	}
	repo.assigns[current.ID] = current
	repo.masterYears["master-2"] = "2025/2026"

	svc := newLedgerService(repo, nil, nil, nil, nil)

	result, err := svc.CarryForward(context.Background(), testSchool, CarryForwardRequest{FromAcademicYear: testYear})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.True(t, result.Created[0].Balance.Equal(decimal.NewFromInt(300)))

	// Closing the next period later picks up only that period's row, not
	// the copy the first run created (its master stays in the old year).
	second, err := svc.CarryForward(context.Background(), testSchool, CarryForwardRequest{FromAcademicYear: "2025/2026"})
	require.NoError(t, err)
	require.Len(t, second.Created, 1)
	assert.True(t, second.Created[0].Balance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "master-2", second.Created[0].FeesMasterID)
}

func TestPreviewCarryForwardScopedToTerm(t *testing.T) {
	repo := newMockLedgerRepo()
	seedAssign(repo, "assign-1", "student-1", 300, 0)
	repo.masterTerms["master-1"] = "1"

	other := models.FeesAssign{
		ID:           "assign-2",
		SchoolID:     testSchool,
		StudentID:    "student-1",
		FeesMasterID: "master-3",
		TotalAmount:  decimal.NewFromInt(400),
		PaidAmount:   decimal.Zero,
		Balance:      decimal.NewFromInt(400),
		Status:       models.FeeStatusUnpaid,
	}
	repo.assigns[other.ID] = other
	repo.masterYears["master-3"] = testYear
	repo.masterTerms["master-3"] = "2"

	svc := newLedgerService(repo, nil, nil, nil, nil)

	previews, err := svc.PreviewCarryForward(context.Background(), testSchool, testYear, "1")
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.True(t, previews[0].TotalBalance.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, previews[0].ItemsCount)

	_, err = svc.PreviewCarryForward(context.Background(), testSchool, "", "")
	require.Error(t, err)
}

func TestVerifyOfflinePaymentTwiceIsConflict(t *testing.T) {
	repo := newMockLedgerRepo()
	seedAssign(repo, "assign-1", "student-1", 1000, 0)
	svc := newLedgerService(repo, nil, nil, nil, nil)

	payment, err := svc.RecordOfflinePayment(context.Background(), testSchool, "admin-1", OfflinePaymentRequest{
		FeesAssignID: "assign-1",
		Amount:       decimal.NewFromInt(300),
		BankName:     "First National",
	})
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, payment.VerificationStatus)
	assert.Contains(t, payment.ReceiptNumber, "OBP-"+testSchool)

	// Recording alone must not move the balance.
	assert.True(t, repo.assigns["assign-1"].Balance.Equal(decimal.NewFromInt(1000)))

	verified, err := svc.VerifyOfflinePayment(context.Background(), testSchool, payment.ID, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, verified.VerificationStatus)
	assert.True(t, repo.assigns["assign-1"].Balance.Equal(decimal.NewFromInt(700)))

	_, err = svc.VerifyOfflinePayment(context.Background(), testSchool, payment.ID, "admin-3")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrAlreadyVerified.Code, appErr.Code)
	// Balance changed exactly once.
	assert.True(t, repo.assigns["assign-1"].Balance.Equal(decimal.NewFromInt(700)))
}

func TestRejectOfflinePaymentLeavesBalanceUntouched(t *testing.T) {
	repo := newMockLedgerRepo()
	seedAssign(repo, "assign-1", "student-1", 1000, 0)
	svc := newLedgerService(repo, nil, nil, nil, nil)

	payment, err := svc.RecordOfflinePayment(context.Background(), testSchool, "admin-1", OfflinePaymentRequest{
		FeesAssignID: "assign-1",
		Amount:       decimal.NewFromInt(300),
		BankName:     "First National",
	})
	require.NoError(t, err)

	rejected, err := svc.RejectOfflinePayment(context.Background(), testSchool, payment.ID, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationRejected, rejected.VerificationStatus)
	assert.True(t, repo.assigns["assign-1"].Balance.Equal(decimal.NewFromInt(1000)))

	// A rejected payment cannot be verified afterwards.
	_, err = svc.VerifyOfflinePayment(context.Background(), testSchool, payment.ID, "admin-3")
	require.Error(t, err)
}

func TestSendRemindersOnePerOutstandingAssignment(t *testing.T) {
	repo := newMockLedgerRepo()
	seedAssign(repo, "assign-1", "student-1", 1000, 0)
	seedAssign(repo, "assign-2", "student-1", 500, 100)
	seedAssign(repo, "assign-3", "student-1", 200, 200)
	reminders := &mockReminderWriter{}
	svc := newLedgerService(repo, nil, nil, nil, reminders)

	result, err := svc.SendReminders(context.Background(), testSchool, "admin-1", SendRemindersRequest{
		StudentIDs: []string{"student-1"},
		Type:       models.ReminderEmail,
		Message:    "please settle your fees",
	})
	require.NoError(t, err)
	// One reminder per unpaid/partial item, none for the settled one.
	assert.Len(t, result.Sent, 2)
	assert.Len(t, reminders.created, 2)
}
