package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/edustack/school-api/internal/models"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

type ledgerRepository interface {
	FindAssignByID(ctx context.Context, schoolID, id string) (*models.FeesAssign, error)
	ExistsAssign(ctx context.Context, schoolID, studentID, feesMasterID string) (bool, error)
	CreateAssign(ctx context.Context, fa *models.FeesAssign) error
	ListDueAssigns(ctx context.Context, filter models.DueFeesFilter) ([]models.FeesAssignDetail, error)
	ListOutstandingByStudent(ctx context.Context, schoolID, studentID string) ([]models.FeesAssign, error)
	CarryForwardCandidates(ctx context.Context, filter models.CarryForwardFilter) ([]models.CarryForwardPreview, error)
	ListCarryForwardSources(ctx context.Context, filter models.CarryForwardFilter) ([]models.FeesAssign, error)
	FindPaymentByID(ctx context.Context, schoolID, id string) (*models.FeesPayment, error)
	FindPaymentDetailByID(ctx context.Context, schoolID, id string) (*models.FeesPaymentDetail, error)
	ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.FeesPaymentDetail, error)
	CollectPayment(ctx context.Context, payment *models.FeesPayment) (*models.FeesAssign, error)
	CreatePendingPayment(ctx context.Context, payment *models.FeesPayment) error
	VerifyPayment(ctx context.Context, schoolID, paymentID, verifierID string) (*models.FeesPayment, error)
	RejectPayment(ctx context.Context, schoolID, paymentID, verifierID string) (*models.FeesPayment, error)
}

type masterReader interface {
	FindByID(ctx context.Context, schoolID, id string) (*models.FeesMaster, error)
}

type discountReader interface {
	FindDiscountByID(ctx context.Context, schoolID, id string) (*models.FeesDiscount, error)
}

type rosterReader interface {
	FindByID(ctx context.Context, schoolID, id string) (*models.User, error)
	ListActiveBySchool(ctx context.Context, schoolID string) ([]models.User, error)
	ListActiveByClass(ctx context.Context, schoolID, classID string) ([]models.User, error)
}

type reminderWriter interface {
	Create(ctx context.Context, rem *models.FeesReminder) error
	ListByStudent(ctx context.Context, schoolID, studentID string) ([]models.FeesReminder, error)
}

type ledgerCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CollectPaymentRequest is the direct-collection payload. Bank transfers
// go through RecordOfflinePayment instead.
type CollectPaymentRequest struct {
	FeesAssignID  string               `json:"fees_assign_id" validate:"required"`
	Amount        decimal.Decimal      `json:"amount" validate:"required"`
	Method        models.PaymentMethod `json:"payment_method" validate:"required,oneof=cash online cheque"`
	TransactionID string               `json:"transaction_id"`
	ChequeNumber  string               `json:"cheque_number"`
	ChequeDate    *time.Time           `json:"cheque_date"`
	Note          string               `json:"note"`
}

// OfflinePaymentRequest records a bank transfer awaiting verification.
type OfflinePaymentRequest struct {
	FeesAssignID  string          `json:"fees_assign_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	BankName      string          `json:"bank_name" validate:"required"`
	TransactionID string          `json:"transaction_id"`
	Note          string          `json:"note"`
}

// QuickAssignRequest bulk-assigns one fee master to a set of students,
// either named explicitly or resolved from a class roster.
type QuickAssignRequest struct {
	FeesMasterID string     `json:"fees_master_id" validate:"required"`
	DiscountID   string     `json:"discount_id"`
	StudentIDs   []string   `json:"student_ids"`
	ClassID      string     `json:"class_id"`
	DueDate      *time.Time `json:"due_date"`
}

// CarryForwardRequest scopes a carry-forward run to the academic period
// being closed, optionally narrowed to a term and to named students;
// empty student_ids means every student with an outstanding balance in
// that period.
type CarryForwardRequest struct {
	FromAcademicYear string   `json:"from_academic_year" validate:"required"`
	FromTerm         string   `json:"from_term"`
	StudentIDs       []string `json:"student_ids"`
}

// SendRemindersRequest fans reminders out to the named students.
type SendRemindersRequest struct {
	StudentIDs []string            `json:"student_ids" validate:"required,min=1"`
	Type       models.ReminderType `json:"reminder_type" validate:"required,oneof=email sms in_app"`
	Message    string              `json:"message"`
}

// BatchItemError records one failed item of a row-independent batch.
type BatchItemError struct {
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// QuickAssignResult summarises a QuickAssignFees run.
type QuickAssignResult struct {
	Assigned []models.FeesAssign `json:"assigned"`
	Skipped  []string            `json:"skipped"`
	Errors   []BatchItemError    `json:"errors,omitempty"`
}

// CarryForwardResult summarises a CarryForward run.
type CarryForwardResult struct {
	Created []models.FeesAssign `json:"created"`
	Errors  []BatchItemError    `json:"errors,omitempty"`
}

// SendRemindersResult summarises a SendReminders run.
type SendRemindersResult struct {
	Sent   []models.FeesReminder `json:"sent"`
	Errors []BatchItemError      `json:"errors,omitempty"`
}

// FeesLedgerService orchestrates fee assignment, collection, verification,
// carry-forward and reminders.
type FeesLedgerService struct {
	ledger    ledgerRepository
	masters   masterReader
	discounts discountReader
	roster    rosterReader
	reminders reminderWriter
	cache     ledgerCache

	dueCacheTTL     time.Duration
	previewCacheTTL time.Duration

	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeesLedgerService constructs FeesLedgerService.
func NewFeesLedgerService(ledger ledgerRepository, masters masterReader, discounts discountReader, roster rosterReader, reminders reminderWriter, cache ledgerCache, dueTTL, previewTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *FeesLedgerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if dueTTL <= 0 {
		dueTTL = 2 * time.Minute
	}
	if previewTTL <= 0 {
		previewTTL = 5 * time.Minute
	}
	return &FeesLedgerService{
		ledger:          ledger,
		masters:         masters,
		discounts:       discounts,
		roster:          roster,
		reminders:       reminders,
		cache:           cache,
		dueCacheTTL:     dueTTL,
		previewCacheTTL: previewTTL,
		validator:       validate,
		logger:          logger,
	}
}

// CollectPayment applies a direct (cash/online/cheque) payment to an
// assignment. The payment is auto-verified and the balance moves in the
// same transaction.
func (s *FeesLedgerService) CollectPayment(ctx context.Context, schoolID, collectorID string, req CollectPaymentRequest) (*models.FeesPayment, *models.FeesAssign, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "payment amount must be positive")
	}

	assign, err := s.ledger.FindAssignByID(ctx, schoolID, req.FeesAssignID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "fee assignment not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee assignment")
	}

	now := time.Now().UTC()
	verifier := collectorID
	payment := &models.FeesPayment{
		ID:                 uuid.NewString(),
		SchoolID:           schoolID,
		StudentID:          assign.StudentID,
		FeesAssignID:       assign.ID,
		FeesMasterID:       assign.FeesMasterID,
		Amount:             req.Amount,
		Method:             req.Method,
		PaidAt:             now,
		TransactionID:      req.TransactionID,
		ReceiptNumber:      receiptNumber("RCP", schoolID, assign.ID, now),
		ChequeNumber:       req.ChequeNumber,
		ChequeDate:         req.ChequeDate,
		Note:               req.Note,
		CollectedBy:        collectorID,
		VerificationStatus: models.VerificationVerified,
		VerifiedBy:         &verifier,
		VerifiedAt:         &now,
	}

	updated, err := s.ledger.CollectPayment(ctx, payment)
	if err != nil {
		return nil, nil, err
	}

	s.invalidateLedgerCaches(ctx, schoolID)
	s.logger.Info("payment collected",
		zap.String("school_id", schoolID),
		zap.String("fees_assign_id", assign.ID),
		zap.String("receipt_number", payment.ReceiptNumber),
		zap.String("amount", req.Amount.StringFixed(2)))
	return payment, updated, nil
}

// RecordOfflinePayment stores a bank-transfer payment in the PENDING
// state. The assignment balance does not move until verification.
func (s *FeesLedgerService) RecordOfflinePayment(ctx context.Context, schoolID, recorderID string, req OfflinePaymentRequest) (*models.FeesPayment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid offline payment payload")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment amount must be positive")
	}

	assign, err := s.ledger.FindAssignByID(ctx, schoolID, req.FeesAssignID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee assignment")
	}
	if assign.Status == models.FeeStatusPaid {
		return nil, appErrors.ErrAlreadyPaid
	}
	if req.Amount.GreaterThan(assign.Balance) {
		return nil, appErrors.Clone(appErrors.ErrPaymentExceedsBalance,
			"payment amount ("+req.Amount.StringFixed(2)+") exceeds balance ("+assign.Balance.StringFixed(2)+")")
	}

	now := time.Now().UTC()
	payment := &models.FeesPayment{
		ID:                 uuid.NewString(),
		SchoolID:           schoolID,
		StudentID:          assign.StudentID,
		FeesAssignID:       assign.ID,
		FeesMasterID:       assign.FeesMasterID,
		Amount:             req.Amount,
		Method:             models.PaymentMethodBankTransfer,
		PaidAt:             now,
		TransactionID:      req.TransactionID,
		ReceiptNumber:      receiptNumber("OBP", schoolID, assign.ID, now),
		BankName:           req.BankName,
		Note:               req.Note,
		CollectedBy:        recorderID,
		VerificationStatus: models.VerificationPending,
	}

	if err := s.ledger.CreatePendingPayment(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record offline payment")
	}

	s.logger.Info("offline payment recorded",
		zap.String("school_id", schoolID),
		zap.String("fees_assign_id", assign.ID),
		zap.String("receipt_number", payment.ReceiptNumber))
	return payment, nil
}

// VerifyOfflinePayment finalises a pending bank transfer and applies the
// balance update exactly once.
func (s *FeesLedgerService) VerifyOfflinePayment(ctx context.Context, schoolID, paymentID, verifierID string) (*models.FeesPayment, error) {
	payment, err := s.ledger.VerifyPayment(ctx, schoolID, paymentID, verifierID)
	if err != nil {
		return nil, err
	}

	s.invalidateLedgerCaches(ctx, schoolID)
	s.logger.Info("offline payment verified",
		zap.String("school_id", schoolID),
		zap.String("payment_id", paymentID),
		zap.String("verified_by", verifierID))
	return payment, nil
}

// RejectOfflinePayment finalises a pending bank transfer as rejected; the
// assignment balance is untouched.
func (s *FeesLedgerService) RejectOfflinePayment(ctx context.Context, schoolID, paymentID, verifierID string) (*models.FeesPayment, error) {
	payment, err := s.ledger.RejectPayment(ctx, schoolID, paymentID, verifierID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("offline payment rejected",
		zap.String("school_id", schoolID),
		zap.String("payment_id", paymentID),
		zap.String("rejected_by", verifierID))
	return payment, nil
}

// QuickAssignFees assigns one fee master to the resolved student set.
// Items are row-independent: a student that already holds a live
// assignment for the master is skipped, and one student's failure does
// not abort the siblings.
func (s *FeesLedgerService) QuickAssignFees(ctx context.Context, schoolID string, req QuickAssignRequest) (*QuickAssignResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quick assign payload")
	}
	if len(req.StudentIDs) == 0 && req.ClassID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "either student_ids or class_id is required")
	}

	master, err := s.masters.FindByID(ctx, schoolID, req.FeesMasterID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fees master not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fees master")
	}
	if !master.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fees master is inactive")
	}

	var discount *models.FeesDiscount
	if req.DiscountID != "" {
		discount, err = s.discounts.FindDiscountByID(ctx, schoolID, req.DiscountID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "discount not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load discount")
		}
	}

	students, err := s.resolveStudents(ctx, schoolID, req.StudentIDs, req.ClassID)
	if err != nil {
		return nil, err
	}

	dueDate := req.DueDate
	if dueDate == nil {
		dueDate = master.DueDate
	}
	total := models.ApplyDiscount(master.Amount, discount)

	result := &QuickAssignResult{}
	for _, student := range students {
		exists, err := s.ledger.ExistsAssign(ctx, schoolID, student.ID, master.ID)
		if err != nil {
			s.logger.Warn("quick assign existence check failed", zap.String("student_id", student.ID), zap.Error(err))
			result.Errors = append(result.Errors, BatchItemError{StudentID: student.ID, Reason: err.Error()})
			continue
		}
		if exists {
			result.Skipped = append(result.Skipped, student.ID)
			continue
		}

		var discountID *string
		if discount != nil {
			discountID = &discount.ID
		}
		assign := &models.FeesAssign{
			SchoolID:     schoolID,
			StudentID:    student.ID,
			FeesMasterID: master.ID,
			DiscountID:   discountID,
			TotalAmount:  total,
			PaidAmount:   decimal.Zero,
			Balance:      total,
			Status:       models.DeriveStatus(total, decimal.Zero, total),
			DueDate:      dueDate,
		}
		if err := s.ledger.CreateAssign(ctx, assign); err != nil {
			s.logger.Warn("quick assign create failed", zap.String("student_id", student.ID), zap.Error(err))
			result.Errors = append(result.Errors, BatchItemError{StudentID: student.ID, Reason: err.Error()})
			continue
		}
		result.Assigned = append(result.Assigned, *assign)
	}

	s.invalidateLedgerCaches(ctx, schoolID)
	s.logger.Info("quick assign completed",
		zap.String("school_id", schoolID),
		zap.String("fees_master_id", master.ID),
		zap.Int("assigned", len(result.Assigned)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}

// PreviewCarryForward aggregates outstanding balances per student for the
// named academic period without mutating anything.
func (s *FeesLedgerService) PreviewCarryForward(ctx context.Context, schoolID, fromAcademicYear, fromTerm string) ([]models.CarryForwardPreview, error) {
	if fromAcademicYear == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "from_academic_year is required")
	}

	cacheKey := carryForwardPreviewKey(schoolID, fromAcademicYear, fromTerm)
	if s.cache != nil {
		var cached []models.CarryForwardPreview
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	previews, err := s.ledger.CarryForwardCandidates(ctx, models.CarryForwardFilter{
		SchoolID:         schoolID,
		FromAcademicYear: fromAcademicYear,
		FromTerm:         fromTerm,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to preview carry forward")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, previews, s.previewCacheTTL); err != nil {
			s.logger.Warn("cache carry forward preview", zap.Error(err))
		}
	}
	return previews, nil
}

// CarryForward rolls every outstanding balance from the named academic
// period (optionally narrowed to a term and to named students) into
// fresh unpaid assignments. Source rows are left untouched; balances in
// other periods are never swept.
func (s *FeesLedgerService) CarryForward(ctx context.Context, schoolID string, req CarryForwardRequest) (*CarryForwardResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid carry forward payload")
	}

	sources, err := s.ledger.ListCarryForwardSources(ctx, models.CarryForwardFilter{
		SchoolID:         schoolID,
		FromAcademicYear: req.FromAcademicYear,
		FromTerm:         req.FromTerm,
		StudentIDs:       req.StudentIDs,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve carry forward sources")
	}

	result := &CarryForwardResult{}
	for _, src := range sources {
		fresh := src.NewCarryForward()
		if err := s.ledger.CreateAssign(ctx, fresh); err != nil {
			s.logger.Warn("carry forward create failed",
				zap.String("student_id", src.StudentID),
				zap.String("source_assign_id", src.ID),
				zap.Error(err))
			result.Errors = append(result.Errors, BatchItemError{StudentID: src.StudentID, Reason: err.Error()})
			continue
		}
		result.Created = append(result.Created, *fresh)
	}

	s.invalidateLedgerCaches(ctx, schoolID)
	s.logger.Info("carry forward completed",
		zap.String("school_id", schoolID),
		zap.String("from_academic_year", req.FromAcademicYear),
		zap.Int("created", len(result.Created)),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}

// SendReminders creates one reminder per outstanding assignment per named
// student. A student with three unpaid items receives three reminder
// records from one call.
func (s *FeesLedgerService) SendReminders(ctx context.Context, schoolID, senderID string, req SendRemindersRequest) (*SendRemindersResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reminders payload")
	}

	result := &SendRemindersResult{}
	for _, studentID := range req.StudentIDs {
		outstanding, err := s.ledger.ListOutstandingByStudent(ctx, schoolID, studentID)
		if err != nil {
			s.logger.Warn("reminder load failed", zap.String("student_id", studentID), zap.Error(err))
			result.Errors = append(result.Errors, BatchItemError{StudentID: studentID, Reason: err.Error()})
			continue
		}
		for _, assign := range outstanding {
			rem := &models.FeesReminder{
				SchoolID:     schoolID,
				FeesAssignID: assign.ID,
				StudentID:    studentID,
				Type:         req.Type,
				Message:      req.Message,
				SentBy:       senderID,
			}
			if err := s.reminders.Create(ctx, rem); err != nil {
				s.logger.Warn("reminder create failed",
					zap.String("student_id", studentID),
					zap.String("fees_assign_id", assign.ID),
					zap.Error(err))
				result.Errors = append(result.Errors, BatchItemError{StudentID: studentID, Reason: err.Error()})
				continue
			}
			result.Sent = append(result.Sent, *rem)
		}
	}

	s.logger.Info("reminders sent",
		zap.String("school_id", schoolID),
		zap.Int("sent", len(result.Sent)),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}

// ListDueFees returns outstanding assignments matching the filter, served
// from cache when the filter allows.
func (s *FeesLedgerService) ListDueFees(ctx context.Context, filter models.DueFeesFilter) ([]models.FeesAssignDetail, error) {
	cacheKey := dueFeesKey(filter)
	if s.cache != nil {
		var cached []models.FeesAssignDetail
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	assigns, err := s.ledger.ListDueAssigns(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list due fees")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, assigns, s.dueCacheTTL); err != nil {
			s.logger.Warn("cache due fees", zap.Error(err))
		}
	}
	return assigns, nil
}

// ListPayments returns payments matching the filter.
func (s *FeesLedgerService) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.FeesPaymentDetail, error) {
	payments, err := s.ledger.ListPayments(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	return payments, nil
}

// GetPayment fetches one payment.
func (s *FeesLedgerService) GetPayment(ctx context.Context, schoolID, paymentID string) (*models.FeesPayment, error) {
	payment, err := s.ledger.FindPaymentByID(ctx, schoolID, paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	return payment, nil
}

// GetPaymentDetail fetches one payment with display names for receipt
// rendering.
func (s *FeesLedgerService) GetPaymentDetail(ctx context.Context, schoolID, paymentID string) (*models.FeesPaymentDetail, error) {
	payment, err := s.ledger.FindPaymentDetailByID(ctx, schoolID, paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	return payment, nil
}

// ListStudentReminders returns the reminder log for one student.
func (s *FeesLedgerService) ListStudentReminders(ctx context.Context, schoolID, studentID string) ([]models.FeesReminder, error) {
	reminders, err := s.reminders.ListByStudent(ctx, schoolID, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reminders")
	}
	return reminders, nil
}

func (s *FeesLedgerService) resolveStudents(ctx context.Context, schoolID string, studentIDs []string, classID string) ([]models.User, error) {
	if len(studentIDs) > 0 {
		students := make([]models.User, 0, len(studentIDs))
		for _, id := range studentIDs {
			student, err := s.roster.FindByID(ctx, schoolID, id)
			if err != nil {
				if err == sql.ErrNoRows {
					return nil, appErrors.Clone(appErrors.ErrNotFound, "student "+id+" not found")
				}
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
			}
			students = append(students, *student)
		}
		return students, nil
	}

	students, err := s.roster.ListActiveByClass(ctx, schoolID, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class roster")
	}
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no active students in class")
	}
	return students, nil
}

func (s *FeesLedgerService) invalidateLedgerCaches(ctx context.Context, schoolID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "fees:"+schoolID+":*"); err != nil {
		s.logger.Warn("invalidate ledger caches", zap.Error(err))
	}
}

func receiptNumber(prefix, schoolID, assignID string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d-%s", prefix, schoolID, at.Unix(), assignID)
}

func dueFeesKey(filter models.DueFeesFilter) string {
	return fmt.Sprintf("fees:%s:due:%s:%s:%s:%s", filter.SchoolID, filter.StudentID, filter.FeesGroupID, filter.Status, filter.AcademicYear)
}

func carryForwardPreviewKey(schoolID, fromAcademicYear, fromTerm string) string {
	return fmt.Sprintf("fees:%s:carry_forward_preview:%s:%s", schoolID, fromAcademicYear, fromTerm)
}
