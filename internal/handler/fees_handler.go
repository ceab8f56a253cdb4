package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edustack/school-api/internal/models"
	"github.com/edustack/school-api/internal/service"
	appErrors "github.com/edustack/school-api/pkg/errors"
	"github.com/edustack/school-api/pkg/export"
	"github.com/edustack/school-api/pkg/response"
)

// FeesHandler exposes the fee ledger endpoints: collection, verification,
// assignment, carry-forward and reminders.
type FeesHandler struct {
	ledger   *service.FeesLedgerService
	metrics  *service.MetricsService
	receipts *export.ReceiptRenderer
}

// NewFeesHandler constructs FeesHandler.
func NewFeesHandler(ledger *service.FeesLedgerService, metrics *service.MetricsService, receipts *export.ReceiptRenderer) *FeesHandler {
	if receipts == nil {
		receipts = export.NewReceiptRenderer()
	}
	return &FeesHandler{ledger: ledger, metrics: metrics, receipts: receipts}
}

// CollectPayment godoc
// @Summary Collect a direct payment against a fee assignment
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CollectPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /fees/payments [post]
func (h *FeesHandler) CollectPayment(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CollectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payment, assign, err := h.ledger.CollectPayment(c.Request.Context(), schoolScope(c, claims), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordPayment(string(payment.Method), string(payment.VerificationStatus))
	response.Created(c, gin.H{"payment": payment, "assignment": assign})
}

// RecordOfflinePayment godoc
// @Summary Record a bank-transfer payment pending verification
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.OfflinePaymentRequest true "Offline payment payload"
// @Success 201 {object} response.Envelope
// @Router /fees/payments/offline [post]
func (h *FeesHandler) RecordOfflinePayment(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.OfflinePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payment, err := h.ledger.RecordOfflinePayment(c.Request.Context(), schoolScope(c, claims), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordPayment(string(payment.Method), string(payment.VerificationStatus))
	response.Created(c, payment)
}

// VerifyPayment godoc
// @Summary Verify a pending offline payment and apply its balance
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /fees/payments/{id}/verify [put]
func (h *FeesHandler) VerifyPayment(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	payment, err := h.ledger.VerifyOfflinePayment(c.Request.Context(), schoolScope(c, claims), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordPayment(string(payment.Method), string(payment.VerificationStatus))
	response.JSON(c, http.StatusOK, payment, nil)
}

// RejectPayment godoc
// @Summary Reject a pending offline payment without applying its balance
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /fees/payments/{id}/reject [put]
func (h *FeesHandler) RejectPayment(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	payment, err := h.ledger.RejectOfflinePayment(c.Request.Context(), schoolScope(c, claims), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}

// ListPayments godoc
// @Summary Search payments
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Filter by student"
// @Param method query string false "Filter by payment method"
// @Param verification query string false "Filter by verification status"
// @Param from query string false "Paid-at lower bound (RFC3339)"
// @Param to query string false "Paid-at upper bound (RFC3339)"
// @Success 200 {object} response.Envelope
// @Router /fees/payments [get]
func (h *FeesHandler) ListPayments(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	filter := models.PaymentFilter{
		SchoolID:           schoolScope(c, claims),
		StudentID:          c.Query("studentId"),
		Method:             models.PaymentMethod(c.Query("method")),
		VerificationStatus: models.VerificationStatus(c.Query("verification")),
	}
	if raw := c.Query("from"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateFrom = &ts
		}
	}
	if raw := c.Query("to"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateTo = &ts
		}
	}

	payments, err := h.ledger.ListPayments(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments, nil)
}

// GetPayment godoc
// @Summary Fetch one payment
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /fees/payments/{id} [get]
func (h *FeesHandler) GetPayment(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	payment, err := h.ledger.GetPayment(c.Request.Context(), schoolScope(c, claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}

// Receipt godoc
// @Summary Download a payment receipt as PDF
// @Tags Fees
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {file} binary
// @Router /fees/payments/{id}/receipt [get]
func (h *FeesHandler) Receipt(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	payment, err := h.ledger.GetPaymentDetail(c.Request.Context(), schoolScope(c, claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	pdf, err := h.receipts.Render(export.Receipt{
		ReceiptNumber: payment.ReceiptNumber,
		StudentName:   payment.StudentName,
		Amount:        payment.Amount.StringFixed(2),
		Method:        string(payment.Method),
		PaidAt:        payment.PaidAt.Format("2006-01-02 15:04"),
		CollectedBy:   payment.CollectedBy,
		Status:        string(payment.VerificationStatus),
	})
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+payment.ReceiptNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// QuickAssign godoc
// @Summary Bulk-assign a fee master to students or a class roster
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.QuickAssignRequest true "Quick assign payload"
// @Success 200 {object} response.Envelope
// @Router /fees/assignments/quick [post]
func (h *FeesHandler) QuickAssign(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.QuickAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.ledger.QuickAssignFees(c.Request.Context(), schoolScope(c, claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListDueFees godoc
// @Summary List outstanding fee assignments
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Filter by student"
// @Param groupId query string false "Filter by fee group"
// @Param status query string false "Filter by status (unpaid, partial)"
// @Param academicYear query string false "Filter by academic year"
// @Success 200 {object} response.Envelope
// @Router /fees/due [get]
func (h *FeesHandler) ListDueFees(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	filter := models.DueFeesFilter{
		SchoolID:     schoolScope(c, claims),
		StudentID:    c.Query("studentId"),
		FeesGroupID:  c.Query("groupId"),
		Status:       models.FeeStatus(c.Query("status")),
		AcademicYear: c.Query("academicYear"),
	}
	// Students only see their own ledger.
	if claims.Role == models.RoleStudent {
		filter.StudentID = claims.UserID
	}

	assigns, err := h.ledger.ListDueFees(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assigns, nil)
}

// PreviewCarryForward godoc
// @Summary Preview outstanding balances eligible for carry-forward
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param fromAcademicYear query string true "Academic year being closed"
// @Param fromTerm query string false "Term within the year"
// @Success 200 {object} response.Envelope
// @Router /fees/carry-forward/preview [get]
func (h *FeesHandler) PreviewCarryForward(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	previews, err := h.ledger.PreviewCarryForward(c.Request.Context(), schoolScope(c, claims), c.Query("fromAcademicYear"), c.Query("fromTerm"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, previews, nil)
}

// CarryForward godoc
// @Summary Roll outstanding balances into fresh obligations
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CarryForwardRequest true "Carry forward payload"
// @Success 200 {object} response.Envelope
// @Router /fees/carry-forward [post]
func (h *FeesHandler) CarryForward(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CarryForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.ledger.CarryForward(c.Request.Context(), schoolScope(c, claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SendReminders godoc
// @Summary Send payment reminders for outstanding assignments
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SendRemindersRequest true "Reminders payload"
// @Success 200 {object} response.Envelope
// @Router /fees/reminders [post]
func (h *FeesHandler) SendReminders(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.SendRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.ledger.SendReminders(c.Request.Context(), schoolScope(c, claims), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListStudentReminders godoc
// @Summary List reminders sent to one student
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /fees/reminders/student/{id} [get]
func (h *FeesHandler) ListStudentReminders(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	studentID := c.Param("id")
	if claims.Role == models.RoleStudent && studentID != claims.UserID {
		response.Error(c, appErrors.ErrForbidden)
		return
	}
	reminders, err := h.ledger.ListStudentReminders(c.Request.Context(), schoolScope(c, claims), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminders, nil)
}
