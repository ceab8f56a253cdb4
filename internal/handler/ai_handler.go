package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edustack/school-api/internal/models"
	"github.com/edustack/school-api/internal/service"
	appErrors "github.com/edustack/school-api/pkg/errors"
	"github.com/edustack/school-api/pkg/response"
)

// AIHandler exposes the AI content generation endpoints and the syllabus
// read surface built on top of them.
type AIHandler struct {
	content *service.AIContentService
	metrics *service.MetricsService
}

// NewAIHandler constructs AIHandler.
func NewAIHandler(content *service.AIContentService, metrics *service.MetricsService) *AIHandler {
	return &AIHandler{content: content, metrics: metrics}
}

// GenerateSyllabus godoc
// @Summary Generate and persist a syllabus draft
// @Tags AI Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.GenerateSyllabusRequest true "Syllabus parameters"
// @Success 201 {object} response.Envelope
// @Router /ai/syllabus [post]
func (h *AIHandler) GenerateSyllabus(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.GenerateSyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	started := time.Now()
	syllabus, result, err := h.content.GenerateSyllabus(c.Request.Context(), schoolScope(c, claims), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveAIGeneration("syllabus", time.Since(started))
	response.Created(c, gin.H{"syllabus": syllabus, "generation": result})
}

// GenerateLesson godoc
// @Summary Generate and persist a lesson plan
// @Tags AI Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.GenerateLessonRequest true "Lesson parameters"
// @Success 201 {object} response.Envelope
// @Router /ai/lessons [post]
func (h *AIHandler) GenerateLesson(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.GenerateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	started := time.Now()
	lesson, result, err := h.content.GenerateLesson(c.Request.Context(), schoolScope(c, claims), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveAIGeneration("lesson", time.Since(started))
	response.Created(c, gin.H{"lesson": lesson, "generation": result})
}

// GenerateAssessmentPlan godoc
// @Summary Generate an assessment plan, optionally stored on a syllabus
// @Tags AI Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param syllabusId query string false "Syllabus to store the plan on"
// @Param payload body models.GenerateAssessmentPlanRequest true "Assessment plan parameters"
// @Success 200 {object} response.Envelope
// @Router /ai/assessment-plan [post]
func (h *AIHandler) GenerateAssessmentPlan(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.GenerateAssessmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	started := time.Now()
	result, err := h.content.GenerateAssessmentPlan(c.Request.Context(), schoolScope(c, claims), c.Query("syllabusId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveAIGeneration("assessment_plan", time.Since(started))
	response.JSON(c, http.StatusOK, result, nil)
}

// GenerateExamPrep godoc
// @Summary Generate exam preparation material
// @Tags AI Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.GenerateExamPrepRequest true "Exam prep parameters"
// @Success 200 {object} response.Envelope
// @Router /ai/exam-prep [post]
func (h *AIHandler) GenerateExamPrep(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.GenerateExamPrepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	started := time.Now()
	result, err := h.content.GenerateExamPrep(c.Request.Context(), schoolScope(c, claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveAIGeneration("exam_prep", time.Since(started))
	response.JSON(c, http.StatusOK, result, nil)
}

// ListSyllabi godoc
// @Summary List syllabi
// @Tags AI Content
// @Produce json
// @Security BearerAuth
// @Param subject query string false "Filter by subject"
// @Success 200 {object} response.Envelope
// @Router /ai/syllabus [get]
func (h *AIHandler) ListSyllabi(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	syllabi, err := h.content.ListSyllabi(c.Request.Context(), schoolScope(c, claims), c.Query("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, syllabi, nil)
}

// GetSyllabus godoc
// @Summary Fetch one syllabus
// @Tags AI Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syllabus ID"
// @Success 200 {object} response.Envelope
// @Router /ai/syllabus/{id} [get]
func (h *AIHandler) GetSyllabus(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	syllabus, err := h.content.GetSyllabus(c.Request.Context(), schoolScope(c, claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, syllabus, nil)
}

// PublishSyllabus godoc
// @Summary Publish a syllabus draft
// @Tags AI Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syllabus ID"
// @Success 204 "No Content"
// @Router /ai/syllabus/{id}/publish [put]
func (h *AIHandler) PublishSyllabus(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.content.PublishSyllabus(c.Request.Context(), schoolScope(c, claims), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLessons godoc
// @Summary List lessons under a syllabus
// @Tags AI Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syllabus ID"
// @Success 200 {object} response.Envelope
// @Router /ai/syllabus/{id}/lessons [get]
func (h *AIHandler) ListLessons(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	lessons, err := h.content.ListLessons(c.Request.Context(), schoolScope(c, claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons, nil)
}
