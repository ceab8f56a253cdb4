package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edustack/school-api/internal/llm"
	"github.com/edustack/school-api/internal/models"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

type completionClient interface {
	Complete(ctx context.Context, prompt string) (*llm.Completion, error)
}

type syllabusStore interface {
	Create(ctx context.Context, s *models.Syllabus) error
	FindByID(ctx context.Context, schoolID, id string) (*models.Syllabus, error)
	List(ctx context.Context, schoolID, subject string) ([]models.Syllabus, error)
	UpdateAssessmentPlan(ctx context.Context, schoolID, id string, plan []byte) error
	Publish(ctx context.Context, schoolID, id string) error
	CreateLesson(ctx context.Context, l *models.Lesson) error
	FindLessonByID(ctx context.Context, id string) (*models.Lesson, error)
	ListLessons(ctx context.Context, syllabusID string) ([]models.Lesson, error)
}

// AIContentService drives the four generation operations: call the
// provider chain, extract JSON, persist where the operation has a home
// entity. Model output is never schema-validated, so every field read is
// defensive.
type AIContentService struct {
	client    completionClient
	syllabi   syllabusStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAIContentService constructs AIContentService.
func NewAIContentService(client completionClient, syllabi syllabusStore, validate *validator.Validate, logger *zap.Logger) *AIContentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIContentService{client: client, syllabi: syllabi, validator: validate, logger: logger}
}

// GenerateSyllabus produces and persists a full curriculum plan.
func (s *AIContentService) GenerateSyllabus(ctx context.Context, schoolID, teacherID string, req models.GenerateSyllabusRequest) (*models.Syllabus, *models.AIGenerationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid syllabus request")
	}

	result, err := s.generate(ctx, llm.SyllabusPrompt(req))
	if err != nil {
		return nil, nil, err
	}

	name := stringField(result.Content, "name")
	if name == "" {
		name = req.Subject + " - " + req.GradeLevel
	}

	syllabus := &models.Syllabus{
		SchoolID:           schoolID,
		Name:               name,
		Subject:            req.Subject,
		GradeLevel:         req.GradeLevel,
		CurriculumStandard: req.CurriculumStandard,
		DurationWeeks:      req.DurationWeeks,
		LearningObjectives: jsonField(result.Content, "learning_objectives"),
		WeeklyBreakdown:    jsonField(result.Content, "weekly_breakdown"),
		AssessmentPlan:     jsonField(result.Content, "assessment_plan"),
		RevisionSchedule:   jsonField(result.Content, "revision_schedule"),
		Resources:          jsonField(result.Content, "resources"),
		AIGenerated:        true,
	}
	if teacherID != "" {
		syllabus.TeacherID = &teacherID
	}

	if err := s.syllabi.Create(ctx, syllabus); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save generated syllabus")
	}

	s.logger.Info("syllabus generated",
		zap.String("school_id", schoolID),
		zap.String("syllabus_id", syllabus.ID),
		zap.String("provider", result.Provider),
		zap.String("model", result.Model))
	return syllabus, result, nil
}

// GenerateLesson produces and persists one lesson, linked to a syllabus
// when one is named.
func (s *AIContentService) GenerateLesson(ctx context.Context, schoolID, creatorID string, req models.GenerateLessonRequest) (*models.Lesson, *models.AIGenerationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson request")
	}
	if req.SyllabusID != "" {
		if _, err := s.syllabi.FindByID(ctx, schoolID, req.SyllabusID); err != nil {
			if err == sql.ErrNoRows {
				return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
			}
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus")
		}
	}

	result, err := s.generate(ctx, llm.LessonPrompt(req))
	if err != nil {
		return nil, nil, err
	}

	topic := stringField(result.Content, "topic")
	if topic == "" {
		topic = req.Topic
	}

	lesson := &models.Lesson{
		SyllabusID:          req.SyllabusID,
		WeekNumber:          req.WeekNumber,
		Topic:               topic,
		Slug:                slugify(topic),
		DifficultyLevel:     stringField(result.Content, "difficulty_level"),
		DurationMinutes:     req.DurationMinutes,
		LearningGoals:       jsonField(result.Content, "learning_goals"),
		Prerequisites:       jsonField(result.Content, "prerequisites"),
		Explanation:         stringField(result.Content, "explanation"),
		Examples:            jsonField(result.Content, "examples"),
		Activities:          jsonField(result.Content, "activities"),
		DiscussionQuestions: jsonField(result.Content, "discussion_questions"),
		Homework:            stringField(result.Content, "homework"),
		Resources:           jsonField(result.Content, "resources"),
		AIGenerated:         true,
		AIModelVersion:      result.Provider + "/" + result.Model,
	}
	if creatorID != "" {
		lesson.CreatedBy = &creatorID
	}

	if err := s.syllabi.CreateLesson(ctx, lesson); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save generated lesson")
	}

	s.logger.Info("lesson generated",
		zap.String("school_id", schoolID),
		zap.String("lesson_id", lesson.ID),
		zap.String("provider", result.Provider),
		zap.String("model", result.Model))
	return lesson, result, nil
}

// GenerateAssessmentPlan produces a detailed assessment schedule. When a
// syllabus is named the stored plan is replaced with the new one.
func (s *AIContentService) GenerateAssessmentPlan(ctx context.Context, schoolID, syllabusID string, req models.GenerateAssessmentPlanRequest) (*models.AIGenerationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment plan request")
	}

	result, err := s.generate(ctx, llm.AssessmentPlanPrompt(req))
	if err != nil {
		return nil, err
	}

	if syllabusID != "" {
		if _, err := s.syllabi.FindByID(ctx, schoolID, syllabusID); err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus")
		}
		plan := jsonField(result.Content, "assessments")
		if plan != nil {
			if err := s.syllabi.UpdateAssessmentPlan(ctx, schoolID, syllabusID, plan); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store assessment plan")
			}
		}
	}

	s.logger.Info("assessment plan generated",
		zap.String("school_id", schoolID),
		zap.String("provider", result.Provider),
		zap.String("model", result.Model))
	return result, nil
}

// GenerateExamPrep produces revision material and practice questions. The
// result is returned to the caller without persistence.
func (s *AIContentService) GenerateExamPrep(ctx context.Context, schoolID string, req models.GenerateExamPrepRequest) (*models.AIGenerationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam prep request")
	}

	result, err := s.generate(ctx, llm.ExamPrepPrompt(req))
	if err != nil {
		return nil, err
	}

	s.logger.Info("exam prep generated",
		zap.String("school_id", schoolID),
		zap.String("provider", result.Provider),
		zap.String("model", result.Model))
	return result, nil
}

// GetSyllabus fetches one syllabus.
func (s *AIContentService) GetSyllabus(ctx context.Context, schoolID, id string) (*models.Syllabus, error) {
	syllabus, err := s.syllabi.FindByID(ctx, schoolID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus")
	}
	return syllabus, nil
}

// ListSyllabi lists the school's syllabi, optionally filtered by subject.
func (s *AIContentService) ListSyllabi(ctx context.Context, schoolID, subject string) ([]models.Syllabus, error) {
	syllabi, err := s.syllabi.List(ctx, schoolID, subject)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list syllabi")
	}
	return syllabi, nil
}

// PublishSyllabus marks a syllabus as published.
func (s *AIContentService) PublishSyllabus(ctx context.Context, schoolID, id string) error {
	if _, err := s.syllabi.FindByID(ctx, schoolID, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus")
	}
	if err := s.syllabi.Publish(ctx, schoolID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to publish syllabus")
	}
	return nil
}

// ListLessons lists a syllabus's lessons.
func (s *AIContentService) ListLessons(ctx context.Context, schoolID, syllabusID string) ([]models.Lesson, error) {
	if _, err := s.syllabi.FindByID(ctx, schoolID, syllabusID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus")
	}
	lessons, err := s.syllabi.ListLessons(ctx, syllabusID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lessons")
	}
	return lessons, nil
}

func (s *AIContentService) generate(ctx context.Context, prompt string) (*models.AIGenerationResult, error) {
	completion, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	content, err := llm.ExtractJSON(completion.Text)
	if err != nil {
		return nil, err
	}
	return &models.AIGenerationResult{
		Content:  content,
		Provider: completion.Provider,
		Model:    completion.Model,
	}, nil
}

// stringField reads a string value from loosely-typed model output,
// returning "" when the key is absent or the wrong type.
func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// jsonField re-marshals one key of the model output for storage in a
// JSON column; nil when the key is absent or unmarshalable.
func jsonField(m map[string]interface{}, key string) json.RawMessage {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

func slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
