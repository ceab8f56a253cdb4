package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edustack/school-api/internal/models"
)

// SyllabusRepository persists generated and hand-authored curricula.
type SyllabusRepository struct {
	db *sqlx.DB
}

// NewSyllabusRepository constructs a SyllabusRepository.
func NewSyllabusRepository(db *sqlx.DB) *SyllabusRepository {
	return &SyllabusRepository{db: db}
}

const syllabusColumns = `id, school_id, teacher_id, name, subject, grade_level, curriculum_standard, duration_weeks, learning_objectives, weekly_breakdown, assessment_plan, revision_schedule, resources, is_published, published_at, ai_generated, created_at, updated_at`

// Create inserts a new syllabus.
func (r *SyllabusRepository) Create(ctx context.Context, s *models.Syllabus) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	const query = `INSERT INTO syllabi (id, school_id, teacher_id, name, subject, grade_level, curriculum_standard, duration_weeks, learning_objectives, weekly_breakdown, assessment_plan, revision_schedule, resources, is_published, published_at, ai_generated, created_at, updated_at)
        VALUES (:id, :school_id, :teacher_id, :name, :subject, :grade_level, :curriculum_standard, :duration_weeks, :learning_objectives, :weekly_breakdown, :assessment_plan, :revision_schedule, :resources, :is_published, :published_at, :ai_generated, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("create syllabus: %w", err)
	}
	return nil
}

// FindByID fetches one syllabus scoped to a school.
func (r *SyllabusRepository) FindByID(ctx context.Context, schoolID, id string) (*models.Syllabus, error) {
	query := fmt.Sprintf(`SELECT %s FROM syllabi WHERE id = $1 AND school_id = $2`, syllabusColumns)
	var s models.Syllabus
	if err := r.db.GetContext(ctx, &s, query, id, schoolID); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns the school's syllabi, optionally filtered by subject.
func (r *SyllabusRepository) List(ctx context.Context, schoolID, subject string) ([]models.Syllabus, error) {
	query := fmt.Sprintf(`SELECT %s FROM syllabi WHERE school_id = $1`, syllabusColumns)
	args := []interface{}{schoolID}
	if subject != "" {
		query += " AND subject = $2"
		args = append(args, subject)
	}
	query += " ORDER BY created_at DESC"

	var syllabi []models.Syllabus
	if err := r.db.SelectContext(ctx, &syllabi, query, args...); err != nil {
		return nil, fmt.Errorf("list syllabi: %w", err)
	}
	return syllabi, nil
}

// UpdateAssessmentPlan replaces the stored assessment plan JSON.
func (r *SyllabusRepository) UpdateAssessmentPlan(ctx context.Context, schoolID, id string, plan []byte) error {
	const query = `UPDATE syllabi SET assessment_plan = $3, updated_at = $4 WHERE id = $1 AND school_id = $2`
	if _, err := r.db.ExecContext(ctx, query, id, schoolID, plan, time.Now().UTC()); err != nil {
		return fmt.Errorf("update assessment plan: %w", err)
	}
	return nil
}

// Publish marks a syllabus as published.
func (r *SyllabusRepository) Publish(ctx context.Context, schoolID, id string) error {
	now := time.Now().UTC()
	const query = `UPDATE syllabi SET is_published = true, published_at = $3, updated_at = $3 WHERE id = $1 AND school_id = $2`
	if _, err := r.db.ExecContext(ctx, query, id, schoolID, now); err != nil {
		return fmt.Errorf("publish syllabus: %w", err)
	}
	return nil
}

const lessonColumns = `id, syllabus_id, week_number, topic, slug, difficulty_level, duration_minutes, learning_goals, prerequisites, explanation, examples, activities, discussion_questions, homework, resources, ai_generated, ai_model_version, is_published, created_by, created_at, updated_at`

// CreateLesson inserts a new lesson under a syllabus.
func (r *SyllabusRepository) CreateLesson(ctx context.Context, l *models.Lesson) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	const query = `INSERT INTO lessons (id, syllabus_id, week_number, topic, slug, difficulty_level, duration_minutes, learning_goals, prerequisites, explanation, examples, activities, discussion_questions, homework, resources, ai_generated, ai_model_version, is_published, created_by, created_at, updated_at)
        VALUES (:id, :syllabus_id, :week_number, :topic, :slug, :difficulty_level, :duration_minutes, :learning_goals, :prerequisites, :explanation, :examples, :activities, :discussion_questions, :homework, :resources, :ai_generated, :ai_model_version, :is_published, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, l); err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}

// FindLessonByID fetches one lesson.
func (r *SyllabusRepository) FindLessonByID(ctx context.Context, id string) (*models.Lesson, error) {
	query := fmt.Sprintf(`SELECT %s FROM lessons WHERE id = $1`, lessonColumns)
	var l models.Lesson
	if err := r.db.GetContext(ctx, &l, query, id); err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLessons returns a syllabus's lessons ordered by week.
func (r *SyllabusRepository) ListLessons(ctx context.Context, syllabusID string) ([]models.Lesson, error) {
	query := fmt.Sprintf(`SELECT %s FROM lessons WHERE syllabus_id = $1 ORDER BY week_number ASC, created_at ASC`, lessonColumns)
	var lessons []models.Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, syllabusID); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}
