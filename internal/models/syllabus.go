package models

import (
	"encoding/json"
	"time"
)

// Syllabus is a generated or hand-authored curriculum plan. The breakdown
// and plan columns store the model's JSON verbatim: the generator does not
// enforce a schema, so consumers must treat every nested field as optional.
type Syllabus struct {
	ID                 string          `db:"id" json:"id"`
	SchoolID           string          `db:"school_id" json:"school_id"`
	TeacherID          *string         `db:"teacher_id" json:"teacher_id,omitempty"`
	Name               string          `db:"name" json:"name"`
	Subject            string          `db:"subject" json:"subject"`
	GradeLevel         string          `db:"grade_level" json:"grade_level"`
	CurriculumStandard string          `db:"curriculum_standard" json:"curriculum_standard"`
	DurationWeeks      int             `db:"duration_weeks" json:"duration_weeks"`
	LearningObjectives json.RawMessage `db:"learning_objectives" json:"learning_objectives"`
	WeeklyBreakdown    json.RawMessage `db:"weekly_breakdown" json:"weekly_breakdown"`
	AssessmentPlan     json.RawMessage `db:"assessment_plan" json:"assessment_plan"`
	RevisionSchedule   json.RawMessage `db:"revision_schedule" json:"revision_schedule,omitempty"`
	Resources          json.RawMessage `db:"resources" json:"resources,omitempty"`
	Published          bool            `db:"is_published" json:"is_published"`
	PublishedAt        *time.Time      `db:"published_at" json:"published_at,omitempty"`
	AIGenerated        bool            `db:"ai_generated" json:"ai_generated"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// Lesson is one week's teaching unit under a syllabus.
type Lesson struct {
	ID                  string          `db:"id" json:"id"`
	SyllabusID          string          `db:"syllabus_id" json:"syllabus_id"`
	WeekNumber          int             `db:"week_number" json:"week_number"`
	Topic               string          `db:"topic" json:"topic"`
	Slug                string          `db:"slug" json:"slug,omitempty"`
	DifficultyLevel     string          `db:"difficulty_level" json:"difficulty_level,omitempty"`
	DurationMinutes     int             `db:"duration_minutes" json:"duration_minutes"`
	LearningGoals       json.RawMessage `db:"learning_goals" json:"learning_goals"`
	Prerequisites       json.RawMessage `db:"prerequisites" json:"prerequisites,omitempty"`
	Explanation         string          `db:"explanation" json:"explanation"`
	Examples            json.RawMessage `db:"examples" json:"examples,omitempty"`
	Activities          json.RawMessage `db:"activities" json:"activities,omitempty"`
	DiscussionQuestions json.RawMessage `db:"discussion_questions" json:"discussion_questions,omitempty"`
	Homework            string          `db:"homework" json:"homework,omitempty"`
	Resources           json.RawMessage `db:"resources" json:"resources,omitempty"`
	AIGenerated         bool            `db:"ai_generated" json:"ai_generated"`
	AIModelVersion      string          `db:"ai_model_version" json:"ai_model_version,omitempty"`
	Published           bool            `db:"is_published" json:"is_published"`
	CreatedBy           *string         `db:"created_by" json:"created_by,omitempty"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updated_at"`
}
