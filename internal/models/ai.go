package models

// AI generation requests are ephemeral value objects: they bundle the
// pedagogical parameters the prompt templates embed. Results are loosely
// typed maps because the model is not contractually guaranteed to honour
// the requested shape.

// GenerateSyllabusRequest asks for a full curriculum plan.
type GenerateSyllabusRequest struct {
	Subject                string   `json:"subject" binding:"required"`
	GradeLevel             string   `json:"grade_level" binding:"required"`
	CurriculumStandard     string   `json:"curriculum_standard"`
	DurationWeeks          int      `json:"duration_weeks" binding:"required,min=1,max=52"`
	LearningObjectives     []string `json:"learning_objectives"`
	AdditionalInstructions string   `json:"additional_instructions"`
}

// GenerateLessonRequest asks for one week's teaching unit.
type GenerateLessonRequest struct {
	SyllabusID             string   `json:"syllabus_id"`
	Subject                string   `json:"subject" binding:"required"`
	GradeLevel             string   `json:"grade_level" binding:"required"`
	Topic                  string   `json:"topic" binding:"required"`
	WeekNumber             int      `json:"week_number" binding:"min=0"`
	DurationMinutes        int      `json:"duration_minutes"`
	LearningGoals          []string `json:"learning_goals"`
	AdditionalInstructions string   `json:"additional_instructions"`
}

// GenerateAssessmentPlanRequest asks for a detailed assessment schedule
// over an existing plan.
type GenerateAssessmentPlanRequest struct {
	Subject                string   `json:"subject" binding:"required"`
	GradeLevel             string   `json:"grade_level" binding:"required"`
	DurationWeeks          int      `json:"duration_weeks" binding:"required,min=1,max=52"`
	Topics                 []string `json:"topics"`
	ExistingPlan           string   `json:"existing_plan"`
	AdditionalInstructions string   `json:"additional_instructions"`
}

// GenerateExamPrepRequest asks for revision material and practice
// questions for an upcoming exam.
type GenerateExamPrepRequest struct {
	Subject                string   `json:"subject" binding:"required"`
	GradeLevel             string   `json:"grade_level" binding:"required"`
	ExamType               string   `json:"exam_type"`
	Topics                 []string `json:"topics"`
	WeeksUntilExam         int      `json:"weeks_until_exam"`
	AdditionalInstructions string   `json:"additional_instructions"`
}

// AIGenerationResult wraps the parsed model output together with the
// provider attribution the caller may persist.
type AIGenerationResult struct {
	Content  map[string]interface{} `json:"content"`
	Provider string                 `json:"provider"`
	Model    string                 `json:"model"`
}
