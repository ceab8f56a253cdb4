package llm

import (
	"fmt"
	"strings"

	"github.com/edustack/school-api/internal/models"
)

// Prompt templates. Each embeds the caller's parameters, an explicit
// target JSON schema and quantity constraints. The model is asked for raw
// JSON only; ExtractJSON still tolerates fencing and prose because models
// routinely ignore that instruction.

// SyllabusPrompt renders the curriculum-plan prompt.
func SyllabusPrompt(req models.GenerateSyllabusRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an experienced curriculum designer. Create a complete %d-week syllabus for %s at grade level %s.\n",
		req.DurationWeeks, req.Subject, req.GradeLevel)
	if req.CurriculumStandard != "" {
		fmt.Fprintf(&b, "Align the syllabus with the %s curriculum standard.\n", req.CurriculumStandard)
	}
	if len(req.LearningObjectives) > 0 {
		fmt.Fprintf(&b, "The syllabus must cover these learning objectives: %s.\n", strings.Join(req.LearningObjectives, "; "))
	}
	if req.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", req.AdditionalInstructions)
	}

	fmt.Fprintf(&b, `
Respond with raw JSON only, no surrounding text, matching this shape:
{
  "name": "syllabus title",
  "learning_objectives": ["objective", ...],
  "weekly_breakdown": [
    {"week": 1, "topic": "...", "subtopics": ["..."], "activities": ["..."], "homework": "..."}
  ],
  "assessment_plan": [{"week": 1, "type": "quiz|test|project", "description": "...", "weight_percent": 10}],
  "revision_schedule": [{"week": 1, "focus": "..."}],
  "resources": ["..."]
}
The weekly_breakdown array must contain exactly %d entries, one per week, numbered sequentially from 1.
`, req.DurationWeeks)

	return b.String()
}

// LessonPrompt renders the single-lesson prompt.
func LessonPrompt(req models.GenerateLessonRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an experienced %s teacher. Create a detailed lesson on %q for grade level %s.\n",
		req.Subject, req.Topic, req.GradeLevel)
	if req.WeekNumber > 0 {
		fmt.Fprintf(&b, "This is the week %d lesson of the course.\n", req.WeekNumber)
	}
	if req.DurationMinutes > 0 {
		fmt.Fprintf(&b, "The lesson should fit a %d-minute session.\n", req.DurationMinutes)
	}
	if len(req.LearningGoals) > 0 {
		fmt.Fprintf(&b, "The lesson must achieve these goals: %s.\n", strings.Join(req.LearningGoals, "; "))
	}
	if req.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", req.AdditionalInstructions)
	}

	b.WriteString(`
Respond with raw JSON only, no surrounding text, matching this shape:
{
  "topic": "...",
  "difficulty_level": "beginner|intermediate|advanced",
  "learning_goals": ["..."],
  "prerequisites": ["..."],
  "explanation": "a thorough explanation of the topic, suitable for reading aloud",
  "examples": [{"title": "...", "content": "..."}],
  "activities": [{"title": "...", "description": "...", "duration_minutes": 15}],
  "discussion_questions": ["..."],
  "homework": "...",
  "resources": ["..."]
}
Include 2-4 worked examples and 2-3 activities.
`)

	return b.String()
}

// AssessmentPlanPrompt renders the detailed-assessment-plan prompt.
func AssessmentPlanPrompt(req models.GenerateAssessmentPlanRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an assessment specialist. Design a detailed assessment plan for a %d-week %s course at grade level %s.\n",
		req.DurationWeeks, req.Subject, req.GradeLevel)
	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "The course covers these topics: %s.\n", strings.Join(req.Topics, "; "))
	}
	if req.ExistingPlan != "" {
		fmt.Fprintf(&b, "Build on and refine this existing plan:\n%s\n", req.ExistingPlan)
	}
	if req.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", req.AdditionalInstructions)
	}

	b.WriteString(`
Respond with raw JSON only, no surrounding text, matching this shape:
{
  "assessments": [
    {
      "week": 1,
      "type": "quiz|test|project|presentation|exam",
      "title": "...",
      "description": "...",
      "topics_covered": ["..."],
      "weight_percent": 10,
      "duration_minutes": 45,
      "grading_criteria": ["..."]
    }
  ],
  "grading_scale": {"A": "90-100", "B": "80-89", "C": "70-79", "D": "60-69", "F": "0-59"},
  "notes": "..."
}
The assessments array must contain between 4 and 6 entries, spread across the course duration, with weight_percent values summing to 100.
`)

	return b.String()
}

// ExamPrepPrompt renders the exam-preparation prompt.
func ExamPrepPrompt(req models.GenerateExamPrepRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an experienced %s teacher preparing students at grade level %s for an upcoming exam.\n",
		req.Subject, req.GradeLevel)
	if req.ExamType != "" {
		fmt.Fprintf(&b, "The exam type is: %s.\n", req.ExamType)
	}
	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "The exam covers these topics: %s.\n", strings.Join(req.Topics, "; "))
	}
	if req.WeeksUntilExam > 0 {
		fmt.Fprintf(&b, "There are %d weeks until the exam; structure the revision schedule accordingly.\n", req.WeeksUntilExam)
	}
	if req.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", req.AdditionalInstructions)
	}

	b.WriteString(`
Respond with raw JSON only, no surrounding text, matching this shape:
{
  "revision_schedule": [{"week": 1, "focus": "...", "topics": ["..."], "activities": ["..."]}],
  "key_concepts": [{"topic": "...", "summary": "..."}],
  "practice_questions": [
    {
      "question": "...",
      "type": "multiple_choice|short_answer|essay",
      "options": ["..."],
      "answer": "...",
      "explanation": "...",
      "difficulty": "easy|medium|hard"
    }
  ],
  "exam_tips": ["..."]
}
The practice_questions array must contain between 10 and 15 questions with a mix of difficulties. Include the options array only for multiple_choice questions; omit it entirely for other types.
`)

	return b.String()
}
