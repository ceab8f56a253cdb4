package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edustack/school-api/internal/models"
)

// FeesReminderRepository manages the append-only reminder log.
type FeesReminderRepository struct {
	db *sqlx.DB
}

// NewFeesReminderRepository constructs a FeesReminderRepository.
func NewFeesReminderRepository(db *sqlx.DB) *FeesReminderRepository {
	return &FeesReminderRepository{db: db}
}

// Create inserts one reminder record.
func (r *FeesReminderRepository) Create(ctx context.Context, rem *models.FeesReminder) error {
	if rem.ID == "" {
		rem.ID = uuid.NewString()
	}
	if rem.SentAt.IsZero() {
		rem.SentAt = time.Now().UTC()
	}
	const query = `INSERT INTO fees_reminders (id, school_id, fees_assign_id, student_id, reminder_type, message, sent_by, sent_at)
        VALUES (:id, :school_id, :fees_assign_id, :student_id, :reminder_type, :message, :sent_by, :sent_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rem); err != nil {
		return fmt.Errorf("create fees reminder: %w", err)
	}
	return nil
}

// ListByStudent returns the student's reminders, newest first.
func (r *FeesReminderRepository) ListByStudent(ctx context.Context, schoolID, studentID string) ([]models.FeesReminder, error) {
	const query = `SELECT id, school_id, fees_assign_id, student_id, reminder_type, message, sent_by, sent_at
        FROM fees_reminders WHERE school_id = $1 AND student_id = $2 ORDER BY sent_at DESC`
	var reminders []models.FeesReminder
	if err := r.db.SelectContext(ctx, &reminders, query, schoolID, studentID); err != nil {
		return nil, fmt.Errorf("list fees reminders: %w", err)
	}
	return reminders, nil
}
