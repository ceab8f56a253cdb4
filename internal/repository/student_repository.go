package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edustack/school-api/internal/models"
)

// StudentRepository resolves student rosters. Students are users with the
// STUDENT role; class membership comes from the enrollments table so
// class-scoped fee operations target actual roster members, not the whole
// school.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `u.id, u.school_id, u.email, u.password_hash, u.full_name, u.role, u.active, u.last_login, u.created_at, u.updated_at`

// FindByID fetches one active student scoped to a school.
func (r *StudentRepository) FindByID(ctx context.Context, schoolID, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u WHERE u.id = $1 AND u.school_id = $2 AND u.role = $3`, studentColumns)
	var student models.User
	if err := r.db.GetContext(ctx, &student, query, id, schoolID, models.RoleStudent); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListActiveBySchool returns all active students in a school.
func (r *StudentRepository) ListActiveBySchool(ctx context.Context, schoolID string) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u
        WHERE u.school_id = $1 AND u.role = $2 AND u.active = true
        ORDER BY u.full_name ASC`, studentColumns)
	var students []models.User
	if err := r.db.SelectContext(ctx, &students, query, schoolID, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListActiveByClass returns the active students enrolled in a class.
func (r *StudentRepository) ListActiveByClass(ctx context.Context, schoolID, classID string) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u
        JOIN enrollments e ON e.student_id = u.id AND e.status = 'active'
        WHERE u.school_id = $1 AND e.class_id = $2 AND u.role = $3 AND u.active = true
        ORDER BY u.full_name ASC`, studentColumns)
	var students []models.User
	if err := r.db.SelectContext(ctx, &students, query, schoolID, classID, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("list class roster: %w", err)
	}
	return students, nil
}
