package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edustack/school-api/internal/models"
)

// FeesMasterRepository manages priced fee definitions.
type FeesMasterRepository struct {
	db *sqlx.DB
}

// NewFeesMasterRepository constructs a FeesMasterRepository.
func NewFeesMasterRepository(db *sqlx.DB) *FeesMasterRepository {
	return &FeesMasterRepository{db: db}
}

// List returns the school's fee masters, optionally filtered by academic year.
func (r *FeesMasterRepository) List(ctx context.Context, schoolID, academicYear string) ([]models.FeesMaster, error) {
	query := `SELECT id, school_id, fees_group_id, fees_type_id, amount, due_date, academic_year, term, active, created_at, updated_at
        FROM fees_masters WHERE school_id = $1`
	args := []interface{}{schoolID}
	if academicYear != "" {
		query += " AND academic_year = $2"
		args = append(args, academicYear)
	}
	query += " ORDER BY created_at DESC"

	var masters []models.FeesMaster
	if err := r.db.SelectContext(ctx, &masters, query, args...); err != nil {
		return nil, fmt.Errorf("list fees masters: %w", err)
	}
	return masters, nil
}

// FindByID fetches one fee master scoped to a school.
func (r *FeesMasterRepository) FindByID(ctx context.Context, schoolID, id string) (*models.FeesMaster, error) {
	const query = `SELECT id, school_id, fees_group_id, fees_type_id, amount, due_date, academic_year, term, active, created_at, updated_at
        FROM fees_masters WHERE id = $1 AND school_id = $2`
	var fm models.FeesMaster
	if err := r.db.GetContext(ctx, &fm, query, id, schoolID); err != nil {
		return nil, err
	}
	return &fm, nil
}

// Create inserts a new fee master.
func (r *FeesMasterRepository) Create(ctx context.Context, fm *models.FeesMaster) error {
	if fm.ID == "" {
		fm.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if fm.CreatedAt.IsZero() {
		fm.CreatedAt = now
	}
	fm.UpdatedAt = now
	const query = `INSERT INTO fees_masters (id, school_id, fees_group_id, fees_type_id, amount, due_date, academic_year, term, active, created_at, updated_at)
        VALUES (:id, :school_id, :fees_group_id, :fees_type_id, :amount, :due_date, :academic_year, :term, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fm); err != nil {
		return fmt.Errorf("create fees master: %w", err)
	}
	return nil
}

// Update modifies an existing fee master.
func (r *FeesMasterRepository) Update(ctx context.Context, fm *models.FeesMaster) error {
	fm.UpdatedAt = time.Now().UTC()
	const query = `UPDATE fees_masters SET fees_group_id = :fees_group_id, fees_type_id = :fees_type_id, amount = :amount, due_date = :due_date, academic_year = :academic_year, term = :term, active = :active, updated_at = :updated_at
        WHERE id = :id AND school_id = :school_id`
	if _, err := r.db.NamedExecContext(ctx, query, fm); err != nil {
		return fmt.Errorf("update fees master: %w", err)
	}
	return nil
}

// Deactivate marks a fee master as inactive so it is excluded from new
// assignments while existing obligations remain intact.
func (r *FeesMasterRepository) Deactivate(ctx context.Context, schoolID, id string) error {
	const query = `UPDATE fees_masters SET active = false, updated_at = $3 WHERE id = $1 AND school_id = $2`
	if _, err := r.db.ExecContext(ctx, query, id, schoolID, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate fees master: %w", err)
	}
	return nil
}
