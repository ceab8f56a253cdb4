package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edustack/school-api/internal/models"
)

// FeesCatalogRepository manages the priced-fee building blocks: fee types,
// fee groups and discounts. All lookups are scoped to one school.
type FeesCatalogRepository struct {
	db *sqlx.DB
}

// NewFeesCatalogRepository constructs a FeesCatalogRepository.
func NewFeesCatalogRepository(db *sqlx.DB) *FeesCatalogRepository {
	return &FeesCatalogRepository{db: db}
}

// ListTypes returns the school's fee types, active ones first.
func (r *FeesCatalogRepository) ListTypes(ctx context.Context, schoolID string) ([]models.FeesType, error) {
	const query = `SELECT id, school_id, name, code, description, active, created_at, updated_at
        FROM fees_types WHERE school_id = $1 ORDER BY active DESC, name ASC`
	var types []models.FeesType
	if err := r.db.SelectContext(ctx, &types, query, schoolID); err != nil {
		return nil, fmt.Errorf("list fees types: %w", err)
	}
	return types, nil
}

// FindTypeByID fetches one fee type scoped to a school.
func (r *FeesCatalogRepository) FindTypeByID(ctx context.Context, schoolID, id string) (*models.FeesType, error) {
	const query = `SELECT id, school_id, name, code, description, active, created_at, updated_at
        FROM fees_types WHERE id = $1 AND school_id = $2`
	var ft models.FeesType
	if err := r.db.GetContext(ctx, &ft, query, id, schoolID); err != nil {
		return nil, err
	}
	return &ft, nil
}

// ExistsTypeByCode checks code uniqueness within a school, optionally
// excluding one row.
func (r *FeesCatalogRepository) ExistsTypeByCode(ctx context.Context, schoolID, code, excludeID string) (bool, error) {
	query := "SELECT 1 FROM fees_types WHERE school_id = $1 AND code = $2"
	args := []interface{}{schoolID, code}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check fees type code: %w", err)
	}
	return true, nil
}

// CreateType inserts a new fee type.
func (r *FeesCatalogRepository) CreateType(ctx context.Context, ft *models.FeesType) error {
	if ft.ID == "" {
		ft.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if ft.CreatedAt.IsZero() {
		ft.CreatedAt = now
	}
	ft.UpdatedAt = now
	const query = `INSERT INTO fees_types (id, school_id, name, code, description, active, created_at, updated_at)
        VALUES (:id, :school_id, :name, :code, :description, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, ft); err != nil {
		return fmt.Errorf("create fees type: %w", err)
	}
	return nil
}

// UpdateType modifies an existing fee type.
func (r *FeesCatalogRepository) UpdateType(ctx context.Context, ft *models.FeesType) error {
	ft.UpdatedAt = time.Now().UTC()
	const query = `UPDATE fees_types SET name = :name, code = :code, description = :description, active = :active, updated_at = :updated_at
        WHERE id = :id AND school_id = :school_id`
	if _, err := r.db.NamedExecContext(ctx, query, ft); err != nil {
		return fmt.Errorf("update fees type: %w", err)
	}
	return nil
}

// ListGroups returns the school's fee groups.
func (r *FeesCatalogRepository) ListGroups(ctx context.Context, schoolID string) ([]models.FeesGroup, error) {
	const query = `SELECT id, school_id, name, description, active, created_at, updated_at
        FROM fees_groups WHERE school_id = $1 ORDER BY active DESC, name ASC`
	var groups []models.FeesGroup
	if err := r.db.SelectContext(ctx, &groups, query, schoolID); err != nil {
		return nil, fmt.Errorf("list fees groups: %w", err)
	}
	return groups, nil
}

// FindGroupByID fetches one fee group scoped to a school.
func (r *FeesCatalogRepository) FindGroupByID(ctx context.Context, schoolID, id string) (*models.FeesGroup, error) {
	const query = `SELECT id, school_id, name, description, active, created_at, updated_at
        FROM fees_groups WHERE id = $1 AND school_id = $2`
	var fg models.FeesGroup
	if err := r.db.GetContext(ctx, &fg, query, id, schoolID); err != nil {
		return nil, err
	}
	return &fg, nil
}

// CreateGroup inserts a new fee group.
func (r *FeesCatalogRepository) CreateGroup(ctx context.Context, fg *models.FeesGroup) error {
	if fg.ID == "" {
		fg.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if fg.CreatedAt.IsZero() {
		fg.CreatedAt = now
	}
	fg.UpdatedAt = now
	const query = `INSERT INTO fees_groups (id, school_id, name, description, active, created_at, updated_at)
        VALUES (:id, :school_id, :name, :description, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fg); err != nil {
		return fmt.Errorf("create fees group: %w", err)
	}
	return nil
}

// UpdateGroup modifies an existing fee group.
func (r *FeesCatalogRepository) UpdateGroup(ctx context.Context, fg *models.FeesGroup) error {
	fg.UpdatedAt = time.Now().UTC()
	const query = `UPDATE fees_groups SET name = :name, description = :description, active = :active, updated_at = :updated_at
        WHERE id = :id AND school_id = :school_id`
	if _, err := r.db.NamedExecContext(ctx, query, fg); err != nil {
		return fmt.Errorf("update fees group: %w", err)
	}
	return nil
}

// ListDiscounts returns the school's discounts.
func (r *FeesCatalogRepository) ListDiscounts(ctx context.Context, schoolID string) ([]models.FeesDiscount, error) {
	const query = `SELECT id, school_id, name, code, discount_type, amount, description, active, created_at, updated_at
        FROM fees_discounts WHERE school_id = $1 ORDER BY active DESC, name ASC`
	var discounts []models.FeesDiscount
	if err := r.db.SelectContext(ctx, &discounts, query, schoolID); err != nil {
		return nil, fmt.Errorf("list fees discounts: %w", err)
	}
	return discounts, nil
}

// FindDiscountByID fetches one discount scoped to a school.
func (r *FeesCatalogRepository) FindDiscountByID(ctx context.Context, schoolID, id string) (*models.FeesDiscount, error) {
	const query = `SELECT id, school_id, name, code, discount_type, amount, description, active, created_at, updated_at
        FROM fees_discounts WHERE id = $1 AND school_id = $2`
	var fd models.FeesDiscount
	if err := r.db.GetContext(ctx, &fd, query, id, schoolID); err != nil {
		return nil, err
	}
	return &fd, nil
}

// CreateDiscount inserts a new discount.
func (r *FeesCatalogRepository) CreateDiscount(ctx context.Context, fd *models.FeesDiscount) error {
	if fd.ID == "" {
		fd.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if fd.CreatedAt.IsZero() {
		fd.CreatedAt = now
	}
	fd.UpdatedAt = now
	const query = `INSERT INTO fees_discounts (id, school_id, name, code, discount_type, amount, description, active, created_at, updated_at)
        VALUES (:id, :school_id, :name, :code, :discount_type, :amount, :description, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fd); err != nil {
		return fmt.Errorf("create fees discount: %w", err)
	}
	return nil
}

// UpdateDiscount modifies an existing discount.
func (r *FeesCatalogRepository) UpdateDiscount(ctx context.Context, fd *models.FeesDiscount) error {
	fd.UpdatedAt = time.Now().UTC()
	const query = `UPDATE fees_discounts SET name = :name, code = :code, discount_type = :discount_type, amount = :amount, description = :description, active = :active, updated_at = :updated_at
        WHERE id = :id AND school_id = :school_id`
	if _, err := r.db.NamedExecContext(ctx, query, fd); err != nil {
		return fmt.Errorf("update fees discount: %w", err)
	}
	return nil
}
