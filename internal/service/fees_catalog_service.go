package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/edustack/school-api/internal/models"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

type catalogRepository interface {
	ListTypes(ctx context.Context, schoolID string) ([]models.FeesType, error)
	FindTypeByID(ctx context.Context, schoolID, id string) (*models.FeesType, error)
	ExistsTypeByCode(ctx context.Context, schoolID, code, excludeID string) (bool, error)
	CreateType(ctx context.Context, ft *models.FeesType) error
	UpdateType(ctx context.Context, ft *models.FeesType) error
	ListGroups(ctx context.Context, schoolID string) ([]models.FeesGroup, error)
	FindGroupByID(ctx context.Context, schoolID, id string) (*models.FeesGroup, error)
	CreateGroup(ctx context.Context, fg *models.FeesGroup) error
	UpdateGroup(ctx context.Context, fg *models.FeesGroup) error
	ListDiscounts(ctx context.Context, schoolID string) ([]models.FeesDiscount, error)
	FindDiscountByID(ctx context.Context, schoolID, id string) (*models.FeesDiscount, error)
	CreateDiscount(ctx context.Context, fd *models.FeesDiscount) error
	UpdateDiscount(ctx context.Context, fd *models.FeesDiscount) error
}

type masterRepository interface {
	List(ctx context.Context, schoolID, academicYear string) ([]models.FeesMaster, error)
	FindByID(ctx context.Context, schoolID, id string) (*models.FeesMaster, error)
	Create(ctx context.Context, fm *models.FeesMaster) error
	Update(ctx context.Context, fm *models.FeesMaster) error
	Deactivate(ctx context.Context, schoolID, id string) error
}

// FeesTypeRequest is the create/update payload for a fee type.
type FeesTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required,alphanum"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// FeesGroupRequest is the create/update payload for a fee group.
type FeesGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// FeesDiscountRequest is the create/update payload for a discount.
type FeesDiscountRequest struct {
	Name        string              `json:"name" validate:"required"`
	Code        string              `json:"code" validate:"required,alphanum"`
	Type        models.DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	Amount      decimal.Decimal     `json:"amount" validate:"required"`
	Description string              `json:"description"`
	Active      *bool               `json:"active"`
}

// FeesMasterRequest is the create/update payload for a priced fee.
type FeesMasterRequest struct {
	FeesGroupID  string          `json:"fees_group_id" validate:"required"`
	FeesTypeID   string          `json:"fees_type_id" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	DueDate      *time.Time      `json:"due_date"`
	AcademicYear string          `json:"academic_year" validate:"required"`
	Term         string          `json:"term"`
	Active       *bool           `json:"active"`
}

// FeesCatalogService manages the fee catalog: types, groups, discounts
// and priced masters.
type FeesCatalogService struct {
	catalog   catalogRepository
	masters   masterRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeesCatalogService constructs FeesCatalogService.
func NewFeesCatalogService(catalog catalogRepository, masters masterRepository, validate *validator.Validate, logger *zap.Logger) *FeesCatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeesCatalogService{catalog: catalog, masters: masters, validator: validate, logger: logger}
}

// ListTypes returns the school's fee types.
func (s *FeesCatalogService) ListTypes(ctx context.Context, schoolID string) ([]models.FeesType, error) {
	types, err := s.catalog.ListTypes(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fee types")
	}
	return types, nil
}

// CreateType registers a new fee type with a unique code per school.
func (s *FeesCatalogService) CreateType(ctx context.Context, schoolID string, req FeesTypeRequest) (*models.FeesType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee type payload")
	}
	exists, err := s.catalog.ExistsTypeByCode(ctx, schoolID, req.Code, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate fee type code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "fee type code already in use")
	}

	ft := &models.FeesType{
		SchoolID:    schoolID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Active:      true,
	}
	if req.Active != nil {
		ft.Active = *req.Active
	}
	if err := s.catalog.CreateType(ctx, ft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create fee type")
	}
	return ft, nil
}

// UpdateType modifies an existing fee type.
func (s *FeesCatalogService) UpdateType(ctx context.Context, schoolID, id string, req FeesTypeRequest) (*models.FeesType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee type payload")
	}
	ft, err := s.catalog.FindTypeByID(ctx, schoolID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee type")
	}
	exists, err := s.catalog.ExistsTypeByCode(ctx, schoolID, req.Code, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate fee type code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "fee type code already in use")
	}

	ft.Name = req.Name
	ft.Code = req.Code
	ft.Description = req.Description
	if req.Active != nil {
		ft.Active = *req.Active
	}
	if err := s.catalog.UpdateType(ctx, ft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update fee type")
	}
	return ft, nil
}

// ListGroups returns the school's fee groups.
func (s *FeesCatalogService) ListGroups(ctx context.Context, schoolID string) ([]models.FeesGroup, error) {
	groups, err := s.catalog.ListGroups(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fee groups")
	}
	return groups, nil
}

// CreateGroup registers a new fee group.
func (s *FeesCatalogService) CreateGroup(ctx context.Context, schoolID string, req FeesGroupRequest) (*models.FeesGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee group payload")
	}
	fg := &models.FeesGroup{
		SchoolID:    schoolID,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if req.Active != nil {
		fg.Active = *req.Active
	}
	if err := s.catalog.CreateGroup(ctx, fg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create fee group")
	}
	return fg, nil
}

// UpdateGroup modifies an existing fee group.
func (s *FeesCatalogService) UpdateGroup(ctx context.Context, schoolID, id string, req FeesGroupRequest) (*models.FeesGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee group payload")
	}
	fg, err := s.catalog.FindGroupByID(ctx, schoolID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee group")
	}

	fg.Name = req.Name
	fg.Description = req.Description
	if req.Active != nil {
		fg.Active = *req.Active
	}
	if err := s.catalog.UpdateGroup(ctx, fg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update fee group")
	}
	return fg, nil
}

// ListDiscounts returns the school's discounts.
func (s *FeesCatalogService) ListDiscounts(ctx context.Context, schoolID string) ([]models.FeesDiscount, error) {
	discounts, err := s.catalog.ListDiscounts(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list discounts")
	}
	return discounts, nil
}

// CreateDiscount registers a new discount. Percentage discounts must stay
// within 0-100; fixed discounts must be positive.
func (s *FeesCatalogService) CreateDiscount(ctx context.Context, schoolID string, req FeesDiscountRequest) (*models.FeesDiscount, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid discount payload")
	}
	if err := validateDiscountAmount(req.Type, req.Amount); err != nil {
		return nil, err
	}

	fd := &models.FeesDiscount{
		SchoolID:    schoolID,
		Name:        req.Name,
		Code:        req.Code,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Active:      true,
	}
	if req.Active != nil {
		fd.Active = *req.Active
	}
	if err := s.catalog.CreateDiscount(ctx, fd); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create discount")
	}
	return fd, nil
}

// UpdateDiscount modifies an existing discount under the same bounds as
// creation.
func (s *FeesCatalogService) UpdateDiscount(ctx context.Context, schoolID, id string, req FeesDiscountRequest) (*models.FeesDiscount, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid discount payload")
	}
	if err := validateDiscountAmount(req.Type, req.Amount); err != nil {
		return nil, err
	}
	fd, err := s.catalog.FindDiscountByID(ctx, schoolID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "discount not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load discount")
	}

	fd.Name = req.Name
	fd.Code = req.Code
	fd.Type = req.Type
	fd.Amount = req.Amount
	fd.Description = req.Description
	if req.Active != nil {
		fd.Active = *req.Active
	}
	if err := s.catalog.UpdateDiscount(ctx, fd); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update discount")
	}
	return fd, nil
}

// ListMasters returns the school's priced fees.
func (s *FeesCatalogService) ListMasters(ctx context.Context, schoolID, academicYear string) ([]models.FeesMaster, error) {
	masters, err := s.masters.List(ctx, schoolID, academicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fees masters")
	}
	return masters, nil
}

// CreateMaster prices a fee type for a group and academic period.
func (s *FeesCatalogService) CreateMaster(ctx context.Context, schoolID string, req FeesMasterRequest) (*models.FeesMaster, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fees master payload")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "amount must be positive")
	}
	if _, err := s.catalog.FindGroupByID(ctx, schoolID, req.FeesGroupID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee group")
	}
	if _, err := s.catalog.FindTypeByID(ctx, schoolID, req.FeesTypeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee type")
	}

	fm := &models.FeesMaster{
		SchoolID:     schoolID,
		FeesGroupID:  req.FeesGroupID,
		FeesTypeID:   req.FeesTypeID,
		Amount:       req.Amount.Round(2),
		DueDate:      req.DueDate,
		AcademicYear: req.AcademicYear,
		Term:         req.Term,
		Active:       true,
	}
	if req.Active != nil {
		fm.Active = *req.Active
	}
	if err := s.masters.Create(ctx, fm); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create fees master")
	}
	return fm, nil
}

// UpdateMaster modifies an existing priced fee.
func (s *FeesCatalogService) UpdateMaster(ctx context.Context, schoolID, id string, req FeesMasterRequest) (*models.FeesMaster, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fees master payload")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "amount must be positive")
	}
	fm, err := s.masters.FindByID(ctx, schoolID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fees master not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fees master")
	}

	fm.FeesGroupID = req.FeesGroupID
	fm.FeesTypeID = req.FeesTypeID
	fm.Amount = req.Amount.Round(2)
	fm.DueDate = req.DueDate
	fm.AcademicYear = req.AcademicYear
	fm.Term = req.Term
	if req.Active != nil {
		fm.Active = *req.Active
	}
	if err := s.masters.Update(ctx, fm); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update fees master")
	}
	return fm, nil
}

// DeactivateMaster retires a priced fee from new assignments.
func (s *FeesCatalogService) DeactivateMaster(ctx context.Context, schoolID, id string) error {
	if _, err := s.masters.FindByID(ctx, schoolID, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "fees master not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fees master")
	}
	if err := s.masters.Deactivate(ctx, schoolID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate fees master")
	}
	return nil
}

func validateDiscountAmount(discountType models.DiscountType, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return appErrors.Clone(appErrors.ErrValidation, "discount amount must be positive")
	}
	if discountType == models.DiscountPercentage && amount.GreaterThan(decimal.NewFromInt(100)) {
		return appErrors.Clone(appErrors.ErrValidation, "percentage discount cannot exceed 100")
	}
	return nil
}
