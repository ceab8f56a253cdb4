package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edustack/school-api/internal/models"
	appErrors "github.com/edustack/school-api/pkg/errors"
)

type mockCatalogRepo struct {
	types     map[string]models.FeesType
	groups    map[string]models.FeesGroup
	discounts map[string]models.FeesDiscount
	codes     map[string]bool
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		types:     make(map[string]models.FeesType),
		groups:    make(map[string]models.FeesGroup),
		discounts: make(map[string]models.FeesDiscount),
		codes:     make(map[string]bool),
	}
}

func (m *mockCatalogRepo) ListTypes(_ context.Context, schoolID string) ([]models.FeesType, error) {
	var out []models.FeesType
	for _, t := range m.types {
		if t.SchoolID == schoolID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) FindTypeByID(_ context.Context, schoolID, id string) (*models.FeesType, error) {
	if t, ok := m.types[id]; ok && t.SchoolID == schoolID {
		copied := t
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCatalogRepo) ExistsTypeByCode(_ context.Context, _, code, _ string) (bool, error) {
	return m.codes[code], nil
}

func (m *mockCatalogRepo) CreateType(_ context.Context, ft *models.FeesType) error {
	if ft.ID == "" {
		ft.ID = uuid.NewString()
	}
	m.types[ft.ID] = *ft
	m.codes[ft.Code] = true
	return nil
}

func (m *mockCatalogRepo) UpdateType(_ context.Context, ft *models.FeesType) error {
	m.types[ft.ID] = *ft
	return nil
}

func (m *mockCatalogRepo) ListGroups(_ context.Context, schoolID string) ([]models.FeesGroup, error) {
	var out []models.FeesGroup
	for _, g := range m.groups {
		if g.SchoolID == schoolID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) FindGroupByID(_ context.Context, schoolID, id string) (*models.FeesGroup, error) {
	if g, ok := m.groups[id]; ok && g.SchoolID == schoolID {
		copied := g
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCatalogRepo) CreateGroup(_ context.Context, fg *models.FeesGroup) error {
	if fg.ID == "" {
		fg.ID = uuid.NewString()
	}
	m.groups[fg.ID] = *fg
	return nil
}

func (m *mockCatalogRepo) UpdateGroup(_ context.Context, fg *models.FeesGroup) error {
	m.groups[fg.ID] = *fg
	return nil
}

func (m *mockCatalogRepo) ListDiscounts(_ context.Context, schoolID string) ([]models.FeesDiscount, error) {
	var out []models.FeesDiscount
	for _, d := range m.discounts {
		if d.SchoolID == schoolID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) FindDiscountByID(_ context.Context, schoolID, id string) (*models.FeesDiscount, error) {
	if d, ok := m.discounts[id]; ok && d.SchoolID == schoolID {
		copied := d
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCatalogRepo) CreateDiscount(_ context.Context, fd *models.FeesDiscount) error {
	if fd.ID == "" {
		fd.ID = uuid.NewString()
	}
	m.discounts[fd.ID] = *fd
	return nil
}

func (m *mockCatalogRepo) UpdateDiscount(_ context.Context, fd *models.FeesDiscount) error {
	m.discounts[fd.ID] = *fd
	return nil
}

type mockMasterRepo struct {
	masters map[string]models.FeesMaster
}

func (m *mockMasterRepo) List(_ context.Context, schoolID, _ string) ([]models.FeesMaster, error) {
	var out []models.FeesMaster
	for _, fm := range m.masters {
		if fm.SchoolID == schoolID {
			out = append(out, fm)
		}
	}
	return out, nil
}

func (m *mockMasterRepo) FindByID(_ context.Context, schoolID, id string) (*models.FeesMaster, error) {
	if fm, ok := m.masters[id]; ok && fm.SchoolID == schoolID {
		copied := fm
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockMasterRepo) Create(_ context.Context, fm *models.FeesMaster) error {
	if m.masters == nil {
		m.masters = make(map[string]models.FeesMaster)
	}
	if fm.ID == "" {
		fm.ID = uuid.NewString()
	}
	m.masters[fm.ID] = *fm
	return nil
}

func (m *mockMasterRepo) Update(_ context.Context, fm *models.FeesMaster) error {
	m.masters[fm.ID] = *fm
	return nil
}

func (m *mockMasterRepo) Deactivate(_ context.Context, _, id string) error {
	fm := m.masters[id]
	fm.Active = false
	m.masters[id] = fm
	return nil
}

func newCatalogService(catalog *mockCatalogRepo, masters *mockMasterRepo) *FeesCatalogService {
	if masters == nil {
		masters = &mockMasterRepo{masters: map[string]models.FeesMaster{}}
	}
	return NewFeesCatalogService(catalog, masters, validator.New(), zap.NewNop())
}

func TestCreateDiscountRejectsPercentageOverHundred(t *testing.T) {
	svc := newCatalogService(newMockCatalogRepo(), nil)

	_, err := svc.CreateDiscount(context.Background(), "school-1", FeesDiscountRequest{
		Name:   "Impossible",
		Code:   "IMP100",
		Type:   models.DiscountPercentage,
		Amount: decimal.NewFromInt(120),
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCreateDiscountRejectsNonPositiveAmount(t *testing.T) {
	svc := newCatalogService(newMockCatalogRepo(), nil)

	_, err := svc.CreateDiscount(context.Background(), "school-1", FeesDiscountRequest{
		Name:   "Zero",
		Code:   "ZERO1",
		Type:   models.DiscountFixed,
		Amount: decimal.Zero,
	})
	require.Error(t, err)
}

func TestCreateDiscountAccepts100Percent(t *testing.T) {
	repo := newMockCatalogRepo()
	svc := newCatalogService(repo, nil)

	fd, err := svc.CreateDiscount(context.Background(), "school-1", FeesDiscountRequest{
		Name:   "Full Scholarship",
		Code:   "SCHOL",
		Type:   models.DiscountPercentage,
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.True(t, fd.Active)
	assert.Len(t, repo.discounts, 1)
}

func TestCreateTypeRejectsDuplicateCode(t *testing.T) {
	repo := newMockCatalogRepo()
	svc := newCatalogService(repo, nil)

	_, err := svc.CreateType(context.Background(), "school-1", FeesTypeRequest{Name: "Tuition", Code: "TUI"})
	require.NoError(t, err)

	_, err = svc.CreateType(context.Background(), "school-1", FeesTypeRequest{Name: "Tuition Again", Code: "TUI"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCreateMasterValidatesReferences(t *testing.T) {
	repo := newMockCatalogRepo()
	repo.groups["group-1"] = models.FeesGroup{ID: "group-1", SchoolID: "school-1", Name: "Grade 1-5"}
	repo.types["type-1"] = models.FeesType{ID: "type-1", SchoolID: "school-1", Name: "Tuition", Code: "TUI"}
	masters := &mockMasterRepo{masters: map[string]models.FeesMaster{}}
	svc := newCatalogService(repo, masters)

	fm, err := svc.CreateMaster(context.Background(), "school-1", FeesMasterRequest{
		FeesGroupID:  "group-1",
		FeesTypeID:   "type-1",
		Amount:       decimal.RequireFromString("1500.505"),
		AcademicYear: "2026/2027",
	})
	require.NoError(t, err)
	assert.True(t, fm.Amount.Equal(decimal.RequireFromString("1500.51")), "got %s", fm.Amount)

	_, err = svc.CreateMaster(context.Background(), "school-1", FeesMasterRequest{
		FeesGroupID:  "missing",
		FeesTypeID:   "type-1",
		Amount:       decimal.NewFromInt(100),
		AcademicYear: "2026/2027",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
