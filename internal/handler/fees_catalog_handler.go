package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/school-api/internal/service"
	appErrors "github.com/edustack/school-api/pkg/errors"
	"github.com/edustack/school-api/pkg/response"
)

// FeesCatalogHandler exposes CRUD endpoints for the fee catalog: types,
// groups, discounts and masters.
type FeesCatalogHandler struct {
	catalog *service.FeesCatalogService
}

// NewFeesCatalogHandler constructs FeesCatalogHandler.
func NewFeesCatalogHandler(catalog *service.FeesCatalogService) *FeesCatalogHandler {
	return &FeesCatalogHandler{catalog: catalog}
}

// ListTypes godoc
// @Summary List fee types
// @Tags Fees Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /fees/types [get]
func (h *FeesCatalogHandler) ListTypes(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	types, err := h.catalog.ListTypes(c.Request.Context(), schoolScope(c, claims))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, types, nil)
}

// CreateType godoc
// @Summary Create a fee type
// @Tags Fees Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.FeesTypeRequest true "Fee type payload"
// @Success 201 {object} response.Envelope
// @Router /fees/types [post]
func (h *FeesCatalogHandler) CreateType(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.FeesTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	feesType, err := h.catalog.CreateType(c.Request.Context(), schoolScope(c, claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, feesType)
}

// UpdateType godoc
// @Summary Update a fee type
// @Tags Fees Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee type ID"
// @Param payload body service.FeesTypeRequest true "Fee type payload"
// @Success 200 {object} response.Envelope
// @Router /fees/types/{id} [put]
func (h *FeesCatalogHandler) UpdateType(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.FeesTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	feesType, err := h.catalog.UpdateType(c.Request.Context(), schoolScope(c, claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feesType, nil)
}

// ListGroups godoc
// @Summary List fee groups
// @Tags Fees Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /fees/groups [get]
func (h *FeesCatalogHandler) ListGroups(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	groups, err := h.catalog.ListGroups(c.Request.Context(), schoolScope(c, claims))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}

// CreateGroup godoc
// @Summary Create a fee group
// @Tags Fees Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.FeesGroupRequest true "Fee group payload"
// @Success 201 {object} response.Envelope
// @Router /fees/groups [post]
func (h *FeesCatalogHandler) CreateGroup(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.FeesGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.catalog.CreateGroup(c.Request.Context(), schoolScope(c, claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// UpdateGroup godoc
// @Summary Update a fee group
// @Tags Fees Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee group ID"
// @Param payload body service.FeesGroupRequest true "Fee group payload"
// @Success 200 {object} response.Envelope
// @Router /fees/groups/{id} [put]
func (h *FeesCatalogHandler) UpdateGroup(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.FeesGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.catalog.UpdateGroup(c.Request.Context(), schoolScope(c, claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}

// ListDiscounts godoc
// @Summary List fee discounts
// @Tags Fees Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /fees/discounts [get]
func (h *FeesCatalogHandler) ListDiscounts(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	discounts, err := h.catalog.ListDiscounts(c.Request.Context(), schoolScope(c, claims))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, discounts, nil)
}

// CreateDiscount godoc
// @Summary Create a fee discount
// @Tags Fees Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.FeesDiscountRequest true "Discount payload"
// @Success 201 {object} response.Envelope
// @Router /fees/discounts [post]
func (h *FeesCatalogHandler) CreateDiscount(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.FeesDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	discount, err := h.catalog.CreateDiscount(c.Request.Context(), schoolScope(c, claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, discount)
}

// UpdateDiscount godoc
// @Summary Update a fee discount
// @Tags Fees Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Discount ID"
// @Param payload body service.FeesDiscountRequest true "Discount payload"
// @Success 200 {object} response.Envelope
// @Router /fees/discounts/{id} [put]
func (h *FeesCatalogHandler) UpdateDiscount(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.FeesDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	discount, err := h.catalog.UpdateDiscount(c.Request.Context(), schoolScope(c, claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, discount, nil)
}

// ListMasters godoc
// @Summary List fee masters
// @Tags Fees Catalog
// @Produce json
// @Security BearerAuth
// @Param academicYear query string false "Filter by academic year"
// @Success 200 {object} response.Envelope
// @Router /fees/masters [get]
func (h *FeesCatalogHandler) ListMasters(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	masters, err := h.catalog.ListMasters(c.Request.Context(), schoolScope(c, claims), c.Query("academicYear"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, masters, nil)
}

// CreateMaster godoc
// @Summary Create a fee master
// @Tags Fees Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.FeesMasterRequest true "Fee master payload"
// @Success 201 {object} response.Envelope
// @Router /fees/masters [post]
func (h *FeesCatalogHandler) CreateMaster(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.FeesMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	master, err := h.catalog.CreateMaster(c.Request.Context(), schoolScope(c, claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, master)
}

// UpdateMaster godoc
// @Summary Update a fee master
// @Tags Fees Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee master ID"
// @Param payload body service.FeesMasterRequest true "Fee master payload"
// @Success 200 {object} response.Envelope
// @Router /fees/masters/{id} [put]
func (h *FeesCatalogHandler) UpdateMaster(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.FeesMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	master, err := h.catalog.UpdateMaster(c.Request.Context(), schoolScope(c, claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, master, nil)
}

// DeactivateMaster godoc
// @Summary Deactivate a fee master
// @Tags Fees Catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee master ID"
// @Success 204 "No Content"
// @Router /fees/masters/{id} [delete]
func (h *FeesCatalogHandler) DeactivateMaster(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.catalog.DeactivateMaster(c.Request.Context(), schoolScope(c, claims), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
