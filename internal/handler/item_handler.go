package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/data-migration-api/internal/dto"
	"github.com/noah-isme/data-migration-api/internal/models"
	"github.com/noah-isme/data-migration-api/pkg/batch"
	appErrors "github.com/noah-isme/data-migration-api/pkg/errors"
	"github.com/noah-isme/data-migration-api/pkg/response"
)

type itemService interface {
	Create(ctx context.Context, req dto.CreateItemRequest, actor *models.JWTClaims) (*models.MigrationItem, error)
	Get(ctx context.Context, id string) (*models.MigrationItemDetail, error)
	List(ctx context.Context, query dto.ItemQuery) (*dto.ItemListResponse, *models.Pagination, error)
	Update(ctx context.Context, id string, req dto.UpdateItemRequest, actor *models.JWTClaims) (*models.MigrationItem, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
	Approve(ctx context.Context, id string, req dto.ApproveItemRequest, actor *models.JWTClaims) (*models.MigrationItem, error)
	MarkInProduction(ctx context.Context, ids []string, actor *models.JWTClaims) (int, error)
}

// ItemHandler exposes REST endpoints for the migration item workflow.
type ItemHandler struct {
	service itemService
}

// NewItemHandler constructs the handler.
func NewItemHandler(service itemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List godoc
// @Summary List migration items
// @Tags Data Migration
// @Produce json
// @Param status query string false "Status filter"
// @Param data_type query string false "Data type filter"
// @Param search query string false "Title substring search"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /data-migration [get]
func (h *ItemHandler) List(c *gin.Context) {
	query := dto.ItemQuery{
		Status:   models.ItemStatus(strings.TrimSpace(c.Query("status"))),
		DataType: models.DataType(strings.TrimSpace(c.Query("data_type"))),
		Search:   c.Query("search"),
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "page must be a positive integer"))
			return
		}
		query.Page = page
	}
	result, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, pagination)
}

// Create godoc
// @Summary Submit a migration item
// @Tags Data Migration
// @Accept json
// @Produce json
// @Param payload body dto.CreateItemRequest true "Item payload"
// @Success 201 {object} response.Envelope
// @Router /data-migration [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid item payload"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	item, err := h.service.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Get godoc
// @Summary Get migration item detail
// @Tags Data Migration
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Envelope
// @Router /data-migration/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Update godoc
// @Summary Update a migration item still under review
// @Tags Data Migration
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param payload body dto.UpdateItemRequest true "Item payload"
// @Success 200 {object} response.Envelope
// @Router /data-migration/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid item payload"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete a migration item still under review
// @Tags Data Migration
// @Param id path string true "Item ID"
// @Success 204
// @Router /data-migration/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Approve godoc
// @Summary Approve a migration item
// @Tags Data Migration
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param payload body dto.ApproveItemRequest true "Approval note"
// @Success 200 {object} response.Envelope
// @Router /data-migration/{id}/approve [post]
func (h *ItemHandler) Approve(c *gin.Context) {
	var req dto.ApproveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid approval payload"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	item, err := h.service.Approve(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// MarkProduction godoc
// @Summary Mark approved items as in production
// @Tags Data Migration
// @Accept json
// @Produce json
// @Param payload body dto.MarkProductionRequest false "Explicit item IDs"
// @Success 200 {object} response.Envelope
// @Router /data-migration/mark-production [post]
func (h *ItemHandler) MarkProduction(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	ids, err := h.productionSelection(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	marked, err := h.service.MarkInProduction(c.Request.Context(), ids, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.MarkProductionResponse{Marked: marked}, nil)
}

// productionSelection accepts either a JSON body with explicit item IDs or a
// multipart selection file routed through the batch parser.
func (h *ItemHandler) productionSelection(c *gin.Context) ([]string, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "selection file is required")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "cannot read selection file")
		}
		defer file.Close()
		ids, err := batch.ParseSelection(file)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection file")
		}
		return ids, nil
	}

	var req dto.MarkProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid mark-production payload")
	}
	return req.ItemIDs, nil
}
