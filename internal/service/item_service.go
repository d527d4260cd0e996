package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/data-migration-api/internal/authz"
	"github.com/noah-isme/data-migration-api/internal/dto"
	"github.com/noah-isme/data-migration-api/internal/models"
	"github.com/noah-isme/data-migration-api/internal/repository"
	appErrors "github.com/noah-isme/data-migration-api/pkg/errors"
)

type itemStore interface {
	Create(ctx context.Context, item *models.MigrationItem) error
	GetByID(ctx context.Context, id string) (*models.MigrationItem, error)
	GetDetailByID(ctx context.Context, id string) (*models.MigrationItemDetail, error)
	List(ctx context.Context, filter models.ItemFilter) ([]models.MigrationItemDetail, int, error)
	Recent(ctx context.Context, limit int) ([]models.MigrationItemDetail, error)
	Statistics(ctx context.Context) (models.ItemStatistics, error)
	Update(ctx context.Context, item *models.MigrationItem) error
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, params repository.ApproveParams) error
	MarkInProduction(ctx context.Context, ids []string, at time.Time) (int, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type reportInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// ItemService is the workflow engine for migration items. It enforces the
// status state machine and the authorization policy before every mutation.
type ItemService struct {
	repo      itemStore
	audit     auditLogger
	reports   reportInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// ItemServiceOption configures the service.
type ItemServiceOption func(*ItemService)

// WithReportInvalidator wires cache invalidation for rendered reports.
func WithReportInvalidator(inv reportInvalidator) ItemServiceOption {
	return func(s *ItemService) {
		s.reports = inv
	}
}

// NewItemService constructs the workflow service.
func NewItemService(repo itemStore, audit auditLogger, logger *zap.Logger, opts ...ItemServiceOption) *ItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ItemService{
		repo:      repo,
		audit:     audit,
		validator: validator.New(),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Create stores a new migration item with status under_review. Any
// authenticated user may create items.
func (s *ItemService) Create(ctx context.Context, req dto.CreateItemRequest, actor *models.JWTClaims) (*models.MigrationItem, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !authz.CanPerform(authz.ActionCreate, actor, nil) {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid item payload")
	}
	if err := s.validateItemInput(req.Title, req.DataType); err != nil {
		return nil, err
	}
	if len(req.DataPayload) > 0 && !json.Valid(req.DataPayload) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "data_payload must be valid JSON")
	}

	item := &models.MigrationItem{
		Title:       strings.TrimSpace(req.Title),
		Description: optionalString(req.Description),
		DataType:    req.DataType,
		Status:      models.StatusUnderReview,
		DataPayload: append(json.RawMessage(nil), req.DataPayload...),
		SourceFile:  optionalString(req.SourceFile),
		CreatedBy:   actor.UserID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create migration item")
	}
	s.emitAudit(ctx, actor, models.AuditActionItemCreate, item.ID, map[string]interface{}{
		"title": item.Title, "data_type": item.DataType,
	})
	return item, nil
}

// Get returns an item with participant names, or NotFound.
func (s *ItemService) Get(ctx context.Context, id string) (*models.MigrationItemDetail, error) {
	detail, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load migration item")
	}
	return detail, nil
}

// List returns one page of items plus the live statistics.
func (s *ItemService) List(ctx context.Context, query dto.ItemQuery) (*dto.ItemListResponse, *models.Pagination, error) {
	if query.Status != "" && !models.ValidItemStatus(query.Status) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}
	if query.DataType != "" && !models.ValidDataType(query.DataType) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown data type filter")
	}
	filter := models.ItemFilter{
		Status:   query.Status,
		DataType: query.DataType,
		Search:   strings.TrimSpace(query.Search),
		Page:     query.Page,
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list migration items")
	}
	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute statistics")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pagination := &models.Pagination{Page: page, PageSize: repository.PageSize, TotalCount: total}
	return &dto.ItemListResponse{Items: items, Statistics: stats}, pagination, nil
}

// Update overwrites the mutable fields of an item still under review. Only
// the creator or a superadmin may edit, and never after the item advanced.
func (s *ItemService) Update(ctx context.Context, id string, req dto.UpdateItemRequest, actor *models.JWTClaims) (*models.MigrationItem, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid item payload")
	}
	if err := s.validateItemInput(req.Title, req.DataType); err != nil {
		return nil, err
	}
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(authz.ActionEdit, actor, item) {
		return nil, s.transitionDenied(item, "you cannot edit this migration item")
	}

	item.Title = strings.TrimSpace(req.Title)
	item.Description = optionalString(req.Description)
	item.DataType = req.DataType
	item.SourceFile = optionalString(req.SourceFile)

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Lost the race: the item left under_review between load and write.
			return nil, appErrors.Clone(appErrors.ErrConflict, "item can no longer be edited")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update migration item")
	}
	s.emitAudit(ctx, actor, models.AuditActionItemUpdate, item.ID, map[string]interface{}{
		"title": item.Title, "data_type": item.DataType,
	})
	return item, nil
}

// Delete removes an item while it is still under review.
func (s *ItemService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanPerform(authz.ActionDelete, actor, item) {
		return s.transitionDenied(item, "you cannot delete this migration item")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrConflict, "item can no longer be deleted")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete migration item")
	}
	s.emitAudit(ctx, actor, models.AuditActionItemDelete, id, nil)
	return nil
}

// Approve moves an item from under_review to approved, recording approver
// identity, timestamp, and optional note. Approving twice is rejected and
// changes nothing.
func (s *ItemService) Approve(ctx context.Context, id string, req dto.ApproveItemRequest, actor *models.JWTClaims) (*models.MigrationItem, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleApprover {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only approvers can approve migration items")
	}
	if !authz.CanPerform(authz.ActionApprove, actor, item) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "this item cannot be approved")
	}

	now := s.now().UTC()
	params := repository.ApproveParams{
		ID:            item.ID,
		ApprovedBy:    actor.UserID,
		ApprovedAt:    now,
		ApprovalNotes: optionalString(req.ApprovalNotes),
	}
	if err := s.repo.Approve(ctx, params); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "item already approved")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve migration item")
	}

	item.Status = models.StatusApproved
	item.ApprovedBy = &actor.UserID
	item.ApprovedAt = &now
	item.ApprovalNotes = params.ApprovalNotes
	item.UpdatedAt = now
	s.emitAudit(ctx, actor, models.AuditActionItemApprove, item.ID, map[string]interface{}{
		"status": item.Status,
	})
	return item, nil
}

// MarkInProduction advances the selected approved items into production and
// returns how many transitioned. Items not in approved status are skipped.
func (s *ItemService) MarkInProduction(ctx context.Context, ids []string, actor *models.JWTClaims) (int, error) {
	if actor == nil {
		return 0, appErrors.ErrUnauthorized
	}
	if !authz.CanPerform(authz.ActionMarkInProduction, actor, nil) {
		return 0, appErrors.Clone(appErrors.ErrForbidden, "only superadmins can mark items in production")
	}
	if len(ids) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "item_ids is required")
	}

	marked, err := s.repo.MarkInProduction(ctx, ids, s.now().UTC())
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark items in production")
	}
	if s.reports != nil && marked > 0 {
		if err := s.reports.Invalidate(ctx, "report:item:*"); err != nil {
			s.logger.Warn("failed to invalidate report cache", zap.Error(err))
		}
	}
	s.emitAudit(ctx, actor, models.AuditActionItemProduction, "", map[string]interface{}{
		"selected": len(ids), "marked": marked,
	})
	return marked, nil
}

// Recent returns the latest items for the dashboard, newest first.
func (s *ItemService) Recent(ctx context.Context, limit int) ([]models.MigrationItemDetail, error) {
	items, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent items")
	}
	return items, nil
}

// Statistics returns live per-status counts.
func (s *ItemService) Statistics(ctx context.Context) (models.ItemStatistics, error) {
	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return models.ItemStatistics{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute statistics")
	}
	return stats, nil
}

func (s *ItemService) loadItem(ctx context.Context, id string) (*models.MigrationItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load migration item")
	}
	return item, nil
}

// transitionDenied distinguishes a role/ownership rejection from a
// status-mismatch rejection so callers see 403 vs 409.
func (s *ItemService) transitionDenied(item *models.MigrationItem, forbiddenMsg string) error {
	if item.Status != models.StatusUnderReview {
		return appErrors.Clone(appErrors.ErrConflict, "item can no longer be edited")
	}
	return appErrors.Clone(appErrors.ErrForbidden, forbiddenMsg)
}

func (s *ItemService) validateItemInput(title string, dataType models.DataType) error {
	if strings.TrimSpace(title) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	if !models.ValidDataType(dataType) {
		return appErrors.Clone(appErrors.ErrValidation, "unsupported data type")
	}
	return nil
}

func (s *ItemService) emitAudit(ctx context.Context, actor *models.JWTClaims, action, itemID string, values map[string]interface{}) {
	if s.audit == nil {
		return
	}
	log := &models.AuditLog{
		UserID:    &actor.UserID,
		Action:    action,
		Resource:  "data_migration_item",
		IPAddress: "system",
		UserAgent: "item-service",
	}
	if itemID != "" {
		log.ResourceID = &itemID
	}
	if values != nil {
		payload, err := json.Marshal(values)
		if err == nil {
			log.NewValues = payload
		}
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.Error(err))
	}
}

func optionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	v := strings.TrimSpace(value)
	return &v
}
