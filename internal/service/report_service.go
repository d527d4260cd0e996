package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/data-migration-api/internal/authz"
	"github.com/noah-isme/data-migration-api/internal/models"
	appErrors "github.com/noah-isme/data-migration-api/pkg/errors"
	"github.com/noah-isme/data-migration-api/pkg/export"
)

// ReportRenderer produces report bytes for a migration item. The default
// implementation renders a tabular PDF; nothing richer is promised.
type ReportRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type reportItemStore interface {
	GetDetailByID(ctx context.Context, id string) (*models.MigrationItemDetail, error)
}

// ReportService renders approval reports for items. Only approved items have
// reports; rendered bytes are cached because an approved item is immutable.
type ReportService struct {
	items    reportItemStore
	renderer ReportRenderer
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(items reportItemStore, renderer ReportRenderer, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = export.NewPDFExporter()
	}
	return &ReportService{items: items, renderer: renderer, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func reportCacheKey(itemID string) string {
	return fmt.Sprintf("report:item:%s", itemID)
}

// ItemPDF returns the PDF report bytes for an approved item.
func (s *ReportService) ItemPDF(ctx context.Context, id string, actor *models.JWTClaims) ([]byte, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	detail, err := s.items.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load migration item")
	}
	if !authz.CanPerform(authz.ActionViewPDF, actor, &detail.MigrationItem) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "pdf can only be generated for approved items")
	}

	key := reportCacheKey(id)
	if s.cache.Enabled() {
		var cached []byte
		if hit, _ := s.cache.Get(ctx, key, &cached); hit && len(cached) > 0 {
			return cached, nil
		}
	}

	data := buildReportDataset(detail)
	pdf, err := s.renderer.Render(data, "Data Migration Approval Report")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, pdf, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache rendered report", zap.String("item_id", id), zap.Error(err))
		}
	}
	return pdf, nil
}

func buildReportDataset(detail *models.MigrationItemDetail) export.Dataset {
	rows := []map[string]string{
		{"Field": "Title", "Value": detail.Title},
		{"Field": "Data Type", "Value": string(detail.DataType)},
		{"Field": "Status", "Value": string(detail.Status)},
		{"Field": "Created By", "Value": derefOr(detail.CreatorName, detail.CreatedBy)},
		{"Field": "Approved By", "Value": derefOr(detail.ApproverName, deref(detail.ApprovedBy))},
		{"Field": "Approved At", "Value": formatTime(detail.ApprovedAt)},
		{"Field": "Approval Notes", "Value": deref(detail.ApprovalNotes)},
	}
	if detail.Description != nil {
		rows = append(rows, map[string]string{"Field": "Description", "Value": *detail.Description})
	}
	if detail.SourceFile != nil {
		rows = append(rows, map[string]string{"Field": "Source File", "Value": *detail.SourceFile})
	}
	return export.Dataset{Headers: []string{"Field", "Value"}, Rows: rows}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
