package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/data-migration-api/internal/models"
)

// PageSize is the fixed page size for item listings.
const PageSize = 15

const itemColumns = `i.id, i.title, i.description, i.data_type, i.status, i.data_payload, i.source_file,
	i.created_by, i.reviewed_by, i.approved_by, i.reviewed_at, i.approved_at, i.production_at,
	i.review_notes, i.approval_notes, i.created_at, i.updated_at`

const itemJoins = `FROM data_migration_items i
	LEFT JOIN users cu ON cu.id = i.created_by
	LEFT JOIN users ru ON ru.id = i.reviewed_by
	LEFT JOIN users au ON au.id = i.approved_by`

const detailColumns = itemColumns + `,
	cu.name AS creator_name, ru.name AS reviewer_name, au.name AS approver_name`

// ItemRepository persists migration items.
type ItemRepository struct {
	db *sqlx.DB
}

// NewItemRepository constructs the repository.
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new item row with status under_review.
func (r *ItemRepository) Create(ctx context.Context, item *models.MigrationItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = models.StatusUnderReview
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	const query = `INSERT INTO data_migration_items
	(id, title, description, data_type, status, data_payload, source_file, created_by, created_at, updated_at)
	VALUES (:id, :title, :description, :data_type, :status, :data_payload, :source_file, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create migration item: %w", err)
	}
	return nil
}

// GetByID fetches an item by identifier.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.MigrationItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM data_migration_items i WHERE i.id = $1`, itemColumns)
	var item models.MigrationItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetDetailByID fetches an item together with participant names.
func (r *ItemRepository) GetDetailByID(ctx context.Context, id string) (*models.MigrationItemDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE i.id = $1`, detailColumns, itemJoins)
	var detail models.MigrationItemDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns one page of items matching the filter (newest first) and the
// total match count.
func (r *ItemRepository) List(ctx context.Context, filter models.ItemFilter) ([]models.MigrationItemDetail, int, error) {
	conditions := []string{"1=1"}
	args := make([]interface{}, 0, 3)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("i.status = $%d", len(args)))
	}
	if filter.DataType != "" {
		args = append(args, filter.DataType)
		conditions = append(conditions, fmt.Sprintf("i.data_type = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(i.title) LIKE $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY i.created_at DESC, i.id DESC LIMIT %d OFFSET %d`,
		detailColumns, itemJoins, where, PageSize, offset)

	var items []models.MigrationItemDetail
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list migration items: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM data_migration_items i WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count migration items: %w", err)
	}
	return items, total, nil
}

// Recent returns the latest items without filtering.
func (r *ItemRepository) Recent(ctx context.Context, limit int) ([]models.MigrationItemDetail, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT %s %s ORDER BY i.created_at DESC, i.id DESC LIMIT %d`,
		detailColumns, itemJoins, limit)
	var items []models.MigrationItemDetail
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("recent migration items: %w", err)
	}
	return items, nil
}

// Statistics counts items per status in a single pass. Always computed
// fresh so the dashboard reflects the latest workflow state.
func (r *ItemRepository) Statistics(ctx context.Context) (models.ItemStatistics, error) {
	const query = `SELECT COUNT(*) AS total,
	COUNT(*) FILTER (WHERE status = 'under_review') AS under_review,
	COUNT(*) FILTER (WHERE status = 'approved') AS approved,
	COUNT(*) FILTER (WHERE status = 'in_production') AS in_production
	FROM data_migration_items`
	var stats models.ItemStatistics
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return models.ItemStatistics{}, fmt.Errorf("item statistics: %w", err)
	}
	return stats, nil
}

// Update overwrites the mutable fields of an item still under review. The
// status guard makes the edit a conditional single-row update; zero rows
// means the item advanced concurrently and sql.ErrNoRows is returned.
func (r *ItemRepository) Update(ctx context.Context, item *models.MigrationItem) error {
	item.UpdatedAt = time.Now().UTC()
	query := fmt.Sprintf(`UPDATE data_migration_items
	SET title = :title, description = :description, data_type = :data_type, source_file = :source_file, updated_at = :updated_at
	WHERE id = :id AND status = '%s'`, models.StatusUnderReview)
	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update migration item: %w", err)
	}
	return requireRow(result, "update migration item")
}

// Delete removes an item, but only while it is still under review.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM data_migration_items WHERE id = $1 AND status = '%s'`, models.StatusUnderReview)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete migration item: %w", err)
	}
	return requireRow(result, "delete migration item")
}

// ApproveParams groups the columns written by the approve transition.
type ApproveParams struct {
	ID            string
	ApprovedBy    string
	ApprovedAt    time.Time
	ApprovalNotes *string
}

// Approve moves an item from under_review to approved. The status predicate
// guarantees that concurrent approvals resolve to a single winner; the loser
// sees sql.ErrNoRows and no mutation.
func (r *ItemRepository) Approve(ctx context.Context, params ApproveParams) error {
	query := fmt.Sprintf(`UPDATE data_migration_items
	SET status = '%s', approved_by = :approved_by, approved_at = :approved_at, approval_notes = :approval_notes, updated_at = :approved_at
	WHERE id = :id AND status = '%s'`, models.StatusApproved, models.StatusUnderReview)
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":             params.ID,
		"approved_by":    params.ApprovedBy,
		"approved_at":    params.ApprovedAt,
		"approval_notes": params.ApprovalNotes,
	})
	if err != nil {
		return fmt.Errorf("approve migration item: %w", err)
	}
	return requireRow(result, "approve migration item")
}

// MarkInProduction advances the selected approved items into production and
// returns how many rows transitioned. IDs that are not approved are skipped
// by the status predicate, not errored.
func (r *ItemRepository) MarkInProduction(ctx context.Context, ids []string, at time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(`UPDATE data_migration_items
	SET status = '%s', production_at = $1, updated_at = $1
	WHERE id = ANY($2) AND status = '%s'`, models.StatusInProduction, models.StatusApproved)
	result, err := r.db.ExecContext(ctx, query, at, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("mark items in production: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check production rows: %w", err)
	}
	return int(rows), nil
}

func requireRow(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
