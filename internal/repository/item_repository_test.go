package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/data-migration-api/internal/models"
)

func newItemRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "data_type", "status", "data_payload", "source_file",
		"created_by", "reviewed_by", "approved_by", "reviewed_at", "approved_at", "production_at",
		"review_notes", "approval_notes", "created_at", "updated_at",
	})
}

func detailRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "data_type", "status", "data_payload", "source_file",
		"created_by", "reviewed_by", "approved_by", "reviewed_at", "approved_at", "production_at",
		"review_notes", "approval_notes", "created_at", "updated_at",
		"creator_name", "reviewer_name", "approver_name",
	})
}

func TestItemRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newItemRepoMock(t)
	defer cleanup()

	repo := NewItemRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO data_migration_items")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	item := &models.MigrationItem{
		Title:     "Customer batch 1",
		DataType:  models.DataTypeCustomerRecords,
		CreatedBy: "user-1",
	}
	require.NoError(t, repo.Create(context.Background(), item))
	require.NotEmpty(t, item.ID)
	require.Equal(t, models.StatusUnderReview, item.Status)

	rows := itemRows().AddRow(item.ID, "Customer batch 1", nil, "customer_records", "under_review", nil, nil,
		"user-1", nil, nil, nil, nil, nil, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT i.id, i.title")).
		WithArgs(item.ID).
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	require.Equal(t, item.ID, found.ID)
	require.Equal(t, models.DataTypeCustomerRecords, found.DataType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newItemRepoMock(t)
	defer cleanup()

	repo := NewItemRepository(db)
	now := time.Now()
	rows := detailRows().AddRow("item-1", "Batch", nil, "sales_orders", "approved", nil, nil,
		"user-1", nil, "appr-1", nil, now, nil, nil, nil, now, now,
		"Creator", nil, "Approver")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT i.id, i.title")).
		WithArgs("approved", "sales_orders", "%batch%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM data_migration_items")).
		WithArgs("approved", "sales_orders", "%batch%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	items, total, err := repo.List(context.Background(), models.ItemFilter{
		Status:   models.StatusApproved,
		DataType: models.DataTypeSalesOrders,
		Search:   "Batch",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 1, total)
	require.Equal(t, "item-1", items[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepositoryStatistics(t *testing.T) {
	db, mock, cleanup := newItemRepoMock(t)
	defer cleanup()

	repo := NewItemRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) AS total")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "under_review", "approved", "in_production"}).
			AddRow(10, 5, 3, 2))

	stats, err := repo.Statistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, stats.Total)
	require.Equal(t, stats.Total, stats.UnderReview+stats.Approved+stats.InProduction)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepositoryUpdateGuard(t *testing.T) {
	db, mock, cleanup := newItemRepoMock(t)
	defer cleanup()

	repo := NewItemRepository(db)
	item := &models.MigrationItem{ID: "item-1", Title: "New title", DataType: models.DataTypeProductCatalogs}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE data_migration_items")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), item))

	// Zero affected rows means the item left under_review concurrently.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE data_migration_items")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(context.Background(), item)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepositoryDeleteGuard(t *testing.T) {
	db, mock, cleanup := newItemRepoMock(t)
	defer cleanup()

	repo := NewItemRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM data_migration_items")).
		WithArgs("item-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "item-1")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepositoryApproveSingleWinner(t *testing.T) {
	db, mock, cleanup := newItemRepoMock(t)
	defer cleanup()

	repo := NewItemRepository(db)
	now := time.Now().UTC()
	notes := "ok"
	params := ApproveParams{ID: "item-1", ApprovedBy: "appr-1", ApprovedAt: now, ApprovalNotes: &notes}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE data_migration_items")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Approve(context.Background(), params))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE data_migration_items")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Approve(context.Background(), params)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepositoryMarkInProductionSkipsNonApproved(t *testing.T) {
	db, mock, cleanup := newItemRepoMock(t)
	defer cleanup()

	repo := NewItemRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE data_migration_items")).
		WillReturnResult(sqlmock.NewResult(0, 2))

	marked, err := repo.MarkInProduction(context.Background(), []string{"a", "b", "c"}, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, 2, marked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepositoryMarkInProductionEmptySelection(t *testing.T) {
	db, _, cleanup := newItemRepoMock(t)
	defer cleanup()

	repo := NewItemRepository(db)
	marked, err := repo.MarkInProduction(context.Background(), nil, time.Now().UTC())
	require.NoError(t, err)
	require.Zero(t, marked)
}
