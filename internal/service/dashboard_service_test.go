package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/data-migration-api/internal/dto"
	"github.com/noah-isme/data-migration-api/internal/models"
)

type userStatsStub struct {
	stats models.UserStatistics
}

func (u *userStatsStub) Statistics(ctx context.Context) (models.UserStatistics, error) {
	return u.stats, nil
}

func TestDashboardServiceSummary(t *testing.T) {
	store := newItemStoreStub()
	svc := NewItemService(store, &auditStub{}, nil)

	created, err := svc.Create(context.Background(), dto.CreateItemRequest{
		Title:    "Customer import",
		DataType: models.DataTypeCustomerRecords,
	}, reviewerClaims("rev-1"))
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), created.ID, dto.ApproveItemRequest{}, approverClaims("appr-1"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.CreateItemRequest{
		Title:    "Orders import",
		DataType: models.DataTypeSalesOrders,
	}, reviewerClaims("rev-1"))
	require.NoError(t, err)

	users := &userStatsStub{stats: models.UserStatistics{Total: 9, Reviewers: 6, Approvers: 2}}
	dashboard := NewDashboardService(store, users, nil, DashboardServiceConfig{RecentItemsLimit: 10})

	summary, err := dashboard.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, summary.Statistics.TotalItems)
	require.Equal(t, 1, summary.Statistics.UnderReview)
	require.Equal(t, 1, summary.Statistics.Approved)
	require.Equal(t, 0, summary.Statistics.InProduction)
	require.Equal(t, 9, summary.Statistics.TotalUsers)
	require.Equal(t, 6, summary.Statistics.Reviewers)
	require.Equal(t, 2, summary.Statistics.Approvers)
	require.Len(t, summary.RecentItems, 2)
}

func TestDashboardServiceEmptyRecentItems(t *testing.T) {
	store := newItemStoreStub()
	users := &userStatsStub{}
	dashboard := NewDashboardService(store, users, nil, DashboardServiceConfig{})

	summary, err := dashboard.Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary.RecentItems)
	require.Empty(t, summary.RecentItems)
}
