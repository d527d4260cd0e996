package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/data-migration-api/internal/dto"
	"github.com/noah-isme/data-migration-api/internal/models"
	appErrors "github.com/noah-isme/data-migration-api/pkg/errors"
)

type itemStatisticsProvider interface {
	Statistics(ctx context.Context) (models.ItemStatistics, error)
	Recent(ctx context.Context, limit int) ([]models.MigrationItemDetail, error)
}

type userStatisticsProvider interface {
	Statistics(ctx context.Context) (models.UserStatistics, error)
}

// DashboardServiceConfig tunes dashboard composition.
type DashboardServiceConfig struct {
	RecentItemsLimit int
}

// DashboardService composes the home dashboard payload. Counts are computed
// on every call so the dashboard always reflects the current workflow state.
type DashboardService struct {
	items  itemStatisticsProvider
	users  userStatisticsProvider
	logger *zap.Logger
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(items itemStatisticsProvider, users userStatisticsProvider, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.RecentItemsLimit <= 0 {
		cfg.RecentItemsLimit = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{items: items, users: users, logger: logger, cfg: cfg}
}

// Summary returns dashboard statistics plus the most recent items.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	itemStats, err := s.items.Statistics(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute item statistics")
	}
	userStats, err := s.users.Statistics(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute user statistics")
	}
	recent, err := s.items.Recent(ctx, s.cfg.RecentItemsLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent items")
	}
	if recent == nil {
		recent = []models.MigrationItemDetail{}
	}
	return &dto.DashboardResponse{
		Statistics: dto.DashboardStatistics{
			TotalItems:   itemStats.Total,
			UnderReview:  itemStats.UnderReview,
			Approved:     itemStats.Approved,
			InProduction: itemStats.InProduction,
			TotalUsers:   userStats.Total,
			Reviewers:    userStats.Reviewers,
			Approvers:    userStats.Approvers,
		},
		RecentItems: recent,
	}, nil
}
