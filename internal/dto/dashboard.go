package dto

import "github.com/noah-isme/data-migration-api/internal/models"

// DashboardStatistics combines item and user counts for the home dashboard.
type DashboardStatistics struct {
	TotalItems   int `json:"total_items"`
	UnderReview  int `json:"under_review"`
	Approved     int `json:"approved"`
	InProduction int `json:"in_production"`
	TotalUsers   int `json:"total_users"`
	Reviewers    int `json:"reviewers"`
	Approvers    int `json:"approvers"`
}

// DashboardResponse is the home dashboard payload.
type DashboardResponse struct {
	Statistics  DashboardStatistics          `json:"statistics"`
	RecentItems []models.MigrationItemDetail `json:"recent_items"`
}
