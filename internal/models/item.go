package models

import (
	"encoding/json"
	"time"
)

// DataType enumerates the kinds of data a migration item can carry.
type DataType string

const (
	DataTypeCustomerRecords DataType = "customer_records"
	DataTypeProductCatalogs DataType = "product_catalogs"
	DataTypeServiceAccounts DataType = "service_accounts"
	DataTypeBillingAccounts DataType = "billing_accounts"
	DataTypeSalesOrders     DataType = "sales_orders"
)

// ValidDataType reports whether the value is a known data type.
func ValidDataType(t DataType) bool {
	switch t {
	case DataTypeCustomerRecords, DataTypeProductCatalogs, DataTypeServiceAccounts,
		DataTypeBillingAccounts, DataTypeSalesOrders:
		return true
	}
	return false
}

// ItemStatus captures the lifecycle states of a migration item. The status
// only moves forward: under_review -> approved -> in_production.
type ItemStatus string

const (
	StatusUnderReview  ItemStatus = "under_review"
	StatusApproved     ItemStatus = "approved"
	StatusInProduction ItemStatus = "in_production"
)

// ValidItemStatus reports whether the value is a known status.
func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case StatusUnderReview, StatusApproved, StatusInProduction:
		return true
	}
	return false
}

// MigrationItem describes a pending data migration moving through the
// approval pipeline. The data payload is opaque to the workflow.
type MigrationItem struct {
	ID            string          `db:"id" json:"id"`
	Title         string          `db:"title" json:"title"`
	Description   *string         `db:"description" json:"description,omitempty"`
	DataType      DataType        `db:"data_type" json:"data_type"`
	Status        ItemStatus      `db:"status" json:"status"`
	DataPayload   json.RawMessage `db:"data_payload" json:"data_payload,omitempty"`
	SourceFile    *string         `db:"source_file" json:"source_file,omitempty"`
	CreatedBy     string          `db:"created_by" json:"created_by"`
	ReviewedBy    *string         `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ApprovedBy    *string         `db:"approved_by" json:"approved_by,omitempty"`
	ReviewedAt    *time.Time      `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ApprovedAt    *time.Time      `db:"approved_at" json:"approved_at,omitempty"`
	ProductionAt  *time.Time      `db:"production_at" json:"production_at,omitempty"`
	ReviewNotes   *string         `db:"review_notes" json:"review_notes,omitempty"`
	ApprovalNotes *string         `db:"approval_notes" json:"approval_notes,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// MigrationItemDetail joins participant names for display.
type MigrationItemDetail struct {
	MigrationItem
	CreatorName  *string `db:"creator_name" json:"creator_name,omitempty"`
	ReviewerName *string `db:"reviewer_name" json:"reviewer_name,omitempty"`
	ApproverName *string `db:"approver_name" json:"approver_name,omitempty"`
}

// ItemFilter constrains item listing queries. Empty fields mean no
// constraint; filters combine with AND.
type ItemFilter struct {
	Status   ItemStatus
	DataType DataType
	Search   string
	Page     int
}

// ItemStatistics aggregates item counts per lifecycle status.
type ItemStatistics struct {
	Total        int `db:"total" json:"total"`
	UnderReview  int `db:"under_review" json:"under_review"`
	Approved     int `db:"approved" json:"approved"`
	InProduction int `db:"in_production" json:"in_production"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
