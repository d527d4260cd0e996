package dto

import (
	"encoding/json"

	"github.com/noah-isme/data-migration-api/internal/models"
)

// CreateItemRequest payload for submitting a new migration item.
type CreateItemRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	DataType    models.DataType `json:"data_type" validate:"required"`
	DataPayload json.RawMessage `json:"data_payload"`
	SourceFile  string          `json:"source_file"`
}

// UpdateItemRequest payload for editing an item still under review. Only the
// mutable fields appear here; status and audit fields are never client-set.
type UpdateItemRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	DataType    models.DataType `json:"data_type" validate:"required"`
	SourceFile  string          `json:"source_file"`
}

// ApproveItemRequest carries the optional approval note.
type ApproveItemRequest struct {
	ApprovalNotes string `json:"approval_notes"`
}

// MarkProductionRequest selects approved items to move into production.
type MarkProductionRequest struct {
	ItemIDs []string `json:"item_ids"`
}

// MarkProductionResponse reports how many items actually transitioned.
type MarkProductionResponse struct {
	Marked int `json:"marked"`
}

// ItemQuery mirrors supported listing filters.
type ItemQuery struct {
	Status   models.ItemStatus
	DataType models.DataType
	Search   string
	Page     int
}

// ItemListResponse bundles a page of items with the live statistics shown
// alongside the list.
type ItemListResponse struct {
	Items      []models.MigrationItemDetail `json:"items"`
	Statistics models.ItemStatistics        `json:"statistics"`
}
