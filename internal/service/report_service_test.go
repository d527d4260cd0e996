package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/data-migration-api/internal/dto"
	"github.com/noah-isme/data-migration-api/internal/models"
	"github.com/noah-isme/data-migration-api/pkg/export"
)

type rendererStub struct {
	lastData  export.Dataset
	lastTitle string
}

func (r *rendererStub) Render(data export.Dataset, title string) ([]byte, error) {
	r.lastData = data
	r.lastTitle = title
	return []byte("%PDF-stub"), nil
}

func TestReportServiceItemPDF(t *testing.T) {
	store := newItemStoreStub()
	items := NewItemService(store, &auditStub{}, nil)

	created, err := items.Create(context.Background(), dto.CreateItemRequest{
		Title:       "Customer import",
		Description: "first batch",
		DataType:    models.DataTypeCustomerRecords,
	}, reviewerClaims("rev-1"))
	require.NoError(t, err)
	_, err = items.Approve(context.Background(), created.ID, dto.ApproveItemRequest{ApprovalNotes: "ok"}, approverClaims("appr-1"))
	require.NoError(t, err)

	renderer := &rendererStub{}
	svc := NewReportService(store, renderer, nil, 0, nil)

	pdf, err := svc.ItemPDF(context.Background(), created.ID, reviewerClaims("rev-2"))
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-stub"), pdf)
	require.Equal(t, []string{"Field", "Value"}, renderer.lastData.Headers)
	require.NotEmpty(t, renderer.lastData.Rows)
}

func TestReportServiceItemPDFNotApproved(t *testing.T) {
	store := newItemStoreStub()
	items := NewItemService(store, &auditStub{}, nil)

	created, err := items.Create(context.Background(), dto.CreateItemRequest{
		Title:    "Pending batch",
		DataType: models.DataTypeSalesOrders,
	}, reviewerClaims("rev-1"))
	require.NoError(t, err)

	svc := NewReportService(store, &rendererStub{}, nil, 0, nil)
	_, err = svc.ItemPDF(context.Background(), created.ID, reviewerClaims("rev-1"))
	require.Equal(t, http.StatusConflict, errStatus(t, err))
}

func TestReportServiceItemPDFNotFound(t *testing.T) {
	svc := NewReportService(newItemStoreStub(), &rendererStub{}, nil, 0, nil)
	_, err := svc.ItemPDF(context.Background(), "missing", reviewerClaims("rev-1"))
	require.Equal(t, http.StatusNotFound, errStatus(t, err))
}

func TestReportServiceItemPDFRequiresActor(t *testing.T) {
	svc := NewReportService(newItemStoreStub(), &rendererStub{}, nil, 0, nil)
	_, err := svc.ItemPDF(context.Background(), "item-1", nil)
	require.Equal(t, http.StatusUnauthorized, errStatus(t, err))
}
