package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/data-migration-api/internal/middleware"
	"github.com/noah-isme/data-migration-api/internal/models"
	appErrors "github.com/noah-isme/data-migration-api/pkg/errors"
)

type fakeReportSrv struct {
	pdf []byte
	err error
}

func (f *fakeReportSrv) ItemPDF(context.Context, string, *models.JWTClaims) ([]byte, error) {
	return f.pdf, f.err
}

func TestReportHandlerItemPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&fakeReportSrv{pdf: []byte("%PDF-1.4 stub")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/data-migration/item-1/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: "item-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleReviewer})

	handler.ItemPDF(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "migration-item-item-1.pdf")
	assert.Equal(t, "%PDF-1.4 stub", rec.Body.String())
}

func TestReportHandlerItemPDFUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&fakeReportSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/data-migration/item-1/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: "item-1"}}

	handler.ItemPDF(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReportHandlerItemPDFNotApproved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&fakeReportSrv{
		err: appErrors.Clone(appErrors.ErrConflict, "pdf can only be generated for approved items"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/data-migration/item-1/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: "item-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleReviewer})

	handler.ItemPDF(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
