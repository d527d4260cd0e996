package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/data-migration-api/internal/models"
	appErrors "github.com/noah-isme/data-migration-api/pkg/errors"
	"github.com/noah-isme/data-migration-api/pkg/response"
)

type reportService interface {
	ItemPDF(ctx context.Context, id string, actor *models.JWTClaims) ([]byte, error)
}

// ReportHandler serves rendered item reports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// ItemPDF godoc
// @Summary PDF report for an approved migration item
// @Tags Data Migration
// @Produce application/pdf
// @Param id path string true "Item ID"
// @Success 200 {file} binary
// @Router /data-migration/{id}/pdf [get]
func (h *ReportHandler) ItemPDF(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id := c.Param("id")
	pdf, err := h.service.ItemPDF(c.Request.Context(), id, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=migration-item-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
