package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/sristy17/sgay-v1/internal/dto"
	"github.com/sristy17/sgay-v1/internal/service"
	"github.com/sristy17/sgay-v1/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BeneficiaryHandler read-only beneficiary endpoints
type BeneficiaryHandler struct {
	beneficiarySvc service.BeneficiaryService
}

// NewBeneficiaryHandler creates a BeneficiaryHandler
func NewBeneficiaryHandler(beneficiarySvc service.BeneficiaryService) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiarySvc: beneficiarySvc}
}

// ListBeneficiaries GET /api/v1/beneficiaries?constituency=&officer=
func (h *BeneficiaryHandler) ListBeneficiaries(c *gin.Context) {
	var req dto.BeneficiaryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, err := h.beneficiarySvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleBeneficiaryError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetBeneficiary GET /api/v1/beneficiaries/:id
func (h *BeneficiaryHandler) GetBeneficiary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.beneficiarySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleBeneficiaryError(c, err)
		return
	}

	response.OK(c, b)
}

// ExportBeneficiaries GET /api/v1/beneficiaries/export
func (h *BeneficiaryHandler) ExportBeneficiaries(c *gin.Context) {
	var req dto.BeneficiaryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	buf, filename, err := h.beneficiarySvc.Export(c.Request.Context(), &req)
	if err != nil {
		h.handleBeneficiaryError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *BeneficiaryHandler) handleBeneficiaryError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrBeneficiaryNotFound):
		response.NotFound(c, 21001, "beneficiary not found")
	case errors.Is(err, service.ErrStoreUnavailable):
		response.ServiceUnavailable(c, 20010, "record store unavailable")
	default:
		response.InternalError(c)
	}
}
