package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sristy17/sgay-v1/internal/dto"
	"github.com/sristy17/sgay-v1/internal/service"
	"github.com/sristy17/sgay-v1/pkg/response"
)

// PendingEntryHandler pending queue and approval endpoints
type PendingEntryHandler struct {
	pendingSvc  service.PendingEntryService
	approvalSvc service.ApprovalService
}

// NewPendingEntryHandler creates a PendingEntryHandler
func NewPendingEntryHandler(pendingSvc service.PendingEntryService, approvalSvc service.ApprovalService) *PendingEntryHandler {
	return &PendingEntryHandler{pendingSvc: pendingSvc, approvalSvc: approvalSvc}
}

// ListPendingEntries GET /api/v1/pending-entries
func (h *PendingEntryHandler) ListPendingEntries(c *gin.Context) {
	response.OK(c, gin.H{"list": h.pendingSvc.List(c.Request.Context())})
}

// GetPendingEntry GET /api/v1/pending-entries/:id
func (h *PendingEntryHandler) GetPendingEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.pendingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handlePendingEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// SubmitPendingEntry POST /api/v1/pending-entries
func (h *PendingEntryHandler) SubmitPendingEntry(c *gin.Context) {
	var req dto.SubmitPendingEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		response.ErrorWithDetails(c, http.StatusBadRequest, 20003, "malformed submission", err.Error())
		return
	}

	entry, err := h.pendingSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handlePendingEntryError(c, err)
		return
	}

	response.Created(c, entry)
}

// ApprovePendingEntry POST /api/v1/pending-entries/:id/approve
func (h *PendingEntryHandler) ApprovePendingEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.approvalSvc.Approve(c.Request.Context(), id)
	if err != nil {
		h.handlePendingEntryError(c, err)
		return
	}

	response.OK(c, result)
}

// RejectPendingEntry POST /api/v1/pending-entries/:id/reject
func (h *PendingEntryHandler) RejectPendingEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.approvalSvc.Reject(c.Request.Context(), id); err != nil {
		h.handlePendingEntryError(c, err)
		return
	}

	response.OK(c, gin.H{"success": true})
}

// PreviewProgress POST /api/v1/progress/preview
func (h *PendingEntryHandler) PreviewProgress(c *gin.Context) {
	var req dto.ProgressPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 20003, "malformed submission", err.Error())
		return
	}

	report, err := h.pendingSvc.Preview(&req)
	if err != nil {
		h.handlePendingEntryError(c, err)
		return
	}

	response.OK(c, report)
}

// handlePendingEntryError maps queue and approval errors
func (h *PendingEntryHandler) handlePendingEntryError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrPendingEntryNotFound):
		response.NotFound(c, 20001, "pending entry not found")
	case errors.Is(err, service.ErrOriginalNotFound):
		response.NotFound(c, 20002, "original beneficiary not found")
	case errors.Is(err, service.ErrMalformedInput):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20003, "malformed submission", err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		response.ServiceUnavailable(c, 20010, "record store unavailable")
	case errors.Is(err, service.ErrBusy):
		response.Conflict(c, 20011, "another approval is in progress, retry shortly")
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, 20012, "beneficiary was modified concurrently, retry")
	default:
		response.InternalError(c)
	}
}
