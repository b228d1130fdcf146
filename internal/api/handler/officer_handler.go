package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sristy17/sgay-v1/internal/dto"
	"github.com/sristy17/sgay-v1/internal/service"
	"github.com/sristy17/sgay-v1/pkg/response"
)

// OfficerHandler officer index endpoints
type OfficerHandler struct {
	officerSvc service.OfficerService
}

// NewOfficerHandler creates an OfficerHandler
func NewOfficerHandler(officerSvc service.OfficerService) *OfficerHandler {
	return &OfficerHandler{officerSvc: officerSvc}
}

// ListOfficers GET /api/v1/officers
func (h *OfficerHandler) ListOfficers(c *gin.Context) {
	list, err := h.officerSvc.List(c.Request.Context())
	if err != nil {
		h.handleOfficerError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// AddOfficer POST /api/v1/officers
func (h *OfficerHandler) AddOfficer(c *gin.Context) {
	var req dto.CreateOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid officer", err.Error())
		return
	}

	o, err := h.officerSvc.Add(c.Request.Context(), &req)
	if err != nil {
		h.handleOfficerError(c, err)
		return
	}

	response.Created(c, o)
}

// RemoveOfficer DELETE /api/v1/officers/:id
func (h *OfficerHandler) RemoveOfficer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.officerSvc.Remove(c.Request.Context(), id); err != nil {
		h.handleOfficerError(c, err)
		return
	}

	response.OK(c, gin.H{"success": true})
}

// OfficerCalendar GET /api/v1/officers/:id/calendar.ics
func (h *OfficerHandler) OfficerCalendar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	body, err := h.officerSvc.Calendar(c.Request.Context(), id)
	if err != nil {
		h.handleOfficerError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=officer-%d.ics", id))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

func (h *OfficerHandler) handleOfficerError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrOfficerNotFound):
		response.NotFound(c, 22001, "officer not found")
	case errors.Is(err, service.ErrOfficerAddFailed):
		response.Error(c, http.StatusInternalServerError, 22002, "failed to add officer")
	case errors.Is(err, service.ErrOfficerRemoveFailed):
		response.Error(c, http.StatusInternalServerError, 22003, "failed to remove officer")
	case errors.Is(err, service.ErrOfficerNameExists):
		response.Conflict(c, 22004, "an officer with this name already exists")
	case errors.Is(err, service.ErrStoreUnavailable):
		response.ServiceUnavailable(c, 20010, "record store unavailable")
	case errors.Is(err, service.ErrBusy):
		response.Conflict(c, 20011, "another operation is in progress, retry shortly")
	default:
		response.InternalError(c)
	}
}
