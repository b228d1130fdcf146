package handler

import "github.com/sristy17/sgay-v1/internal/service"

// Handler aggregates every HTTP handler
type Handler struct {
	PendingEntry *PendingEntryHandler
	Beneficiary  *BeneficiaryHandler
	Officer      *OfficerHandler
	Auth         *AuthHandler
}

// NewHandler creates the Handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		PendingEntry: NewPendingEntryHandler(svc.PendingEntry, svc.Approval),
		Beneficiary:  NewBeneficiaryHandler(svc.Beneficiary),
		Officer:      NewOfficerHandler(svc.Officer),
		Auth:         NewAuthHandler(svc.Auth),
	}
}
