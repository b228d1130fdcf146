package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sristy17/sgay-v1/internal/model"
)

// ── pending entry intake ──

// SubmitPendingEntryRequest a field officer's submission. Every beneficiary
// attribute is optional; a nil pointer means "not supplied".
type SubmitPendingEntryRequest struct {
	UpdateType      string `json:"updateType"`
	OriginalHouseID *int64 `json:"originalHouseId"`

	BeneficiaryName    *string  `json:"beneficiaryName"`
	Constituency       *string  `json:"constituency"`
	Village            *string  `json:"village"`
	Stage              *string  `json:"stage"`
	ContactNumber      *string  `json:"contactNumber"`
	AadharNumber       *string  `json:"aadharNumber"`
	FamilyMembers      *FlexInt `json:"familyMembers"`
	AssignedOfficer    *string  `json:"assignedOfficer"`
	StartDate          *string  `json:"startDate"`
	ExpectedCompletion *string  `json:"expectedCompletion"`
	Remarks            *string  `json:"remarks"`
	Lat                *float64 `json:"lat"`
	Lng                *float64 `json:"lng"`
	Images             []string `json:"images"`

	FundDetails         *model.FundDetails         `json:"fundDetails"`
	ConstructionDetails *model.ConstructionDetails `json:"constructionDetails"`

	// Progress is recomputed from constructionDetails; a client value is ignored.
	Progress *float64 `json:"progress"`

	SubmittedBy *string    `json:"submittedBy"`
	SubmittedOn *time.Time `json:"submittedOn"`
}

// FlexInt accepts 4, "4" and "" (as 0). The tablet forms post family size as text.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("familyMembers: %q is not a number", s)
		}
		*n = FlexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = FlexInt(v)
	return nil
}

// ── progress preview ──

// ProgressPreviewRequest stage statuses to evaluate under both strategies
type ProgressPreviewRequest struct {
	ConstructionDetails *model.ConstructionDetails `json:"constructionDetails"`
}

// ── approval ──

// AssignmentOutcome result of the post-approval officer assignment step
type AssignmentOutcome string

const (
	AssignmentAssigned        AssignmentOutcome = "assigned"
	AssignmentSkipped         AssignmentOutcome = "skipped"
	AssignmentOfficerNotFound AssignmentOutcome = "officer_not_found"
	AssignmentFailed          AssignmentOutcome = "failed"
)

// ApprovalResponse outcome of approving a pending entry
type ApprovalResponse struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	Created     bool               `json:"created"`
	Beneficiary *model.Beneficiary `json:"beneficiary"`
	Assignment  AssignmentOutcome  `json:"assignment"`
}

// Approval messages
const (
	MessageUpdateApproved = "Updates approved and applied to beneficiary"
	MessageNewApproved    = "New beneficiary approved and added to database"
)
