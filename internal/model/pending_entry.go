package model

import "time"

// UpdateType distinguishes a new-beneficiary submission from an update of an
// existing beneficiary.
type UpdateType string

const (
	UpdateNone     UpdateType = ""
	UpdateEdit     UpdateType = "edit"
	UpdateProgress UpdateType = "progress"
)

// Valid reports whether t is one of the known update types.
func (t UpdateType) Valid() bool {
	switch t {
	case UpdateNone, UpdateEdit, UpdateProgress:
		return true
	}
	return false
}

// IsUpdate reports whether the entry targets an existing beneficiary.
func (t UpdateType) IsUpdate() bool {
	return t == UpdateEdit || t == UpdateProgress
}

// PendingEntry a proposed creation or update awaiting review (table pending_entries).
//
// Optional beneficiary attributes are pointers: nil means the submitter did not
// supply the field, which matters when the entry is merged into an existing record.
type PendingEntry struct {
	ID              int64      `gorm:"primaryKey;autoIncrement:false"          json:"id"`
	UpdateType      UpdateType `gorm:"type:varchar(20);not null;default:''"    json:"updateType,omitempty"`
	OriginalHouseID *int64     `json:"originalHouseId,omitempty"`

	BeneficiaryName     string               `gorm:"type:varchar(200);not null;default:''" json:"beneficiaryName"`
	Constituency        *string              `gorm:"type:varchar(100)"                     json:"constituency,omitempty"`
	Village             *string              `gorm:"type:varchar(100)"                     json:"village,omitempty"`
	Stage               *string              `gorm:"type:varchar(50)"                      json:"stage,omitempty"`
	Progress            int                  `gorm:"type:smallint;not null;default:0"      json:"progress"`
	ContactNumber       *string              `gorm:"type:varchar(20)"                      json:"contactNumber,omitempty"`
	AadharNumber        *string              `gorm:"type:varchar(20)"                      json:"aadharNumber,omitempty"`
	FamilyMembers       *int                 `json:"familyMembers,omitempty"`
	AssignedOfficer     *string              `gorm:"type:varchar(100)"                     json:"assignedOfficer,omitempty"`
	StartDate           *string              `gorm:"type:varchar(20)"                      json:"startDate,omitempty"`
	ExpectedCompletion  *string              `gorm:"type:varchar(20)"                      json:"expectedCompletion,omitempty"`
	Remarks             *string              `gorm:"type:text"                             json:"remarks,omitempty"`
	Lat                 *float64             `json:"lat,omitempty"`
	Lng                 *float64             `json:"lng,omitempty"`
	Images              StringList           `gorm:"type:jsonb"                            json:"images,omitempty"`
	FundDetails         *FundDetails         `gorm:"type:jsonb"                            json:"fundDetails,omitempty"`
	ConstructionDetails *ConstructionDetails `gorm:"type:jsonb"                            json:"constructionDetails,omitempty"`

	SubmittedBy string    `gorm:"type:varchar(100);not null;default:'Unknown'" json:"submittedBy"`
	SubmittedOn time.Time `gorm:"not null"                                      json:"submittedOn"`
}

// TableName table name
func (PendingEntry) TableName() string { return "pending_entries" }

// Clone returns a deep copy.
func (e *PendingEntry) Clone() *PendingEntry {
	out := *e
	out.OriginalHouseID = cloneInt64(e.OriginalHouseID)
	out.Constituency = cloneString(e.Constituency)
	out.Village = cloneString(e.Village)
	out.Stage = cloneString(e.Stage)
	out.ContactNumber = cloneString(e.ContactNumber)
	out.AadharNumber = cloneString(e.AadharNumber)
	out.AssignedOfficer = cloneString(e.AssignedOfficer)
	out.StartDate = cloneString(e.StartDate)
	out.ExpectedCompletion = cloneString(e.ExpectedCompletion)
	out.Remarks = cloneString(e.Remarks)
	out.Lat = cloneFloat(e.Lat)
	out.Lng = cloneFloat(e.Lng)
	out.Images = e.Images.Clone()
	if e.FamilyMembers != nil {
		v := *e.FamilyMembers
		out.FamilyMembers = &v
	}
	if e.FundDetails != nil {
		v := *e.FundDetails
		out.FundDetails = &v
	}
	if e.ConstructionDetails != nil {
		v := *e.ConstructionDetails
		out.ConstructionDetails = &v
	}
	return &out
}

// Officer returns the assigned officer name, or "" when none was supplied.
func (e *PendingEntry) Officer() string {
	if e.AssignedOfficer == nil {
		return ""
	}
	return *e.AssignedOfficer
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt64(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
