package model

// Beneficiary canonical accepted record for one housing unit (table beneficiaries)
type Beneficiary struct {
	ID                  int64               `gorm:"primaryKey;autoIncrement:false"          json:"id"`
	BeneficiaryName     string              `gorm:"type:varchar(200);not null;default:''"   json:"beneficiaryName"`
	Constituency        string              `gorm:"type:varchar(100);not null;default:''"   json:"constituency"`
	Village             string              `gorm:"type:varchar(100);not null;default:''"   json:"village"`
	Stage               string              `gorm:"type:varchar(50);not null;default:''"    json:"stage"`
	Progress            int                 `gorm:"type:smallint;not null;default:0"        json:"progress"`
	ContactNumber       string              `gorm:"type:varchar(20);not null;default:''"    json:"contactNumber"`
	AadharNumber        string              `gorm:"type:varchar(20);not null;default:''"    json:"aadharNumber"`
	FamilyMembers       int                 `gorm:"not null;default:0"                      json:"familyMembers"`
	AssignedOfficer     string              `gorm:"type:varchar(100);not null;default:''"   json:"assignedOfficer"`
	StartDate           string              `gorm:"type:varchar(20);not null;default:''"    json:"startDate"`
	ExpectedCompletion  string              `gorm:"type:varchar(20);not null;default:''"    json:"expectedCompletion"`
	Remarks             string              `gorm:"type:text;not null;default:''"           json:"remarks"`
	Lat                 *float64            `json:"lat,omitempty"`
	Lng                 *float64            `json:"lng,omitempty"`
	Images              StringList          `gorm:"type:jsonb;not null;default:'[]'"        json:"images"`
	LastUpdated         string              `gorm:"type:varchar(20);not null;default:''"    json:"lastUpdated"`
	FundDetails         FundDetails         `gorm:"type:jsonb;not null;default:'{}'"        json:"fundDetails"`
	ConstructionDetails ConstructionDetails `gorm:"type:jsonb;not null"                     json:"constructionDetails"`
	VersionedModel
}

// TableName table name
func (Beneficiary) TableName() string { return "beneficiaries" }

// Clone returns a copy that shares no slices or pointers with b.
func (b *Beneficiary) Clone() *Beneficiary {
	out := *b
	out.Images = b.Images.Clone()
	out.Lat = cloneFloat(b.Lat)
	out.Lng = cloneFloat(b.Lng)
	return &out
}

// AppendImages appends the references not already present, keeping order.
func (b *Beneficiary) AppendImages(refs []string) {
	seen := make(map[string]bool, len(b.Images))
	for _, ref := range b.Images {
		seen[ref] = true
	}
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		b.Images = append(b.Images, ref)
	}
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
