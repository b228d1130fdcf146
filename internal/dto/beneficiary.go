package dto

// BeneficiaryListRequest list filters
type BeneficiaryListRequest struct {
	Constituency string `form:"constituency"`
	Officer      string `form:"officer"`
}
