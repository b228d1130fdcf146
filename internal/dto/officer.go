package dto

// CreateOfficerRequest add an officer
type CreateOfficerRequest struct {
	Name           string  `json:"name"           binding:"required,max=100"`
	Designation    string  `json:"designation"    binding:"omitempty,max=100"`
	Email          string  `json:"email"          binding:"omitempty,email,max=100"`
	ContactNumber  string  `json:"contactNumber"  binding:"omitempty,max=20"`
	Constituency   string  `json:"constituency"   binding:"omitempty,max=100"`
	Role           string  `json:"role"           binding:"omitempty,oneof=admin officer"`
	AssignedHouses []int64 `json:"assignedHouses" binding:"omitempty,dive,gt=0"`
}
