package model

// Officer role values
const (
	RoleAdmin   = "admin"
	RoleOfficer = "officer"
)

// Officer field officer and the beneficiaries assigned to them (table officers)
type Officer struct {
	ID             int64    `gorm:"primaryKey;autoIncrement:false"                  json:"id"`
	Name           string   `gorm:"type:varchar(100);not null;uniqueIndex"          json:"name"`
	Designation    string   `gorm:"type:varchar(100);not null;default:''"           json:"designation"`
	Email          string   `gorm:"type:varchar(100);not null;default:''"           json:"email"`
	ContactNumber  string   `gorm:"type:varchar(20);not null;default:''"            json:"contactNumber"`
	Constituency   string   `gorm:"type:varchar(100);not null;default:''"           json:"constituency"`
	Role           string   `gorm:"type:varchar(20);not null;default:'officer'"     json:"role"`
	AssignedHouses IntArray `gorm:"type:bigint[];not null;default:'{}'"             json:"assignedHouses"`
	VersionedModel
}

// TableName table name
func (Officer) TableName() string { return "officers" }

// AssignHouse appends id unless it is already assigned. It reports whether the
// list changed.
func (o *Officer) AssignHouse(id int64) bool {
	if o.AssignedHouses.Contains(id) {
		return false
	}
	o.AssignedHouses = append(o.AssignedHouses, id)
	return true
}

// Clone returns a copy that does not share the assignment list.
func (o *Officer) Clone() *Officer {
	out := *o
	if o.AssignedHouses != nil {
		out.AssignedHouses = make(IntArray, len(o.AssignedHouses))
		copy(out.AssignedHouses, o.AssignedHouses)
	}
	return &out
}
