package domain

// Branch is a single restaurant location within an org. All scheduling
// evaluation happens in the branch's local time zone.
type Branch struct {
	BranchID string `json:"branchID"`
	OrgID    string `json:"orgID"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"` // IANA name, e.g. "Europe/Madrid"
	IsActive bool   `json:"isActive"`
	AuditFields
}

// RestaurantTable is a bookable table within a branch.
type RestaurantTable struct {
	TableID  string `json:"tableID"`
	OrgID    string `json:"orgID"`
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
