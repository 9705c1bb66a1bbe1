package domain

// User is a staff member who can operate the reservation book.
type User struct {
	UserID       string `json:"userID"`
	OrgID        string `json:"orgID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
