package domain

// User is a human identity acting on the ledger. The only authorization rule
// the core enforces is identity equality: an entry's approver must differ from
// its creator.
type User struct {
	UserID       string `json:"userID"` // Primary key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
