package domain

// LegalType is the legal form of an accounting entity.
type LegalType string

const (
	LLC   LegalType = "LLC"
	CCorp LegalType = "C_CORP"
)

// EntityStatus tracks whether an entity's ledger is still taking postings.
type EntityStatus string

const (
	EntityActive EntityStatus = "ACTIVE"
	// EntityConverted marks the source side of an entity conversion. Its
	// ledger is frozen at the conversion effective date.
	EntityConverted EntityStatus = "CONVERTED"
)

// Entity is an accounting entity owning its own chart of accounts, journal
// and period lock. Entity IDs are small integers; they appear in journal
// entry numbers (JE-{entity:03d}-{seq:06d}).
type Entity struct {
	EntityID  int64        `json:"entityID"`
	Name      string       `json:"name"`
	LegalType LegalType    `json:"legalType"`
	Status    EntityStatus `json:"status"`
	AuditFields
}
