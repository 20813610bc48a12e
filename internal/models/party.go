package models

// Party is a row of the parties table.
type Party struct {
	PartyID   string `db:"party_id"`
	Name      string `db:"name"`
	PartyType string `db:"party_type"`
	TaxNumber string `db:"tax_number"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	Address   string `db:"address"`
	Notes     string `db:"notes"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}
