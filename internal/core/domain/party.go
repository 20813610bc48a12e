package domain

// PartyType classifies a counterparty (cari).
type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeSupplier PartyType = "supplier"
)

// IsValid reports whether t is a known party type.
func (t PartyType) IsValid() bool {
	return t == PartyTypeCustomer || t == PartyTypeSupplier
}

// Party is a customer or supplier that documents can reference.
type Party struct {
	PartyID   string    `json:"partyID"`
	Name      string    `json:"name"`
	PartyType PartyType `json:"partyType"`
	TaxNumber string    `json:"taxNumber"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	IsActive  bool      `json:"isActive"`
	AuditFields
}

// PartyFilter narrows party listings.
type PartyFilter struct {
	PartyType *PartyType
	Search    string
}

// PartyStatement lists a party's documents together with per-status totals.
type PartyStatement struct {
	Party     Party           `json:"party"`
	Documents []Document      `json:"documents"`
	Totals    []StatusSummary `json:"totals"`
}
