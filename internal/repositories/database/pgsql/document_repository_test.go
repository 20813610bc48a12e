package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDocumentFilterClause(t *testing.T) {
	status := domain.StatusPortfolio
	partyID := "p1"
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	clause, args := documentFilterClause(domain.DocumentFilter{
		Status:  &status,
		PartyID: &partyID,
		DueFrom: &from,
		Search:  " akbank ",
	}, []any{"existing"})

	assert.Equal(t, " AND d.status = $2 AND d.party_id = $3 AND d.due_date >= $4"+
		" AND (d.document_number ILIKE $5 OR d.issuer_name ILIKE $5 OR d.bank_name ILIKE $5 OR p.name ILIKE $5)", clause)
	assert.Equal(t, []any{"existing", "portfolio", "p1", from, "%akbank%"}, args)
}

func TestDocumentFilterClause_Empty(t *testing.T) {
	clause, args := documentFilterClause(domain.DocumentFilter{Search: "   "}, nil)
	assert.Empty(t, clause)
	assert.Empty(t, args)
}
