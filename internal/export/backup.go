package export

import (
	"fmt"
	"io"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// Snapshot is the whole dataset written into a backup workbook.
type Snapshot struct {
	Documents    []domain.Document
	History      []domain.StatusHistoryEntry
	Parties      []domain.Party
	Credits      []domain.Credit
	Installments []domain.Installment
}

// WriteSnapshot writes snap as an xlsx workbook with one sheet per table.
// Amounts are written as decimal strings so the backup is exact.
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	docs := make([][]any, len(snap.Documents))
	for i, d := range snap.Documents {
		docs[i] = []any{
			d.DocumentID, string(d.DocumentType), d.DocumentNumber, d.Amount.String(), d.CurrencyCode,
			formatDate(d.DueDate), formatOptionalDate(d.IssueDate), d.IssuerName, d.BankName, d.BranchName,
			d.AccountNumber, formatOptionalString(d.PartyID), string(d.Direction), string(d.Status), d.Notes,
			d.CreatedAt.Format(dateTimeLayout), d.CreatedBy, d.LastUpdatedAt.Format(dateTimeLayout), d.LastUpdatedBy,
		}
	}
	history := make([][]any, len(snap.History))
	for i, h := range snap.History {
		history[i] = []any{
			h.HistoryID, h.DocumentID, string(h.FromStatus), string(h.ToStatus), h.Description, h.ActorID,
			h.CreatedAt.Format(dateTimeLayout),
		}
	}
	parties := make([][]any, len(snap.Parties))
	for i, p := range snap.Parties {
		parties[i] = []any{
			p.PartyID, p.Name, string(p.PartyType), p.TaxNumber, p.Phone, p.Email, p.Address, p.Notes, p.IsActive,
			p.CreatedAt.Format(dateTimeLayout), p.CreatedBy,
		}
	}
	credits := make([][]any, len(snap.Credits))
	for i, c := range snap.Credits {
		credits[i] = []any{
			c.CreditID, c.LenderName, c.Description, c.Principal.String(), c.AnnualRate.String(), c.TermMonths,
			formatDate(c.StartDate), c.CurrencyCode, c.MonthlyPayment.String(), c.CreatedAt.Format(dateTimeLayout), c.CreatedBy,
		}
	}
	installments := make([][]any, len(snap.Installments))
	for i, inst := range snap.Installments {
		paidAt := ""
		if inst.PaidAt != nil {
			paidAt = inst.PaidAt.Format(dateTimeLayout)
		}
		installments[i] = []any{
			inst.InstallmentID, inst.CreditID, inst.SequenceNumber, formatDate(inst.DueDate),
			inst.Amount.String(), inst.PaidAmount.String(), string(inst.Status), paidAt,
		}
	}

	f, err := newWorkbook(
		table{sheet: "Documents", rows: docs, headers: []string{
			"document_id", "document_type", "document_number", "amount", "currency_code", "due_date", "issue_date",
			"issuer_name", "bank_name", "branch_name", "account_number", "party_id", "direction", "status", "notes",
			"created_at", "created_by", "last_updated_at", "last_updated_by",
		}},
		table{sheet: "History", rows: history, headers: []string{
			"history_id", "document_id", "from_status", "to_status", "description", "actor_id", "created_at",
		}},
		table{sheet: "Parties", rows: parties, headers: []string{
			"party_id", "name", "party_type", "tax_number", "phone", "email", "address", "notes", "is_active",
			"created_at", "created_by",
		}},
		table{sheet: "Credits", rows: credits, headers: []string{
			"credit_id", "lender_name", "description", "principal", "annual_rate", "term_months", "start_date",
			"currency_code", "monthly_payment", "created_at", "created_by",
		}},
		table{sheet: "Installments", rows: installments, headers: []string{
			"installment_id", "credit_id", "sequence_number", "due_date", "amount", "paid_amount", "status", "paid_at",
		}},
	)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write backup workbook: %w", err)
	}
	return nil
}
