package export

import (
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

var documentHeaders = []string{
	"Type", "Number", "Amount", "Currency", "Due Date", "Issue Date",
	"Issuer", "Bank", "Branch", "Account", "Direction", "Notes", "Status", "Party", "Overdue",
}

// WriteDocuments writes the document list and a summary sheet as an xlsx workbook.
func WriteDocuments(w io.Writer, docs []domain.Document, summary []domain.StatusSummary, asOf time.Time) error {
	rows := make([][]any, len(docs))
	for i, d := range docs {
		overdue := ""
		if d.IsOverdue(asOf) {
			overdue = "yes"
		}
		rows[i] = []any{
			string(d.DocumentType), d.DocumentNumber, d.Amount.InexactFloat64(), d.CurrencyCode,
			formatDate(d.DueDate), formatOptionalDate(d.IssueDate),
			d.IssuerName, d.BankName, d.BranchName, d.AccountNumber,
			string(d.Direction), d.Notes, string(d.Status), d.PartyName, overdue,
		}
	}

	summaryRows := make([][]any, len(summary))
	for i, s := range summary {
		summaryRows[i] = []any{string(s.Status), s.CurrencyCode, s.Count, s.TotalAmount.InexactFloat64()}
	}

	f, err := newWorkbook(
		table{
			sheet:   "Documents",
			headers: documentHeaders,
			rows:    rows,
			widths:  []float64{8, 16, 14, 9, 12, 12, 24, 20, 16, 16, 10, 30, 11, 24, 8},
		},
		table{
			sheet:   "Summary",
			headers: []string{"Status", "Currency", "Count", "Total"},
			rows:    summaryRows,
			widths:  []float64{12, 10, 8, 16},
		},
	)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write documents workbook: %w", err)
	}
	return nil
}

// WriteCreditSchedule writes a credit's installment table as an xlsx workbook.
func WriteCreditSchedule(w io.Writer, credit domain.Credit, asOf time.Time) error {
	rows := make([][]any, len(credit.Installments))
	for i, inst := range credit.Installments {
		paidAt := ""
		if inst.PaidAt != nil {
			paidAt = inst.PaidAt.Format(dateLayout)
		}
		rows[i] = []any{
			inst.SequenceNumber, formatDate(inst.DueDate), inst.Amount.InexactFloat64(),
			inst.PaidAmount.InexactFloat64(), string(inst.EffectiveStatus(asOf)), paidAt,
		}
	}

	summary := credit.Summarize(asOf)
	info := [][]any{
		{"Lender", credit.LenderName},
		{"Principal", credit.Principal.InexactFloat64()},
		{"Annual Rate %", credit.AnnualRate.InexactFloat64()},
		{"Term (months)", credit.TermMonths},
		{"Start Date", formatDate(credit.StartDate)},
		{"Monthly Payment", credit.MonthlyPayment.InexactFloat64()},
		{"Total Payable", summary.TotalPayable.InexactFloat64()},
		{"Total Interest", summary.TotalInterest.InexactFloat64()},
		{"Remaining", summary.Remaining.InexactFloat64()},
	}

	f, err := newWorkbook(
		table{
			sheet:   "Schedule",
			headers: []string{"#", "Due Date", "Amount", "Paid", "Status", "Paid At"},
			rows:    rows,
			widths:  []float64{5, 12, 14, 14, 10, 12},
		},
		table{
			sheet:   "Credit",
			headers: []string{"Field", "Value"},
			rows:    info,
			widths:  []float64{18, 24},
		},
	)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write schedule workbook: %w", err)
	}
	return nil
}
