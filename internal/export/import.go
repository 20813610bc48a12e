package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Import column order, matching the first columns of the Documents export.
const (
	colType = iota
	colNumber
	colAmount
	colCurrency
	colDueDate
	colIssueDate
	colIssuer
	colBank
	colBranch
	colAccount
	colDirection
	colNotes
)

var importDateLayouts = []string{dateLayout, "02.01.2006", "02/01/2006", "2.1.2006"}

// ImportedRow is one parsed data row. Err is set when the row could not be parsed.
type ImportedRow struct {
	Row     int // 1-based sheet row
	Request dto.CreateDocumentRequest
	Err     error
}

// ReadDocumentRows parses the first sheet of a workbook, skipping the header row and blank rows.
func ReadDocumentRows(r io.Reader) ([]ImportedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var out []ImportedRow
	for i := 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		req, err := parseDocumentRow(rows[i])
		out = append(out, ImportedRow{Row: i + 1, Request: req, Err: err})
	}
	return out, nil
}

func parseDocumentRow(row []string) (dto.CreateDocumentRequest, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var req dto.CreateDocumentRequest
	docType, err := parseDocumentType(cell(colType))
	if err != nil {
		return req, err
	}
	amount, err := parseAmount(cell(colAmount))
	if err != nil {
		return req, err
	}
	due, err := parseDate(cell(colDueDate))
	if err != nil {
		return req, fmt.Errorf("due date: %w", err)
	}

	req = dto.CreateDocumentRequest{
		DocumentType:   docType,
		DocumentNumber: cell(colNumber),
		Amount:         amount,
		CurrencyCode:   strings.ToUpper(cell(colCurrency)),
		DueDate:        due,
		IssuerName:     cell(colIssuer),
		BankName:       cell(colBank),
		BranchName:     cell(colBranch),
		AccountNumber:  cell(colAccount),
		Direction:      domain.DocumentDirection(strings.ToLower(cell(colDirection))),
		Notes:          cell(colNotes),
	}
	if raw := cell(colIssueDate); raw != "" {
		issue, err := parseDate(raw)
		if err != nil {
			return req, fmt.Errorf("issue date: %w", err)
		}
		req.IssueDate = &issue
	}
	return req, nil
}

func parseDocumentType(raw string) (domain.DocumentType, error) {
	switch strings.ToLower(raw) {
	case "check", "çek", "cek":
		return domain.DocumentTypeCheck, nil
	case "note", "senet":
		return domain.DocumentTypeNote, nil
	default:
		return "", fmt.Errorf("unknown document type %q", raw)
	}
}

// parseAmount accepts plain numbers and the Turkish 1.234,56 notation.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(raw, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return d, nil
}

// parseDate accepts the text layouts above and raw Excel date serials.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return domain.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
