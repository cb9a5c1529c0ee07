// Package export renders portal listings as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ExpenseWorkbook renders expenses as a single-sheet workbook with a
// trailing total row
func ExpenseWorkbook(items []*entity.Expense) ([]byte, error) {
	f, sheet := newWorkbook("Expenses")
	defer f.Close()

	header := []interface{}{"ID", "Kind", "Project", "Category", "Description", "Amount", "Author", "Team", "Spent At"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	total := 0.0
	for i, e := range items {
		row := []interface{}{
			e.ID, e.Kind, e.ProjectName, e.Category, e.Description,
			e.Amount, e.AuthorName, e.Team, e.SpentAt.Format(dateLayout),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
		total += e.Amount
	}

	totalRow := []interface{}{"", "", "", "", "Total", total, "", "", ""}
	if err := writeRow(f, sheet, len(items)+2, totalRow); err != nil {
		return nil, err
	}

	return workbookBytes(f)
}

// EstimateWorkbook renders estimates as a single-sheet workbook
func EstimateWorkbook(items []*entity.Estimate) ([]byte, error) {
	f, sheet := newWorkbook("Estimates")
	defer f.Close()

	header := []interface{}{"ID", "Client", "Title", "Amount", "Status", "Issued At"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for i, e := range items {
		row := []interface{}{
			e.ID, e.ClientName, e.Title, e.Amount, e.Status, e.IssuedAt.Format(dateLayout),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return workbookBytes(f)
}

// InvoiceWorkbook renders invoices as a single-sheet workbook
func InvoiceWorkbook(items []*entity.Invoice) ([]byte, error) {
	f, sheet := newWorkbook("Invoices")
	defer f.Close()

	header := []interface{}{"ID", "Client", "Title", "Amount", "Status", "Issued At", "Due At"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for i, inv := range items {
		due := ""
		if inv.DueAt != nil {
			due = inv.DueAt.Format(dateLayout)
		}
		row := []interface{}{
			inv.ID, inv.ClientName, inv.Title, inv.Amount, inv.Status,
			inv.IssuedAt.Format(dateLayout), due,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return workbookBytes(f)
}

func newWorkbook(sheet string) (*excelize.File, string) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)
	return f, sheet
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func workbookBytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
