package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

func TestExpenseWorkbook(t *testing.T) {
	spent := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	items := []*entity.Expense{
		{ID: 1, Kind: entity.ExpenseGeneral, Category: "meal", Amount: 12000, AuthorName: "Kim", SpentAt: spent},
		{ID: 2, Kind: entity.ExpenseProject, ProjectName: "portal", Category: "transport", Amount: 8000, AuthorName: "Lee", SpentAt: spent},
	}

	data, err := ExpenseWorkbook(items)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Expenses")
	require.NoError(t, err)

	// Header, two items, total row
	require.Len(t, rows, 4)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "meal", rows[1][3])
	assert.Equal(t, "portal", rows[2][2])
	assert.Equal(t, "Total", rows[3][4])
	assert.Equal(t, "20000", rows[3][5])
}

func TestEstimateWorkbook(t *testing.T) {
	items := []*entity.Estimate{
		{ID: 1, ClientName: "Acme", Title: "Portal build", Amount: 5000000, Status: entity.EstimateSent,
			IssuedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	data, err := EstimateWorkbook(items)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Estimates")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[1][1])
	assert.Equal(t, "2025-05-01", rows[1][5])
}

func TestInvoiceWorkbookOptionalDueDate(t *testing.T) {
	due := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	items := []*entity.Invoice{
		{ID: 1, ClientName: "Acme", Title: "Phase 1", Amount: 3000000, Status: entity.InvoiceSent,
			IssuedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), DueAt: &due},
		{ID: 2, ClientName: "Beta", Title: "Phase 2", Amount: 1000000, Status: entity.InvoiceDraft,
			IssuedAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}

	data, err := InvoiceWorkbook(items)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-06-30", rows[1][6])
	// Row without a due date has no trailing cell
	assert.LessOrEqual(t, len(rows[2]), 7)
}

func TestEmptyWorkbookStillValid(t *testing.T) {
	data, err := EstimateWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Estimates")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
