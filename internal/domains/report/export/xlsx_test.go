package export_test

import (
	"bytes"
	"rental/internal/domains/report/export"
	"rental/internal/domains/report/model/dto"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPaymentsXLSX(t *testing.T) {
	res := dto.PaymentsResponse{
		Bookings: []dto.PaymentRow{
			{UnitName: "Chalet A", StartDate: "2024-05-20", CustomerName: "Sara", CustomerPhone: "+966501234567", Cash: decimal.NewFromInt(300), Transfer: decimal.NewFromInt(200), Total: decimal.NewFromInt(500)},
			{UnitName: "Chalet B", StartDate: "2024-05-18", CustomerName: "Omar", Transfer: decimal.NewFromInt(450), Total: decimal.NewFromInt(450)},
		},
		TotalCash:     decimal.NewFromInt(300),
		TotalTransfer: decimal.NewFromInt(650),
		TotalAll:      decimal.NewFromInt(950),
	}

	payload, err := export.PaymentsXLSX(res)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)

	defer file.Close()

	rows, err := file.GetRows(export.SheetPayments)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Unit", "Date", "Customer", "Phone", "Cash", "Transfer", "Total"}, rows[0])
	assert.Equal(t, []string{"Chalet A", "2024-05-20", "Sara", "+966501234567", "300", "200", "500"}, rows[1])
	assert.Equal(t, "Chalet B", rows[2][0])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "950", rows[3][6])
}

func TestPaymentsXLSX_Empty(t *testing.T) {
	payload, err := export.PaymentsXLSX(dto.PaymentsResponse{})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)

	defer file.Close()

	rows, err := file.GetRows(export.SheetPayments)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
