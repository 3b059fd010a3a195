package parsers_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/SscSPs/hoa_billing_app/internal/parsers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentLine(year string, closing string) string {
	fields := []string{"W00162", "EXT1", year, "01/01/2025", "31/12/2025", "100,00", "25,50", "r1", "r2"}
	for m := 1; m <= 12; m++ {
		fields = append(fields, fmt.Sprintf("%d,00", m), "10,00")
	}
	fields = append(fields, closing)
	return strings.Join(fields, "#")
}

func TestParsePayments(t *testing.T) {
	entries := parsers.ParsePayments(paymentLine("2025", "-12,25"), nil)
	require.Len(t, entries, 1)

	p := entries[0]
	assert.Equal(t, "W00162", p.ExternalID)
	assert.Equal(t, "EXT1", p.ApartmentCode)
	assert.Equal(t, 2025, p.Year)
	assert.True(t, decimal.RequireFromString("-74.5").Equal(p.OpeningBalance), p.OpeningBalance.String())
	assert.True(t, decimal.NewFromInt(78).Equal(p.TotalCharges), p.TotalCharges.String())
	assert.True(t, decimal.NewFromInt(120).Equal(p.TotalPayments))
	assert.True(t, decimal.RequireFromString("-12.25").Equal(p.ClosingBalance))
	assert.True(t, decimal.NewFromInt(3).Equal(p.Months[2].Charge))
	assert.True(t, decimal.NewFromInt(10).Equal(p.Months[11].Payment))
}

func TestParsePayments_SkipsInvalid(t *testing.T) {
	text := strings.Join([]string{
		paymentLine("rok", "0,00"),
		paymentLine("2024", "n/a"),
		"W1#E1#2024",
		paymentLine("2023", "1,00"),
	}, "\n")

	entries := parsers.ParsePayments(text, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, 2023, entries[0].Year)
}
