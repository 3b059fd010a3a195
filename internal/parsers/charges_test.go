package parsers_test

import (
	"testing"
	"time"

	"github.com/SscSPs/hoa_billing_app/internal/parsers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCharges(t *testing.T) {
	text := "W00162#EXT1#01/01/2025#31/01/2025#202501#1#Zarządzanie#1#szt#73#73,00\n" +
		"short#line\n" +
		"W00162#EXT1#32/01/2025#31/01/2025#202501#2#Woda#1#m3#10#10,00\n" +
		"W00162#EXT1#01/01/2025#31/01/2025#202501#3#Śmieci#2,5#os#12,40#31,00\n"

	entries := parsers.ParseCharges(text, nil)
	require.Len(t, entries, 2)

	c := entries[0]
	assert.Equal(t, "W00162", c.ID)
	assert.Equal(t, "EXT1", c.ApartmentID)
	assert.Equal(t, "202501", c.Period)
	assert.Equal(t, 1, c.LineNo)
	assert.Equal(t, "Zarządzanie", c.Description)
	assert.Equal(t, "szt", c.Unit)
	assert.True(t, decimal.NewFromInt(1).Equal(c.Quantity))
	assert.True(t, decimal.NewFromInt(73).Equal(c.UnitPrice))
	assert.True(t, decimal.NewFromInt(73).Equal(c.TotalAmount))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), c.DateFrom)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local), c.DateTo)

	assert.Equal(t, 3, entries[1].LineNo)
	assert.True(t, decimal.RequireFromString("31").Equal(entries[1].TotalAmount))
}

func TestParseCharges_BadLineNumber(t *testing.T) {
	entries := parsers.ParseCharges("W1#E1#01/01/2025#31/01/2025#202501#x#Opis#1#szt#1#1", nil)
	assert.Empty(t, entries)
}

func TestParseCharges_RejectsMalformedPeriod(t *testing.T) {
	tests := []struct {
		period string
		ok     bool
	}{
		{"202501", true},
		{"202512", true},
		{"2025", false},
		{"2025-01", false},
		{"abcdefgh", false},
		{"20250a", false},
		{"202513", false},
		{"202500", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			line := "W1#E1#01/01/2025#31/01/2025#" + tt.period + "#1#Opis#1#szt#1#1"
			entries := parsers.ParseCharges(line, nil)
			if tt.ok {
				require.Len(t, entries, 1)
				assert.Equal(t, tt.period, entries[0].Period)
			} else {
				assert.Empty(t, entries)
			}
			assert.Equal(t, tt.ok, parsers.IsPeriod(tt.period))
		})
	}
}
