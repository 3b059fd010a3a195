package parsers_test

import (
	"testing"

	"github.com/SscSPs/hoa_billing_app/internal/parsers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotifications_Sections(t *testing.T) {
	text := `Wspólnota Mieszkaniowa Testowa
Powiadomienie o wysokości opłat
od 01/02/2025

#
W00162#EXT1#1#Zarządzanie#1#szt#73#73,00
W00162#EXT1#2#Fundusz remontowy#50,5#m2#1,20#60,60
W00162#EXT1#3#Woda#abc#m3#10#10,00
W00163#EXT2#1#Zarządzanie#1#szt#73
Razem do zapłaty: 133,60
W00999#EXT9#1#Po stopce#1#szt#1#1,00
`
	entries := parsers.ParseNotifications(text, nil)
	require.Len(t, entries, 2)

	assert.Equal(t, "W00162", entries[0].ExternalID)
	assert.Equal(t, "EXT1", entries[0].ApartmentCode)
	assert.Equal(t, 1, entries[0].LineNo)
	assert.True(t, decimal.NewFromInt(73).Equal(entries[0].TotalAmount))

	assert.Equal(t, 2, entries[1].LineNo)
	assert.Equal(t, "Fundusz remontowy", entries[1].Description)
	assert.True(t, decimal.RequireFromString("60.60").Equal(entries[1].TotalAmount))
	assert.True(t, decimal.RequireFromString("50.5").Equal(entries[1].Quantity))
}

func TestParseNotifications_NoSeparator(t *testing.T) {
	text := "Nagłówek\nW1#E1#1#Opis#1#szt#2#2,00\nStopka\n"
	entries := parsers.ParseNotifications(text, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, "E1", entries[0].ApartmentCode)
}

func TestParseNotifications_HeaderOnly(t *testing.T) {
	assert.Empty(t, parsers.ParseNotifications("Nagłówek\nStopka\n", nil))
}
