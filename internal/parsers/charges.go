package parsers

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/hoa_billing_app/internal/utils/legacy"
	"github.com/shopspring/decimal"
)

// MinChargeFields is the shortest charge line accepted.
const MinChargeFields = 11

const chargesFile = "nal_czynsz.txt"

// ChargeEntry is one billed line of the charges file.
type ChargeEntry struct {
	ID          string
	ApartmentID string // apartment code from the export
	DateFrom    time.Time
	DateTo      time.Time
	Period      string
	LineNo      int
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
}

// ParseCharges parses the charges file.
func ParseCharges(text string, logger *slog.Logger) []ChargeEntry {
	logger = loggerOrDefault(logger)
	var entries []ChargeEntry
	for _, r := range records(text) {
		f := trimmedFields(r.text)
		if len(f) < MinChargeFields {
			continue
		}
		entry, err := parseChargeFields(f)
		if err != nil {
			skipLine(logger, chargesFile, r, "charge fields", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseChargeFields(f []string) (ChargeEntry, error) {
	var (
		e   ChargeEntry
		err error
	)
	e.ID = f[0]
	e.ApartmentID = f[1]
	if e.DateFrom, err = legacy.ParseDate(f[2]); err != nil {
		return e, err
	}
	if e.DateTo, err = legacy.ParseDate(f[3]); err != nil {
		return e, err
	}
	e.Period = f[4]
	if !IsPeriod(e.Period) {
		return e, fmt.Errorf("invalid period %q, want YYYYMM", e.Period)
	}
	if e.LineNo, err = strconv.Atoi(f[5]); err != nil {
		return e, fmt.Errorf("invalid line number %q: %w", f[5], err)
	}
	e.Description = f[6]
	if e.Quantity, err = legacy.ParseDecimal(f[7]); err != nil {
		return e, err
	}
	e.Unit = f[8]
	if e.UnitPrice, err = legacy.ParseDecimal(f[9]); err != nil {
		return e, err
	}
	if e.TotalAmount, err = legacy.ParseDecimal(f[10]); err != nil {
		return e, err
	}
	return e, nil
}

// IsPeriod reports whether s is a YYYYMM billing period with month 01-12.
func IsPeriod(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	month := int(s[4]-'0')*10 + int(s[5]-'0')
	return month >= 1 && month <= 12
}
