package parsers

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/utils/legacy"
	"github.com/shopspring/decimal"
)

// Fixed positions of a payment record. Indices 7 and 8 are reserved and not read.
const (
	payFieldExternalID     = 0
	payFieldApartmentCode  = 1
	payFieldYear           = 2
	payFieldDateFrom       = 3
	payFieldDateTo         = 4
	payFieldOpeningDebt    = 5
	payFieldOpeningSurplus = 6
	payFieldFirstMonth     = 9
	payFieldClosingBalance = 33

	// MinPaymentFields is the shortest payment record accepted.
	MinPaymentFields = payFieldClosingBalance + 1
)

const paymentsFile = "wplaty.txt"

// PaymentEntry is the yearly record of one apartment.
type PaymentEntry struct {
	ExternalID     string
	ApartmentCode  string
	Year           int
	DateFrom       time.Time
	DateTo         time.Time
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	TotalCharges   decimal.Decimal
	TotalPayments  decimal.Decimal
	Months         [domain.MonthsPerYear]domain.PaymentMonth
}

// ParsePayments parses the payments file.
func ParsePayments(text string, logger *slog.Logger) []PaymentEntry {
	logger = loggerOrDefault(logger)
	var entries []PaymentEntry
	for _, r := range records(text) {
		f := trimmedFields(r.text)
		if len(f) < MinPaymentFields {
			continue
		}
		entry, err := parsePaymentFields(f)
		if err != nil {
			skipLine(logger, paymentsFile, r, "payment fields", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parsePaymentFields(f []string) (PaymentEntry, error) {
	var (
		e   PaymentEntry
		err error
	)
	e.ExternalID = f[payFieldExternalID]
	e.ApartmentCode = f[payFieldApartmentCode]
	if e.Year, err = strconv.Atoi(f[payFieldYear]); err != nil {
		return e, fmt.Errorf("invalid year %q: %w", f[payFieldYear], err)
	}
	if e.DateFrom, err = legacy.ParseDate(f[payFieldDateFrom]); err != nil {
		return e, err
	}
	if e.DateTo, err = legacy.ParseDate(f[payFieldDateTo]); err != nil {
		return e, err
	}
	debt, err := legacy.ParseDecimal(f[payFieldOpeningDebt])
	if err != nil {
		return e, err
	}
	surplus, err := legacy.ParseDecimal(f[payFieldOpeningSurplus])
	if err != nil {
		return e, err
	}
	// the export keeps debt and surplus apart instead of a signed balance
	e.OpeningBalance = surplus.Sub(debt)

	e.TotalCharges = decimal.Zero
	e.TotalPayments = decimal.Zero
	for i := 0; i < domain.MonthsPerYear; i++ {
		charge, err := legacy.ParseDecimal(f[payFieldFirstMonth+2*i])
		if err != nil {
			return e, fmt.Errorf("month %d charge: %w", i+1, err)
		}
		payment, err := legacy.ParseDecimal(f[payFieldFirstMonth+2*i+1])
		if err != nil {
			return e, fmt.Errorf("month %d payment: %w", i+1, err)
		}
		e.Months[i] = domain.PaymentMonth{Charge: charge, Payment: payment}
		e.TotalCharges = e.TotalCharges.Add(charge)
		e.TotalPayments = e.TotalPayments.Add(payment)
	}

	if e.ClosingBalance, err = legacy.ParseDecimal(f[payFieldClosingBalance]); err != nil {
		return e, err
	}
	return e, nil
}
