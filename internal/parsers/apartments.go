package parsers

import (
	"log/slog"
	"strings"

	"github.com/SscSPs/hoa_billing_app/internal/utils/legacy"
	"github.com/shopspring/decimal"
)

const (
	// CanonicalApartmentFields is the field count of a roster line whose owner name has no '#'.
	CanonicalApartmentFields = 14
	// MinApartmentFields is the shortest roster line accepted.
	MinApartmentFields = 13
	// OwnerRecordPrefix marks owner records; other ids are tenants or occupants.
	OwnerRecordPrefix = "W"
)

// Positions inside a normalised roster record.
const (
	aptFieldID = iota
	aptFieldOwner
	_ // unknown
	aptFieldExternalID
	aptFieldAddress
	aptFieldBuilding
	aptFieldNumber
	aptFieldPostalCode
	aptFieldCity
	aptFieldEmail
	_ // unknown
	_ // unknown
	aptFieldShareNumerator
	aptFieldShareDenominator
)

const apartmentsFile = "lok.txt"

// ApartmentEntry is one line of the apartments roster.
type ApartmentEntry struct {
	ID               string
	Owner            string
	Email            *string
	ExternalID       string
	Address          string
	Building         string
	Number           string
	PostalCode       string
	City             string
	ShareNumerator   decimal.Decimal
	ShareDenominator decimal.Decimal
	IsOwner          bool
}

// OwnerRecord is a roster line with the owner name reassembled.
// Fields always has canonical entries; Fields[1] equals Owner and missing
// trailing fields are empty strings.
type OwnerRecord struct {
	Owner  string
	Fields []string
}

// SplitOwnerRecord rebuilds the owner field of a roster line. Owner names may
// contain the delimiter, so every field beyond canonical belongs to the owner.
// It reports false when the line is shorter than canonical-1 fields.
func SplitOwnerRecord(fields []string, canonical int) (OwnerRecord, bool) {
	if canonical < 3 || len(fields) < canonical-1 {
		return OwnerRecord{}, false
	}
	extra := len(fields) - canonical
	if extra < 0 {
		extra = 0
	}
	ownerEnd := 2 + extra
	owner := strings.TrimSpace(strings.Join(fields[1:ownerEnd], legacy.FieldDelimiter))

	normalised := make([]string, canonical)
	normalised[0] = strings.TrimSpace(fields[0])
	normalised[1] = owner
	for i, f := range fields[ownerEnd:] {
		normalised[2+i] = strings.TrimSpace(f)
	}
	return OwnerRecord{Owner: owner, Fields: normalised}, true
}

// ParseApartments parses the roster file. Lines with fewer than MinApartmentFields
// fields are skipped silently, lines with malformed shares are logged and skipped.
func ParseApartments(text string, logger *slog.Logger) []ApartmentEntry {
	logger = loggerOrDefault(logger)
	var entries []ApartmentEntry
	for _, r := range records(text) {
		fields := legacy.Fields(r.text)
		if len(fields) < MinApartmentFields {
			continue
		}
		rec, ok := SplitOwnerRecord(fields, CanonicalApartmentFields)
		if !ok {
			continue
		}
		f := rec.Fields

		numerator, err := parseShare(f[aptFieldShareNumerator])
		if err != nil {
			skipLine(logger, apartmentsFile, r, "share numerator", err)
			continue
		}
		denominator, err := parseShare(f[aptFieldShareDenominator])
		if err != nil {
			skipLine(logger, apartmentsFile, r, "share denominator", err)
			continue
		}

		var email *string
		if e := f[aptFieldEmail]; e != "" {
			email = &e
		}

		entries = append(entries, ApartmentEntry{
			ID:               f[aptFieldID],
			Owner:            rec.Owner,
			Email:            email,
			ExternalID:       f[aptFieldExternalID],
			Address:          f[aptFieldAddress],
			Building:         f[aptFieldBuilding],
			Number:           f[aptFieldNumber],
			PostalCode:       f[aptFieldPostalCode],
			City:             f[aptFieldCity],
			ShareNumerator:   numerator,
			ShareDenominator: denominator,
			IsOwner:          strings.HasPrefix(f[aptFieldID], OwnerRecordPrefix),
		})
	}
	return entries
}

// parseShare treats an empty share as zero; tenant records often leave it blank.
func parseShare(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return legacy.ParseDecimal(s)
}

// GetUniqueApartments keeps the first owner record of every apartment code, in file order.
func GetUniqueApartments(entries []ApartmentEntry) []ApartmentEntry {
	seen := make(map[string]struct{}, len(entries))
	unique := make([]ApartmentEntry, 0, len(entries))
	for _, e := range entries {
		if !e.IsOwner {
			continue
		}
		if _, ok := seen[e.ExternalID]; ok {
			continue
		}
		seen[e.ExternalID] = struct{}{}
		unique = append(unique, e)
	}
	return unique
}
