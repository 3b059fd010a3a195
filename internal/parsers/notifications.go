package parsers

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/hoa_billing_app/internal/utils/legacy"
	"github.com/shopspring/decimal"
)

// MinNotificationFields is the shortest notification data line accepted.
const MinNotificationFields = 8

const notificationsFile = "pow_czynsz.txt"

// NotificationEntry is one data line of the charge notification file.
type NotificationEntry struct {
	ExternalID    string
	ApartmentCode string
	LineNo        int
	Description   string
	Quantity      decimal.Decimal
	Unit          string
	UnitPrice     decimal.Decimal
	TotalAmount   decimal.Decimal
}

// sectionState tracks where the parser is within a notification file.
type sectionState int

const (
	stateBeforeData sectionState = iota
	stateInData
	stateAfterData
)

func (s sectionState) String() string {
	switch s {
	case stateBeforeData:
		return "before-data"
	case stateInData:
		return "in-data"
	case stateAfterData:
		return "after-data"
	}
	return "unknown"
}

// next returns the state after seeing line, and whether line is a data line.
//
//	before-data --line with delimiter--> in-data (a pure separator line is consumed)
//	in-data     --line without delimiter--> after-data
//	after-data  is terminal
func (s sectionState) next(line string) (sectionState, bool) {
	hasDelimiter := strings.Contains(line, legacy.FieldDelimiter)
	switch s {
	case stateBeforeData:
		if !hasDelimiter {
			return stateBeforeData, false
		}
		if legacy.IsSeparatorLine(line) {
			return stateInData, false
		}
		return stateInData, true
	case stateInData:
		if !hasDelimiter {
			return stateAfterData, false
		}
		if legacy.IsSeparatorLine(line) {
			return stateInData, false
		}
		return stateInData, true
	}
	return stateAfterData, false
}

// ParseNotifications parses the charge notification file: header lines, a
// separator made of '#', data lines and footer lines without '#'.
func ParseNotifications(text string, logger *slog.Logger) []NotificationEntry {
	logger = loggerOrDefault(logger)
	var entries []NotificationEntry
	state := stateBeforeData
	for _, r := range records(text) {
		var isData bool
		state, isData = state.next(r.text)
		if !isData {
			continue
		}
		f := trimmedFields(r.text)
		if len(f) < MinNotificationFields {
			skipLine(logger, notificationsFile, r, "too few fields", nil)
			continue
		}
		entry, err := parseNotificationFields(f)
		if err != nil {
			skipLine(logger, notificationsFile, r, "notification fields", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseNotificationFields(f []string) (NotificationEntry, error) {
	var (
		e   NotificationEntry
		err error
	)
	e.ExternalID = f[0]
	e.ApartmentCode = f[1]
	if e.LineNo, err = strconv.Atoi(f[2]); err != nil {
		return e, fmt.Errorf("invalid line number %q: %w", f[2], err)
	}
	e.Description = f[3]
	if e.Quantity, err = legacy.ParseDecimal(f[4]); err != nil {
		return e, err
	}
	e.Unit = f[5]
	if e.UnitPrice, err = legacy.ParseDecimal(f[6]); err != nil {
		return e, err
	}
	if e.TotalAmount, err = legacy.ParseDecimal(f[7]); err != nil {
		return e, err
	}
	return e, nil
}
