package parsers

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/hoa_billing_app/internal/apperrors"
	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/utils/legacy"
)

// ParsedGroup holds the parsed contents of one HOA's files. The Has* flags tell
// an optional file that was not uploaded apart from one with no valid lines.
type ParsedGroup struct {
	HOAExternalID string
	Apartments    []ApartmentEntry // unique owner records only
	RosterLines   int
	Charges       []ChargeEntry
	Notifications []NotificationEntry
	Payments      []PaymentEntry

	HasCharges       bool
	HasNotifications bool
	HasPayments      bool
}

// ParseFileGroup decodes and parses every file of group.
func ParseFileGroup(group *domain.FileGroup, dec *legacy.Decoder, logger *slog.Logger) (*ParsedGroup, error) {
	logger = loggerOrDefault(logger).With(slog.String("hoa_id", group.HOAExternalID))
	if group.Apartments == nil {
		return nil, fmt.Errorf("hoa %s: %w", group.HOAExternalID, apperrors.ErrMissingApartmentsFile)
	}

	parsed := &ParsedGroup{HOAExternalID: group.HOAExternalID}

	text, err := dec.DecodeBuffer(group.Apartments.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", group.Apartments.Name, err)
	}
	roster := ParseApartments(text, logger)
	parsed.RosterLines = len(roster)
	parsed.Apartments = GetUniqueApartments(roster)

	if group.Charges != nil {
		if text, err = dec.DecodeBuffer(group.Charges.Content); err != nil {
			return nil, fmt.Errorf("%s: %w", group.Charges.Name, err)
		}
		parsed.Charges = ParseCharges(text, logger)
		parsed.HasCharges = true
	}
	if group.Notifications != nil {
		if text, err = dec.DecodeBuffer(group.Notifications.Content); err != nil {
			return nil, fmt.Errorf("%s: %w", group.Notifications.Name, err)
		}
		parsed.Notifications = ParseNotifications(text, logger)
		parsed.HasNotifications = true
	}
	if group.Payments != nil {
		if text, err = dec.DecodeBuffer(group.Payments.Content); err != nil {
			return nil, fmt.Errorf("%s: %w", group.Payments.Name, err)
		}
		parsed.Payments = ParsePayments(text, logger)
		parsed.HasPayments = true
	}

	logger.Debug("Parsed HOA file group",
		slog.Int("roster_lines", parsed.RosterLines),
		slog.Int("apartments", len(parsed.Apartments)),
		slog.Int("charges", len(parsed.Charges)),
		slog.Int("notifications", len(parsed.Notifications)),
		slog.Int("payments", len(parsed.Payments)),
	)
	return parsed, nil
}
