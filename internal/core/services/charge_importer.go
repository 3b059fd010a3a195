package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hoa_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/hoa_billing_app/internal/middleware"
	"github.com/SscSPs/hoa_billing_app/internal/parsers"
	"github.com/SscSPs/hoa_billing_app/internal/utils/legacy"
)

// ChargeUpdateChunkSize is the number of charge updates written per sub-transaction.
const ChargeUpdateChunkSize = 100

// chargeImporter creates and updates charges. Charges are a ledger: re-imports
// never delete or deactivate them.
type chargeImporter struct {
	BaseService
}

func adoptCharge(stored domain.Charge, row *domain.Charge) {
	row.ChargeID = stored.ChargeID
	row.AuditFields = stored.AuditFields
}

// chargeChanged reports whether any imported field differs from the stored row.
func chargeChanged(stored, row domain.Charge) bool {
	return !legacy.SameDay(stored.DateFrom, row.DateFrom) ||
		!legacy.SameDay(stored.DateTo, row.DateTo) ||
		stored.Description != row.Description ||
		!stored.Quantity.Equal(row.Quantity) ||
		stored.Unit != row.Unit ||
		!stored.UnitPrice.Equal(row.UnitPrice) ||
		!stored.TotalAmount.Equal(row.TotalAmount)
}

// Import reconciles charges of the apartments in index. Entries whose apartment is
// not in index are skipped. A non-nil error means the stored state could not be read.
func (imp *chargeImporter) Import(ctx context.Context, uow portsrepo.ImportUnitOfWork, index ApartmentIndex, entries []parsers.ChargeEntry, errs *hoaErrors) (domain.EntityStats, error) {
	ctx = middleware.WithLogger(ctx, imp.GetLogger(ctx).With(slog.String("entity", "charges")))
	stats := domain.EntityStats{Total: len(entries)}

	incoming := make([]domain.Charge, 0, len(entries))
	apartmentIDs := make(map[string]struct{})
	periods := make(map[string]struct{})
	for _, e := range entries {
		aptKey := domain.ApartmentKey(e.ID, e.ApartmentID)
		aptID, ok := index.Resolve(aptKey)
		if !ok {
			imp.LogDebug(ctx, "Skipping charge of unknown apartment", slog.String("apartment_key", aptKey), slog.String("period", e.Period), slog.Int("line_no", e.LineNo))
			stats.Skipped++
			continue
		}
		apartmentIDs[aptID] = struct{}{}
		periods[e.Period] = struct{}{}
		incoming = append(incoming, domain.Charge{
			ChargeID:       uuid.NewString(),
			ApartmentID:    aptID,
			Period:         e.Period,
			ExternalLineNo: e.LineNo,
			DateFrom:       e.DateFrom,
			DateTo:         e.DateTo,
			Description:    e.Description,
			Quantity:       e.Quantity,
			Unit:           e.Unit,
			UnitPrice:      e.UnitPrice,
			TotalAmount:    e.TotalAmount,
		})
	}
	if len(incoming) == 0 {
		return stats, nil
	}

	stored, err := uow.FindChargesByApartmentsAndPeriods(ctx, sortedKeys(apartmentIDs), sortedKeys(periods))
	if err != nil {
		return stats, fmt.Errorf("failed to load charges: %w", err)
	}
	cs := diffByKey(incoming, indexByKey(stored, domain.Charge.Key), domain.Charge.Key, adoptCharge, chargeChanged)
	stats.Skipped += cs.duplicates

	if len(cs.creates) > 0 {
		inserted, err := uow.CreateCharges(ctx, cs.creates)
		if err != nil {
			imp.LogError(ctx, err, "Failed to create charges", slog.Int("count", len(cs.creates)))
			errs.add("charges: failed to create %d charges: %v", len(cs.creates), err)
			stats.Skipped += len(cs.creates)
		} else {
			stats.Created = inserted
			stats.Skipped += len(cs.creates) - inserted
		}
	}

	for i, batch := range chunk(cs.updates, ChargeUpdateChunkSize) {
		if err := uow.UpdateCharges(ctx, batch); err != nil {
			imp.LogError(ctx, err, "Failed to update charge batch", slog.Int("batch", i), slog.Int("count", len(batch)))
			errs.add("charges: failed to update batch %d (%d charges): %v", i+1, len(batch), err)
			stats.Skipped += len(batch)
			continue
		}
		stats.Updated += len(batch)
	}

	imp.LogInfo(ctx, "Charges reconciled",
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Int("unchanged", cs.unchanged),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, nil
}
