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

// paymentImporter upserts yearly payment records; records are never removed.
type paymentImporter struct {
	BaseService
}

func adoptPayment(stored domain.Payment, row *domain.Payment) {
	row.PaymentID = stored.PaymentID
	row.AuditFields = stored.AuditFields
}

// paymentChanged reports whether any imported figure differs from the stored row.
func paymentChanged(stored, row domain.Payment) bool {
	if !legacy.SameDay(stored.DateFrom, row.DateFrom) ||
		!legacy.SameDay(stored.DateTo, row.DateTo) ||
		!stored.OpeningBalance.Equal(row.OpeningBalance) ||
		!stored.ClosingBalance.Equal(row.ClosingBalance) ||
		!stored.TotalCharges.Equal(row.TotalCharges) ||
		!stored.TotalPayments.Equal(row.TotalPayments) {
		return true
	}
	for i := range stored.Months {
		if !stored.Months[i].Charge.Equal(row.Months[i].Charge) ||
			!stored.Months[i].Payment.Equal(row.Months[i].Payment) {
			return true
		}
	}
	return false
}

// Import reconciles payment records of the apartments in index.
func (imp *paymentImporter) Import(ctx context.Context, uow portsrepo.ImportUnitOfWork, index ApartmentIndex, entries []parsers.PaymentEntry, errs *hoaErrors) (domain.EntityStats, error) {
	ctx = middleware.WithLogger(ctx, imp.GetLogger(ctx).With(slog.String("entity", "payments")))
	stats := domain.EntityStats{Total: len(entries)}

	incoming := make([]domain.Payment, 0, len(entries))
	apartmentIDs := make(map[string]struct{})
	for _, e := range entries {
		aptKey := domain.ApartmentKey(e.ExternalID, e.ApartmentCode)
		aptID, ok := index.Resolve(aptKey)
		if !ok {
			imp.LogDebug(ctx, "Skipping payments of unknown apartment", slog.String("apartment_key", aptKey), slog.Int("year", e.Year))
			stats.Skipped++
			continue
		}
		apartmentIDs[aptID] = struct{}{}
		incoming = append(incoming, domain.Payment{
			PaymentID:      uuid.NewString(),
			ApartmentID:    aptID,
			Year:           e.Year,
			DateFrom:       e.DateFrom,
			DateTo:         e.DateTo,
			OpeningBalance: e.OpeningBalance,
			ClosingBalance: e.ClosingBalance,
			TotalCharges:   e.TotalCharges,
			TotalPayments:  e.TotalPayments,
			Months:         e.Months,
		})
	}
	if len(incoming) == 0 {
		return stats, nil
	}

	stored, err := uow.FindPaymentsByApartments(ctx, sortedKeys(apartmentIDs))
	if err != nil {
		return stats, fmt.Errorf("failed to load payments: %w", err)
	}
	cs := diffByKey(incoming, indexByKey(stored, domain.Payment.Key), domain.Payment.Key, adoptPayment, paymentChanged)
	stats.Skipped += cs.duplicates

	if len(cs.creates) > 0 {
		inserted, err := uow.CreatePayments(ctx, cs.creates)
		if err != nil {
			imp.LogError(ctx, err, "Failed to create payments", slog.Int("count", len(cs.creates)))
			errs.add("payments: failed to create %d payment records: %v", len(cs.creates), err)
			stats.Skipped += len(cs.creates)
		} else {
			stats.Created = inserted
			stats.Skipped += len(cs.creates) - inserted
		}
	}

	for _, p := range cs.updates {
		if err := uow.UpdatePayment(ctx, p); err != nil {
			imp.LogError(ctx, err, "Failed to update payment record", slog.String("payment_key", p.Key()))
			errs.add("payments: failed to update %s: %v", p.Key(), err)
			stats.Skipped++
			continue
		}
		stats.Updated++
	}

	imp.LogInfo(ctx, "Payments reconciled",
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Int("unchanged", cs.unchanged),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, nil
}
