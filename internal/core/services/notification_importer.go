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
)

// notificationImporter keeps the notification lines of an HOA identical to the
// latest file. Lines no longer present are hard-deleted.
type notificationImporter struct {
	BaseService
}

func adoptNotification(stored domain.ChargeNotification, row *domain.ChargeNotification) {
	row.NotificationID = stored.NotificationID
	row.AuditFields = stored.AuditFields
}

// notificationChanged reports whether any imported field differs from the stored row.
func notificationChanged(stored, row domain.ChargeNotification) bool {
	return stored.Description != row.Description ||
		!stored.Quantity.Equal(row.Quantity) ||
		stored.Unit != row.Unit ||
		!stored.UnitPrice.Equal(row.UnitPrice) ||
		!stored.TotalAmount.Equal(row.TotalAmount)
}

// Import synchronises notification lines of hoaID with entries.
func (imp *notificationImporter) Import(ctx context.Context, uow portsrepo.ImportUnitOfWork, hoaID string, index ApartmentIndex, entries []parsers.NotificationEntry, errs *hoaErrors) (domain.EntityStats, error) {
	ctx = middleware.WithLogger(ctx, imp.GetLogger(ctx).With(slog.String("entity", "notifications")))
	stats := domain.EntityStats{Total: len(entries)}

	incoming := make([]domain.ChargeNotification, 0, len(entries))
	for _, e := range entries {
		aptKey := domain.ApartmentKey(e.ExternalID, e.ApartmentCode)
		aptID, ok := index.Resolve(aptKey)
		if !ok {
			imp.LogDebug(ctx, "Skipping notification of unknown apartment", slog.String("apartment_key", aptKey), slog.Int("line_no", e.LineNo))
			stats.Skipped++
			continue
		}
		incoming = append(incoming, domain.ChargeNotification{
			NotificationID: uuid.NewString(),
			ApartmentID:    aptID,
			ExternalID:     e.ExternalID,
			LineNo:         e.LineNo,
			Description:    e.Description,
			Quantity:       e.Quantity,
			Unit:           e.Unit,
			UnitPrice:      e.UnitPrice,
			TotalAmount:    e.TotalAmount,
		})
	}

	stored, err := uow.FindNotificationsByHOA(ctx, hoaID)
	if err != nil {
		return stats, fmt.Errorf("failed to load notifications: %w", err)
	}
	cs := diffByKey(incoming, indexByKey(stored, domain.ChargeNotification.Key), domain.ChargeNotification.Key, adoptNotification, notificationChanged)
	stats.Skipped += cs.duplicates

	if len(cs.creates) > 0 {
		inserted, err := uow.CreateNotifications(ctx, cs.creates)
		if err != nil {
			imp.LogError(ctx, err, "Failed to create notifications", slog.Int("count", len(cs.creates)))
			errs.add("notifications: failed to create %d notifications: %v", len(cs.creates), err)
			stats.Skipped += len(cs.creates)
		} else {
			stats.Created = inserted
			stats.Skipped += len(cs.creates) - inserted
		}
	}

	for _, n := range cs.updates {
		if err := uow.UpdateNotification(ctx, n); err != nil {
			imp.LogError(ctx, err, "Failed to update notification", slog.String("notification_key", n.Key()))
			errs.add("notifications: failed to update %s: %v", n.Key(), err)
			stats.Skipped++
			continue
		}
		stats.Updated++
	}

	var stale []string
	for _, sn := range stored {
		if _, ok := cs.keys[sn.Key()]; !ok {
			stale = append(stale, sn.NotificationID)
		}
	}
	if len(stale) > 0 {
		deleted, err := uow.DeleteNotifications(ctx, stale)
		if err != nil {
			imp.LogError(ctx, err, "Failed to delete stale notifications", slog.Int("count", len(stale)))
			errs.add("notifications: failed to delete %d notifications: %v", len(stale), err)
			stats.Skipped += len(stale)
		} else {
			stats.Deleted = deleted
		}
	}

	imp.LogInfo(ctx, "Notifications synchronised",
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Int("unchanged", cs.unchanged),
		slog.Int("deleted", stats.Deleted),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, nil
}
