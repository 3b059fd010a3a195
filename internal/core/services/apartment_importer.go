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

// apartmentImporter reconciles the roster of one HOA with stored apartments.
// Apartments missing from the roster are deactivated, never deleted.
type apartmentImporter struct {
	BaseService
}

func toApartment(hoaID string, e parsers.ApartmentEntry) domain.Apartment {
	return domain.Apartment{
		ApartmentID:         uuid.NewString(),
		HOAID:               hoaID,
		ExternalOwnerID:     e.ID,
		ExternalApartmentID: e.ExternalID,
		Owner:               e.Owner,
		Email:               e.Email,
		Address:             e.Address,
		Building:            e.Building,
		Number:              e.Number,
		PostalCode:          e.PostalCode,
		City:                e.City,
		ShareNumerator:      e.ShareNumerator,
		ShareDenominator:    e.ShareDenominator,
		IsActive:            true,
	}
}

func adoptApartment(stored domain.Apartment, row *domain.Apartment) {
	row.ApartmentID = stored.ApartmentID
	row.AuditFields = stored.AuditFields
}

// apartmentChanged reports whether any imported field differs from the stored row.
func apartmentChanged(stored, row domain.Apartment) bool {
	return stored.Owner != row.Owner ||
		!equalStringPtr(stored.Email, row.Email) ||
		stored.Address != row.Address ||
		stored.Building != row.Building ||
		stored.Number != row.Number ||
		stored.PostalCode != row.PostalCode ||
		stored.City != row.City ||
		!stored.ShareNumerator.Equal(row.ShareNumerator) ||
		!stored.ShareDenominator.Equal(row.ShareDenominator) ||
		stored.IsActive != row.IsActive
}

// Import creates, updates and deactivates apartments of hoaID so that the active
// set matches entries. The returned index resolves every apartment of entries
// that exists after the import. A non-nil error means the stored state could not be read.
func (imp *apartmentImporter) Import(ctx context.Context, uow portsrepo.ImportUnitOfWork, hoaID string, entries []parsers.ApartmentEntry, errs *hoaErrors) (domain.EntityStats, ApartmentIndex, error) {
	ctx = middleware.WithLogger(ctx, imp.GetLogger(ctx).With(slog.String("entity", "apartments")))
	stats := domain.EntityStats{Total: len(entries)}

	stored, err := uow.FindApartmentsByHOA(ctx, hoaID)
	if err != nil {
		return stats, nil, fmt.Errorf("failed to load apartments: %w", err)
	}
	existing := indexByKey(stored, domain.Apartment.Key)

	incoming := make([]domain.Apartment, 0, len(entries))
	for _, e := range entries {
		incoming = append(incoming, toApartment(hoaID, e))
	}
	cs := diffByKey(incoming, existing, domain.Apartment.Key, adoptApartment, apartmentChanged)
	stats.Skipped += cs.duplicates

	index := make(ApartmentIndex, len(cs.keys))
	for _, a := range incoming {
		if sa, ok := existing[a.Key()]; ok {
			index[a.Key()] = sa.ApartmentID
		}
	}

	if len(cs.creates) > 0 {
		inserted, err := uow.CreateApartments(ctx, cs.creates)
		if err != nil {
			imp.LogError(ctx, err, "Failed to create apartments", slog.Int("count", len(cs.creates)))
			errs.add("apartments: failed to create %d apartments: %v", len(cs.creates), err)
			stats.Skipped += len(cs.creates)
		} else {
			stats.Created = inserted
			stats.Skipped += len(cs.creates) - inserted
			for _, a := range cs.creates {
				index[a.Key()] = a.ApartmentID
			}
			if inserted < len(cs.creates) {
				// someone else inserted some of these rows; their ids are not ours
				if err := imp.reindexCreated(ctx, uow, hoaID, cs.creates, index); err != nil {
					return stats, nil, err
				}
			}
		}
	}

	for _, a := range cs.updates {
		if err := uow.UpdateApartment(ctx, a); err != nil {
			imp.LogError(ctx, err, "Failed to update apartment", slog.String("apartment_key", a.Key()))
			errs.add("apartments: failed to update %s: %v", a.Key(), err)
			stats.Skipped++
			continue
		}
		stats.Updated++
	}

	var stale []string
	for _, sa := range stored {
		if !sa.IsActive {
			continue
		}
		if _, ok := cs.keys[sa.Key()]; !ok {
			stale = append(stale, sa.ApartmentID)
		}
	}
	if len(stale) > 0 {
		deactivated, err := uow.DeactivateApartments(ctx, stale)
		if err != nil {
			imp.LogError(ctx, err, "Failed to deactivate apartments", slog.Int("count", len(stale)))
			errs.add("apartments: failed to deactivate %d apartments: %v", len(stale), err)
			stats.Skipped += len(stale)
		} else {
			stats.Deleted = deactivated
		}
	}

	imp.LogInfo(ctx, "Apartments reconciled",
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Int("unchanged", cs.unchanged),
		slog.Int("deactivated", stats.Deleted),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, index, nil
}

// reindexCreated replaces generated ids in index with the ids actually stored.
func (imp *apartmentImporter) reindexCreated(ctx context.Context, uow portsrepo.ImportUnitOfWork, hoaID string, created []domain.Apartment, index ApartmentIndex) error {
	stored, err := uow.FindApartmentsByHOA(ctx, hoaID)
	if err != nil {
		return fmt.Errorf("failed to reload apartments: %w", err)
	}
	byKey := indexByKey(stored, domain.Apartment.Key)
	for _, a := range created {
		if sa, ok := byKey[a.Key()]; ok {
			index[a.Key()] = sa.ApartmentID
		} else {
			delete(index, a.Key())
		}
	}
	return nil
}
