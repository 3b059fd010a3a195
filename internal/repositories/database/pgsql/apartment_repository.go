package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/hoa_billing_app/internal/apperrors"
	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/models"
	"github.com/SscSPs/hoa_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const apartmentColumns = `apartment_id, hoa_id, external_owner_id, external_apartment_id, owner, email,
	address, building, number, postal_code, city, share_numerator, share_denominator, is_active,
	created_at, updated_at`

// FindApartmentsByHOA implements portsrepo.ApartmentReader.
func (u *pgxImportUnitOfWork) FindApartmentsByHOA(ctx context.Context, hoaID string) ([]domain.Apartment, error) {
	query := `SELECT ` + apartmentColumns + `
		FROM apartments
		WHERE hoa_id = $1
		ORDER BY external_owner_id, external_apartment_id;
	`
	rows, err := u.tx.Query(ctx, query, hoaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query apartments of hoa %s: %w", hoaID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Apartment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan apartments of hoa %s: %w", hoaID, err)
	}
	return mapping.ToDomainApartmentSlice(ms), nil
}

// CreateApartments implements portsrepo.ApartmentWriter.
func (u *pgxImportUnitOfWork) CreateApartments(ctx context.Context, apartments []domain.Apartment) (int, error) {
	query := `
		INSERT INTO apartments (` + apartmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
		ON CONFLICT (hoa_id, external_owner_id, external_apartment_id) DO NOTHING;
	`
	rows := make([][]any, 0, len(apartments))
	for _, a := range apartments {
		m := mapping.ToModelApartment(a)
		rows = append(rows, []any{
			m.ApartmentID, m.HOAID, m.ExternalOwnerID, m.ExternalApartmentID, m.Owner, m.Email,
			m.Address, m.Building, m.Number, m.PostalCode, m.City,
			m.ShareNumerator, m.ShareDenominator, m.IsActive,
		})
	}
	inserted, err := execBatch(ctx, u.tx, query, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to create %d apartments: %w", len(apartments), err)
	}
	return inserted, nil
}

// UpdateApartment implements portsrepo.ApartmentWriter.
func (u *pgxImportUnitOfWork) UpdateApartment(ctx context.Context, apartment domain.Apartment) error {
	m := mapping.ToModelApartment(apartment)
	query := `
		UPDATE apartments SET
			owner = $2, email = $3, address = $4, building = $5, number = $6,
			postal_code = $7, city = $8, share_numerator = $9, share_denominator = $10,
			is_active = $11, updated_at = now()
		WHERE apartment_id = $1;
	`
	n, err := execOne(ctx, u.tx, query,
		m.ApartmentID, m.Owner, m.Email, m.Address, m.Building, m.Number,
		m.PostalCode, m.City, m.ShareNumerator, m.ShareDenominator, m.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update apartment %s: %w", m.ApartmentID, err)
	}
	if n == 0 {
		return fmt.Errorf("failed to update apartment %s: %w", m.ApartmentID, apperrors.ErrNotFound)
	}
	return nil
}

// DeactivateApartments implements portsrepo.ApartmentWriter.
func (u *pgxImportUnitOfWork) DeactivateApartments(ctx context.Context, apartmentIDs []string) (int, error) {
	if len(apartmentIDs) == 0 {
		return 0, nil
	}
	query := `
		UPDATE apartments SET is_active = false, updated_at = now()
		WHERE apartment_id = ANY($1) AND is_active;
	`
	n, err := execOne(ctx, u.tx, query, apartmentIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate %d apartments: %w", len(apartmentIDs), err)
	}
	return n, nil
}
