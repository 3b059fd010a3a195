package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/models"
	"github.com/SscSPs/hoa_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const chargeColumns = `charge_id, apartment_id, period, external_line_no, date_from, date_to,
	description, quantity, unit, unit_price, total_amount, created_at, updated_at`

// FindChargesByApartmentsAndPeriods implements portsrepo.ChargeReader.
func (u *pgxImportUnitOfWork) FindChargesByApartmentsAndPeriods(ctx context.Context, apartmentIDs []string, periods []string) ([]domain.Charge, error) {
	if len(apartmentIDs) == 0 || len(periods) == 0 {
		return []domain.Charge{}, nil
	}
	query := `SELECT ` + chargeColumns + `
		FROM charges
		WHERE apartment_id = ANY($1) AND period = ANY($2);
	`
	rows, err := u.tx.Query(ctx, query, apartmentIDs, periods)
	if err != nil {
		return nil, fmt.Errorf("failed to query charges: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Charge])
	if err != nil {
		return nil, fmt.Errorf("failed to scan charges: %w", err)
	}
	charges := make([]domain.Charge, len(ms))
	for i, m := range ms {
		charges[i] = mapping.ToDomainCharge(m)
	}
	return charges, nil
}

// CreateCharges implements portsrepo.ChargeWriter.
func (u *pgxImportUnitOfWork) CreateCharges(ctx context.Context, charges []domain.Charge) (int, error) {
	query := `
		INSERT INTO charges (` + chargeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		ON CONFLICT (apartment_id, period, external_line_no) DO NOTHING;
	`
	rows := make([][]any, 0, len(charges))
	for _, c := range charges {
		m := mapping.ToModelCharge(c)
		rows = append(rows, []any{
			m.ChargeID, m.ApartmentID, m.Period, m.ExternalLineNo, m.DateFrom, m.DateTo,
			m.Description, m.Quantity, m.Unit, m.UnitPrice, m.TotalAmount,
		})
	}
	inserted, err := execBatch(ctx, u.tx, query, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to create %d charges: %w", len(charges), err)
	}
	return inserted, nil
}

// UpdateCharges implements portsrepo.ChargeWriter.
func (u *pgxImportUnitOfWork) UpdateCharges(ctx context.Context, charges []domain.Charge) error {
	query := `
		UPDATE charges SET
			date_from = $2, date_to = $3, description = $4, quantity = $5,
			unit = $6, unit_price = $7, total_amount = $8, updated_at = now()
		WHERE charge_id = $1;
	`
	rows := make([][]any, 0, len(charges))
	for _, c := range charges {
		m := mapping.ToModelCharge(c)
		rows = append(rows, []any{
			m.ChargeID, m.DateFrom, m.DateTo, m.Description, m.Quantity, m.Unit, m.UnitPrice, m.TotalAmount,
		})
	}
	if _, err := execBatch(ctx, u.tx, query, rows); err != nil {
		return fmt.Errorf("failed to update %d charges: %w", len(charges), err)
	}
	return nil
}
