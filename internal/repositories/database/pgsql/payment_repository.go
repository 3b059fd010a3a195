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

const paymentColumns = `payment_id, apartment_id, year, date_from, date_to, opening_balance,
	closing_balance, total_charges, total_payments, monthly, created_at, updated_at`

// FindPaymentsByApartments implements portsrepo.PaymentReader.
func (u *pgxImportUnitOfWork) FindPaymentsByApartments(ctx context.Context, apartmentIDs []string) ([]domain.Payment, error) {
	if len(apartmentIDs) == 0 {
		return []domain.Payment{}, nil
	}
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE apartment_id = ANY($1);
	`
	rows, err := u.tx.Query(ctx, query, apartmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}
	out := make([]domain.Payment, 0, len(ms))
	for _, m := range ms {
		p, err := mapping.ToDomainPayment(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// CreatePayments implements portsrepo.PaymentWriter.
func (u *pgxImportUnitOfWork) CreatePayments(ctx context.Context, payments []domain.Payment) (int, error) {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		ON CONFLICT (apartment_id, year) DO NOTHING;
	`
	rows := make([][]any, 0, len(payments))
	for _, p := range payments {
		m, err := mapping.ToModelPayment(p)
		if err != nil {
			return 0, err
		}
		rows = append(rows, []any{
			m.PaymentID, m.ApartmentID, m.Year, m.DateFrom, m.DateTo, m.OpeningBalance,
			m.ClosingBalance, m.TotalCharges, m.TotalPayments, m.Monthly,
		})
	}
	inserted, err := execBatch(ctx, u.tx, query, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to create %d payments: %w", len(payments), err)
	}
	return inserted, nil
}

// UpdatePayment implements portsrepo.PaymentWriter.
func (u *pgxImportUnitOfWork) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m, err := mapping.ToModelPayment(payment)
	if err != nil {
		return err
	}
	query := `
		UPDATE payments SET
			date_from = $2, date_to = $3, opening_balance = $4, closing_balance = $5,
			total_charges = $6, total_payments = $7, monthly = $8, updated_at = now()
		WHERE payment_id = $1;
	`
	n, err := execOne(ctx, u.tx, query,
		m.PaymentID, m.DateFrom, m.DateTo, m.OpeningBalance, m.ClosingBalance,
		m.TotalCharges, m.TotalPayments, m.Monthly,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", m.PaymentID, err)
	}
	if n == 0 {
		return fmt.Errorf("failed to update payment %s: %w", m.PaymentID, apperrors.ErrNotFound)
	}
	return nil
}
