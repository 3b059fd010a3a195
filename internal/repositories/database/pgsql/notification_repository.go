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

const notificationColumns = `notification_id, apartment_id, external_id, line_no, description,
	quantity, unit, unit_price, total_amount, created_at, updated_at`

// FindNotificationsByHOA implements portsrepo.NotificationReader.
func (u *pgxImportUnitOfWork) FindNotificationsByHOA(ctx context.Context, hoaID string) ([]domain.ChargeNotification, error) {
	query := `
		SELECT n.notification_id, n.apartment_id, n.external_id, n.line_no, n.description,
			n.quantity, n.unit, n.unit_price, n.total_amount, n.created_at, n.updated_at
		FROM charge_notifications n
		JOIN apartments a ON a.apartment_id = n.apartment_id
		WHERE a.hoa_id = $1;
	`
	rows, err := u.tx.Query(ctx, query, hoaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications of hoa %s: %w", hoaID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ChargeNotification])
	if err != nil {
		return nil, fmt.Errorf("failed to scan notifications of hoa %s: %w", hoaID, err)
	}
	out := make([]domain.ChargeNotification, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainNotification(m)
	}
	return out, nil
}

// CreateNotifications implements portsrepo.NotificationWriter.
func (u *pgxImportUnitOfWork) CreateNotifications(ctx context.Context, notifications []domain.ChargeNotification) (int, error) {
	query := `
		INSERT INTO charge_notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (apartment_id, line_no, external_id) DO NOTHING;
	`
	rows := make([][]any, 0, len(notifications))
	for _, n := range notifications {
		m := mapping.ToModelNotification(n)
		rows = append(rows, []any{
			m.NotificationID, m.ApartmentID, m.ExternalID, m.LineNo, m.Description,
			m.Quantity, m.Unit, m.UnitPrice, m.TotalAmount,
		})
	}
	inserted, err := execBatch(ctx, u.tx, query, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to create %d notifications: %w", len(notifications), err)
	}
	return inserted, nil
}

// UpdateNotification implements portsrepo.NotificationWriter.
func (u *pgxImportUnitOfWork) UpdateNotification(ctx context.Context, notification domain.ChargeNotification) error {
	m := mapping.ToModelNotification(notification)
	query := `
		UPDATE charge_notifications SET
			description = $2, quantity = $3, unit = $4, unit_price = $5, total_amount = $6, updated_at = now()
		WHERE notification_id = $1;
	`
	n, err := execOne(ctx, u.tx, query,
		m.NotificationID, m.Description, m.Quantity, m.Unit, m.UnitPrice, m.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to update notification %s: %w", m.NotificationID, err)
	}
	if n == 0 {
		return fmt.Errorf("failed to update notification %s: %w", m.NotificationID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteNotifications implements portsrepo.NotificationWriter.
func (u *pgxImportUnitOfWork) DeleteNotifications(ctx context.Context, notificationIDs []string) (int, error) {
	if len(notificationIDs) == 0 {
		return 0, nil
	}
	n, err := execOne(ctx, u.tx, `DELETE FROM charge_notifications WHERE notification_id = ANY($1);`, notificationIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %d notifications: %w", len(notificationIDs), err)
	}
	return n, nil
}
