package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/models"
	"github.com/SscSPs/hoa_billing_app/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertHOA implements portsrepo.HOAWriter.
func (u *pgxImportUnitOfWork) UpsertHOA(ctx context.Context, externalID string) (*domain.HOA, error) {
	now := time.Now().UTC()
	insert := `
		INSERT INTO hoas (hoa_id, external_id, name, created_at, updated_at)
		VALUES ($1, $2, $2, $3, $3)
		ON CONFLICT (external_id) DO NOTHING;
	`
	if _, err := execOne(ctx, u.tx, insert, uuid.NewString(), externalID, now); err != nil {
		return nil, fmt.Errorf("failed to upsert hoa %s: %w", externalID, err)
	}

	query := `
		SELECT hoa_id, external_id, name, created_at, updated_at
		FROM hoas
		WHERE external_id = $1;
	`
	rows, err := u.tx.Query(ctx, query, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hoa %s: %w", externalID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.HOA])
	if err != nil {
		return nil, fmt.Errorf("failed to load hoa %s: %w", externalID, err)
	}
	hoa := mapping.ToDomainHOA(m)
	return &hoa, nil
}
