package pgsql

import (
	portsrepo "github.com/SscSPs/hoa_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ImportUoW: newPgxImportRunner(dbPool),
	}
}
