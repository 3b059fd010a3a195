package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/hoa_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hoa_billing_app/internal/core/ports/services"
	"github.com/SscSPs/hoa_billing_app/internal/platform/config"
	"github.com/SscSPs/hoa_billing_app/internal/utils/legacy"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	codepage := cfg.LegacyCodepage
	if codepage == "" {
		codepage = legacy.DefaultCodepage
	}
	decoder, err := legacy.NewDecoder(codepage)
	if err != nil {
		return nil, fmt.Errorf("invalid LEGACY_CODEPAGE: %w", err)
	}

	container := &portssvc.ServiceContainer{}
	container.Import = NewImportService(
		repos.ImportUoW,
		WithDecoder(decoder),
		WithTxTimeout(cfg.ImportTxTimeout),
		WithMaxConcurrentHOAs(cfg.ImportMaxConcurrentHOAs),
	)
	return container, nil
}
