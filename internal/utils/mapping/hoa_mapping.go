package mapping

import (
	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/models"
)

// ToDomainHOA converts a model HOA to a domain HOA
func ToDomainHOA(m models.HOA) domain.HOA {
	return domain.HOA{
		HOAID:       m.HOAID,
		ExternalID:  m.ExternalID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
