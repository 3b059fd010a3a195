package mapping

import (
	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/models"
)

// ToModelApartment converts a domain Apartment to a model Apartment
func ToModelApartment(d domain.Apartment) models.Apartment {
	return models.Apartment{
		ApartmentID:         d.ApartmentID,
		HOAID:               d.HOAID,
		ExternalOwnerID:     d.ExternalOwnerID,
		ExternalApartmentID: d.ExternalApartmentID,
		Owner:               d.Owner,
		Email:               d.Email,
		Address:             d.Address,
		Building:            d.Building,
		Number:              d.Number,
		PostalCode:          d.PostalCode,
		City:                d.City,
		ShareNumerator:      d.ShareNumerator,
		ShareDenominator:    d.ShareDenominator,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApartment converts a model Apartment to a domain Apartment
func ToDomainApartment(m models.Apartment) domain.Apartment {
	return domain.Apartment{
		ApartmentID:         m.ApartmentID,
		HOAID:               m.HOAID,
		ExternalOwnerID:     m.ExternalOwnerID,
		ExternalApartmentID: m.ExternalApartmentID,
		Owner:               m.Owner,
		Email:               m.Email,
		Address:             m.Address,
		Building:            m.Building,
		Number:              m.Number,
		PostalCode:          m.PostalCode,
		City:                m.City,
		ShareNumerator:      m.ShareNumerator,
		ShareDenominator:    m.ShareDenominator,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApartmentSlice converts a slice of model Apartments to domain Apartments
func ToDomainApartmentSlice(ms []models.Apartment) []domain.Apartment {
	ds := make([]domain.Apartment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApartment(m)
	}
	return ds
}
