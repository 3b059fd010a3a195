package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
)

// HOAWriter defines write operations for HOA rows.
type HOAWriter interface {
	// UpsertHOA returns the HOA with the given external id, creating it (named after
	// the external id) when it does not exist yet. An existing row is left unchanged.
	UpsertHOA(ctx context.Context, externalID string) (*domain.HOA, error)
}

// ApartmentReader defines read operations for apartments.
type ApartmentReader interface {
	// FindApartmentsByHOA returns every apartment of the HOA, active or not.
	FindApartmentsByHOA(ctx context.Context, hoaID string) ([]domain.Apartment, error)
}

// ApartmentWriter defines write operations for apartments.
type ApartmentWriter interface {
	// CreateApartments inserts apartments in one bulk operation, ignoring rows whose
	// identity already exists. It returns the number of rows actually inserted.
	CreateApartments(ctx context.Context, apartments []domain.Apartment) (int, error)

	// UpdateApartment overwrites the mutable fields of an apartment, including IsActive.
	UpdateApartment(ctx context.Context, apartment domain.Apartment) error

	// DeactivateApartments clears IsActive on the given apartments and returns the number changed.
	DeactivateApartments(ctx context.Context, apartmentIDs []string) (int, error)
}

// ChargeReader defines read operations for charges.
type ChargeReader interface {
	// FindChargesByApartmentsAndPeriods returns charges of the given apartments within the given periods.
	FindChargesByApartmentsAndPeriods(ctx context.Context, apartmentIDs []string, periods []string) ([]domain.Charge, error)
}

// ChargeWriter defines write operations for charges.
type ChargeWriter interface {
	// CreateCharges bulk-inserts charges, ignoring identity conflicts. Returns rows inserted.
	CreateCharges(ctx context.Context, charges []domain.Charge) (int, error)

	// UpdateCharges updates all given charges atomically: either every row is written or none.
	UpdateCharges(ctx context.Context, charges []domain.Charge) error
}

// NotificationReader defines read operations for charge notifications.
type NotificationReader interface {
	// FindNotificationsByHOA returns all notification lines of apartments of the HOA.
	FindNotificationsByHOA(ctx context.Context, hoaID string) ([]domain.ChargeNotification, error)
}

// NotificationWriter defines write operations for charge notifications.
type NotificationWriter interface {
	// CreateNotifications bulk-inserts notification lines, ignoring identity conflicts. Returns rows inserted.
	CreateNotifications(ctx context.Context, notifications []domain.ChargeNotification) (int, error)

	// UpdateNotification overwrites the mutable fields of a notification line.
	UpdateNotification(ctx context.Context, notification domain.ChargeNotification) error

	// DeleteNotifications hard-deletes notification lines and returns the number removed.
	DeleteNotifications(ctx context.Context, notificationIDs []string) (int, error)
}

// PaymentReader defines read operations for yearly payment records.
type PaymentReader interface {
	// FindPaymentsByApartments returns payment records of the given apartments.
	FindPaymentsByApartments(ctx context.Context, apartmentIDs []string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for yearly payment records.
type PaymentWriter interface {
	// CreatePayments bulk-inserts payment records, ignoring identity conflicts. Returns rows inserted.
	CreatePayments(ctx context.Context, payments []domain.Payment) (int, error)

	// UpdatePayment overwrites the figures of a payment record.
	UpdatePayment(ctx context.Context, payment domain.Payment) error
}

// ImportUnitOfWork is every operation the import pipeline needs, scoped to one
// transaction. A failing write must not poison the transaction for later writes.
type ImportUnitOfWork interface {
	HOAWriter
	ApartmentReader
	ApartmentWriter
	ChargeReader
	ChargeWriter
	NotificationReader
	NotificationWriter
	PaymentReader
	PaymentWriter
}

// UnitOfWorkRunner opens import transactions.
type UnitOfWorkRunner interface {
	// RunInTx runs fn inside one transaction bounded by timeout. The transaction
	// commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context, uow ImportUnitOfWork) error) error
}
