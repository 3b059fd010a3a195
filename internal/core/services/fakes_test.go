package services_test

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hoa_billing_app/internal/core/ports/repositories"
)

// memStore is an in-memory ImportUnitOfWork honouring the same identity
// constraints as the database schema.
type memStore struct {
	mu            sync.Mutex
	hoas          map[string]domain.HOA // by external id
	apartments    map[string]domain.Apartment
	charges       map[string]domain.Charge
	notifications map[string]domain.ChargeNotification
	payments      map[string]domain.Payment

	fail        map[string]error
	calls       map[string]int
	updateSizes []int
}

func newMemStore() *memStore {
	return &memStore{
		hoas:          map[string]domain.HOA{},
		apartments:    map[string]domain.Apartment{},
		charges:       map[string]domain.Charge{},
		notifications: map[string]domain.ChargeNotification{},
		payments:      map[string]domain.Payment{},
		fail:          map[string]error{},
		calls:         map[string]int{},
	}
}

var _ portsrepo.ImportUnitOfWork = (*memStore)(nil)

func (s *memStore) enter(op string) error {
	s.calls[op]++
	return s.fail[op]
}

func (s *memStore) UpsertHOA(_ context.Context, externalID string) (*domain.HOA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpsertHOA"); err != nil {
		return nil, err
	}
	h, ok := s.hoas[externalID]
	if !ok {
		now := time.Now()
		h = domain.HOA{HOAID: uuid.NewString(), ExternalID: externalID, Name: externalID,
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now}}
		s.hoas[externalID] = h
	}
	return &h, nil
}

func (s *memStore) FindApartmentsByHOA(_ context.Context, hoaID string) ([]domain.Apartment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("FindApartmentsByHOA"); err != nil {
		return nil, err
	}
	var out []domain.Apartment
	for _, a := range s.apartments {
		if a.HOAID == hoaID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

func (s *memStore) CreateApartments(_ context.Context, apartments []domain.Apartment) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateApartments"); err != nil {
		return 0, err
	}
	inserted := 0
	for _, a := range apartments {
		if s.apartmentByKey(a.HOAID, a.Key()) != nil {
			continue
		}
		s.apartments[a.ApartmentID] = a
		inserted++
	}
	return inserted, nil
}

func (s *memStore) apartmentByKey(hoaID, key string) *domain.Apartment {
	for _, a := range s.apartments {
		if a.HOAID == hoaID && a.Key() == key {
			return &a
		}
	}
	return nil
}

func (s *memStore) UpdateApartment(_ context.Context, apartment domain.Apartment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateApartment"); err != nil {
		return err
	}
	apartment.UpdatedAt = time.Now()
	s.apartments[apartment.ApartmentID] = apartment
	return nil
}

func (s *memStore) DeactivateApartments(_ context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeactivateApartments"); err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		if a, ok := s.apartments[id]; ok && a.IsActive {
			a.IsActive = false
			s.apartments[id] = a
			n++
		}
	}
	return n, nil
}

func (s *memStore) FindChargesByApartmentsAndPeriods(_ context.Context, apartmentIDs, periods []string) ([]domain.Charge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("FindChargesByApartmentsAndPeriods"); err != nil {
		return nil, err
	}
	apts := toSet(apartmentIDs)
	ps := toSet(periods)
	var out []domain.Charge
	for _, c := range s.charges {
		if _, ok := apts[c.ApartmentID]; !ok {
			continue
		}
		if _, ok := ps[c.Period]; !ok {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *memStore) CreateCharges(_ context.Context, charges []domain.Charge) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateCharges"); err != nil {
		return 0, err
	}
	inserted := 0
	for _, c := range charges {
		if keyExists(s.charges, c.Key()) {
			continue
		}
		s.charges[c.ChargeID] = c
		inserted++
	}
	return inserted, nil
}

func (s *memStore) UpdateCharges(_ context.Context, charges []domain.Charge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateSizes = append(s.updateSizes, len(charges))
	if err := s.enter("UpdateCharges"); err != nil {
		return err
	}
	for _, c := range charges {
		s.charges[c.ChargeID] = c
	}
	return nil
}

func (s *memStore) FindNotificationsByHOA(_ context.Context, hoaID string) ([]domain.ChargeNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("FindNotificationsByHOA"); err != nil {
		return nil, err
	}
	var out []domain.ChargeNotification
	for _, n := range s.notifications {
		if a, ok := s.apartments[n.ApartmentID]; ok && a.HOAID == hoaID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *memStore) CreateNotifications(_ context.Context, notifications []domain.ChargeNotification) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateNotifications"); err != nil {
		return 0, err
	}
	inserted := 0
	for _, n := range notifications {
		if keyExists(s.notifications, n.Key()) {
			continue
		}
		s.notifications[n.NotificationID] = n
		inserted++
	}
	return inserted, nil
}

func (s *memStore) UpdateNotification(_ context.Context, n domain.ChargeNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateNotification"); err != nil {
		return err
	}
	s.notifications[n.NotificationID] = n
	return nil
}

func (s *memStore) DeleteNotifications(_ context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteNotifications"); err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		if _, ok := s.notifications[id]; ok {
			delete(s.notifications, id)
			n++
		}
	}
	return n, nil
}

func (s *memStore) FindPaymentsByApartments(_ context.Context, apartmentIDs []string) ([]domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("FindPaymentsByApartments"); err != nil {
		return nil, err
	}
	apts := toSet(apartmentIDs)
	var out []domain.Payment
	for _, p := range s.payments {
		if _, ok := apts[p.ApartmentID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) CreatePayments(_ context.Context, payments []domain.Payment) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreatePayments"); err != nil {
		return 0, err
	}
	inserted := 0
	for _, p := range payments {
		if keyExists(s.payments, p.Key()) {
			continue
		}
		s.payments[p.PaymentID] = p
		inserted++
	}
	return inserted, nil
}

func (s *memStore) UpdatePayment(_ context.Context, p domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdatePayment"); err != nil {
		return err
	}
	s.payments[p.PaymentID] = p
	return nil
}

func keyExists[T interface{ Key() string }](rows map[string]T, key string) bool {
	for _, r := range rows {
		if r.Key() == key {
			return true
		}
	}
	return false
}

// apartment returns the stored apartment with the given export identity.
func (s *memStore) apartment(ownerID, aptID string) (domain.Apartment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apartments {
		if a.Key() == domain.ApartmentKey(ownerID, aptID) {
			return a, true
		}
	}
	return domain.Apartment{}, false
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// memRunner applies one transaction at a time to the shared store and puts
// the previous state back when fn fails or the context ends first.
type memRunner struct {
	store *memStore
	txMu  sync.Mutex
}

func (r *memRunner) RunInTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context, uow portsrepo.ImportUnitOfWork) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snap := r.store.snapshot()
	err := fn(ctx, r.store)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

type memSnapshot struct {
	hoas          map[string]domain.HOA
	apartments    map[string]domain.Apartment
	charges       map[string]domain.Charge
	notifications map[string]domain.ChargeNotification
	payments      map[string]domain.Payment
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		hoas:          maps.Clone(s.hoas),
		apartments:    maps.Clone(s.apartments),
		charges:       maps.Clone(s.charges),
		notifications: maps.Clone(s.notifications),
		payments:      maps.Clone(s.payments),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hoas = snap.hoas
	s.apartments = snap.apartments
	s.charges = snap.charges
	s.notifications = snap.notifications
	s.payments = snap.payments
}

// MockRunner is a mock type for the UnitOfWorkRunner interface. When the
// expectation returns nil, fn runs against uow.
type MockRunner struct {
	mock.Mock
	uow portsrepo.ImportUnitOfWork
}

func (m *MockRunner) RunInTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context, uow portsrepo.ImportUnitOfWork) error) error {
	args := m.Called(ctx, timeout)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.uow)
}
