package usecase

import (
	"context"
	"sync"

	"bookingHub/internal/modules/reservations/application/port"
	"bookingHub/internal/modules/reservations/domain"
)

type memoryStore struct {
	mu           sync.Mutex
	guests       map[uint]domain.Guest
	reservations map[uint]domain.Reservation
	nextID       uint
	commits      int
	rollbacks    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		guests:       make(map[uint]domain.Guest),
		reservations: make(map[uint]domain.Reservation),
	}
}

func (s *memoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

func (s *memoryStore) FindGuestByEmail(_ context.Context, email string) (*domain.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, guest := range s.guests {
		if guest.Email == email {
			found := guest
			return &found, nil
		}
	}
	return nil, port.ErrRecordNotFound
}

func (s *memoryStore) SaveGuest(_ context.Context, guest *domain.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var messages []string
	messages = append(messages, domain.GuestViolations(guest)...)
	for id, other := range s.guests {
		if other.Email == guest.Email && id != guest.ID {
			messages = append(messages, "Email has already been taken")
		}
	}
	if err := domain.NewRecordInvalid(messages...); err != nil {
		return err
	}
	if guest.ID == 0 {
		s.nextID++
		guest.ID = s.nextID
	}
	s.guests[guest.ID] = *guest
	return nil
}

func (s *memoryStore) FindReservation(_ context.Context, guestID uint, code string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reservation := range s.reservations {
		if reservation.GuestID == guestID && reservation.ReservationCode == code {
			found := reservation
			return &found, nil
		}
	}
	return nil, port.ErrRecordNotFound
}

func (s *memoryStore) FindReservationByCode(_ context.Context, code string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reservation := range s.reservations {
		if reservation.ReservationCode == code {
			found := reservation
			if guest, ok := s.guests[found.GuestID]; ok {
				found.Guest = &guest
			}
			return &found, nil
		}
	}
	return nil, port.ErrRecordNotFound
}

func (s *memoryStore) SaveReservation(_ context.Context, reservation *domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var messages []string
	messages = append(messages, domain.ReservationViolations(reservation)...)
	for id, other := range s.reservations {
		if other.ReservationCode == reservation.ReservationCode && id != reservation.ID {
			messages = append(messages, "Reservation code has already been taken")
		}
	}
	if err := domain.NewRecordInvalid(messages...); err != nil {
		return err
	}
	if reservation.ID == 0 {
		s.nextID++
		reservation.ID = s.nextID
	}
	stored := *reservation
	stored.Guest = nil
	s.reservations[reservation.ID] = stored
	return nil
}

func (s *memoryStore) reservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ReservationEvent
	err    error
}

func (p *recordingPublisher) PublishReservationEvent(_ context.Context, event domain.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) recorded() []domain.ReservationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ReservationEvent(nil), p.events...)
}
