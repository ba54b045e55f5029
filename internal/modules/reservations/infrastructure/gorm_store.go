package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookingHub/internal/modules/reservations/application/port"
	"bookingHub/internal/modules/reservations/domain"
)

const (
	msgEmailTaken = "Email has already been taken"
	msgCodeTaken  = "Reservation code has already been taken"
)

type txKey struct{}

// Store implements the guest and reservation repositories and the
// transactor on top of gorm.
type Store struct {
	db *gorm.DB
}

var (
	_ port.GuestRepository       = (*Store)(nil)
	_ port.ReservationRepository = (*Store)(nil)
	_ port.Transactor            = (*Store)(nil)
)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// conn returns the transaction bound to ctx, or the root handle.
func (s *Store) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

// WithinTransaction joins the transaction already bound to ctx, if any.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "WithinTransaction")
	defer span.End()

	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	if err != nil {
		span.AddEvent("Rollback")
		recordSpanError(span, err)
		return err
	}
	span.AddEvent("Commit")
	return nil
}

func (s *Store) FindGuestByEmail(ctx context.Context, email string) (*domain.Guest, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "FindGuestByEmail")
	defer span.End()

	var rec GuestRecord
	err := s.conn(ctx).Where("email = ?", email).First(&rec).Error
	if err != nil {
		return nil, s.lookupError(span, "guest", err)
	}
	return guestFromRecord(&rec), nil
}

func (s *Store) SaveGuest(ctx context.Context, guest *domain.Guest) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "SaveGuest", trace.WithAttributes(attribute.Bool("guest.persisted", guest.Persisted())))
	defer span.End()

	messages := domain.GuestViolations(guest)
	if guest.Email != "" {
		taken, err := s.taken(ctx, &GuestRecord{}, "email", guest.Email, guest.ID)
		if err != nil {
			recordSpanError(span, err)
			return err
		}
		if taken {
			messages = append(messages, msgEmailTaken)
		}
	}
	if err := domain.NewRecordInvalid(messages...); err != nil {
		recordSpanError(span, err)
		return err
	}

	rec := guestToRecord(guest)
	if err := s.conn(ctx).Omit(clause.Associations).Save(&rec).Error; err != nil {
		err = translateWriteError(err, msgEmailTaken)
		recordSpanError(span, err)
		return err
	}
	guest.ID = rec.ID
	guest.CreatedAt = rec.CreatedAt
	guest.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *Store) FindReservation(ctx context.Context, guestID uint, code string) (*domain.Reservation, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "FindReservation", trace.WithAttributes(attribute.String("reservation.code", code)))
	defer span.End()

	var rec ReservationRecord
	err := s.conn(ctx).
		Preload("Guest").
		Where("guest_id = ? AND reservation_code = ?", guestID, code).
		First(&rec).Error
	if err != nil {
		return nil, s.lookupError(span, "reservation", err)
	}
	return reservationFromRecord(&rec), nil
}

func (s *Store) FindReservationByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "FindReservationByCode", trace.WithAttributes(attribute.String("reservation.code", code)))
	defer span.End()

	var rec ReservationRecord
	err := s.conn(ctx).Preload("Guest").Where("reservation_code = ?", code).First(&rec).Error
	if err != nil {
		return nil, s.lookupError(span, "reservation", err)
	}
	return reservationFromRecord(&rec), nil
}

func (s *Store) SaveReservation(ctx context.Context, reservation *domain.Reservation) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "SaveReservation", trace.WithAttributes(
		attribute.String("reservation.code", reservation.ReservationCode),
		attribute.Bool("reservation.persisted", reservation.Persisted()),
	))
	defer span.End()

	messages := domain.ReservationViolations(reservation)
	if reservation.ReservationCode != "" {
		taken, err := s.taken(ctx, &ReservationRecord{}, "reservation_code", reservation.ReservationCode, reservation.ID)
		if err != nil {
			recordSpanError(span, err)
			return err
		}
		if taken {
			messages = append(messages, msgCodeTaken)
		}
	}
	if err := domain.NewRecordInvalid(messages...); err != nil {
		recordSpanError(span, err)
		return err
	}

	rec := reservationToRecord(reservation)
	if err := s.conn(ctx).Omit(clause.Associations).Save(&rec).Error; err != nil {
		err = translateWriteError(err, msgCodeTaken)
		recordSpanError(span, err)
		return err
	}
	reservation.ID = rec.ID
	reservation.CreatedAt = rec.CreatedAt
	reservation.UpdatedAt = rec.UpdatedAt
	return nil
}

// taken reports whether another row of model already holds value in column.
func (s *Store) taken(ctx context.Context, model any, column, value string, selfID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(model).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Where("id <> ?", selfID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check %s uniqueness: %w", column, err)
	}
	return count > 0, nil
}

func (s *Store) lookupError(span trace.Span, what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		span.AddEvent("NotFound")
		return port.ErrRecordNotFound
	}
	err = fmt.Errorf("find %s: %w", what, err)
	recordSpanError(span, err)
	return err
}

// translateWriteError turns a unique index violation that slipped past the
// pre-write check into the same validation failure.
func translateWriteError(err error, takenMessage string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return domain.NewRecordInvalid(takenMessage)
	}
	return fmt.Errorf("save record: %w", err)
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
