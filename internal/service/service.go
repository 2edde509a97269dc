package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"logistics/db"
	"logistics/models"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrRequestComplete    = errors.New("request is complete")
	ErrAlreadyBid         = errors.New("company has already bid on this request")
	ErrBidResolved        = errors.New("bid already resolved")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// Actor - текущий пользователь (из токена)
type Actor struct {
	UserID  int
	Role    models.Role
	Company string
}

func ActorOf(u *models.User) Actor {
	return Actor{UserID: u.ID, Role: u.UserType, Company: u.Company}
}

// Service держит правила маркетплейса поверх хранилища. Каждая
// операция выполняется в одной транзакции.
type Service struct {
	store *db.Storage
	log   *slog.Logger
	now   func() time.Time
}

func New(store *db.Storage, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, log: log, now: time.Now}
}

// WithClock подменяет текущее время (проверка дат заявки)
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func requireRole(a Actor, role models.Role) error {
	if a.Role != role {
		return fmt.Errorf("%w: %s only", ErrForbidden, role)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// syncRequestStatus пересчитывает статус заявки по её ставкам и
// сохраняет его, если он изменился.
func syncRequestStatus(ctx context.Context, tx *db.Storage, r *models.Request) error {
	statuses, err := tx.ListBidStatuses(ctx, r.ID)
	if err != nil {
		return err
	}

	next := models.DeriveRequestStatus(statuses)
	if r.Status.Canonical() == next {
		return nil
	}
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, r.Status, next)
	}
	if err := tx.UpdateRequestStatus(ctx, r.ID, next); err != nil {
		return err
	}
	r.Status = next
	return nil
}
