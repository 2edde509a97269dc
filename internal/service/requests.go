package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"logistics/db"
	"logistics/internal/statusfilter"
	"logistics/models"
)

const (
	minPallets = 1
	maxPallets = 10
	minWeight  = 1
	maxWeight  = 10000
)

type RequestInput struct {
	CollectionDate    time.Time
	DeliveryDate      time.Time
	CollectionAddress string
	DeliveryAddress   string
	Pallets           int
	Weight            int
}

func (in RequestInput) validate(now time.Time) error {
	today := truncateDay(now)
	switch {
	case in.CollectionDate.IsZero():
		return invalid("collection date is required")
	case in.DeliveryDate.IsZero():
		return invalid("delivery date is required")
	case truncateDay(in.CollectionDate).Before(today):
		return invalid("collection date must not be in the past")
	case !in.DeliveryDate.After(in.CollectionDate):
		return invalid("delivery date must be after the collection date")
	case strings.TrimSpace(in.CollectionAddress) == "":
		return invalid("collection address is required")
	case strings.TrimSpace(in.DeliveryAddress) == "":
		return invalid("delivery address is required")
	case in.Pallets < minPallets || in.Pallets > maxPallets:
		return invalid("pallets must be between %d and %d", minPallets, maxPallets)
	case in.Weight < minWeight || in.Weight > maxWeight:
		return invalid("weight must be between %d and %d kg", minWeight, maxWeight)
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (in RequestInput) apply(r *models.Request) {
	r.CollectionDate = in.CollectionDate.UTC()
	r.DeliveryDate = in.DeliveryDate.UTC()
	r.CollectionAddress = strings.TrimSpace(in.CollectionAddress)
	r.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	r.Pallets = in.Pallets
	r.Weight = in.Weight
}

// CreateRequest создаёт заявку от имени компании заказчика. Адреса
// копируются в заявку текстом.
func (s *Service) CreateRequest(ctx context.Context, a Actor, in RequestInput) (*models.Request, error) {
	if err := requireRole(a, models.RoleCustomer); err != nil {
		return nil, err
	}
	if err := in.validate(s.now()); err != nil {
		return nil, err
	}

	r := &models.Request{CreatedBy: a.UserID, Company: a.Company}
	in.apply(r)

	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		return tx.CreateRequest(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("request created", "request_id", r.ID, "company", r.Company)
	return r, nil
}

// companyRequest загружает заявку и проверяет, что она принадлежит
// компании a.
func companyRequest(ctx context.Context, tx *db.Storage, a Actor, id int) (*models.Request, error) {
	r, err := tx.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Company != a.Company {
		return nil, fmt.Errorf("%w: request %d belongs to another company", ErrForbidden, id)
	}
	return r, nil
}

// UpdateRequest меняет детали заявки. Завершённую заявку менять нельзя.
func (s *Service) UpdateRequest(ctx context.Context, a Actor, id int, in RequestInput) (*models.Request, error) {
	if err := requireRole(a, models.RoleCustomer); err != nil {
		return nil, err
	}
	if err := in.validate(s.now()); err != nil {
		return nil, err
	}

	var r *models.Request
	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		var err error
		if r, err = companyRequest(ctx, tx, a, id); err != nil {
			return err
		}
		if r.Status.Canonical() == models.RequestComplete {
			return ErrRequestComplete
		}
		in.apply(r)
		return tx.UpdateRequestDetails(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListCompanyRequests - заявки компании, новые первыми. filters - отмеченные
// чекбоксы статуса; сравниваются с каноническим текстом статуса.
func (s *Service) ListCompanyRequests(ctx context.Context, a Actor, filters []string) ([]models.Request, error) {
	if err := requireRole(a, models.RoleCustomer); err != nil {
		return nil, err
	}

	requests, err := s.store.ListRequests(ctx, db.RequestFilter{Company: a.Company})
	if err != nil {
		return nil, err
	}
	for i := range requests {
		requests[i].Status = requests[i].Status.Canonical()
	}
	return statusfilter.Apply(requests, filters, func(r models.Request) string {
		return r.Status.String()
	}), nil
}

type RequestDetails struct {
	Request models.Request   `json:"request"`
	Bids    []models.BidView `json:"bids"`
}

// GetRequestWithBids - заявка компании вместе со всеми ставками по ней.
func (s *Service) GetRequestWithBids(ctx context.Context, a Actor, id int) (*RequestDetails, error) {
	if err := requireRole(a, models.RoleCustomer); err != nil {
		return nil, err
	}

	out := &RequestDetails{}
	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		r, err := companyRequest(ctx, tx, a, id)
		if err != nil {
			return err
		}
		bids, err := tx.ListBidsForRequest(ctx, id)
		if err != nil {
			return err
		}
		r.Status = r.Status.Canonical()
		out.Request, out.Bids = *r, bids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
