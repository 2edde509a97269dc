package service

import (
	"context"
	"fmt"
	"strings"

	"logistics/db"
	"logistics/models"
)

type LocationInput struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zipcode string `json:"zipcode"`
}

func (in LocationInput) validate() error {
	fields := []struct{ name, value string }{
		{"name", in.Name},
		{"street", in.Street},
		{"city", in.City},
		{"country", in.Country},
		{"zipcode", in.Zipcode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return invalid("%s is required", f.name)
		}
	}
	return nil
}

func (in LocationInput) apply(l *models.Location) {
	l.Name = strings.TrimSpace(in.Name)
	l.Street = strings.TrimSpace(in.Street)
	l.City = strings.TrimSpace(in.City)
	l.Country = strings.TrimSpace(in.Country)
	l.Zipcode = strings.TrimSpace(in.Zipcode)
}

func (s *Service) CreateLocation(ctx context.Context, a Actor, in LocationInput) (*models.Location, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	l := &models.Location{CreatedBy: a.UserID}
	in.apply(l)

	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		return tx.CreateLocation(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLocations - адреса компании пользователя
func (s *Service) ListLocations(ctx context.Context, a Actor) ([]models.Location, error) {
	return s.store.ListLocationsByCompany(ctx, a.Company)
}

// ownLocation загружает адрес и проверяет, что его создал a.
func ownLocation(ctx context.Context, tx *db.Storage, a Actor, id int) (*models.Location, error) {
	l, err := tx.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.CreatedBy != a.UserID {
		return nil, fmt.Errorf("%w: location %d belongs to another user", ErrForbidden, id)
	}
	return l, nil
}

func (s *Service) UpdateLocation(ctx context.Context, a Actor, id int, in LocationInput) (*models.Location, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var l *models.Location
	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		var err error
		if l, err = ownLocation(ctx, tx, a, id); err != nil {
			return err
		}
		in.apply(l)
		return tx.UpdateLocation(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) DeleteLocation(ctx context.Context, a Actor, id int) error {
	return s.store.InTx(ctx, func(tx *db.Storage) error {
		if _, err := ownLocation(ctx, tx, a, id); err != nil {
			return err
		}
		return tx.DeleteLocation(ctx, id)
	})
}
