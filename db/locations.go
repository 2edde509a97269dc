package db

import (
	"context"

	"logistics/models"
)

func (s *Storage) CreateLocation(ctx context.Context, l *models.Location) error {
	err := requireColumns("location",
		num("created_by", l.CreatedBy),
		str("name", l.Name),
		str("street", l.Street),
		str("city", l.City),
		str("country", l.Country),
		str("zipcode", l.Zipcode),
	)
	if err != nil {
		return err
	}

	created := s.clock.Now()
	query := s.q.Rebind(`
        INSERT INTO location (created_by, name, street, city, country, zipcode, created_date)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        RETURNING id`)
	err = s.q.QueryRowxContext(ctx, query,
		l.CreatedBy, l.Name, l.Street, l.City, l.Country, l.Zipcode, created).
		Scan(&l.ID)
	if err != nil {
		return classify(err)
	}
	l.CreatedDate = created
	return nil
}

func (s *Storage) GetLocation(ctx context.Context, id int) (*models.Location, error) {
	l := &models.Location{}
	query := `
        SELECT id, created_by, name, street, city, country, zipcode, created_date
        FROM location
        WHERE id = ?`
	if err := s.get(ctx, l, query, id); err != nil {
		return nil, err
	}
	return l, nil
}

// ListLocationsByCompany - адреса, созданные любым сотрудником компании
func (s *Storage) ListLocationsByCompany(ctx context.Context, company string) ([]models.Location, error) {
	query := `
        SELECT l.id, l.created_by, l.name, l.street, l.city, l.country, l.zipcode, l.created_date
        FROM location l
        JOIN "user" u ON u.id = l.created_by
        WHERE u.company = ?
        ORDER BY l.id`
	locations := []models.Location{}
	if err := s.selectAll(ctx, &locations, query, company); err != nil {
		return nil, err
	}
	return locations, nil
}

func (s *Storage) UpdateLocation(ctx context.Context, l *models.Location) error {
	err := requireColumns("location",
		str("name", l.Name),
		str("street", l.Street),
		str("city", l.City),
		str("country", l.Country),
		str("zipcode", l.Zipcode),
	)
	if err != nil {
		return err
	}
	query := `
        UPDATE location
        SET name = ?, street = ?, city = ?, country = ?, zipcode = ?
        WHERE id = ?`
	return s.exec(ctx, query, l.Name, l.Street, l.City, l.Country, l.Zipcode, l.ID)
}

// DeleteLocation - единственное удаление в хранилище. Заявки хранят
// копию адреса, поэтому на них удаление не влияет.
func (s *Storage) DeleteLocation(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM location WHERE id = ?`, id)
}
