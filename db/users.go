package db

import (
	"context"

	"logistics/models"
)

const userColumns = `id, email, password, company, user_type, full_name, created_date`

// CreateUser добавляет пользователя. Повторный email - ErrDuplicateKey.
func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	err := requireColumns("user",
		str("email", u.Email),
		str("password", u.Password),
		str("company", u.Company),
		str("user_type", string(u.UserType)),
		str("full_name", u.FullName),
	)
	if err != nil {
		return err
	}

	created := s.clock.Now()
	query := s.q.Rebind(`
        INSERT INTO "user" (email, password, company, user_type, full_name, created_date)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING id`)
	err = s.q.QueryRowxContext(ctx, query,
		u.Email, u.Password, u.Company, u.UserType, u.FullName, created).
		Scan(&u.ID)
	if err != nil {
		return classify(err)
	}
	u.CreatedDate = created
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	err := s.get(ctx, u, `SELECT `+userColumns+` FROM "user" WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	err := s.get(ctx, u, `SELECT `+userColumns+` FROM "user" WHERE email = ?`, email)
	if err != nil {
		return nil, err
	}
	return u, nil
}
