package service

import (
	"context"
	"errors"
	"strings"

	"logistics/db"
	"logistics/internal/auth"
	"logistics/models"
)

type RegisterInput struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Company  string      `json:"company"`
	UserType models.Role `json:"userType"`
	FullName string      `json:"fullName"`
}

func (in RegisterInput) validate() error {
	switch {
	case strings.TrimSpace(in.Email) == "":
		return invalid("email is required")
	case in.Password == "":
		return invalid("password is required")
	case strings.TrimSpace(in.Company) == "":
		return invalid("company is required")
	case strings.TrimSpace(in.FullName) == "":
		return invalid("full name is required")
	case !models.ValidRole(in.UserType):
		return invalid("user type must be %s or %s", models.RoleCustomer, models.RoleSupplier)
	}
	return nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:    strings.TrimSpace(in.Email),
		Password: hash,
		Company:  strings.TrimSpace(in.Company),
		UserType: in.UserType,
		FullName: strings.TrimSpace(in.FullName),
	}
	err = s.store.InTx(ctx, func(tx *db.Storage) error {
		return tx.CreateUser(ctx, u)
	})
	if errors.Is(err, db.ErrDuplicateKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", u.ID, "role", u.UserType)
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// DemoAccounts - учётные записи для команды seed, пароль "password".
var DemoAccounts = []RegisterInput{
	{Email: "customer1@example.com", Company: "company1", UserType: models.RoleCustomer, FullName: "Customer One"},
	{Email: "customer2@example.com", Company: "company1", UserType: models.RoleCustomer, FullName: "Customer Two"},
	{Email: "customer3@example.com", Company: "company2", UserType: models.RoleCustomer, FullName: "Customer Three"},
	{Email: "customer4@example.com", Company: "company2", UserType: models.RoleCustomer, FullName: "Customer Four"},
	{Email: "supplier1@example.com", Company: "company3", UserType: models.RoleSupplier, FullName: "Supplier One"},
	{Email: "supplier2@example.com", Company: "company3", UserType: models.RoleSupplier, FullName: "Supplier Two"},
	{Email: "supplier3@example.com", Company: "company4", UserType: models.RoleSupplier, FullName: "Supplier Three"},
	{Email: "supplier4@example.com", Company: "company4", UserType: models.RoleSupplier, FullName: "Supplier Four"},
}

const demoPassword = "password"

// Seed создаёт демо-аккаунты, пропуская уже существующие.
// Возвращает число созданных.
func (s *Service) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, acc := range DemoAccounts {
		acc.Password = demoPassword
		_, err := s.Register(ctx, acc)
		if errors.Is(err, ErrEmailTaken) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
