package handlers

import (
	"context"

	"logistics/internal/service"
	"logistics/models"
)

// Marketplace - операции, которые нужны обработчикам. Реализуется
// *service.Service; в тестах подменяется моком.
type Marketplace interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	CreateLocation(ctx context.Context, a service.Actor, in service.LocationInput) (*models.Location, error)
	ListLocations(ctx context.Context, a service.Actor) ([]models.Location, error)
	UpdateLocation(ctx context.Context, a service.Actor, id int, in service.LocationInput) (*models.Location, error)
	DeleteLocation(ctx context.Context, a service.Actor, id int) error

	CreateRequest(ctx context.Context, a service.Actor, in service.RequestInput) (*models.Request, error)
	UpdateRequest(ctx context.Context, a service.Actor, id int, in service.RequestInput) (*models.Request, error)
	ListCompanyRequests(ctx context.Context, a service.Actor, filters []string) ([]models.Request, error)
	GetRequestWithBids(ctx context.Context, a service.Actor, id int) (*service.RequestDetails, error)

	SubmitBid(ctx context.Context, a service.Actor, requestID int, amount float64) (*models.Bid, error)
	AcceptBid(ctx context.Context, a service.Actor, bidID int) (*models.Request, error)
	RejectBid(ctx context.Context, a service.Actor, bidID int) (*models.Request, error)
	ListCompanyBids(ctx context.Context, a service.Actor) ([]models.Bid, error)
	SupplierDashboard(ctx context.Context, a service.Actor) (*service.Dashboard, error)
	GetSupplierRequest(ctx context.Context, a service.Actor, id int) (*service.SupplierRequest, error)
}

var _ Marketplace = (*service.Service)(nil)
