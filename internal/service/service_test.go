package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"logistics/db"
	"logistics/db/migrations"
	"logistics/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2030, 4, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, "sqlite3", filepath.Join(t.TempDir(), "logistics.db"), db.PoolConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, migrations.Run(conn.DB, "sqlite3"))

	return New(db.NewStorage(conn), nil).WithClock(func() time.Time { return testNow })
}

func register(t *testing.T, s *Service, email string, role models.Role, company string) Actor {
	t.Helper()
	u, err := s.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "password",
		Company:  company,
		UserType: role,
		FullName: "Test User",
	})
	require.NoError(t, err)
	return ActorOf(u)
}

func validRequest() RequestInput {
	return RequestInput{
		CollectionDate:    time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		DeliveryDate:      time.Date(2030, 5, 3, 0, 0, 0, 0, time.UTC),
		CollectionAddress: "Depot, 1 High St, Leeds, UK, LS1 1AA",
		DeliveryAddress:   "Store, 2 Low Rd, York, UK, YO1 2BB",
		Pallets:           3,
		Weight:            900,
	}
}

// marketplace - заказчик с заявкой и два поставщика из разных компаний
type marketplace struct {
	svc       *Service
	customer  Actor
	supplierA Actor
	supplierB Actor
	request   *models.Request
}

func newMarketplace(t *testing.T) *marketplace {
	t.Helper()
	s := newTestService(t)
	m := &marketplace{
		svc:       s,
		customer:  register(t, s, "customer@x.com", models.RoleCustomer, "company1"),
		supplierA: register(t, s, "a@x.com", models.RoleSupplier, "company3"),
		supplierB: register(t, s, "b@x.com", models.RoleSupplier, "company4"),
	}
	r, err := s.CreateRequest(context.Background(), m.customer, validRequest())
	require.NoError(t, err)
	m.request = r
	return m
}

func (m *marketplace) status(t *testing.T) models.RequestStatus {
	t.Helper()
	r, err := m.svc.store.GetRequest(context.Background(), m.request.ID)
	require.NoError(t, err)
	return r.Status.Canonical()
}

func TestRegister(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	a := register(t, s, "customer@x.com", models.RoleCustomer, "company1")
	assert.Positive(t, a.UserID)

	stored, err := s.store.GetUser(ctx, a.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, "password", stored.Password)

	_, err = s.Register(ctx, RegisterInput{Email: "customer@x.com", Password: "p", Company: "c", UserType: models.RoleSupplier, FullName: "X"})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Register(ctx, RegisterInput{Email: "new@x.com", Password: "p", Company: "c", UserType: "Admin", FullName: "X"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = s.Register(ctx, RegisterInput{Email: "new@x.com", Password: "p", UserType: models.RoleCustomer, FullName: "X"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAuthenticate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, "customer@x.com", models.RoleCustomer, "company1")

	u, err := s.Authenticate(ctx, "customer@x.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "company1", u.Company)

	_, err = s.Authenticate(ctx, "customer@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody@x.com", "password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeed(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	n, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DemoAccounts), n)

	n, err = s.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.Authenticate(ctx, "supplier4@example.com", "password")
	require.NoError(t, err)
}

func TestLocationOwnership(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	owner := register(t, s, "owner@x.com", models.RoleCustomer, "company1")
	colleague := register(t, s, "colleague@x.com", models.RoleCustomer, "company1")

	in := LocationInput{Name: "Depot", Street: "1 High St", City: "Leeds", Country: "UK", Zipcode: "LS1 1AA"}
	l, err := s.CreateLocation(ctx, owner, in)
	require.NoError(t, err)

	listed, err := s.ListLocations(ctx, colleague)
	require.NoError(t, err)
	require.Len(t, listed, 1, "locations are shared within the company")

	in.City = "Bradford"
	_, err = s.UpdateLocation(ctx, colleague, l.ID, in)
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, s.DeleteLocation(ctx, colleague, l.ID), ErrForbidden)

	updated, err := s.UpdateLocation(ctx, owner, l.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Bradford", updated.City)

	require.NoError(t, s.DeleteLocation(ctx, owner, l.ID))
	require.ErrorIs(t, s.DeleteLocation(ctx, owner, l.ID), db.ErrNotFound)

	_, err = s.CreateLocation(ctx, owner, LocationInput{Name: "Empty"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateRequestValidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	customer := register(t, s, "customer@x.com", models.RoleCustomer, "company1")
	supplier := register(t, s, "supplier@x.com", models.RoleSupplier, "company3")

	tests := []struct {
		name   string
		mutate func(*RequestInput)
	}{
		{"collection in the past", func(in *RequestInput) { in.CollectionDate = testNow.AddDate(0, 0, -1) }},
		{"delivery before collection", func(in *RequestInput) { in.DeliveryDate = in.CollectionDate.Add(-time.Hour) }},
		{"delivery equals collection", func(in *RequestInput) { in.DeliveryDate = in.CollectionDate }},
		{"zero pallets", func(in *RequestInput) { in.Pallets = 0 }},
		{"too many pallets", func(in *RequestInput) { in.Pallets = 11 }},
		{"too heavy", func(in *RequestInput) { in.Weight = 10001 }},
		{"missing address", func(in *RequestInput) { in.DeliveryAddress = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRequest()
			tt.mutate(&in)
			_, err := s.CreateRequest(ctx, customer, in)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	today := validRequest()
	today.CollectionDate = testNow.Add(-time.Hour)
	_, err := s.CreateRequest(ctx, customer, today)
	require.NoError(t, err, "collection earlier today is allowed")

	_, err = s.CreateRequest(ctx, supplier, validRequest())
	require.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitBidMovesRequestToBidsReceived(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()
	require.Equal(t, models.RequestAwaitingBids, m.status(t))

	bid, err := m.svc.SubmitBid(ctx, m.supplierA, m.request.ID, 120)
	require.NoError(t, err)
	assert.Equal(t, models.BidAwaitingResponse, bid.Status)
	assert.Equal(t, models.RequestBidsReceived, m.status(t))

	_, err = m.svc.SubmitBid(ctx, m.supplierA, m.request.ID, 100)
	require.ErrorIs(t, err, ErrAlreadyBid)

	_, err = m.svc.SubmitBid(ctx, m.supplierB, m.request.ID, 0)
	require.ErrorIs(t, err, ErrValidation)

	_, err = m.svc.SubmitBid(ctx, m.supplierB, 9999, 50)
	require.ErrorIs(t, err, db.ErrNotFound)

	_, err = m.svc.SubmitBid(ctx, m.customer, m.request.ID, 50)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAcceptBid(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()

	a, err := m.svc.SubmitBid(ctx, m.supplierA, m.request.ID, 120)
	require.NoError(t, err)
	b, err := m.svc.SubmitBid(ctx, m.supplierB, m.request.ID, 110)
	require.NoError(t, err)

	stranger := register(t, m.svc, "other@x.com", models.RoleCustomer, "company2")
	_, err = m.svc.AcceptBid(ctx, stranger, a.ID)
	require.ErrorIs(t, err, ErrForbidden)

	r, err := m.svc.AcceptBid(ctx, m.customer, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestComplete, r.Status)
	assert.Equal(t, models.RequestComplete, m.status(t))

	other, err := m.svc.store.GetBid(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BidRejected, other.Status)

	_, err = m.svc.RejectBid(ctx, m.customer, a.ID)
	require.ErrorIs(t, err, ErrBidResolved)

	_, err = m.svc.SubmitBid(ctx, register(t, m.svc, "late@x.com", models.RoleSupplier, "company5"), m.request.ID, 90)
	require.ErrorIs(t, err, ErrRequestComplete)

	_, err = m.svc.UpdateRequest(ctx, m.customer, m.request.ID, validRequest())
	require.ErrorIs(t, err, ErrRequestComplete)

	dash, err := m.svc.SupplierDashboard(ctx, m.supplierA)
	require.NoError(t, err)
	require.Len(t, dash.Won, 1)
	assert.Equal(t, a.ID, dash.Won[0].BidID)
	assert.Empty(t, dash.Bid)
	assert.Empty(t, dash.LiveNotBid)
}

func TestRejectLastBidReturnsToAwaitingBids(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()

	a, err := m.svc.SubmitBid(ctx, m.supplierA, m.request.ID, 120)
	require.NoError(t, err)
	b, err := m.svc.SubmitBid(ctx, m.supplierB, m.request.ID, 110)
	require.NoError(t, err)

	r, err := m.svc.RejectBid(ctx, m.customer, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestBidsReceived, r.Status.Canonical())

	r, err = m.svc.RejectBid(ctx, m.customer, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAwaitingBids, r.Status)
	assert.Equal(t, models.RequestAwaitingBids, m.status(t))
}

func TestListCompanyRequests(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()

	second, err := m.svc.CreateRequest(ctx, m.customer, validRequest())
	require.NoError(t, err)
	_, err = m.svc.SubmitBid(ctx, m.supplierA, second.ID, 75)
	require.NoError(t, err)

	all, err := m.svc.ListCompanyRequests(ctx, m.customer, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.RequestBidsReceived, all[0].Status)
	assert.Equal(t, models.RequestAwaitingBids, all[1].Status, "stored default is shown canonical")

	awaiting, err := m.svc.ListCompanyRequests(ctx, m.customer, []string{"Awaiting Bids"})
	require.NoError(t, err)
	require.Len(t, awaiting, 1)
	assert.Equal(t, m.request.ID, awaiting[0].ID)

	details, err := m.svc.GetRequestWithBids(ctx, m.customer, second.ID)
	require.NoError(t, err)
	require.Len(t, details.Bids, 1)
	assert.Equal(t, "company3", details.Bids[0].Company)

	stranger := register(t, m.svc, "other@x.com", models.RoleCustomer, "company2")
	_, err = m.svc.GetRequestWithBids(ctx, stranger, second.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestSupplierViews(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()

	view, err := m.svc.GetSupplierRequest(ctx, m.supplierA, m.request.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Bid)
	assert.Equal(t, models.RequestAwaitingBids, view.Request.Status)

	bid, err := m.svc.SubmitBid(ctx, m.supplierA, m.request.ID, 120)
	require.NoError(t, err)

	view, err = m.svc.GetSupplierRequest(ctx, m.supplierA, m.request.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Bid)
	assert.Equal(t, bid.ID, view.Bid.ID)

	dashA, err := m.svc.SupplierDashboard(ctx, m.supplierA)
	require.NoError(t, err)
	assert.Empty(t, dashA.LiveNotBid)
	require.Len(t, dashA.Bid, 1)

	dashB, err := m.svc.SupplierDashboard(ctx, m.supplierB)
	require.NoError(t, err)
	require.Len(t, dashB.LiveNotBid, 1)
	assert.Empty(t, dashB.Bid)

	bids, err := m.svc.ListCompanyBids(ctx, m.supplierA)
	require.NoError(t, err)
	require.Len(t, bids, 1)

	_, err = m.svc.SupplierDashboard(ctx, m.customer)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateRequest(t *testing.T) {
	m := newMarketplace(t)
	ctx := context.Background()

	in := validRequest()
	in.Pallets = 9
	r, err := m.svc.UpdateRequest(ctx, m.customer, m.request.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 9, r.Pallets)

	stranger := register(t, m.svc, "other@x.com", models.RoleCustomer, "company2")
	_, err = m.svc.UpdateRequest(ctx, stranger, m.request.ID, in)
	require.ErrorIs(t, err, ErrForbidden)
}
