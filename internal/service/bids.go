package service

import (
	"context"
	"errors"
	"fmt"

	"logistics/db"
	"logistics/models"
)

// SubmitBid - ставка поставщика по незавершённой заявке. От одной
// компании принимается одна ставка на заявку.
func (s *Service) SubmitBid(ctx context.Context, a Actor, requestID int, amount float64) (*models.Bid, error) {
	if err := requireRole(a, models.RoleSupplier); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, invalid("bid amount must be positive")
	}

	b := &models.Bid{RequestID: requestID, CreatedBy: a.UserID, Amount: amount}
	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		r, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if r.Status.Canonical() == models.RequestComplete {
			return ErrRequestComplete
		}

		_, err = tx.GetCompanyBidForRequest(ctx, requestID, a.Company)
		switch {
		case err == nil:
			return ErrAlreadyBid
		case !errors.Is(err, db.ErrNotFound):
			return err
		}

		if err := tx.CreateBid(ctx, b); err != nil {
			return err
		}
		return syncRequestStatus(ctx, tx, r)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bid submitted", "bid_id", b.ID, "request_id", requestID, "company", a.Company)
	return b, nil
}

// resolveBid загружает ставку без ответа и заявку компании a.
func resolveBid(ctx context.Context, tx *db.Storage, a Actor, bidID int) (*models.Bid, *models.Request, error) {
	b, err := tx.GetBid(ctx, bidID)
	if err != nil {
		return nil, nil, err
	}
	r, err := companyRequest(ctx, tx, a, b.RequestID)
	if err != nil {
		return nil, nil, err
	}
	if b.Status.Resolved() {
		return nil, nil, fmt.Errorf("%w: bid %d is %s", ErrBidResolved, b.ID, b.Status)
	}
	return b, r, nil
}

// AcceptBid принимает ставку, отклоняет остальные и завершает заявку.
func (s *Service) AcceptBid(ctx context.Context, a Actor, bidID int) (*models.Request, error) {
	if err := requireRole(a, models.RoleCustomer); err != nil {
		return nil, err
	}

	var r *models.Request
	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		b, req, err := resolveBid(ctx, tx, a, bidID)
		if err != nil {
			return err
		}
		r = req

		if err := tx.UpdateBidStatus(ctx, b.ID, models.BidAccepted); err != nil {
			return err
		}
		if _, err := tx.RejectOtherBids(ctx, r.ID, b.ID); err != nil {
			return err
		}
		return syncRequestStatus(ctx, tx, r)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bid accepted", "bid_id", bidID, "request_id", r.ID)
	return r, nil
}

// RejectBid отклоняет ставку. Если живых ставок не осталось, заявка
// возвращается в Awaiting Bids.
func (s *Service) RejectBid(ctx context.Context, a Actor, bidID int) (*models.Request, error) {
	if err := requireRole(a, models.RoleCustomer); err != nil {
		return nil, err
	}

	var r *models.Request
	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		b, req, err := resolveBid(ctx, tx, a, bidID)
		if err != nil {
			return err
		}
		r = req

		if err := tx.UpdateBidStatus(ctx, b.ID, models.BidRejected); err != nil {
			return err
		}
		return syncRequestStatus(ctx, tx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListCompanyBids - ставки компании поставщика
func (s *Service) ListCompanyBids(ctx context.Context, a Actor) ([]models.Bid, error) {
	if err := requireRole(a, models.RoleSupplier); err != nil {
		return nil, err
	}
	return s.store.ListBidsByCompany(ctx, a.Company)
}

type Dashboard struct {
	LiveNotBid []models.Request    `json:"liveRequestsNotBid"`
	Bid        []models.RequestBid `json:"requestsBid"`
	Won        []models.RequestBid `json:"requestsBidWon"`
}

// SupplierDashboard - три списка заявок для компании поставщика.
func (s *Service) SupplierDashboard(ctx context.Context, a Actor) (*Dashboard, error) {
	if err := requireRole(a, models.RoleSupplier); err != nil {
		return nil, err
	}

	d := &Dashboard{}
	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		var err error
		if d.LiveNotBid, err = tx.ListOpenRequestsNotBidByCompany(ctx, a.Company); err != nil {
			return err
		}
		if d.Bid, err = tx.ListRequestsBidByCompany(ctx, a.Company); err != nil {
			return err
		}
		d.Won, err = tx.ListRequestsWonByCompany(ctx, a.Company)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

type SupplierRequest struct {
	Request models.Request  `json:"request"`
	Bid     *models.BidView `json:"bid"`
}

// GetSupplierRequest - заявка и ставка компании поставщика по ней (если есть).
func (s *Service) GetSupplierRequest(ctx context.Context, a Actor, id int) (*SupplierRequest, error) {
	if err := requireRole(a, models.RoleSupplier); err != nil {
		return nil, err
	}

	out := &SupplierRequest{}
	err := s.store.InTx(ctx, func(tx *db.Storage) error {
		r, err := tx.GetRequest(ctx, id)
		if err != nil {
			return err
		}
		r.Status = r.Status.Canonical()
		out.Request = *r

		bid, err := tx.GetCompanyBidForRequest(ctx, id, a.Company)
		switch {
		case err == nil:
			out.Bid = bid
		case !errors.Is(err, db.ErrNotFound):
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
