package db

import (
	"context"

	"logistics/models"
)

const bidColumns = `b.id, b.request_id, b.created_by, b.bid_amount, b.bid_status, b.created_date`

// CreateBid добавляет ставку. Статус заявки здесь не меняется.
func (s *Storage) CreateBid(ctx context.Context, b *models.Bid) error {
	err := requireColumns("bid",
		num("request_id", b.RequestID),
		num("created_by", b.CreatedBy),
		num("bid_amount", b.Amount),
	)
	if err != nil {
		return err
	}

	created := s.clock.Now()
	query := s.q.Rebind(`
        INSERT INTO bid (request_id, created_by, bid_amount, created_date)
        VALUES (?, ?, ?, ?)
        RETURNING id, bid_status`)
	err = s.q.QueryRowxContext(ctx, query, b.RequestID, b.CreatedBy, b.Amount, created).
		Scan(&b.ID, &b.Status)
	if err != nil {
		return classify(err)
	}
	b.CreatedDate = created
	return nil
}

func (s *Storage) GetBid(ctx context.Context, id int) (*models.Bid, error) {
	b := &models.Bid{}
	if err := s.get(ctx, b, `SELECT `+bidColumns+` FROM bid b WHERE b.id = ?`, id); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBidsForRequest - все ставки по заявке с компанией поставщика
func (s *Storage) ListBidsForRequest(ctx context.Context, requestID int) ([]models.BidView, error) {
	query := `
        SELECT ` + bidColumns + `, u.company
        FROM bid b
        JOIN "user" u ON u.id = b.created_by
        WHERE b.request_id = ?
        ORDER BY b.created_date, b.id`
	bids := []models.BidView{}
	if err := s.selectAll(ctx, &bids, query, requestID); err != nil {
		return nil, err
	}
	return bids, nil
}

// ListBidsByCompany - ставки всех сотрудников компании, новые первыми
func (s *Storage) ListBidsByCompany(ctx context.Context, company string) ([]models.Bid, error) {
	query := `
        SELECT ` + bidColumns + `
        FROM bid b
        JOIN "user" u ON u.id = b.created_by
        WHERE u.company = ?
        ORDER BY b.created_date DESC, b.id DESC`
	bids := []models.Bid{}
	if err := s.selectAll(ctx, &bids, query, company); err != nil {
		return nil, err
	}
	return bids, nil
}

func (s *Storage) GetCompanyBidForRequest(ctx context.Context, requestID int, company string) (*models.BidView, error) {
	query := `
        SELECT ` + bidColumns + `, u.company
        FROM bid b
        JOIN "user" u ON u.id = b.created_by
        WHERE b.request_id = ? AND u.company = ?
        ORDER BY b.id
        LIMIT 1`
	b := &models.BidView{}
	if err := s.get(ctx, b, query, requestID, company); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBidStatuses - статусы ставок по заявке, для пересчёта статуса заявки.
func (s *Storage) ListBidStatuses(ctx context.Context, requestID int) ([]models.BidStatus, error) {
	statuses := []models.BidStatus{}
	err := s.selectAll(ctx, &statuses, `SELECT bid_status FROM bid WHERE request_id = ? ORDER BY id`, requestID)
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (s *Storage) UpdateBidStatus(ctx context.Context, id int, status models.BidStatus) error {
	if err := requireColumns("bid", str("bid_status", string(status))); err != nil {
		return err
	}
	return s.exec(ctx, `UPDATE bid SET bid_status = ? WHERE id = ?`, status, id)
}

// RejectOtherBids отклоняет все остальные ставки по заявке.
func (s *Storage) RejectOtherBids(ctx context.Context, requestID, exceptBidID int) (int64, error) {
	query := `UPDATE bid SET bid_status = ? WHERE request_id = ? AND id <> ?`
	return s.execCount(ctx, query, models.BidRejected, requestID, exceptBidID)
}
