package db

import (
	"context"
	"strings"

	"logistics/models"

	"github.com/jmoiron/sqlx"
)

const requestColumns = `r.id, r.created_by, r.collection_date, r.delivery_date,
        r.collection_address, r.delivery_address, r.pallets, r.weight,
        r.company, r.request_status, r.created_date`

// CreateRequest добавляет заявку. Статус берётся из DEFAULT колонки.
func (s *Storage) CreateRequest(ctx context.Context, r *models.Request) error {
	err := requireColumns("request",
		num("created_by", r.CreatedBy),
		column{name: "collection_date", set: !r.CollectionDate.IsZero()},
		column{name: "delivery_date", set: !r.DeliveryDate.IsZero()},
		str("collection_address", r.CollectionAddress),
		str("delivery_address", r.DeliveryAddress),
		num("pallets", r.Pallets),
		num("weight", r.Weight),
		str("company", r.Company),
	)
	if err != nil {
		return err
	}

	created := s.clock.Now()
	query := s.q.Rebind(`
        INSERT INTO request
            (created_by, collection_date, delivery_date, collection_address,
             delivery_address, pallets, weight, company, created_date)
        VALUES
            (?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, request_status`)
	err = s.q.QueryRowxContext(ctx, query,
		r.CreatedBy, r.CollectionDate.UTC(), r.DeliveryDate.UTC(), r.CollectionAddress,
		r.DeliveryAddress, r.Pallets, r.Weight, r.Company, created).
		Scan(&r.ID, &r.Status)
	if err != nil {
		return classify(err)
	}
	r.CreatedDate = created
	return nil
}

func (s *Storage) GetRequest(ctx context.Context, id int) (*models.Request, error) {
	r := &models.Request{}
	if err := s.get(ctx, r, `SELECT `+requestColumns+` FROM request r WHERE r.id = ?`, id); err != nil {
		return nil, err
	}
	return r, nil
}

// RequestFilter - условия выборки заявок; пустые поля не фильтруют.
type RequestFilter struct {
	Company   string
	CreatedBy int
	Statuses  []models.RequestStatus
	Limit     int
	Offset    int
}

func (s *Storage) ListRequests(ctx context.Context, f RequestFilter) ([]models.Request, error) {
	var (
		where []string
		args  []any
	)
	if f.Company != "" {
		where = append(where, "r.company = ?")
		args = append(args, f.Company)
	}
	if f.CreatedBy > 0 {
		where = append(where, "r.created_by = ?")
		args = append(args, f.CreatedBy)
	}
	if len(f.Statuses) > 0 {
		// в базе статус хранится свободным текстом, сравниваем без учёта регистра
		lowered := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			lowered[i] = strings.ToLower(string(st))
		}
		where = append(where, "LOWER(r.request_status) IN (?)")
		args = append(args, lowered)
	}

	query := `SELECT ` + requestColumns + ` FROM request r`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY r.created_date DESC, r.id DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}

	requests := []models.Request{}
	if err := s.selectAll(ctx, &requests, query, args...); err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateRequestDetails меняет даты, адреса, паллеты и вес. Статус не трогает.
func (s *Storage) UpdateRequestDetails(ctx context.Context, r *models.Request) error {
	err := requireColumns("request",
		column{name: "collection_date", set: !r.CollectionDate.IsZero()},
		column{name: "delivery_date", set: !r.DeliveryDate.IsZero()},
		str("collection_address", r.CollectionAddress),
		str("delivery_address", r.DeliveryAddress),
		num("pallets", r.Pallets),
		num("weight", r.Weight),
	)
	if err != nil {
		return err
	}
	query := `
        UPDATE request
        SET collection_address = ?, delivery_address = ?, collection_date = ?,
            delivery_date = ?, pallets = ?, weight = ?
        WHERE id = ?`
	return s.exec(ctx, query,
		r.CollectionAddress, r.DeliveryAddress, r.CollectionDate.UTC(),
		r.DeliveryDate.UTC(), r.Pallets, r.Weight, r.ID)
}

// UpdateRequestStatus не проверяет допустимость перехода - это делает
// вызывающий слой.
func (s *Storage) UpdateRequestStatus(ctx context.Context, id int, status models.RequestStatus) error {
	if err := requireColumns("request", str("request_status", string(status))); err != nil {
		return err
	}
	return s.exec(ctx, `UPDATE request SET request_status = ? WHERE id = ?`, status, id)
}

// ListOpenRequestsNotBidByCompany - незавершённые заявки, по которым
// компания поставщика ещё не делала ставку.
func (s *Storage) ListOpenRequestsNotBidByCompany(ctx context.Context, company string) ([]models.Request, error) {
	query := `
        SELECT ` + requestColumns + `
        FROM request r
        WHERE LOWER(r.request_status) <> ?
          AND NOT EXISTS (
              SELECT 1 FROM bid b
              JOIN "user" u ON u.id = b.created_by
              WHERE b.request_id = r.id AND u.company = ?)
        ORDER BY r.id`
	requests := []models.Request{}
	err := s.selectAll(ctx, &requests, query, strings.ToLower(string(models.RequestComplete)), company)
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListRequestsBidByCompany - незавершённые заявки со ставкой компании.
func (s *Storage) ListRequestsBidByCompany(ctx context.Context, company string) ([]models.RequestBid, error) {
	query := `
        SELECT ` + requestColumns + `, b.id AS bid_id
        FROM request r
        JOIN bid b ON b.request_id = r.id
        JOIN "user" u ON u.id = b.created_by
        WHERE u.company = ? AND LOWER(r.request_status) <> ?
        ORDER BY r.id`
	out := []models.RequestBid{}
	err := s.selectAll(ctx, &out, query, company, strings.ToLower(string(models.RequestComplete)))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListRequestsWonByCompany - завершённые заявки, где ставка компании принята.
func (s *Storage) ListRequestsWonByCompany(ctx context.Context, company string) ([]models.RequestBid, error) {
	query := `
        SELECT ` + requestColumns + `, b.id AS bid_id
        FROM request r
        JOIN bid b ON b.request_id = r.id
        JOIN "user" u ON u.id = b.created_by
        WHERE u.company = ? AND b.bid_status = ? AND LOWER(r.request_status) = ?
        ORDER BY r.id`
	out := []models.RequestBid{}
	err := s.selectAll(ctx, &out, query,
		company, models.BidAccepted, strings.ToLower(string(models.RequestComplete)))
	if err != nil {
		return nil, err
	}
	return out, nil
}
