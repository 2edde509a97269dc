package models

import "strings"

type Role string

const (
	RoleCustomer Role = "Customer"
	RoleSupplier Role = "Supplier"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleSupplier:
		return true
	default:
		return false
	}
}

// RequestStatus хранится в базе свободным текстом.
// Значение по умолчанию в схеме - "Awaiting bids", метка фильтра - "Awaiting Bids".
type RequestStatus string

const (
	RequestAwaitingBids RequestStatus = "Awaiting Bids"
	RequestBidsReceived RequestStatus = "Bid(s) Received"
	RequestComplete     RequestStatus = "Complete"

	// DefaultRequestStatus - литерал из DEFAULT колонки request_status
	DefaultRequestStatus = "Awaiting bids"
)

var requestStatuses = []RequestStatus{RequestAwaitingBids, RequestBidsReceived, RequestComplete}

// RequestStatuses возвращает закрытый набор статусов в порядке жизненного цикла.
func RequestStatuses() []RequestStatus {
	out := make([]RequestStatus, len(requestStatuses))
	copy(out, requestStatuses)
	return out
}

// Canonical приводит сохранённый текст к значению из закрытого набора
// без учёта регистра. Неизвестный текст возвращается как есть.
func (s RequestStatus) Canonical() RequestStatus {
	trimmed := strings.TrimSpace(string(s))
	for _, known := range requestStatuses {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return s
}

func (s RequestStatus) Valid() bool {
	c := s.Canonical()
	for _, known := range requestStatuses {
		if c == known {
			return true
		}
	}
	return false
}

func (s RequestStatus) String() string { return string(s) }

// CanTransitionTo описывает граф переходов заявки:
// Awaiting Bids -> Bid(s) Received -> Complete, и возврат
// Bid(s) Received -> Awaiting Bids, когда отклонена последняя ставка.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	from, to := s.Canonical(), next.Canonical()
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	switch from {
	case RequestAwaitingBids:
		return to == RequestBidsReceived
	case RequestBidsReceived:
		return to == RequestComplete || to == RequestAwaitingBids
	default:
		return false
	}
}

type BidStatus string

const (
	BidAwaitingResponse BidStatus = "Awaiting response"
	BidAccepted         BidStatus = "Accepted"
	BidRejected         BidStatus = "Rejected"
)

func ValidBidStatus(s BidStatus) bool {
	switch s {
	case BidAwaitingResponse, BidAccepted, BidRejected:
		return true
	default:
		return false
	}
}

// Resolved - по ставке уже принято решение
func (s BidStatus) Resolved() bool {
	return s == BidAccepted || s == BidRejected
}

func (s BidStatus) CanTransitionTo(next BidStatus) bool {
	if !ValidBidStatus(s) || !ValidBidStatus(next) {
		return false
	}
	if s == next {
		return true
	}
	return s == BidAwaitingResponse
}

// DeriveRequestStatus вычисляет статус заявки по её ставкам:
// принятая ставка - Complete, хотя бы одна без ответа - Bid(s) Received,
// иначе Awaiting Bids.
func DeriveRequestStatus(bids []BidStatus) RequestStatus {
	pending := 0
	for _, b := range bids {
		switch b {
		case BidAccepted:
			return RequestComplete
		case BidAwaitingResponse:
			pending++
		}
	}
	if pending > 0 {
		return RequestBidsReceived
	}
	return RequestAwaitingBids
}
