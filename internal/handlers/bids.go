package handlers

import (
	"net/http"

	"logistics/models"
)

type bidBody struct {
	Amount float64 `json:"amount"`
}

// SubmitBidHandler - POST /api/requests/{requestId}/bids
func (h *Handler) SubmitBidHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())
	requestID, ok := urlID(w, r, "requestId")
	if !ok {
		return
	}

	var body bidBody
	if !decodeJSON(w, r, &body) {
		return
	}

	bid, err := h.Svc.SubmitBid(r.Context(), a, requestID, body.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bid)
}

// resolveBidHandler - общий код для accept/reject
func (h *Handler) resolveBidHandler(resolve func(*http.Request, int) (*models.Request, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bidID, ok := urlID(w, r, "bidId")
		if !ok {
			return
		}

		req, err := resolve(r, bidID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, req)
	}
}

// AcceptBidHandler - PUT /api/bids/{bidId}/accept
func (h *Handler) AcceptBidHandler(w http.ResponseWriter, r *http.Request) {
	h.resolveBidHandler(func(r *http.Request, id int) (*models.Request, error) {
		a, _ := actorFrom(r.Context())
		return h.Svc.AcceptBid(r.Context(), a, id)
	})(w, r)
}

// RejectBidHandler - PUT /api/bids/{bidId}/reject
func (h *Handler) RejectBidHandler(w http.ResponseWriter, r *http.Request) {
	h.resolveBidHandler(func(r *http.Request, id int) (*models.Request, error) {
		a, _ := actorFrom(r.Context())
		return h.Svc.RejectBid(r.Context(), a, id)
	})(w, r)
}

// MyBidsHandler - GET /api/bids/my, ставки компании поставщика
func (h *Handler) MyBidsHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())
	params := parsePaginationParams(r)

	bids, err := h.Svc.ListCompanyBids(r.Context(), a)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paginate(bids, params))
}

// SupplierRequestsHandler - GET /api/supplier/requests
func (h *Handler) SupplierRequestsHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())

	d, err := h.Svc.SupplierDashboard(r.Context(), a)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// SupplierRequestHandler - GET /api/supplier/requests/{requestId}
func (h *Handler) SupplierRequestHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())
	id, ok := urlID(w, r, "requestId")
	if !ok {
		return
	}

	view, err := h.Svc.GetSupplierRequest(r.Context(), a, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
