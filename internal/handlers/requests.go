package handlers

import (
	"errors"
	"net/http"
	"time"

	"logistics/internal/service"
	"logistics/internal/statusfilter"
)

// requestBody - тело POST/PATCH заявки. Даты в формате 2006-01-02
// или RFC3339.
type requestBody struct {
	CollectionDate    string `json:"collectionDate"`
	DeliveryDate      string `json:"deliveryDate"`
	CollectionAddress string `json:"collectionAddress"`
	DeliveryAddress   string `json:"deliveryAddress"`
	Pallets           int    `json:"pallets"`
	Weight            int    `json:"weight"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (b requestBody) input() (service.RequestInput, error) {
	collection, err := parseDate(b.CollectionDate)
	if err != nil {
		return service.RequestInput{}, errors.New("invalid collectionDate")
	}
	delivery, err := parseDate(b.DeliveryDate)
	if err != nil {
		return service.RequestInput{}, errors.New("invalid deliveryDate")
	}
	return service.RequestInput{
		CollectionDate:    collection,
		DeliveryDate:      delivery,
		CollectionAddress: b.CollectionAddress,
		DeliveryAddress:   b.DeliveryAddress,
		Pallets:           b.Pallets,
		Weight:            b.Weight,
	}, nil
}

func decodeRequestInput(w http.ResponseWriter, r *http.Request) (service.RequestInput, bool) {
	var body requestBody
	if !decodeJSON(w, r, &body) {
		return service.RequestInput{}, false
	}
	in, err := body.input()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return service.RequestInput{}, false
	}
	return in, true
}

// MyRequestsHandler - GET /api/requests/my?status=...&status=...
// Параметры status - отмеченные чекбоксы фильтра.
func (h *Handler) MyRequestsHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())
	params := parsePaginationParams(r)
	filters := statusfilter.Checked(r.URL.Query()["status"])

	requests, err := h.Svc.ListCompanyRequests(r.Context(), a, filters)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paginate(requests, params))
}

func (h *Handler) CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())
	in, ok := decodeRequestInput(w, r)
	if !ok {
		return
	}

	req, err := h.Svc.CreateRequest(r.Context(), a, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// GetRequestHandler - заявка со всеми ставками
func (h *Handler) GetRequestHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())
	id, ok := urlID(w, r, "requestId")
	if !ok {
		return
	}

	details, err := h.Svc.GetRequestWithBids(r.Context(), a, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) UpdateRequestHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())
	id, ok := urlID(w, r, "requestId")
	if !ok {
		return
	}
	in, ok := decodeRequestInput(w, r)
	if !ok {
		return
	}

	req, err := h.Svc.UpdateRequest(r.Context(), a, id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
