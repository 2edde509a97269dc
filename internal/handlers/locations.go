package handlers

import (
	"net/http"

	"logistics/internal/service"
)

// ListLocationsHandler - GET /api/locations, адреса компании
func (h *Handler) ListLocationsHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())

	locations, err := h.Svc.ListLocations(r.Context(), a)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *Handler) CreateLocationHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())

	var in service.LocationInput
	if !decodeJSON(w, r, &in) {
		return
	}

	l, err := h.Svc.CreateLocation(r.Context(), a, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *Handler) UpdateLocationHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())
	id, ok := urlID(w, r, "locationId")
	if !ok {
		return
	}

	var in service.LocationInput
	if !decodeJSON(w, r, &in) {
		return
	}

	l, err := h.Svc.UpdateLocation(r.Context(), a, id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handler) DeleteLocationHandler(w http.ResponseWriter, r *http.Request) {
	a, _ := actorFrom(r.Context())
	id, ok := urlID(w, r, "locationId")
	if !ok {
		return
	}

	if err := h.Svc.DeleteLocation(r.Context(), a, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
