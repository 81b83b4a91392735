package handlers

import (
	"net/http"

	"vitalecosystem/models"
)

// ListClientsHandler renvoie les clients avec l'état de leur contrat
func (h *Handler) ListClientsHandler(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Contracts.Clients(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *Handler) GetClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	client, err := h.Contracts.Client(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// CreateClientHandler traite POST /api/clients
func (h *Handler) CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := readJSON(w, r, &client); err != nil {
		h.badRequest(w, err)
		return
	}
	client.ID = 0
	if err := h.Contracts.CreateClient(r.Context(), &client); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// UpdateClientHandler traite PUT /api/clients/{id}. Les champs de contrat
// envoyés sont ignorés.
func (h *Handler) UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	var client models.Client
	if err := readJSON(w, r, &client); err != nil {
		h.badRequest(w, err)
		return
	}
	client.ID = id
	updated, err := h.Contracts.UpdateClient(r.Context(), &client)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Contracts.DeleteClient(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClientContractsHandler traite GET /api/clients/{id}/contrats-forfait
func (h *Handler) ClientContractsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	contracts, err := h.Contracts.ClientContracts(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

// BillingParamsHandler renvoie le prix d'excès de poids et le poids forfait
// applicables au prochain bon de passage du client.
func (h *Handler) BillingParamsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	params, err := h.Contracts.BillingParams(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, params)
}
