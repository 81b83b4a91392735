package handlers

import (
	"net/http"

	"vitalecosystem/models"
)

func (h *Handler) ListContractsHandler(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Contracts.Contracts(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

func (h *Handler) GetContractHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	contract, err := h.Contracts.Contract(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

// CreateContractHandler traite POST /api/contrats-forfait. Un conflit renvoie
// 409 avec le contrat bloquant.
func (h *Handler) CreateContractHandler(w http.ResponseWriter, r *http.Request) {
	var contract models.Contract
	if err := readJSON(w, r, &contract); err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Contracts.Create(r.Context(), &contract); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}

func (h *Handler) EditContractHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	var contract models.Contract
	if err := readJSON(w, r, &contract); err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Contracts.Edit(r.Context(), id, &contract); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

// TerminateContractHandler traite PUT /api/contrats-forfait/{id}/terminer.
// Terminer un contrat déjà terminé renvoie le contrat inchangé.
func (h *Handler) TerminateContractHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	contract, _, err := h.Contracts.Terminate(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}
