package handlers

import (
	"net/http"

	"vitalecosystem/models"
)

func (h *Handler) ListVersementsHandler(w http.ResponseWriter, r *http.Request) {
	clientID, err := queryID(r, "client_id")
	if err != nil {
		h.badRequest(w, err)
		return
	}
	versements, err := h.Recorder.Versements(r.Context(), clientID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, versements)
}

// CreateVersementHandler rattache le versement au contrat Actif du client
func (h *Handler) CreateVersementHandler(w http.ResponseWriter, r *http.Request) {
	var v models.Versement
	if err := readJSON(w, r, &v); err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.RecordVersement(r.Context(), &v); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) ModifyVersementHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	var v models.Versement
	if err := readJSON(w, r, &v); err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.ModifyVersement(r.Context(), id, &v); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) DeleteVersementHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.DeleteVersement(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
