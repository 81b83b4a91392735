package handlers

import (
	"net/http"

	"vitalecosystem/internal/recorder"
	"vitalecosystem/models"
)

// noteInput reprend la saisie du bon; exces_poids, montant et contrat_id
// envoyés par le client sont ignorés.
func noteInput(n models.DeliveryNote) recorder.DeliveryNoteInput {
	return recorder.DeliveryNoteInput{
		ClientID:      n.ClientID,
		Date:          n.Date,
		PoidsCollecte: n.PoidsCollecte,
		Produits:      n.Produits,
		Services:      n.Services,
	}
}

// ListDeliveryNotesHandler traite GET /api/bon-passage-forfait?client_id=
func (h *Handler) ListDeliveryNotesHandler(w http.ResponseWriter, r *http.Request) {
	clientID, err := queryID(r, "client_id")
	if err != nil {
		h.badRequest(w, err)
		return
	}
	notes, err := h.Recorder.DeliveryNotes(r.Context(), clientID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *Handler) GetDeliveryNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	note, err := h.Recorder.DeliveryNote(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// CreateDeliveryNoteHandler enregistre le bon avec ses produits et services
func (h *Handler) CreateDeliveryNoteHandler(w http.ResponseWriter, r *http.Request) {
	var body models.DeliveryNote
	if err := readJSON(w, r, &body); err != nil {
		h.badRequest(w, err)
		return
	}
	note, err := h.Recorder.RecordDeliveryNote(r.Context(), noteInput(body))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *Handler) ModifyDeliveryNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	var body models.DeliveryNote
	if err := readJSON(w, r, &body); err != nil {
		h.badRequest(w, err)
		return
	}
	note, err := h.Recorder.ModifyDeliveryNote(r.Context(), id, noteInput(body))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) DeleteDeliveryNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.DeleteDeliveryNote(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListDeliveryNoteProductsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	products, err := h.Recorder.DeliveryNoteProducts(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// AddDeliveryNoteProductHandler ajoute un consommable; le montant du bon est recalculé
func (h *Handler) AddDeliveryNoteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	var product models.DeliveryNoteProduct
	if err := readJSON(w, r, &product); err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.AddDeliveryNoteProduct(r.Context(), id, &product); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) ListDeliveryNoteServicesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	services, err := h.Recorder.DeliveryNoteServices(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (h *Handler) AddDeliveryNoteServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	var service models.DeliveryNoteService
	if err := readJSON(w, r, &service); err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.AddDeliveryNoteService(r.Context(), id, &service); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, service)
}
