package handlers

import (
	"net/http"

	"vitalecosystem/models"
)

func (h *Handler) ListBonAchatsHandler(w http.ResponseWriter, r *http.Request) {
	bons, err := h.Recorder.BonAchats(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bons)
}

func (h *Handler) GetBonAchatHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	bon, err := h.Recorder.BonAchat(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bon)
}

// CreateBonAchatHandler enregistre le bon, ses produits et ses versements.
// montant_total et montant_verse sont recalculés.
func (h *Handler) CreateBonAchatHandler(w http.ResponseWriter, r *http.Request) {
	var bon models.BonAchat
	if err := readJSON(w, r, &bon); err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.RecordBonAchat(r.Context(), &bon); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bon)
}

// ModifyBonAchatHandler remplace l'en-tête et les produits; les versements
// existants sont conservés et ceux du corps ignorés.
func (h *Handler) ModifyBonAchatHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	var bon models.BonAchat
	if err := readJSON(w, r, &bon); err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.ModifyBonAchat(r.Context(), id, &bon); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bon)
}

func (h *Handler) DeleteBonAchatHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.DeleteBonAchat(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListBonAchatProductsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	products, err := h.Recorder.BonAchatProducts(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) ListBonAchatVersementsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	versements, err := h.Recorder.BonAchatVersements(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, versements)
}

func (h *Handler) AddBonAchatVersementHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	var v models.BonAchatVersement
	if err := readJSON(w, r, &v); err != nil {
		h.badRequest(w, err)
		return
	}
	if err := h.Recorder.AddBonAchatVersement(r.Context(), id, &v); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) InventoryHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Recorder.Inventory(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
