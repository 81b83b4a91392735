package handlers

import (
	"errors"
	"net/http"

	"vitalecosystem/db"
	"vitalecosystem/internal/billing"
	"vitalecosystem/internal/contracts"
	"vitalecosystem/internal/recorder"
	"vitalecosystem/internal/validation"
	"vitalecosystem/models"
)

// errorBody est le corps de toutes les réponses en erreur.
type errorBody struct {
	Detail  string                `json:"detail"`
	Code    string                `json:"code,omitempty"`
	Fields  validation.Violations `json:"fields,omitempty"`
	Contrat *models.Contract      `json:"contrat,omitempty"`
	Element *element              `json:"element,omitempty"`
}

// element désigne la ligne en échec d'un enregistrement annulé.
type element struct {
	Kind  string `json:"type"`
	Index int    `json:"index"`
	Name  string `json:"nom"`
}

func (h *Handler) badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorBody{Detail: err.Error()})
}

// respondError traduit une erreur métier en réponse HTTP.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr     *validation.Error
		over     *billing.OverpaymentError
		conflict *contracts.ConflictError
		partial  *recorder.PartialWriteError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: err.Error(), Fields: verr.Fields})
	case errors.As(err, &over):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Detail: err.Error(),
			Fields: validation.Violations{"versements": err.Error()},
		})
	case errors.As(err, &conflict):
		blocking := conflict.Blocking
		writeJSON(w, http.StatusConflict, errorBody{Detail: err.Error(), Code: "contract_conflict", Contrat: &blocking})
	case errors.Is(err, contracts.ErrNoActiveContract):
		writeJSON(w, http.StatusConflict, errorBody{Detail: err.Error(), Code: "no_active_contract"})
	case errors.Is(err, contracts.ErrContractPaused):
		writeJSON(w, http.StatusConflict, errorBody{Detail: err.Error(), Code: "contract_paused"})
	case errors.Is(err, contracts.ErrContractTerminated):
		writeJSON(w, http.StatusConflict, errorBody{Detail: err.Error(), Code: "contract_terminated"})
	case errors.As(err, &partial):
		h.log.Error("partial write rolled back", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Detail:  err.Error(),
			Element: &element{Kind: partial.Kind, Index: partial.Index, Name: partial.Name},
		})
	case errors.Is(err, db.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "ressource introuvable"})
	case errors.Is(err, db.ErrDuplicate):
		writeJSON(w, http.StatusConflict, errorBody{Detail: "cet enregistrement existe déjà"})
	case errors.Is(err, db.ErrGoverningContractExists):
		writeJSON(w, http.StatusConflict, errorBody{Detail: "le client a déjà un contrat actif ou en pause", Code: "contract_conflict"})
	case errors.Is(err, db.ErrConstraint):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "données refusées par la base"})
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "erreur interne du serveur"})
	}
}
