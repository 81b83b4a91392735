package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vitalecosystem/internal/validation"
	"vitalecosystem/models"
)

// Handler expose les services métier en HTTP
type Handler struct {
	Contracts ContractService
	Recorder  RecorderService
	Catalog   CatalogStore
	validate  *validation.Validator
	log       *slog.Logger
}

func NewHandler(cs ContractService, rec RecorderService, catalog CatalogStore, v *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		Contracts: cs,
		Recorder:  rec,
		Catalog:   catalog,
		validate:  v,
		log:       log.With("component", "http"),
	}
}

// PingHandler répond "ok" pour vérifier que le serveur tourne
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Routes renvoie le routeur à monter sous /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ping", h.PingHandler)

	r.Route("/clients", func(r chi.Router) {
		r.Get("/", h.ListClientsHandler)
		r.Post("/", h.CreateClientHandler)
		r.Get("/{id}", h.GetClientHandler)
		r.Put("/{id}", h.UpdateClientHandler)
		r.Delete("/{id}", h.DeleteClientHandler)
		r.Get("/{id}/contrats-forfait", h.ClientContractsHandler)
		r.Get("/{id}/facturation", h.BillingParamsHandler)
	})

	r.Route("/contrats-forfait", func(r chi.Router) {
		r.Get("/", h.ListContractsHandler)
		r.Post("/", h.CreateContractHandler)
		r.Get("/{id}", h.GetContractHandler)
		r.Put("/{id}", h.EditContractHandler)
		r.Put("/{id}/terminer", h.TerminateContractHandler)
	})

	r.Route("/bon-passage-forfait", func(r chi.Router) {
		r.Get("/", h.ListDeliveryNotesHandler)
		r.Post("/", h.CreateDeliveryNoteHandler)
		r.Get("/{id}", h.GetDeliveryNoteHandler)
		r.Put("/{id}", h.ModifyDeliveryNoteHandler)
		r.Delete("/{id}", h.DeleteDeliveryNoteHandler)
		r.Get("/{id}/produits", h.ListDeliveryNoteProductsHandler)
		r.Post("/{id}/produits", h.AddDeliveryNoteProductHandler)
		r.Get("/{id}/services", h.ListDeliveryNoteServicesHandler)
		r.Post("/{id}/services", h.AddDeliveryNoteServiceHandler)
	})

	r.Route("/versements-forfait", func(r chi.Router) {
		r.Get("/", h.ListVersementsHandler)
		r.Post("/", h.CreateVersementHandler)
		r.Put("/{id}", h.ModifyVersementHandler)
		r.Delete("/{id}", h.DeleteVersementHandler)
	})

	r.Route("/bon-achats", func(r chi.Router) {
		r.Get("/", h.ListBonAchatsHandler)
		r.Post("/", h.CreateBonAchatHandler)
		r.Get("/{id}", h.GetBonAchatHandler)
		r.Put("/{id}", h.ModifyBonAchatHandler)
		r.Delete("/{id}", h.DeleteBonAchatHandler)
		r.Get("/{id}/produits", h.ListBonAchatProductsHandler)
		r.Get("/{id}/versements", h.ListBonAchatVersementsHandler)
		r.Post("/{id}/versements", h.AddBonAchatVersementHandler)
	})

	r.Get("/inventaire", h.InventoryHandler)

	r.Route("/agents", func(r chi.Router) {
		r.Get("/", listHandler(h, h.Catalog.ListAgents))
		r.Post("/", createHandler(h, h.Catalog.CreateAgent))
		r.Put("/{id}", updateHandler(h, func(a *models.Agent, id int) { a.ID = id }, h.Catalog.UpdateAgent))
		r.Delete("/{id}", deleteHandler(h, h.Catalog.DeleteAgent))
	})
	r.Route("/produits", func(r chi.Router) {
		r.Get("/", listHandler(h, h.Catalog.ListProduits))
		r.Post("/", createHandler(h, h.Catalog.CreateProduit))
		r.Put("/{id}", updateHandler(h, func(p *models.Produit, id int) { p.ID = id }, h.Catalog.UpdateProduit))
		r.Delete("/{id}", deleteHandler(h, h.Catalog.DeleteProduit))
	})
	r.Route("/services", func(r chi.Router) {
		r.Get("/", listHandler(h, h.Catalog.ListServices))
		r.Post("/", createHandler(h, h.Catalog.CreateService))
		r.Put("/{id}", updateHandler(h, func(s *models.Service, id int) { s.ID = id }, h.Catalog.UpdateService))
		r.Delete("/{id}", deleteHandler(h, h.Catalog.DeleteService))
	})
	r.Route("/fournisseurs", func(r chi.Router) {
		r.Get("/", listHandler(h, h.Catalog.ListFournisseurs))
		r.Post("/", createHandler(h, h.Catalog.CreateFournisseur))
		r.Put("/{id}", updateHandler(h, func(f *models.Fournisseur, id int) { f.ID = id }, h.Catalog.UpdateFournisseur))
		r.Delete("/{id}", deleteHandler(h, h.Catalog.DeleteFournisseur))
	})

	return r
}
