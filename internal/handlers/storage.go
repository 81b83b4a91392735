package handlers

import (
	"context"

	"vitalecosystem/internal/contracts"
	"vitalecosystem/internal/recorder"
	"vitalecosystem/models"
)

// ContractService couvre les clients et le cycle de vie des contrats.
type ContractService interface {
	Clients(ctx context.Context) ([]models.Client, error)
	Client(ctx context.Context, id int) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) (*models.Client, error)
	DeleteClient(ctx context.Context, id int) error

	Contracts(ctx context.Context) ([]models.Contract, error)
	Contract(ctx context.Context, id int) (*models.Contract, error)
	ClientContracts(ctx context.Context, clientID int) ([]models.Contract, error)
	BillingParams(ctx context.Context, clientID int) (contracts.BillingParams, error)
	Create(ctx context.Context, c *models.Contract) error
	Edit(ctx context.Context, id int, c *models.Contract) error
	Terminate(ctx context.Context, id int) (*models.Contract, bool, error)
}

// RecorderService couvre les bons de passage, les versements et les bons d'achat.
type RecorderService interface {
	RecordDeliveryNote(ctx context.Context, in recorder.DeliveryNoteInput) (*models.DeliveryNote, error)
	ModifyDeliveryNote(ctx context.Context, id int, in recorder.DeliveryNoteInput) (*models.DeliveryNote, error)
	AddDeliveryNoteProduct(ctx context.Context, noteID int, p *models.DeliveryNoteProduct) error
	AddDeliveryNoteService(ctx context.Context, noteID int, s *models.DeliveryNoteService) error
	DeleteDeliveryNote(ctx context.Context, id int) error
	DeliveryNote(ctx context.Context, id int) (*models.DeliveryNote, error)
	DeliveryNotes(ctx context.Context, clientID int) ([]models.DeliveryNote, error)
	DeliveryNoteProducts(ctx context.Context, noteID int) ([]models.DeliveryNoteProduct, error)
	DeliveryNoteServices(ctx context.Context, noteID int) ([]models.DeliveryNoteService, error)

	RecordVersement(ctx context.Context, v *models.Versement) error
	ModifyVersement(ctx context.Context, id int, v *models.Versement) error
	DeleteVersement(ctx context.Context, id int) error
	Versements(ctx context.Context, clientID int) ([]models.Versement, error)

	RecordBonAchat(ctx context.Context, b *models.BonAchat) error
	ModifyBonAchat(ctx context.Context, id int, b *models.BonAchat) error
	AddBonAchatVersement(ctx context.Context, bonID int, v *models.BonAchatVersement) error
	DeleteBonAchat(ctx context.Context, id int) error
	BonAchat(ctx context.Context, id int) (*models.BonAchat, error)
	BonAchats(ctx context.Context) ([]models.BonAchat, error)
	BonAchatProducts(ctx context.Context, bonID int) ([]models.BonAchatProduct, error)
	BonAchatVersements(ctx context.Context, bonID int) ([]models.BonAchatVersement, error)
	Inventory(ctx context.Context) ([]models.InventoryItem, error)
}

// CatalogStore est la partie du stockage servant les référentiels.
type CatalogStore interface {
	ListAgents(ctx context.Context) ([]models.Agent, error)
	CreateAgent(ctx context.Context, a *models.Agent) error
	UpdateAgent(ctx context.Context, a *models.Agent) error
	DeleteAgent(ctx context.Context, id int) error

	ListProduits(ctx context.Context) ([]models.Produit, error)
	CreateProduit(ctx context.Context, p *models.Produit) error
	UpdateProduit(ctx context.Context, p *models.Produit) error
	DeleteProduit(ctx context.Context, id int) error

	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, id int) error

	ListFournisseurs(ctx context.Context) ([]models.Fournisseur, error)
	CreateFournisseur(ctx context.Context, f *models.Fournisseur) error
	UpdateFournisseur(ctx context.Context, f *models.Fournisseur) error
	DeleteFournisseur(ctx context.Context, id int) error
}
