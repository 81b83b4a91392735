package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"vitalecosystem/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// Violation de l'index partiel "un seul contrat Actif/Pause par client"
	ErrGoverningContractExists = errors.New("client already has a governing contract")
	ErrConstraint              = errors.New("constraint violation")
)

const governingContractIndex = "contrat_forfait_governing_idx"

// Queries regroupe les accès aux données. Toutes les implémentations
// renvoient ErrNotFound pour une ligne absente.
type Queries interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id int) (*models.Client, error)
	// LockClient lit le client en verrouillant sa ligne jusqu'à la fin de la transaction.
	LockClient(ctx context.Context, id int) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id int) error

	ListContracts(ctx context.Context) ([]models.Contract, error)
	ListClientContracts(ctx context.Context, clientID int) ([]models.Contract, error)
	GetContract(ctx context.Context, id int) (*models.Contract, error)
	CreateContract(ctx context.Context, c *models.Contract) error
	UpdateContract(ctx context.Context, c *models.Contract) error
	ListExpiredContracts(ctx context.Context, before time.Time) ([]models.Contract, error)

	// clientID == 0 liste tous les bons
	ListDeliveryNotes(ctx context.Context, clientID int) ([]models.DeliveryNote, error)
	GetDeliveryNote(ctx context.Context, id int) (*models.DeliveryNote, error)
	CreateDeliveryNote(ctx context.Context, n *models.DeliveryNote) error
	UpdateDeliveryNote(ctx context.Context, n *models.DeliveryNote) error
	DeleteDeliveryNote(ctx context.Context, id int) error
	ListDeliveryNoteProducts(ctx context.Context, noteID int) ([]models.DeliveryNoteProduct, error)
	CreateDeliveryNoteProduct(ctx context.Context, p *models.DeliveryNoteProduct) error
	DeleteDeliveryNoteProducts(ctx context.Context, noteID int) error
	ListDeliveryNoteServices(ctx context.Context, noteID int) ([]models.DeliveryNoteService, error)
	CreateDeliveryNoteService(ctx context.Context, s *models.DeliveryNoteService) error
	DeleteDeliveryNoteServices(ctx context.Context, noteID int) error

	ListVersements(ctx context.Context, clientID int) ([]models.Versement, error)
	GetVersement(ctx context.Context, id int) (*models.Versement, error)
	CreateVersement(ctx context.Context, v *models.Versement) error
	UpdateVersement(ctx context.Context, v *models.Versement) error
	DeleteVersement(ctx context.Context, id int) error

	ListBonAchats(ctx context.Context) ([]models.BonAchat, error)
	GetBonAchat(ctx context.Context, id int) (*models.BonAchat, error)
	LockBonAchat(ctx context.Context, id int) (*models.BonAchat, error)
	CreateBonAchat(ctx context.Context, b *models.BonAchat) error
	UpdateBonAchat(ctx context.Context, b *models.BonAchat) error
	DeleteBonAchat(ctx context.Context, id int) error
	ListBonAchatProducts(ctx context.Context, bonID int) ([]models.BonAchatProduct, error)
	CreateBonAchatProduct(ctx context.Context, p *models.BonAchatProduct) error
	DeleteBonAchatProducts(ctx context.Context, bonID int) error
	ListBonAchatVersements(ctx context.Context, bonID int) ([]models.BonAchatVersement, error)
	CreateBonAchatVersement(ctx context.Context, v *models.BonAchatVersement) error

	ListInventory(ctx context.Context) ([]models.InventoryItem, error)
	// AdjustInventory ajoute delta (éventuellement négatif) au stock du produit,
	// sans descendre sous zéro. prix > 0 remplace le dernier prix connu.
	AdjustInventory(ctx context.Context, produit string, delta int, prix float64) error

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

// Store ajoute les transactions: fn reçoit des Queries liées à la transaction,
// qui est validée si fn renvoie nil et annulée sinon.
type Store interface {
	Queries
	InTx(ctx context.Context, fn func(q Queries) error) error
}

// mapError traduit les erreurs du driver en erreurs du paquet.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == governingContractIndex {
				return ErrGoverningContractExists
			}
			return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
		case "23503":
			return fmt.Errorf("%w: %s", ErrNotFound, pqErr.Constraint)
		case "23514":
			return fmt.Errorf("%w: %s", ErrConstraint, pqErr.Constraint)
		}
	}
	return err
}
