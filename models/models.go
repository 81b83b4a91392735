package models

// Etat d'un contrat forfait
type ContractState string

const (
	ContractActive     ContractState = "Actif"
	ContractPaused     ContractState = "Pause"
	ContractTerminated ContractState = "Terminé"
)

// Governing indique si le contrat régit encore le client (Actif ou Pause).
func (s ContractState) Governing() bool {
	return s == ContractActive || s == ContractPaused
}

func (s ContractState) Valid() bool {
	switch s {
	case ContractActive, ContractPaused, ContractTerminated:
		return true
	}
	return false
}

// Client forfait. Les champs etat_contrat/debut_contrat/fin_contrat ne sont pas
// stockés: ils sont projetés à la lecture depuis les contrats du client.
type Client struct {
	ID           int            `db:"id" json:"id"`
	Nom          string         `db:"nom" json:"nom" validate:"required,max=200"`
	Specialite   *string        `db:"specialite" json:"specialite"`
	Tel          string         `db:"tel" json:"tel" validate:"required,tel_client"`
	Mode         int            `db:"mode" json:"mode" validate:"oneof=30 60 90"`
	Agent        string         `db:"agent" json:"agent" validate:"required"`
	EtatContrat  *ContractState `db:"-" json:"etat_contrat"`
	DebutContrat *Date          `db:"-" json:"debut_contrat"`
	FinContrat   *Date          `db:"-" json:"fin_contrat"`
}

// Contrat forfait
type Contract struct {
	ID             int           `db:"id" json:"id"`
	ClientID       int           `db:"client_id" json:"client_id" validate:"required,gt=0"`
	DateDebut      Date          `db:"date_debut" json:"date_debut" validate:"required"`
	DateFin        Date          `db:"date_fin" json:"date_fin" validate:"required"`
	Montant        Number        `db:"montant" json:"montant" validate:"gt=0"`
	PrixExcesPoids Number        `db:"prix_exces_poids" json:"prix_exces_poids" validate:"gt=0"`
	PoidsForfait   int           `db:"poids_forfait" json:"poids_forfait" validate:"gt=0"`
	Etat           ContractState `db:"etat" json:"etat" validate:"required,oneof=Actif Pause Terminé"`
}

// Bon de passage forfait
type DeliveryNote struct {
	ID            int                   `db:"id" json:"id"`
	ClientID      int                   `db:"client_id" json:"client_id"`
	ContratID     int                   `db:"contrat_id" json:"contrat_id"`
	Date          Date                  `db:"date" json:"date"`
	PoidsCollecte int                   `db:"poids_collecte" json:"poids_collecte"`
	ExcesPoids    int                   `db:"exces_poids" json:"exces_poids"`
	Montant       float64               `db:"montant" json:"montant"`
	Produits      []DeliveryNoteProduct `db:"-" json:"produits,omitempty"`
	Services      []DeliveryNoteService `db:"-" json:"services,omitempty"`
}

// Consommable facturé sur un bon de passage
type DeliveryNoteProduct struct {
	ID           int    `db:"id" json:"id"`
	BonPassageID int    `db:"bon_passage_id" json:"bon_passage_id"`
	Produit      string `db:"produit" json:"produit" validate:"required"`
	Qte          Number `db:"qte" json:"qte" validate:"gt=0"`
	Prix         Number `db:"prix" json:"prix" validate:"gt=0"`
}

// Service réalisé lors du passage, sans prix unitaire
type DeliveryNoteService struct {
	ID           int     `db:"id" json:"id"`
	BonPassageID int     `db:"bon_passage_id" json:"bon_passage_id"`
	Service      string  `db:"service" json:"service" validate:"required"`
	Qte          *Number `db:"qte" json:"qte" validate:"omitempty,gt=0"`
}

// Versement sur contrat forfait
type Versement struct {
	ID        int    `db:"id" json:"id"`
	ClientID  int    `db:"client_id" json:"client_id" validate:"required,gt=0"`
	ContratID int    `db:"contrat_id" json:"contrat_id"`
	Date      Date   `db:"date" json:"date" validate:"required"`
	Montant   Number `db:"montant" json:"montant" validate:"gt=0"`
}

// Types de versement sur bon d'achat
const (
	PaymentCheque = "Chèque"
	PaymentCash   = "Espèce"
)

// Bon d'achat fournisseur
type BonAchat struct {
	ID           int                 `db:"id" json:"id"`
	Date         Date                `db:"date" json:"date" validate:"required"`
	Fournisseur  string              `db:"fournisseur" json:"fournisseur" validate:"required,max=200"`
	MontantTotal float64             `db:"montant_total" json:"montant_total"`
	MontantVerse float64             `db:"montant_verse" json:"montant_verse"`
	Produits     []BonAchatProduct   `db:"-" json:"produits,omitempty"`
	Versements   []BonAchatVersement `db:"-" json:"versements,omitempty"`
}

type BonAchatProduct struct {
	ID         int     `db:"id" json:"id"`
	BonAchatID int     `db:"bon_achat_id" json:"bon_achat_id"`
	Produit    string  `db:"produit" json:"produit" validate:"required"`
	Qte        int     `db:"qte" json:"qte" validate:"gt=0"`
	Prix       *Number `db:"prix" json:"prix" validate:"omitempty,gt=0"`
}

type BonAchatVersement struct {
	ID         int    `db:"id" json:"id"`
	BonAchatID int    `db:"bon_achat_id" json:"bon_achat_id"`
	Montant    Number `db:"montant" json:"montant" validate:"gt=0"`
	Type       string `db:"type" json:"type" validate:"required,oneof=Chèque Espèce"`
}

// Ligne d'inventaire, alimentée par les bons d'achat. PrixDernier est le
// dernier prix d'achat saisi, conservé même si le bon est modifié ou supprimé.
type InventoryItem struct {
	ID          int     `db:"id" json:"id"`
	Produit     string  `db:"produit" json:"produit"`
	Qte         int     `db:"qte" json:"qte"`
	PrixDernier float64 `db:"prix_dernier" json:"prix_dernier"`
}

type Agent struct {
	ID           int    `db:"id" json:"id"`
	Nom          string `db:"nom" json:"nom" validate:"required,max=200"`
	Telephone    string `db:"telephone" json:"telephone" validate:"required,tel_agent"`
	Whatsapp     string `db:"whatsapp" json:"whatsapp" validate:"required,tel_agent"`
	GPS          string `db:"gps" json:"gps" validate:"required,gps"`
	Regime       string `db:"regime" json:"regime" validate:"required,regime"`
	Notification string `db:"notification" json:"notification" validate:"required,oneof=Actif Pause"`
}

type Produit struct {
	ID          int    `db:"id" json:"id"`
	Designation string `db:"designation" json:"designation" validate:"required,max=200"`
}

type Service struct {
	ID           int    `db:"id" json:"id"`
	Designation  string `db:"designation" json:"designation" validate:"required,max=200"`
	Incineration string `db:"incineration" json:"incineration" validate:"required,oneof=Oui Non"`
}

type Fournisseur struct {
	ID        int    `db:"id" json:"id"`
	Nom       string `db:"nom" json:"nom" validate:"required,max=200"`
	Telephone string `db:"telephone" json:"telephone" validate:"required"`
	Adresse   string `db:"adresse" json:"adresse" validate:"required"`
}
