// Package contracts porte les règles des contrats forfait: quel contrat régit
// un client, quand un contrat peut être créé ou modifié, et la projection de
// l'état du contrat sur la fiche client.
package contracts

import (
	"vitalecosystem/models"
)

// BillingParams sont les paramètres de facturation fournis par le contrat Actif.
type BillingParams struct {
	ContratID      int     `json:"contrat_id"`
	PrixExcesPoids float64 `json:"prix_exces_poids"`
	PoidsForfait   int     `json:"poids_forfait"`
}

// Book indexe des contrats par client. Il ne fait aucun accès au stockage.
type Book struct {
	byClient map[int][]models.Contract
}

func NewBook(contracts []models.Contract) *Book {
	b := &Book{byClient: make(map[int][]models.Contract)}
	for _, c := range contracts {
		b.byClient[c.ClientID] = append(b.byClient[c.ClientID], c)
	}
	return b
}

func (b *Book) Contracts(clientID int) []models.Contract {
	return b.byClient[clientID]
}

// ActiveContractFor renvoie le contrat Actif du client. Un contrat en pause ou
// terminé n'est jamais une source de facturation.
func (b *Book) ActiveContractFor(clientID int) (models.Contract, bool) {
	for _, c := range b.byClient[clientID] {
		if c.Etat == models.ContractActive {
			return c, true
		}
	}
	return models.Contract{}, false
}

// Governing renvoie le contrat Actif ou Pause du client.
func (b *Book) Governing(clientID int) (models.Contract, bool) {
	for _, c := range b.byClient[clientID] {
		if c.Etat.Governing() {
			return c, true
		}
	}
	return models.Contract{}, false
}

func (b *Book) GoverningBillingParams(clientID int) (BillingParams, bool) {
	c, ok := b.ActiveContractFor(clientID)
	if !ok {
		return BillingParams{}, false
	}
	return paramsOf(c), true
}

func paramsOf(c models.Contract) BillingParams {
	return BillingParams{
		ContratID:      c.ID,
		PrixExcesPoids: c.PrixExcesPoids.Float(),
		PoidsForfait:   c.PoidsForfait,
	}
}
