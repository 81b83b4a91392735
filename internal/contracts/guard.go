package contracts

import (
	"vitalecosystem/models"
)

// CanCreateContract est vrai si aucun contrat du client n'est Actif ou Pause.
func (b *Book) CanCreateContract(clientID int) bool {
	_, blocked := b.Governing(clientID)
	return !blocked
}

// CanEditContract est vrai si aucun autre contrat du client n'est Actif ou Pause.
func (b *Book) CanEditContract(c models.Contract) bool {
	_, blocked := b.blockingOther(c)
	return !blocked
}

func (b *Book) blockingOther(c models.Contract) (models.Contract, bool) {
	for _, other := range b.byClient[c.ClientID] {
		if other.ID != c.ID && other.Etat.Governing() {
			return other, true
		}
	}
	return models.Contract{}, false
}

// CheckCreate renvoie un *ConflictError nommant le contrat bloquant.
func (b *Book) CheckCreate(clientID int) error {
	if blocking, ok := b.Governing(clientID); ok {
		return &ConflictError{Blocking: blocking}
	}
	return nil
}

func (b *Book) CheckEdit(c models.Contract) error {
	if blocking, ok := b.blockingOther(c); ok {
		return &ConflictError{Blocking: blocking}
	}
	return nil
}

// RequireBillable renvoie le contrat Actif servant à facturer un bon de
// passage. Sans contrat Actif ni Pause: ErrNoActiveContract; contrat en
// pause: ErrContractPaused.
func (b *Book) RequireBillable(clientID int) (models.Contract, error) {
	governing, ok := b.Governing(clientID)
	if !ok {
		return models.Contract{}, ErrNoActiveContract
	}
	if governing.Etat == models.ContractPaused {
		return models.Contract{}, ErrContractPaused
	}
	return governing, nil
}

// Terminate passe le contrat à Terminé. Renvoie false s'il l'était déjà.
func Terminate(c *models.Contract) bool {
	if c.Etat == models.ContractTerminated {
		return false
	}
	c.Etat = models.ContractTerminated
	return true
}
