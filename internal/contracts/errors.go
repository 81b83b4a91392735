package contracts

import (
	"errors"
	"fmt"

	"vitalecosystem/models"
)

var (
	ErrNoActiveContract   = errors.New("ce client n'a aucun contrat actif")
	ErrContractPaused     = errors.New("le contrat de ce client est en pause")
	ErrContractTerminated = errors.New("un contrat terminé ne peut plus être modifié")
)

// ConflictError est renvoyée quand un autre contrat Actif ou Pause bloque
// l'opération. Il doit être terminé avant de réessayer.
type ConflictError struct {
	Blocking models.Contract
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("le client a déjà un contrat %s (n° %d, du %s au %s); terminez-le avant de continuer",
		e.Blocking.Etat, e.Blocking.ID, e.Blocking.DateDebut, e.Blocking.DateFin)
}
