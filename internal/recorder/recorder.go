// Package recorder enregistre les bons de passage, les versements forfait et
// les bons d'achat avec leurs lignes. Un bon et ses lignes sont écrits dans
// une seule transaction: une ligne en échec annule tout le bon.
package recorder

import (
	"errors"
	"fmt"
	"log/slog"

	"vitalecosystem/db"
	"vitalecosystem/internal/validation"
)

// Types de ligne enfant
const (
	KindProduit   = "produit"
	KindService   = "service"
	KindVersement = "versement"
)

// PartialWriteError désigne la ligne dont l'écriture a échoué. Rien n'a été
// conservé: la transaction a été annulée.
type PartialWriteError struct {
	Kind  string
	Index int
	Name  string
	Err   error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("échec de l'enregistrement du %s n° %d (%s), le bon n'a pas été enregistré: %v",
		e.Kind, e.Index+1, e.Name, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

type Recorder struct {
	store    db.Store
	validate *validation.Validator
	log      *slog.Logger
}

func New(store db.Store, v *validation.Validator, log *slog.Logger) *Recorder {
	return &Recorder{
		store:    store,
		validate: v,
		log:      log.With("component", "recorder"),
	}
}

func (r *Recorder) partial(kind string, index int, name string, err error) error {
	pw := &PartialWriteError{Kind: kind, Index: index, Name: name, Err: err}
	r.log.Error("line item write failed", "kind", kind, "index", index, "name", name, "error", err)
	return pw
}

// clientErr rattache un client introuvable au champ client_id.
func clientErr(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return validation.Violations{"client_id": "client introuvable"}.Err()
	}
	return err
}

func immutableClient() error {
	return validation.Violations{"client_id": "le client ne peut pas être modifié"}.Err()
}
