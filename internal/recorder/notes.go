package recorder

import (
	"context"
	"fmt"

	"vitalecosystem/db"
	"vitalecosystem/internal/billing"
	"vitalecosystem/internal/contracts"
	"vitalecosystem/internal/validation"
	"vitalecosystem/models"
)

// DeliveryNoteInput est la saisie d'un bon de passage. exces_poids et montant
// sont toujours recalculés à partir du contrat.
type DeliveryNoteInput struct {
	ClientID      int                          `json:"client_id"`
	Date          models.Date                  `json:"date" validate:"required"`
	PoidsCollecte int                          `json:"poids_collecte" validate:"gt=0"`
	Produits      []models.DeliveryNoteProduct `json:"produits"`
	Services      []models.DeliveryNoteService `json:"services"`
}

func (r *Recorder) checkNote(in DeliveryNoteInput) error {
	out := validation.Violations{}
	if in.ClientID <= 0 {
		out.Add("client_id", "champ obligatoire")
	}
	if err := r.validate.Check("", in, out); err != nil {
		return err
	}
	for i, p := range in.Produits {
		if err := r.validate.Check(fmt.Sprintf("produits[%d].", i), p, out); err != nil {
			return err
		}
	}
	for i, s := range in.Services {
		if err := r.validate.Check(fmt.Sprintf("services[%d].", i), s, out); err != nil {
			return err
		}
	}
	return out.Err()
}

// bill calcule exces_poids et montant du bon selon le contrat.
func bill(n *models.DeliveryNote, c models.Contract, products []models.DeliveryNoteProduct) {
	n.ContratID = c.ID
	n.ExcesPoids = billing.ExcessWeight(n.PoidsCollecte, c.PoidsForfait)
	n.Montant = billing.DeliveryNoteTotal(billing.NoteLines(products), float64(n.ExcesPoids), c.PrixExcesPoids.Float())
}

// RecordDeliveryNote enregistre un bon de passage facturé sur le contrat Actif
// du client, puis ses consommables et ses services, dans cet ordre.
func (r *Recorder) RecordDeliveryNote(ctx context.Context, in DeliveryNoteInput) (*models.DeliveryNote, error) {
	if err := r.checkNote(in); err != nil {
		return nil, err
	}

	note := &models.DeliveryNote{
		ClientID:      in.ClientID,
		Date:          in.Date,
		PoidsCollecte: in.PoidsCollecte,
	}
	err := r.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockClient(ctx, in.ClientID); err != nil {
			return clientErr(err)
		}
		cs, err := q.ListClientContracts(ctx, in.ClientID)
		if err != nil {
			return err
		}
		contract, err := contracts.NewBook(cs).RequireBillable(in.ClientID)
		if err != nil {
			return err
		}
		bill(note, contract, in.Produits)
		if err := q.CreateDeliveryNote(ctx, note); err != nil {
			return err
		}
		return r.writeNoteChildren(ctx, q, note, in)
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("delivery note recorded", "bon_id", note.ID, "client_id", note.ClientID,
		"contrat_id", note.ContratID, "montant", note.Montant)
	return note, nil
}

func (r *Recorder) writeNoteChildren(ctx context.Context, q db.Queries, note *models.DeliveryNote, in DeliveryNoteInput) error {
	note.Produits = make([]models.DeliveryNoteProduct, 0, len(in.Produits))
	for i, p := range in.Produits {
		p.ID, p.BonPassageID = 0, note.ID
		if err := q.CreateDeliveryNoteProduct(ctx, &p); err != nil {
			return r.partial(KindProduit, i, p.Produit, err)
		}
		note.Produits = append(note.Produits, p)
	}
	note.Services = make([]models.DeliveryNoteService, 0, len(in.Services))
	for i, s := range in.Services {
		s.ID, s.BonPassageID = 0, note.ID
		if err := q.CreateDeliveryNoteService(ctx, &s); err != nil {
			return r.partial(KindService, i, s.Service, err)
		}
		note.Services = append(note.Services, s)
	}
	return nil
}

// ModifyDeliveryNote remplace le contenu du bon id en conservant son
// identifiant. Le bon est refacturé sur son propre contrat.
func (r *Recorder) ModifyDeliveryNote(ctx context.Context, id int, in DeliveryNoteInput) (*models.DeliveryNote, error) {
	existing, err := r.store.GetDeliveryNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ClientID != 0 && in.ClientID != existing.ClientID {
		return nil, immutableClient()
	}
	in.ClientID = existing.ClientID
	if err := r.checkNote(in); err != nil {
		return nil, err
	}

	var note *models.DeliveryNote
	err = r.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockClient(ctx, in.ClientID); err != nil {
			return err
		}
		n, err := q.GetDeliveryNote(ctx, id)
		if err != nil {
			return err
		}
		contract, err := q.GetContract(ctx, n.ContratID)
		if err != nil {
			return err
		}
		n.Date, n.PoidsCollecte = in.Date, in.PoidsCollecte
		bill(n, *contract, in.Produits)
		if err := q.UpdateDeliveryNote(ctx, n); err != nil {
			return err
		}
		if err := q.DeleteDeliveryNoteProducts(ctx, id); err != nil {
			return err
		}
		if err := q.DeleteDeliveryNoteServices(ctx, id); err != nil {
			return err
		}
		note = n
		return r.writeNoteChildren(ctx, q, n, in)
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("delivery note modified", "bon_id", note.ID, "client_id", note.ClientID, "montant", note.Montant)
	return note, nil
}

// AddDeliveryNoteProduct ajoute un consommable au bon et recalcule son montant.
func (r *Recorder) AddDeliveryNoteProduct(ctx context.Context, noteID int, p *models.DeliveryNoteProduct) error {
	if err := r.validate.Struct(p); err != nil {
		return err
	}
	existing, err := r.store.GetDeliveryNote(ctx, noteID)
	if err != nil {
		return err
	}

	return r.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockClient(ctx, existing.ClientID); err != nil {
			return err
		}
		n, err := q.GetDeliveryNote(ctx, noteID)
		if err != nil {
			return err
		}
		contract, err := q.GetContract(ctx, n.ContratID)
		if err != nil {
			return err
		}
		p.ID, p.BonPassageID = 0, noteID
		if err := q.CreateDeliveryNoteProduct(ctx, p); err != nil {
			return err
		}
		products, err := q.ListDeliveryNoteProducts(ctx, noteID)
		if err != nil {
			return err
		}
		bill(n, *contract, products)
		return q.UpdateDeliveryNote(ctx, n)
	})
}

// AddDeliveryNoteService ajoute un service; le montant du bon ne change pas.
func (r *Recorder) AddDeliveryNoteService(ctx context.Context, noteID int, s *models.DeliveryNoteService) error {
	if err := r.validate.Struct(s); err != nil {
		return err
	}
	if _, err := r.store.GetDeliveryNote(ctx, noteID); err != nil {
		return err
	}
	s.ID, s.BonPassageID = 0, noteID
	return r.store.CreateDeliveryNoteService(ctx, s)
}

func (r *Recorder) DeleteDeliveryNote(ctx context.Context, id int) error {
	if err := r.store.DeleteDeliveryNote(ctx, id); err != nil {
		return err
	}
	r.log.Info("delivery note deleted", "bon_id", id)
	return nil
}

// DeliveryNote renvoie le bon avec ses consommables et ses services.
func (r *Recorder) DeliveryNote(ctx context.Context, id int) (*models.DeliveryNote, error) {
	n, err := r.store.GetDeliveryNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Produits, err = r.store.ListDeliveryNoteProducts(ctx, id); err != nil {
		return nil, err
	}
	if n.Services, err = r.store.ListDeliveryNoteServices(ctx, id); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *Recorder) DeliveryNotes(ctx context.Context, clientID int) ([]models.DeliveryNote, error) {
	return r.store.ListDeliveryNotes(ctx, clientID)
}

func (r *Recorder) DeliveryNoteProducts(ctx context.Context, noteID int) ([]models.DeliveryNoteProduct, error) {
	if _, err := r.store.GetDeliveryNote(ctx, noteID); err != nil {
		return nil, err
	}
	return r.store.ListDeliveryNoteProducts(ctx, noteID)
}

func (r *Recorder) DeliveryNoteServices(ctx context.Context, noteID int) ([]models.DeliveryNoteService, error) {
	if _, err := r.store.GetDeliveryNote(ctx, noteID); err != nil {
		return nil, err
	}
	return r.store.ListDeliveryNoteServices(ctx, noteID)
}
