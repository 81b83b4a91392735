package recorder

import (
	"context"

	"vitalecosystem/db"
	"vitalecosystem/internal/contracts"
	"vitalecosystem/models"
)

// RecordVersement enregistre un versement rattaché au contrat Actif du client.
// Aucun plafond n'est appliqué par rapport au montant du contrat.
func (r *Recorder) RecordVersement(ctx context.Context, v *models.Versement) error {
	v.ID = 0
	if err := r.validate.Struct(v); err != nil {
		return err
	}

	err := r.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockClient(ctx, v.ClientID); err != nil {
			return clientErr(err)
		}
		cs, err := q.ListClientContracts(ctx, v.ClientID)
		if err != nil {
			return err
		}
		contract, err := contracts.NewBook(cs).RequireBillable(v.ClientID)
		if err != nil {
			return err
		}
		v.ContratID = contract.ID
		return q.CreateVersement(ctx, v)
	})
	if err != nil {
		return err
	}

	r.log.Info("versement recorded", "versement_id", v.ID, "client_id", v.ClientID,
		"contrat_id", v.ContratID, "montant", v.Montant.Float())
	return nil
}

// ModifyVersement ne change que la date et le montant; le client et le
// contrat restent ceux d'origine.
func (r *Recorder) ModifyVersement(ctx context.Context, id int, v *models.Versement) error {
	existing, err := r.store.GetVersement(ctx, id)
	if err != nil {
		return err
	}
	if v.ClientID != 0 && v.ClientID != existing.ClientID {
		return immutableClient()
	}
	v.ID, v.ClientID, v.ContratID = id, existing.ClientID, existing.ContratID
	if err := r.validate.Struct(v); err != nil {
		return err
	}
	return r.store.UpdateVersement(ctx, v)
}

func (r *Recorder) DeleteVersement(ctx context.Context, id int) error {
	if err := r.store.DeleteVersement(ctx, id); err != nil {
		return err
	}
	r.log.Info("versement deleted", "versement_id", id)
	return nil
}

func (r *Recorder) Versements(ctx context.Context, clientID int) ([]models.Versement, error) {
	return r.store.ListVersements(ctx, clientID)
}
