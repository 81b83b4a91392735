package recorder

import (
	"context"
	"fmt"

	"vitalecosystem/db"
	"vitalecosystem/internal/billing"
	"vitalecosystem/internal/validation"
	"vitalecosystem/models"
)

func (r *Recorder) checkBonAchat(b *models.BonAchat, withVersements bool) error {
	out := validation.Violations{}
	if err := r.validate.Check("", b, out); err != nil {
		return err
	}
	for i, p := range b.Produits {
		if err := r.validate.Check(fmt.Sprintf("produits[%d].", i), p, out); err != nil {
			return err
		}
	}
	if withVersements {
		for i, v := range b.Versements {
			if err := r.validate.Check(fmt.Sprintf("versements[%d].", i), v, out); err != nil {
				return err
			}
		}
	}
	return out.Err()
}

func amounts(vs []models.BonAchatVersement) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Montant.Float())
	}
	return out
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func unitPrice(p models.BonAchatProduct) float64 {
	if p.Prix == nil {
		return 0
	}
	return p.Prix.Float()
}

// writeBonProducts enregistre les produits du bon et réapprovisionne l'inventaire.
func (r *Recorder) writeBonProducts(ctx context.Context, q db.Queries, b *models.BonAchat, products []models.BonAchatProduct) error {
	b.Produits = make([]models.BonAchatProduct, 0, len(products))
	for i, p := range products {
		p.ID, p.BonAchatID = 0, b.ID
		if err := q.CreateBonAchatProduct(ctx, &p); err != nil {
			return r.partial(KindProduit, i, p.Produit, err)
		}
		if err := q.AdjustInventory(ctx, p.Produit, p.Qte, unitPrice(p)); err != nil {
			return r.partial(KindProduit, i, p.Produit, err)
		}
		b.Produits = append(b.Produits, p)
	}
	return nil
}

// RecordBonAchat enregistre un bon d'achat fournisseur avec ses produits et
// ses versements. La somme des versements ne peut dépasser le montant total.
func (r *Recorder) RecordBonAchat(ctx context.Context, b *models.BonAchat) error {
	b.ID = 0
	if err := r.checkBonAchat(b, true); err != nil {
		return err
	}
	total := billing.PurchaseTotal(billing.PurchaseLines(b.Produits))
	paid := amounts(b.Versements)
	if err := billing.CheckVersements(total, paid...); err != nil {
		return err
	}

	products, versements := b.Produits, b.Versements
	b.MontantTotal, b.MontantVerse = total, sum(paid)
	err := r.store.InTx(ctx, func(q db.Queries) error {
		if err := q.CreateBonAchat(ctx, b); err != nil {
			return err
		}
		if err := r.writeBonProducts(ctx, q, b, products); err != nil {
			return err
		}
		b.Versements = make([]models.BonAchatVersement, 0, len(versements))
		for i, v := range versements {
			v.ID, v.BonAchatID = 0, b.ID
			if err := q.CreateBonAchatVersement(ctx, &v); err != nil {
				return r.partial(KindVersement, i, v.Type, err)
			}
			b.Versements = append(b.Versements, v)
		}
		return nil
	})
	if err != nil {
		b.Produits, b.Versements = products, versements
		return err
	}

	r.log.Info("bon d'achat recorded", "bon_achat_id", b.ID, "fournisseur", b.Fournisseur,
		"montant_total", b.MontantTotal, "montant_verse", b.MontantVerse)
	return nil
}

// ModifyBonAchat remplace l'en-tête et les produits du bon id en conservant
// son identifiant et ses versements. L'inventaire des anciens produits est
// d'abord repris.
func (r *Recorder) ModifyBonAchat(ctx context.Context, id int, b *models.BonAchat) error {
	if err := r.checkBonAchat(b, false); err != nil {
		return err
	}
	products := b.Produits

	err := r.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockBonAchat(ctx, id); err != nil {
			return err
		}
		versements, err := q.ListBonAchatVersements(ctx, id)
		if err != nil {
			return err
		}
		total := billing.PurchaseTotal(billing.PurchaseLines(products))
		paid := amounts(versements)
		if err := billing.CheckVersements(total, paid...); err != nil {
			return err
		}
		if err := r.reverseStock(ctx, q, id); err != nil {
			return err
		}
		if err := q.DeleteBonAchatProducts(ctx, id); err != nil {
			return err
		}

		b.ID, b.MontantTotal, b.MontantVerse = id, total, sum(paid)
		if err := q.UpdateBonAchat(ctx, b); err != nil {
			return err
		}
		b.Versements = versements
		return r.writeBonProducts(ctx, q, b, products)
	})
	if err != nil {
		return err
	}

	r.log.Info("bon d'achat modified", "bon_achat_id", id, "montant_total", b.MontantTotal)
	return nil
}

// reverseStock retire du stock les quantités du bon. prix_dernier n'est pas
// restauré: il garde le dernier prix d'achat connu du produit.
func (r *Recorder) reverseStock(ctx context.Context, q db.Queries, bonID int) error {
	old, err := q.ListBonAchatProducts(ctx, bonID)
	if err != nil {
		return err
	}
	for _, p := range old {
		if err := q.AdjustInventory(ctx, p.Produit, -p.Qte, 0); err != nil {
			return err
		}
	}
	return nil
}

// AddBonAchatVersement ajoute un versement au bon s'il ne dépasse pas le
// reste à payer.
func (r *Recorder) AddBonAchatVersement(ctx context.Context, bonID int, v *models.BonAchatVersement) error {
	if err := r.validate.Struct(v); err != nil {
		return err
	}

	return r.store.InTx(ctx, func(q db.Queries) error {
		bon, err := q.LockBonAchat(ctx, bonID)
		if err != nil {
			return err
		}
		existing, err := q.ListBonAchatVersements(ctx, bonID)
		if err != nil {
			return err
		}
		paid := append(amounts(existing), v.Montant.Float())
		if err := billing.CheckVersements(bon.MontantTotal, paid...); err != nil {
			return err
		}
		v.ID, v.BonAchatID = 0, bonID
		if err := q.CreateBonAchatVersement(ctx, v); err != nil {
			return err
		}
		bon.MontantVerse = sum(paid)
		return q.UpdateBonAchat(ctx, bon)
	})
}

// DeleteBonAchat supprime le bon et retire ses produits de l'inventaire.
func (r *Recorder) DeleteBonAchat(ctx context.Context, id int) error {
	err := r.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockBonAchat(ctx, id); err != nil {
			return err
		}
		if err := r.reverseStock(ctx, q, id); err != nil {
			return err
		}
		return q.DeleteBonAchat(ctx, id)
	})
	if err != nil {
		return err
	}
	r.log.Info("bon d'achat deleted", "bon_achat_id", id)
	return nil
}

// BonAchat renvoie le bon avec ses produits et ses versements.
func (r *Recorder) BonAchat(ctx context.Context, id int) (*models.BonAchat, error) {
	b, err := r.store.GetBonAchat(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Produits, err = r.store.ListBonAchatProducts(ctx, id); err != nil {
		return nil, err
	}
	if b.Versements, err = r.store.ListBonAchatVersements(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Recorder) BonAchats(ctx context.Context) ([]models.BonAchat, error) {
	return r.store.ListBonAchats(ctx)
}

func (r *Recorder) BonAchatProducts(ctx context.Context, bonID int) ([]models.BonAchatProduct, error) {
	if _, err := r.store.GetBonAchat(ctx, bonID); err != nil {
		return nil, err
	}
	return r.store.ListBonAchatProducts(ctx, bonID)
}

func (r *Recorder) BonAchatVersements(ctx context.Context, bonID int) ([]models.BonAchatVersement, error) {
	if _, err := r.store.GetBonAchat(ctx, bonID); err != nil {
		return nil, err
	}
	return r.store.ListBonAchatVersements(ctx, bonID)
}

func (r *Recorder) Inventory(ctx context.Context) ([]models.InventoryItem, error) {
	return r.store.ListInventory(ctx)
}
