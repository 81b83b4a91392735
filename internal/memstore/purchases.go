package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"vitalecosystem/db"
	"vitalecosystem/models"
)

func (d *data) ListBonAchats(ctx context.Context) ([]models.BonAchat, error) {
	defer d.lock()()
	return sorted(d.bonAchats, func(a, b models.BonAchat) int {
		return byDateDesc(a.Date, b.Date, a.ID, b.ID)
	}), nil
}

func (d *data) GetBonAchat(ctx context.Context, id int) (*models.BonAchat, error) {
	defer d.lock()()
	b, ok := d.bonAchats[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &b, nil
}

func (d *data) LockBonAchat(ctx context.Context, id int) (*models.BonAchat, error) {
	return d.GetBonAchat(ctx, id)
}

func (d *data) CreateBonAchat(ctx context.Context, b *models.BonAchat) error {
	defer d.lock()()
	if b.MontantTotal < 0 || b.MontantVerse < 0 {
		return db.ErrConstraint
	}
	b.ID = d.nextID()
	d.bonAchats[b.ID] = storedBonAchat(*b)
	return nil
}

func (d *data) UpdateBonAchat(ctx context.Context, b *models.BonAchat) error {
	defer d.lock()()
	if _, ok := d.bonAchats[b.ID]; !ok {
		return db.ErrNotFound
	}
	if b.MontantTotal < 0 || b.MontantVerse < 0 {
		return db.ErrConstraint
	}
	d.bonAchats[b.ID] = storedBonAchat(*b)
	return nil
}

func storedBonAchat(b models.BonAchat) models.BonAchat {
	b.Produits, b.Versements = nil, nil
	return b
}

func (d *data) DeleteBonAchat(ctx context.Context, id int) error {
	defer d.lock()()
	if _, ok := d.bonAchats[id]; !ok {
		return db.ErrNotFound
	}
	delete(d.bonAchats, id)
	for pid, p := range d.bonProducts {
		if p.BonAchatID == id {
			delete(d.bonProducts, pid)
		}
	}
	for vid, v := range d.bonVersements {
		if v.BonAchatID == id {
			delete(d.bonVersements, vid)
		}
	}
	return nil
}

func (d *data) ListBonAchatProducts(ctx context.Context, bonID int) ([]models.BonAchatProduct, error) {
	defer d.lock()()
	out := []models.BonAchatProduct{}
	for _, p := range d.bonProducts {
		if p.BonAchatID == bonID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.BonAchatProduct) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (d *data) CreateBonAchatProduct(ctx context.Context, p *models.BonAchatProduct) error {
	defer d.lock()()
	if _, ok := d.bonAchats[p.BonAchatID]; !ok {
		return db.ErrNotFound
	}
	if p.Qte <= 0 || (p.Prix != nil && *p.Prix <= 0) {
		return db.ErrConstraint
	}
	p.ID = d.nextID()
	d.bonProducts[p.ID] = *p
	return nil
}

func (d *data) DeleteBonAchatProducts(ctx context.Context, bonID int) error {
	defer d.lock()()
	for pid, p := range d.bonProducts {
		if p.BonAchatID == bonID {
			delete(d.bonProducts, pid)
		}
	}
	return nil
}

func (d *data) ListBonAchatVersements(ctx context.Context, bonID int) ([]models.BonAchatVersement, error) {
	defer d.lock()()
	out := []models.BonAchatVersement{}
	for _, v := range d.bonVersements {
		if v.BonAchatID == bonID {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b models.BonAchatVersement) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (d *data) CreateBonAchatVersement(ctx context.Context, v *models.BonAchatVersement) error {
	defer d.lock()()
	if _, ok := d.bonAchats[v.BonAchatID]; !ok {
		return db.ErrNotFound
	}
	if v.Montant <= 0 || (v.Type != models.PaymentCheque && v.Type != models.PaymentCash) {
		return db.ErrConstraint
	}
	v.ID = d.nextID()
	d.bonVersements[v.ID] = *v
	return nil
}

// Inventaire

func (d *data) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	defer d.lock()()
	out := make([]models.InventoryItem, 0, len(d.inventory))
	for _, it := range d.inventory {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b models.InventoryItem) int { return strings.Compare(a.Produit, b.Produit) })
	return out, nil
}

func (d *data) AdjustInventory(ctx context.Context, produit string, delta int, prix float64) error {
	defer d.lock()()
	it, ok := d.inventory[produit]
	if !ok {
		it = models.InventoryItem{ID: d.nextID(), Produit: produit}
	}
	it.Qte = max(0, it.Qte+delta)
	if prix > 0 {
		it.PrixDernier = prix
	}
	d.inventory[produit] = it
	return nil
}
