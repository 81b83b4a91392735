package memstore

import (
	"cmp"
	"context"
	"slices"

	"vitalecosystem/db"
	"vitalecosystem/models"
)

func (d *data) ListDeliveryNotes(ctx context.Context, clientID int) ([]models.DeliveryNote, error) {
	defer d.lock()()
	out := []models.DeliveryNote{}
	for _, n := range d.notes {
		if clientID == 0 || n.ClientID == clientID {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b models.DeliveryNote) int {
		return byDateDesc(a.Date, b.Date, a.ID, b.ID)
	})
	return out, nil
}

func (d *data) GetDeliveryNote(ctx context.Context, id int) (*models.DeliveryNote, error) {
	defer d.lock()()
	n, ok := d.notes[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &n, nil
}

func (d *data) CreateDeliveryNote(ctx context.Context, n *models.DeliveryNote) error {
	defer d.lock()()
	if _, ok := d.clients[n.ClientID]; !ok {
		return db.ErrNotFound
	}
	if _, ok := d.contracts[n.ContratID]; !ok {
		return db.ErrNotFound
	}
	if n.PoidsCollecte <= 0 || n.ExcesPoids < 0 || n.Montant < 0 {
		return db.ErrConstraint
	}
	n.ID = d.nextID()
	d.notes[n.ID] = storedNote(*n)
	return nil
}

func (d *data) UpdateDeliveryNote(ctx context.Context, n *models.DeliveryNote) error {
	defer d.lock()()
	old, ok := d.notes[n.ID]
	if !ok {
		return db.ErrNotFound
	}
	if n.PoidsCollecte <= 0 || n.ExcesPoids < 0 || n.Montant < 0 {
		return db.ErrConstraint
	}
	old.Date, old.PoidsCollecte, old.ExcesPoids, old.Montant = n.Date, n.PoidsCollecte, n.ExcesPoids, n.Montant
	d.notes[n.ID] = old
	return nil
}

func storedNote(n models.DeliveryNote) models.DeliveryNote {
	n.Produits, n.Services = nil, nil
	return n
}

func (d *data) DeleteDeliveryNote(ctx context.Context, id int) error {
	defer d.lock()()
	if _, ok := d.notes[id]; !ok {
		return db.ErrNotFound
	}
	d.deleteNote(id)
	return nil
}

func (d *data) deleteNote(id int) {
	delete(d.notes, id)
	d.deleteNoteChildren(id)
}

func (d *data) deleteNoteChildren(id int) {
	for pid, p := range d.noteProducts {
		if p.BonPassageID == id {
			delete(d.noteProducts, pid)
		}
	}
	for sid, s := range d.noteServices {
		if s.BonPassageID == id {
			delete(d.noteServices, sid)
		}
	}
}

func (d *data) ListDeliveryNoteProducts(ctx context.Context, noteID int) ([]models.DeliveryNoteProduct, error) {
	defer d.lock()()
	out := []models.DeliveryNoteProduct{}
	for _, p := range d.noteProducts {
		if p.BonPassageID == noteID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.DeliveryNoteProduct) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (d *data) CreateDeliveryNoteProduct(ctx context.Context, p *models.DeliveryNoteProduct) error {
	defer d.lock()()
	if _, ok := d.notes[p.BonPassageID]; !ok {
		return db.ErrNotFound
	}
	if p.Qte <= 0 || p.Prix <= 0 {
		return db.ErrConstraint
	}
	p.ID = d.nextID()
	d.noteProducts[p.ID] = *p
	return nil
}

func (d *data) DeleteDeliveryNoteProducts(ctx context.Context, noteID int) error {
	defer d.lock()()
	for pid, p := range d.noteProducts {
		if p.BonPassageID == noteID {
			delete(d.noteProducts, pid)
		}
	}
	return nil
}

func (d *data) ListDeliveryNoteServices(ctx context.Context, noteID int) ([]models.DeliveryNoteService, error) {
	defer d.lock()()
	out := []models.DeliveryNoteService{}
	for _, s := range d.noteServices {
		if s.BonPassageID == noteID {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b models.DeliveryNoteService) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (d *data) CreateDeliveryNoteService(ctx context.Context, s *models.DeliveryNoteService) error {
	defer d.lock()()
	if _, ok := d.notes[s.BonPassageID]; !ok {
		return db.ErrNotFound
	}
	if s.Qte != nil && *s.Qte <= 0 {
		return db.ErrConstraint
	}
	s.ID = d.nextID()
	d.noteServices[s.ID] = *s
	return nil
}

func (d *data) DeleteDeliveryNoteServices(ctx context.Context, noteID int) error {
	defer d.lock()()
	for sid, s := range d.noteServices {
		if s.BonPassageID == noteID {
			delete(d.noteServices, sid)
		}
	}
	return nil
}

// Versements forfait

func (d *data) ListVersements(ctx context.Context, clientID int) ([]models.Versement, error) {
	defer d.lock()()
	out := []models.Versement{}
	for _, v := range d.versements {
		if clientID == 0 || v.ClientID == clientID {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b models.Versement) int {
		return byDateDesc(a.Date, b.Date, a.ID, b.ID)
	})
	return out, nil
}

func (d *data) GetVersement(ctx context.Context, id int) (*models.Versement, error) {
	defer d.lock()()
	v, ok := d.versements[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &v, nil
}

func (d *data) CreateVersement(ctx context.Context, v *models.Versement) error {
	defer d.lock()()
	if _, ok := d.clients[v.ClientID]; !ok {
		return db.ErrNotFound
	}
	if _, ok := d.contracts[v.ContratID]; !ok {
		return db.ErrNotFound
	}
	if v.Montant <= 0 {
		return db.ErrConstraint
	}
	v.ID = d.nextID()
	d.versements[v.ID] = *v
	return nil
}

func (d *data) UpdateVersement(ctx context.Context, v *models.Versement) error {
	defer d.lock()()
	old, ok := d.versements[v.ID]
	if !ok {
		return db.ErrNotFound
	}
	if v.Montant <= 0 {
		return db.ErrConstraint
	}
	old.Date, old.Montant = v.Date, v.Montant
	d.versements[v.ID] = old
	return nil
}

func (d *data) DeleteVersement(ctx context.Context, id int) error {
	defer d.lock()()
	if _, ok := d.versements[id]; !ok {
		return db.ErrNotFound
	}
	delete(d.versements, id)
	return nil
}
