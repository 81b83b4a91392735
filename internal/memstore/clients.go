package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"vitalecosystem/db"
	"vitalecosystem/models"
)

func sorted[T any](m map[int]T, less func(a, b T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, less)
	return out
}

func byDateDesc(a, b models.Date, idA, idB int) int {
	if c := b.Compare(a.Time); c != 0 {
		return c
	}
	return cmp.Compare(idB, idA)
}

func (d *data) ListClients(ctx context.Context) ([]models.Client, error) {
	defer d.lock()()
	return sorted(d.clients, func(a, b models.Client) int {
		if c := cmp.Compare(a.Nom, b.Nom); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}), nil
}

func (d *data) GetClient(ctx context.Context, id int) (*models.Client, error) {
	defer d.lock()()
	c, ok := d.clients[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &c, nil
}

// LockClient se confond avec GetClient: les transactions sont déjà sérialisées.
func (d *data) LockClient(ctx context.Context, id int) (*models.Client, error) {
	return d.GetClient(ctx, id)
}

func (d *data) CreateClient(ctx context.Context, c *models.Client) error {
	defer d.lock()()
	c.ID = d.nextID()
	d.clients[c.ID] = storedClient(*c)
	return nil
}

func (d *data) UpdateClient(ctx context.Context, c *models.Client) error {
	defer d.lock()()
	if _, ok := d.clients[c.ID]; !ok {
		return db.ErrNotFound
	}
	d.clients[c.ID] = storedClient(*c)
	return nil
}

// storedClient retire les champs projetés, qui ne sont pas persistés.
func storedClient(c models.Client) models.Client {
	c.EtatContrat, c.DebutContrat, c.FinContrat = nil, nil, nil
	return c
}

func (d *data) DeleteClient(ctx context.Context, id int) error {
	defer d.lock()()
	if _, ok := d.clients[id]; !ok {
		return db.ErrNotFound
	}
	delete(d.clients, id)
	for cid, c := range d.contracts {
		if c.ClientID == id {
			delete(d.contracts, cid)
		}
	}
	for nid, n := range d.notes {
		if n.ClientID == id {
			d.deleteNote(nid)
		}
	}
	for vid, v := range d.versements {
		if v.ClientID == id {
			delete(d.versements, vid)
		}
	}
	return nil
}

// Contrats forfait

func (d *data) ListContracts(ctx context.Context) ([]models.Contract, error) {
	defer d.lock()()
	return sorted(d.contracts, func(a, b models.Contract) int {
		if c := cmp.Compare(a.ClientID, b.ClientID); c != 0 {
			return c
		}
		return byDateDesc(a.DateDebut, b.DateDebut, a.ID, b.ID)
	}), nil
}

func (d *data) ListClientContracts(ctx context.Context, clientID int) ([]models.Contract, error) {
	defer d.lock()()
	out := []models.Contract{}
	for _, c := range d.contracts {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b models.Contract) int {
		return byDateDesc(a.DateDebut, b.DateDebut, a.ID, b.ID)
	})
	return out, nil
}

func (d *data) GetContract(ctx context.Context, id int) (*models.Contract, error) {
	defer d.lock()()
	c, ok := d.contracts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &c, nil
}

func (d *data) CreateContract(ctx context.Context, c *models.Contract) error {
	defer d.lock()()
	if err := d.checkContract(*c); err != nil {
		return err
	}
	c.ID = d.nextID()
	d.contracts[c.ID] = *c
	return nil
}

func (d *data) UpdateContract(ctx context.Context, c *models.Contract) error {
	defer d.lock()()
	old, ok := d.contracts[c.ID]
	if !ok {
		return db.ErrNotFound
	}
	c.ClientID = old.ClientID
	if err := d.checkContract(*c); err != nil {
		return err
	}
	d.contracts[c.ID] = *c
	return nil
}

// checkContract reproduit les contraintes de la table contrat_forfait,
// dont l'index unique partiel sur les contrats Actif/Pause.
func (d *data) checkContract(c models.Contract) error {
	if _, ok := d.clients[c.ClientID]; !ok {
		return db.ErrNotFound
	}
	if !c.DateFin.After(c.DateDebut) || c.Montant <= 0 || c.PrixExcesPoids <= 0 || c.PoidsForfait <= 0 {
		return db.ErrConstraint
	}
	if !c.Etat.Governing() {
		return nil
	}
	for _, other := range d.contracts {
		if other.ID != c.ID && other.ClientID == c.ClientID && other.Etat.Governing() {
			return db.ErrGoverningContractExists
		}
	}
	return nil
}

func (d *data) ListExpiredContracts(ctx context.Context, before time.Time) ([]models.Contract, error) {
	defer d.lock()()
	limit := models.DateOf(before)
	out := []models.Contract{}
	for _, c := range d.contracts {
		if c.Etat.Governing() && c.DateFin.Before(limit) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b models.Contract) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
