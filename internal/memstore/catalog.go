package memstore

import (
	"context"
	"strings"

	"vitalecosystem/db"
	"vitalecosystem/models"
)

// put enregistre v sous id en refusant un doublon sur la clé key.
func put[T any](m map[int]T, id int, v T, key func(T) string) error {
	if key != nil {
		k := strings.ToLower(key(v))
		for otherID, other := range m {
			if otherID != id && strings.ToLower(key(other)) == k {
				return db.ErrDuplicate
			}
		}
	}
	m[id] = v
	return nil
}

func update[T any](m map[int]T, id int, v T, key func(T) string) error {
	if _, ok := m[id]; !ok {
		return db.ErrNotFound
	}
	return put(m, id, v, key)
}

func remove[T any](m map[int]T, id int) error {
	if _, ok := m[id]; !ok {
		return db.ErrNotFound
	}
	delete(m, id)
	return nil
}

func (d *data) ListAgents(ctx context.Context) ([]models.Agent, error) {
	defer d.lock()()
	return sorted(d.agents, func(a, b models.Agent) int { return strings.Compare(a.Nom, b.Nom) }), nil
}

func (d *data) CreateAgent(ctx context.Context, a *models.Agent) error {
	defer d.lock()()
	a.ID = d.nextID()
	return put(d.agents, a.ID, *a, nil)
}

func (d *data) UpdateAgent(ctx context.Context, a *models.Agent) error {
	defer d.lock()()
	return update(d.agents, a.ID, *a, nil)
}

func (d *data) DeleteAgent(ctx context.Context, id int) error {
	defer d.lock()()
	return remove(d.agents, id)
}

func produitKey(p models.Produit) string { return p.Designation }

func (d *data) ListProduits(ctx context.Context) ([]models.Produit, error) {
	defer d.lock()()
	return sorted(d.produits, func(a, b models.Produit) int { return strings.Compare(a.Designation, b.Designation) }), nil
}

func (d *data) CreateProduit(ctx context.Context, p *models.Produit) error {
	defer d.lock()()
	p.ID = d.nextID()
	return put(d.produits, p.ID, *p, produitKey)
}

func (d *data) UpdateProduit(ctx context.Context, p *models.Produit) error {
	defer d.lock()()
	return update(d.produits, p.ID, *p, produitKey)
}

func (d *data) DeleteProduit(ctx context.Context, id int) error {
	defer d.lock()()
	return remove(d.produits, id)
}

func serviceKey(s models.Service) string { return s.Designation }

func (d *data) ListServices(ctx context.Context) ([]models.Service, error) {
	defer d.lock()()
	return sorted(d.services, func(a, b models.Service) int { return strings.Compare(a.Designation, b.Designation) }), nil
}

func (d *data) CreateService(ctx context.Context, s *models.Service) error {
	defer d.lock()()
	s.ID = d.nextID()
	return put(d.services, s.ID, *s, serviceKey)
}

func (d *data) UpdateService(ctx context.Context, s *models.Service) error {
	defer d.lock()()
	return update(d.services, s.ID, *s, serviceKey)
}

func (d *data) DeleteService(ctx context.Context, id int) error {
	defer d.lock()()
	return remove(d.services, id)
}

func fournisseurKey(f models.Fournisseur) string { return f.Nom }

func (d *data) ListFournisseurs(ctx context.Context) ([]models.Fournisseur, error) {
	defer d.lock()()
	return sorted(d.fournisseurs, func(a, b models.Fournisseur) int { return strings.Compare(a.Nom, b.Nom) }), nil
}

func (d *data) CreateFournisseur(ctx context.Context, f *models.Fournisseur) error {
	defer d.lock()()
	f.ID = d.nextID()
	return put(d.fournisseurs, f.ID, *f, fournisseurKey)
}

func (d *data) UpdateFournisseur(ctx context.Context, f *models.Fournisseur) error {
	defer d.lock()()
	return update(d.fournisseurs, f.ID, *f, fournisseurKey)
}

func (d *data) DeleteFournisseur(ctx context.Context, id int) error {
	defer d.lock()()
	return remove(d.fournisseurs, id)
}
