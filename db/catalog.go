package db

import (
	"context"

	"vitalecosystem/models"
)

func (s *Storage) ListAgents(ctx context.Context) ([]models.Agent, error) {
	agents := []models.Agent{}
	query := `SELECT id, nom, telephone, whatsapp, gps, regime, notification FROM agent ORDER BY nom ASC`
	err := s.list(ctx, &agents, query)
	return agents, err
}

func (s *Storage) CreateAgent(ctx context.Context, a *models.Agent) error {
	query := `
        INSERT INTO agent (nom, telephone, whatsapp, gps, regime, notification)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`
	return s.insert(ctx, &a.ID, query, a.Nom, a.Telephone, a.Whatsapp, a.GPS, a.Regime, a.Notification)
}

func (s *Storage) UpdateAgent(ctx context.Context, a *models.Agent) error {
	query := `
        UPDATE agent
        SET nom=$1, telephone=$2, whatsapp=$3, gps=$4, regime=$5, notification=$6
        WHERE id=$7`
	return s.exec(ctx, query, a.Nom, a.Telephone, a.Whatsapp, a.GPS, a.Regime, a.Notification, a.ID)
}

func (s *Storage) DeleteAgent(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM agent WHERE id=$1`, id)
}

func (s *Storage) ListProduits(ctx context.Context) ([]models.Produit, error) {
	produits := []models.Produit{}
	err := s.list(ctx, &produits, `SELECT id, designation FROM produit ORDER BY designation ASC`)
	return produits, err
}

func (s *Storage) CreateProduit(ctx context.Context, p *models.Produit) error {
	return s.insert(ctx, &p.ID, `INSERT INTO produit (designation) VALUES ($1) RETURNING id`, p.Designation)
}

func (s *Storage) UpdateProduit(ctx context.Context, p *models.Produit) error {
	return s.exec(ctx, `UPDATE produit SET designation=$1 WHERE id=$2`, p.Designation, p.ID)
}

func (s *Storage) DeleteProduit(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM produit WHERE id=$1`, id)
}

func (s *Storage) ListServices(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	err := s.list(ctx, &services, `SELECT id, designation, incineration FROM service ORDER BY designation ASC`)
	return services, err
}

func (s *Storage) CreateService(ctx context.Context, sv *models.Service) error {
	query := `INSERT INTO service (designation, incineration) VALUES ($1, $2) RETURNING id`
	return s.insert(ctx, &sv.ID, query, sv.Designation, sv.Incineration)
}

func (s *Storage) UpdateService(ctx context.Context, sv *models.Service) error {
	return s.exec(ctx, `UPDATE service SET designation=$1, incineration=$2 WHERE id=$3`, sv.Designation, sv.Incineration, sv.ID)
}

func (s *Storage) DeleteService(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM service WHERE id=$1`, id)
}

func (s *Storage) ListFournisseurs(ctx context.Context) ([]models.Fournisseur, error) {
	fournisseurs := []models.Fournisseur{}
	err := s.list(ctx, &fournisseurs, `SELECT id, nom, telephone, adresse FROM fournisseur ORDER BY nom ASC`)
	return fournisseurs, err
}

func (s *Storage) CreateFournisseur(ctx context.Context, f *models.Fournisseur) error {
	query := `INSERT INTO fournisseur (nom, telephone, adresse) VALUES ($1, $2, $3) RETURNING id`
	return s.insert(ctx, &f.ID, query, f.Nom, f.Telephone, f.Adresse)
}

func (s *Storage) UpdateFournisseur(ctx context.Context, f *models.Fournisseur) error {
	return s.exec(ctx, `UPDATE fournisseur SET nom=$1, telephone=$2, adresse=$3 WHERE id=$4`, f.Nom, f.Telephone, f.Adresse, f.ID)
}

func (s *Storage) DeleteFournisseur(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM fournisseur WHERE id=$1`, id)
}
