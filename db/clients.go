package db

import (
	"context"
	"time"

	"vitalecosystem/models"
)

const clientColumns = `id, nom, specialite, tel, mode, agent`

func (s *Storage) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	err := s.list(ctx, &clients, `SELECT `+clientColumns+` FROM client_forfait ORDER BY nom ASC, id ASC`)
	return clients, err
}

func (s *Storage) GetClient(ctx context.Context, id int) (*models.Client, error) {
	c := &models.Client{}
	if err := s.get(ctx, c, `SELECT `+clientColumns+` FROM client_forfait WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) LockClient(ctx context.Context, id int) (*models.Client, error) {
	c := &models.Client{}
	if err := s.get(ctx, c, `SELECT `+clientColumns+` FROM client_forfait WHERE id=$1 FOR UPDATE`, id); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) CreateClient(ctx context.Context, c *models.Client) error {
	query := `
        INSERT INTO client_forfait (nom, specialite, tel, mode, agent)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	return s.insert(ctx, &c.ID, query, c.Nom, c.Specialite, c.Tel, c.Mode, c.Agent)
}

func (s *Storage) UpdateClient(ctx context.Context, c *models.Client) error {
	query := `
        UPDATE client_forfait
        SET nom=$1, specialite=$2, tel=$3, mode=$4, agent=$5
        WHERE id=$6`
	return s.exec(ctx, query, c.Nom, c.Specialite, c.Tel, c.Mode, c.Agent, c.ID)
}

func (s *Storage) DeleteClient(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM client_forfait WHERE id=$1`, id)
}

// Contrats forfait

const contractColumns = `id, client_id, date_debut, date_fin, montant, prix_exces_poids, poids_forfait, etat`

func (s *Storage) ListContracts(ctx context.Context) ([]models.Contract, error) {
	contracts := []models.Contract{}
	err := s.list(ctx, &contracts, `SELECT `+contractColumns+` FROM contrat_forfait ORDER BY client_id ASC, date_debut DESC`)
	return contracts, err
}

func (s *Storage) ListClientContracts(ctx context.Context, clientID int) ([]models.Contract, error) {
	contracts := []models.Contract{}
	query := `SELECT ` + contractColumns + ` FROM contrat_forfait WHERE client_id=$1 ORDER BY date_debut DESC, id DESC`
	err := s.list(ctx, &contracts, query, clientID)
	return contracts, err
}

func (s *Storage) GetContract(ctx context.Context, id int) (*models.Contract, error) {
	c := &models.Contract{}
	if err := s.get(ctx, c, `SELECT `+contractColumns+` FROM contrat_forfait WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Storage) CreateContract(ctx context.Context, c *models.Contract) error {
	query := `
        INSERT INTO contrat_forfait
            (client_id, date_debut, date_fin, montant, prix_exces_poids, poids_forfait, etat)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`
	return s.insert(ctx, &c.ID, query,
		c.ClientID, c.DateDebut, c.DateFin, c.Montant, c.PrixExcesPoids, c.PoidsForfait, c.Etat)
}

func (s *Storage) UpdateContract(ctx context.Context, c *models.Contract) error {
	query := `
        UPDATE contrat_forfait
        SET date_debut=$1, date_fin=$2, montant=$3, prix_exces_poids=$4, poids_forfait=$5, etat=$6
        WHERE id=$7`
	return s.exec(ctx, query,
		c.DateDebut, c.DateFin, c.Montant, c.PrixExcesPoids, c.PoidsForfait, c.Etat, c.ID)
}

func (s *Storage) ListExpiredContracts(ctx context.Context, before time.Time) ([]models.Contract, error) {
	contracts := []models.Contract{}
	query := `
        SELECT ` + contractColumns + `
        FROM contrat_forfait
        WHERE etat IN ('Actif', 'Pause') AND date_fin < $1
        ORDER BY id ASC`
	err := s.list(ctx, &contracts, query, models.DateOf(before))
	return contracts, err
}
