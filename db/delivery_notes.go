package db

import (
	"context"

	"vitalecosystem/models"
)

const deliveryNoteColumns = `id, client_id, contrat_id, date, poids_collecte, exces_poids, montant`

func (s *Storage) ListDeliveryNotes(ctx context.Context, clientID int) ([]models.DeliveryNote, error) {
	notes := []models.DeliveryNote{}
	if clientID > 0 {
		query := `SELECT ` + deliveryNoteColumns + ` FROM bon_passage_forfait WHERE client_id=$1 ORDER BY date DESC, id DESC`
		err := s.list(ctx, &notes, query, clientID)
		return notes, err
	}
	err := s.list(ctx, &notes, `SELECT `+deliveryNoteColumns+` FROM bon_passage_forfait ORDER BY date DESC, id DESC`)
	return notes, err
}

func (s *Storage) GetDeliveryNote(ctx context.Context, id int) (*models.DeliveryNote, error) {
	n := &models.DeliveryNote{}
	if err := s.get(ctx, n, `SELECT `+deliveryNoteColumns+` FROM bon_passage_forfait WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Storage) CreateDeliveryNote(ctx context.Context, n *models.DeliveryNote) error {
	query := `
        INSERT INTO bon_passage_forfait
            (client_id, contrat_id, date, poids_collecte, exces_poids, montant)
        VALUES
            ($1, $2, $3, $4, $5, $6)
        RETURNING id`
	return s.insert(ctx, &n.ID, query,
		n.ClientID, n.ContratID, n.Date, n.PoidsCollecte, n.ExcesPoids, n.Montant)
}

func (s *Storage) UpdateDeliveryNote(ctx context.Context, n *models.DeliveryNote) error {
	query := `
        UPDATE bon_passage_forfait
        SET date=$1, poids_collecte=$2, exces_poids=$3, montant=$4
        WHERE id=$5`
	return s.exec(ctx, query, n.Date, n.PoidsCollecte, n.ExcesPoids, n.Montant, n.ID)
}

func (s *Storage) DeleteDeliveryNote(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM bon_passage_forfait WHERE id=$1`, id)
}

func (s *Storage) ListDeliveryNoteProducts(ctx context.Context, noteID int) ([]models.DeliveryNoteProduct, error) {
	products := []models.DeliveryNoteProduct{}
	query := `SELECT id, bon_passage_id, produit, qte, prix FROM bon_passage_forfait_produit WHERE bon_passage_id=$1 ORDER BY id ASC`
	err := s.list(ctx, &products, query, noteID)
	return products, err
}

func (s *Storage) CreateDeliveryNoteProduct(ctx context.Context, p *models.DeliveryNoteProduct) error {
	query := `
        INSERT INTO bon_passage_forfait_produit (bon_passage_id, produit, qte, prix)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return s.insert(ctx, &p.ID, query, p.BonPassageID, p.Produit, p.Qte, p.Prix)
}

func (s *Storage) DeleteDeliveryNoteProducts(ctx context.Context, noteID int) error {
	return s.execAny(ctx, `DELETE FROM bon_passage_forfait_produit WHERE bon_passage_id=$1`, noteID)
}

func (s *Storage) ListDeliveryNoteServices(ctx context.Context, noteID int) ([]models.DeliveryNoteService, error) {
	services := []models.DeliveryNoteService{}
	query := `SELECT id, bon_passage_id, service, qte FROM bon_passage_forfait_service WHERE bon_passage_id=$1 ORDER BY id ASC`
	err := s.list(ctx, &services, query, noteID)
	return services, err
}

func (s *Storage) CreateDeliveryNoteService(ctx context.Context, sv *models.DeliveryNoteService) error {
	query := `
        INSERT INTO bon_passage_forfait_service (bon_passage_id, service, qte)
        VALUES ($1, $2, $3)
        RETURNING id`
	return s.insert(ctx, &sv.ID, query, sv.BonPassageID, sv.Service, sv.Qte)
}

func (s *Storage) DeleteDeliveryNoteServices(ctx context.Context, noteID int) error {
	return s.execAny(ctx, `DELETE FROM bon_passage_forfait_service WHERE bon_passage_id=$1`, noteID)
}

// Versements forfait

const versementColumns = `id, client_id, contrat_id, date, montant`

func (s *Storage) ListVersements(ctx context.Context, clientID int) ([]models.Versement, error) {
	versements := []models.Versement{}
	if clientID > 0 {
		query := `SELECT ` + versementColumns + ` FROM versement_forfait WHERE client_id=$1 ORDER BY date DESC, id DESC`
		err := s.list(ctx, &versements, query, clientID)
		return versements, err
	}
	err := s.list(ctx, &versements, `SELECT `+versementColumns+` FROM versement_forfait ORDER BY date DESC, id DESC`)
	return versements, err
}

func (s *Storage) GetVersement(ctx context.Context, id int) (*models.Versement, error) {
	v := &models.Versement{}
	if err := s.get(ctx, v, `SELECT `+versementColumns+` FROM versement_forfait WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Storage) CreateVersement(ctx context.Context, v *models.Versement) error {
	query := `
        INSERT INTO versement_forfait (client_id, contrat_id, date, montant)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return s.insert(ctx, &v.ID, query, v.ClientID, v.ContratID, v.Date, v.Montant)
}

func (s *Storage) UpdateVersement(ctx context.Context, v *models.Versement) error {
	return s.exec(ctx, `UPDATE versement_forfait SET date=$1, montant=$2 WHERE id=$3`, v.Date, v.Montant, v.ID)
}

func (s *Storage) DeleteVersement(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM versement_forfait WHERE id=$1`, id)
}
