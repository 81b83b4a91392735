package db

import (
	"context"

	"vitalecosystem/models"
)

const bonAchatColumns = `id, date, fournisseur, montant_total, montant_verse`

func (s *Storage) ListBonAchats(ctx context.Context) ([]models.BonAchat, error) {
	bons := []models.BonAchat{}
	err := s.list(ctx, &bons, `SELECT `+bonAchatColumns+` FROM bon_achat ORDER BY date DESC, id DESC`)
	return bons, err
}

func (s *Storage) GetBonAchat(ctx context.Context, id int) (*models.BonAchat, error) {
	b := &models.BonAchat{}
	if err := s.get(ctx, b, `SELECT `+bonAchatColumns+` FROM bon_achat WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Storage) LockBonAchat(ctx context.Context, id int) (*models.BonAchat, error) {
	b := &models.BonAchat{}
	if err := s.get(ctx, b, `SELECT `+bonAchatColumns+` FROM bon_achat WHERE id=$1 FOR UPDATE`, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Storage) CreateBonAchat(ctx context.Context, b *models.BonAchat) error {
	query := `
        INSERT INTO bon_achat (date, fournisseur, montant_total, montant_verse)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return s.insert(ctx, &b.ID, query, b.Date, b.Fournisseur, b.MontantTotal, b.MontantVerse)
}

func (s *Storage) UpdateBonAchat(ctx context.Context, b *models.BonAchat) error {
	query := `
        UPDATE bon_achat
        SET date=$1, fournisseur=$2, montant_total=$3, montant_verse=$4
        WHERE id=$5`
	return s.exec(ctx, query, b.Date, b.Fournisseur, b.MontantTotal, b.MontantVerse, b.ID)
}

func (s *Storage) DeleteBonAchat(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM bon_achat WHERE id=$1`, id)
}

func (s *Storage) ListBonAchatProducts(ctx context.Context, bonID int) ([]models.BonAchatProduct, error) {
	products := []models.BonAchatProduct{}
	query := `SELECT id, bon_achat_id, produit, qte, prix FROM bon_achat_produit WHERE bon_achat_id=$1 ORDER BY id ASC`
	err := s.list(ctx, &products, query, bonID)
	return products, err
}

func (s *Storage) CreateBonAchatProduct(ctx context.Context, p *models.BonAchatProduct) error {
	query := `
        INSERT INTO bon_achat_produit (bon_achat_id, produit, qte, prix)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return s.insert(ctx, &p.ID, query, p.BonAchatID, p.Produit, p.Qte, p.Prix)
}

func (s *Storage) DeleteBonAchatProducts(ctx context.Context, bonID int) error {
	return s.execAny(ctx, `DELETE FROM bon_achat_produit WHERE bon_achat_id=$1`, bonID)
}

func (s *Storage) ListBonAchatVersements(ctx context.Context, bonID int) ([]models.BonAchatVersement, error) {
	versements := []models.BonAchatVersement{}
	query := `SELECT id, bon_achat_id, montant, type FROM bon_achat_versement WHERE bon_achat_id=$1 ORDER BY id ASC`
	err := s.list(ctx, &versements, query, bonID)
	return versements, err
}

func (s *Storage) CreateBonAchatVersement(ctx context.Context, v *models.BonAchatVersement) error {
	query := `
        INSERT INTO bon_achat_versement (bon_achat_id, montant, type)
        VALUES ($1, $2, $3)
        RETURNING id`
	return s.insert(ctx, &v.ID, query, v.BonAchatID, v.Montant, v.Type)
}

// Inventaire

func (s *Storage) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	err := s.list(ctx, &items, `SELECT id, produit, qte, prix_dernier FROM inventaire ORDER BY produit ASC`)
	return items, err
}

func (s *Storage) AdjustInventory(ctx context.Context, produit string, delta int, prix float64) error {
	query := `
        INSERT INTO inventaire (produit, qte, prix_dernier)
        VALUES ($1, GREATEST(0, $2::integer), $3::double precision)
        ON CONFLICT (produit) DO UPDATE
        SET qte = GREATEST(0, inventaire.qte + $2::integer),
            prix_dernier = CASE WHEN $3::double precision > 0 THEN $3::double precision ELSE inventaire.prix_dernier END`
	return s.execAny(ctx, query, produit, delta, prix)
}
