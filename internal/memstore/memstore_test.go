package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vitalecosystem/db"
	"vitalecosystem/internal/memstore"
	"vitalecosystem/models"
)

func seedClient(t *testing.T, s *memstore.Store) *models.Client {
	t.Helper()
	c := &models.Client{Nom: "Cabinet Amrani", Tel: "0555123456", Mode: 30, Agent: "Karim"}
	require.NoError(t, s.CreateClient(context.Background(), c))
	return c
}

func contract(clientID int, etat models.ContractState) *models.Contract {
	return &models.Contract{
		ClientID:       clientID,
		DateDebut:      models.NewDate(2024, time.January, 1),
		DateFin:        models.NewDate(2024, time.December, 31),
		Montant:        1000,
		PrixExcesPoids: 10,
		PoidsForfait:   100,
		Etat:           etat,
	}
}

func TestGoverningContractUniqueness(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	c := seedClient(t, s)

	first := contract(c.ID, models.ContractActive)
	require.NoError(t, s.CreateContract(ctx, first))

	err := s.CreateContract(ctx, contract(c.ID, models.ContractPaused))
	require.ErrorIs(t, err, db.ErrGoverningContractExists)

	require.NoError(t, s.CreateContract(ctx, contract(c.ID, models.ContractTerminated)))

	first.Etat = models.ContractTerminated
	require.NoError(t, s.UpdateContract(ctx, first))
	require.NoError(t, s.CreateContract(ctx, contract(c.ID, models.ContractActive)))
}

func TestInTx_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	c := seedClient(t, s)

	boom := errors.New("boom")
	err := s.InTx(ctx, func(q db.Queries) error {
		if err := q.CreateContract(ctx, contract(c.ID, models.ContractActive)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	cs, err := s.ListClientContracts(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, cs)
}

func TestInTx_CommitPublishesWrites(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	c := seedClient(t, s)

	err := s.InTx(ctx, func(q db.Queries) error {
		return q.CreateContract(ctx, contract(c.ID, models.ContractActive))
	})
	require.NoError(t, err)

	cs, err := s.ListClientContracts(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, cs, 1)
}

func TestDeleteClientCascades(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	c := seedClient(t, s)
	k := contract(c.ID, models.ContractActive)
	require.NoError(t, s.CreateContract(ctx, k))

	n := &models.DeliveryNote{ClientID: c.ID, ContratID: k.ID, Date: models.NewDate(2024, time.March, 1), PoidsCollecte: 80}
	require.NoError(t, s.CreateDeliveryNote(ctx, n))
	require.NoError(t, s.CreateDeliveryNoteProduct(ctx, &models.DeliveryNoteProduct{BonPassageID: n.ID, Produit: "Gants", Qte: 2, Prix: 5}))

	require.NoError(t, s.DeleteClient(ctx, c.ID))

	_, err := s.GetDeliveryNote(ctx, n.ID)
	require.ErrorIs(t, err, db.ErrNotFound)
	products, err := s.ListDeliveryNoteProducts(ctx, n.ID)
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestAdjustInventoryNeverNegative(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	require.NoError(t, s.AdjustInventory(ctx, "Gants", 5, 2.5))
	require.NoError(t, s.AdjustInventory(ctx, "Gants", -8, 0))

	items, err := s.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 0, items[0].Qte)
	require.Equal(t, 2.5, items[0].PrixDernier)
}

func TestCatalogDuplicate(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	require.NoError(t, s.CreateProduit(ctx, &models.Produit{Designation: "Gants"}))
	err := s.CreateProduit(ctx, &models.Produit{Designation: "gants"})
	require.ErrorIs(t, err, db.ErrDuplicate)

	produits, err := s.ListProduits(ctx)
	require.NoError(t, err)
	require.Len(t, produits, 1)
}

func TestListExpiredContracts(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	c := seedClient(t, s)
	require.NoError(t, s.CreateContract(ctx, contract(c.ID, models.ContractActive)))

	expired, err := s.ListExpiredContracts(ctx, time.Date(2024, time.December, 31, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Empty(t, expired)

	expired, err = s.ListExpiredContracts(ctx, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, expired, 1)
}
