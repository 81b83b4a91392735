package db_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"vitalecosystem/db"
	"vitalecosystem/models"
)

func newMockStorage(t *testing.T) (*db.Storage, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return db.NewStorage(sqlx.NewDb(conn, "postgres")), mock
}

func TestGetClient(t *testing.T) {
	s, mock := newMockStorage(t)

	rows := sqlmock.NewRows([]string{"id", "nom", "specialite", "tel", "mode", "agent"}).
		AddRow(3, "Cabinet Amrani", nil, "0555123456", 30, "Karim")
	mock.ExpectQuery(regexp.QuoteMeta("FROM client_forfait WHERE id=$1")).
		WithArgs(3).
		WillReturnRows(rows)

	c, err := s.GetClient(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "Cabinet Amrani", c.Nom)
	require.Nil(t, c.Specialite)
	require.Equal(t, 30, c.Mode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClient_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM client_forfait WHERE id=$1")).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nom", "specialite", "tel", "mode", "agent"}))

	_, err := s.GetClient(context.Background(), 42)
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestCreateContract(t *testing.T) {
	s, mock := newMockStorage(t)

	c := &models.Contract{
		ClientID:       3,
		DateDebut:      models.NewDate(2024, time.January, 1),
		DateFin:        models.NewDate(2024, time.December, 31),
		Montant:        1000,
		PrixExcesPoids: 10,
		PoidsForfait:   100,
		Etat:           models.ContractActive,
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contrat_forfait")).
		WithArgs(3, "2024-01-01", "2024-12-31", 1000.0, 10.0, 100, "Actif").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	require.NoError(t, s.CreateContract(context.Background(), c))
	require.Equal(t, 11, c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateContract_GoverningIndexViolation(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contrat_forfait")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "contrat_forfait_governing_idx"})

	err := s.CreateContract(context.Background(), &models.Contract{ClientID: 3, Etat: models.ContractActive})
	require.ErrorIs(t, err, db.ErrGoverningContractExists)
}

func TestCreateProduit_Duplicate(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO produit")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "produit_designation_key"})

	err := s.CreateProduit(context.Background(), &models.Produit{Designation: "Gants"})
	require.ErrorIs(t, err, db.ErrDuplicate)
	require.False(t, errors.Is(err, db.ErrGoverningContractExists))
}

func TestUpdateContract_NoRows(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE contrat_forfait")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateContract(context.Background(), &models.Contract{ID: 9})
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestListClientContracts_ScansDates(t *testing.T) {
	s, mock := newMockStorage(t)

	rows := sqlmock.NewRows([]string{"id", "client_id", "date_debut", "date_fin", "montant", "prix_exces_poids", "poids_forfait", "etat"}).
		AddRow(1, 3, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), []byte("1000.00"), []byte("10.50"), 100, "Pause")
	mock.ExpectQuery(regexp.QuoteMeta("FROM contrat_forfait WHERE client_id=$1")).
		WithArgs(3).
		WillReturnRows(rows)

	cs, err := s.ListClientContracts(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	require.Equal(t, "31/12/2024", cs[0].DateFin.String())
	require.Equal(t, models.Number(10.5), cs[0].PrixExcesPoids)
	require.Equal(t, models.ContractPaused, cs[0].Etat)
}

func TestInTx_CommitsOnSuccess(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM client_forfait WHERE id=$1 FOR UPDATE")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nom", "specialite", "tel", "mode", "agent"}).
			AddRow(3, "Cabinet", nil, "0555123456", 30, "Karim"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM versement_forfait")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.InTx(context.Background(), func(q db.Queries) error {
		if _, err := q.LockClient(context.Background(), 3); err != nil {
			return err
		}
		return q.DeleteVersement(context.Background(), 5)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollsBackOnError(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bon_passage_forfait (client_id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bon_passage_forfait_produit")).
		WillReturnError(&pq.Error{Code: "23514", Constraint: "bon_passage_forfait_produit_qte_check"})
	mock.ExpectRollback()

	err := s.InTx(context.Background(), func(q db.Queries) error {
		n := &models.DeliveryNote{ClientID: 3, ContratID: 1, Date: models.NewDate(2024, time.May, 2), PoidsCollecte: 120}
		if err := q.CreateDeliveryNote(context.Background(), n); err != nil {
			return err
		}
		return q.CreateDeliveryNoteProduct(context.Background(), &models.DeliveryNoteProduct{BonPassageID: n.ID, Produit: "Gants", Qte: 1, Prix: 1})
	})
	require.ErrorIs(t, err, db.ErrConstraint)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustInventory(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (produit) DO UPDATE")).
		WithArgs("Gants", -4, 0.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.AdjustInventory(context.Background(), "Gants", -4, 0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContract_KeepsFullPrecision(t *testing.T) {
	s, mock := newMockStorage(t)

	c := &models.Contract{
		ClientID:       3,
		DateDebut:      models.NewDate(2024, time.January, 1),
		DateFin:        models.NewDate(2024, time.December, 31),
		Montant:        1000.125,
		PrixExcesPoids: 12.345,
		PoidsForfait:   100,
		Etat:           models.ContractActive,
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contrat_forfait")).
		WithArgs(3, "2024-01-01", "2024-12-31", 1000.125, 12.345, 100, "Actif").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	require.NoError(t, s.CreateContract(context.Background(), c))

	// DOUBLE PRECISION revient en float64 via lib/pq
	rows := sqlmock.NewRows([]string{"id", "client_id", "date_debut", "date_fin", "montant", "prix_exces_poids", "poids_forfait", "etat"}).
		AddRow(5, 3, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 1000.125, 12.345, 100, "Actif")
	mock.ExpectQuery(regexp.QuoteMeta("FROM contrat_forfait WHERE id=$1")).
		WithArgs(5).
		WillReturnRows(rows)

	got, err := s.GetContract(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, models.Number(12.345), got.PrixExcesPoids)
	require.Equal(t, models.Number(1000.125), got.Montant)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDeliveryNoteProduct_KeepsSmallQuantity(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bon_passage_forfait_produit")).
		WithArgs(7, "Gants", 0.0004, 2.333).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	p := &models.DeliveryNoteProduct{BonPassageID: 7, Produit: "Gants", Qte: 0.0004, Prix: 2.333}
	require.NoError(t, s.CreateDeliveryNoteProduct(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}
