package contracts_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vitalecosystem/db"
	"vitalecosystem/internal/contracts"
	"vitalecosystem/internal/memstore"
	"vitalecosystem/internal/validation"
	"vitalecosystem/models"
)

func newManager(t *testing.T, store db.Store) *contracts.Manager {
	t.Helper()
	return contracts.NewManager(store, validation.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newClient(t *testing.T, m *contracts.Manager) *models.Client {
	t.Helper()
	c := &models.Client{Nom: "Cabinet Amrani", Tel: "0555123456", Mode: 30, Agent: "Karim"}
	require.NoError(t, m.CreateClient(context.Background(), c))
	return c
}

func newContract(clientID int, etat models.ContractState) *models.Contract {
	return &models.Contract{
		ClientID:       clientID,
		DateDebut:      models.NewDate(2024, time.January, 1),
		DateFin:        models.NewDate(2024, time.December, 31),
		Montant:        12000,
		PrixExcesPoids: 15,
		PoidsForfait:   100,
		Etat:           etat,
	}
}

func TestCreate_DefaultsToActive(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	client := newClient(t, m)

	c := newContract(client.ID, "")
	require.NoError(t, m.Create(ctx, c))
	require.NotZero(t, c.ID)
	require.Equal(t, models.ContractActive, c.Etat)

	got, err := m.Client(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContractActive, *got.EtatContrat)
	require.Equal(t, "01/01/2024", got.DebutContrat.String())
}

func TestCreate_SecondContractRejected(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	client := newClient(t, m)

	first := newContract(client.ID, models.ContractActive)
	require.NoError(t, m.Create(ctx, first))

	for _, etat := range []models.ContractState{models.ContractActive, models.ContractPaused, models.ContractTerminated} {
		err := m.Create(ctx, newContract(client.ID, etat))
		var conflict *contracts.ConflictError
		require.True(t, errors.As(err, &conflict), "etat %s", etat)
		require.Equal(t, first.ID, conflict.Blocking.ID)
		require.Equal(t, first.DateDebut, conflict.Blocking.DateDebut)
	}

	cs, err := m.ClientContracts(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, cs, 1)
}

func TestCreate_AfterTerminate(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	client := newClient(t, m)

	first := newContract(client.ID, models.ContractActive)
	require.NoError(t, m.Create(ctx, first))
	_, changed, err := m.Terminate(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, changed)

	second := newContract(client.ID, models.ContractActive)
	second.DateDebut = models.NewDate(2025, time.January, 1)
	second.DateFin = models.NewDate(2025, time.December, 31)
	require.NoError(t, m.Create(ctx, second))

	got, err := m.Client(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, "31/12/2025", got.FinContrat.String())
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	client := newClient(t, m)

	c := newContract(client.ID, models.ContractActive)
	c.Montant = 0
	c.DateFin = c.DateDebut
	err := m.Create(ctx, c)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "montant")
	require.Contains(t, verr.Fields, "date_fin")
}

func TestCreate_UnknownClient(t *testing.T) {
	m := newManager(t, memstore.New())

	err := m.Create(context.Background(), newContract(99, models.ContractActive))
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "client_id")
}

func TestTerminate_TwiceIsNoop(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	client := newClient(t, m)
	c := newContract(client.ID, models.ContractActive)
	require.NoError(t, m.Create(ctx, c))

	first, changed, err := m.Terminate(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, models.ContractTerminated, first.Etat)

	second, changed, err := m.Terminate(ctx, c.ID)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, *first, *second)
}

func TestTerminate_NotFound(t *testing.T) {
	m := newManager(t, memstore.New())
	_, _, err := m.Terminate(context.Background(), 404)
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	client := newClient(t, m)
	c := newContract(client.ID, models.ContractActive)
	require.NoError(t, m.Create(ctx, c))

	upd := newContract(0, "")
	upd.PrixExcesPoids = 20
	require.NoError(t, m.Edit(ctx, c.ID, upd))
	require.Equal(t, models.ContractActive, upd.Etat)

	params, err := m.BillingParams(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, 20.0, params.PrixExcesPoids)

	pause := newContract(client.ID, models.ContractPaused)
	require.NoError(t, m.Edit(ctx, c.ID, pause))
	_, err = m.BillingParams(ctx, client.ID)
	require.ErrorIs(t, err, contracts.ErrContractPaused)
}

func TestEdit_RejectsClientChange(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	client := newClient(t, m)
	c := newContract(client.ID, models.ContractActive)
	require.NoError(t, m.Create(ctx, c))

	err := m.Edit(ctx, c.ID, newContract(client.ID+100, models.ContractActive))
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "client_id")
}

func TestEdit_TerminatedRejected(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	client := newClient(t, m)
	c := newContract(client.ID, models.ContractActive)
	require.NoError(t, m.Create(ctx, c))
	_, _, err := m.Terminate(ctx, c.ID)
	require.NoError(t, err)

	err = m.Edit(ctx, c.ID, newContract(client.ID, models.ContractActive))
	require.ErrorIs(t, err, contracts.ErrContractTerminated)
}

func TestBillingParams_NoContract(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	client := newClient(t, m)

	_, err := m.BillingParams(ctx, client.ID)
	require.ErrorIs(t, err, contracts.ErrNoActiveContract)

	_, err = m.BillingParams(ctx, 999)
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestExpireContracts(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, memstore.New())
	a := newClient(t, m)
	b := newClient(t, m)

	expired := newContract(a.ID, models.ContractPaused)
	require.NoError(t, m.Create(ctx, expired))
	running := newContract(b.ID, models.ContractActive)
	running.DateFin = models.NewDate(2025, time.June, 30)
	require.NoError(t, m.Create(ctx, running))

	n, err := m.ExpireContracts(ctx, time.Date(2025, time.January, 2, 2, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := m.Contract(ctx, expired.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContractTerminated, got.Etat)

	got, err = m.Contract(ctx, running.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContractActive, got.Etat)

	n, err = m.ExpireContracts(ctx, time.Date(2025, time.January, 3, 2, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Zero(t, n)
}

// blindStore cache les contrats existants lors de la vérification préalable,
// comme si une autre requête avait écrit entre la lecture et l'insertion.
type blindStore struct {
	*memstore.Store
}

func (s blindStore) InTx(ctx context.Context, fn func(q db.Queries) error) error {
	return s.Store.InTx(ctx, func(q db.Queries) error {
		return fn(blindQueries{q})
	})
}

type blindQueries struct {
	db.Queries
}

func (blindQueries) ListClientContracts(context.Context, int) ([]models.Contract, error) {
	return nil, nil
}

func TestCreate_UniqueIndexReportedAsConflict(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	m := newManager(t, store)
	client := newClient(t, m)

	first := newContract(client.ID, models.ContractActive)
	require.NoError(t, m.Create(ctx, first))

	racing := newManager(t, blindStore{store})
	err := racing.Create(ctx, newContract(client.ID, models.ContractActive))

	var conflict *contracts.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, first.ID, conflict.Blocking.ID)
}
