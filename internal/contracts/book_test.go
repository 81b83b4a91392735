package contracts_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vitalecosystem/internal/contracts"
	"vitalecosystem/models"
)

func mk(id, clientID int, etat models.ContractState, fin models.Date) models.Contract {
	return models.Contract{
		ID:             id,
		ClientID:       clientID,
		DateDebut:      models.DateOf(fin.AddDate(-1, 0, 0)),
		DateFin:        fin,
		Montant:        1000,
		PrixExcesPoids: 15,
		PoidsForfait:   100,
		Etat:           etat,
	}
}

var dec2024 = models.NewDate(2024, time.December, 31)

func TestActiveContractFor_IgnoresPausedAndTerminated(t *testing.T) {
	book := contracts.NewBook([]models.Contract{
		mk(1, 7, models.ContractTerminated, dec2024),
		mk(2, 7, models.ContractPaused, dec2024),
	})
	_, ok := book.ActiveContractFor(7)
	require.False(t, ok)
	_, ok = book.GoverningBillingParams(7)
	require.False(t, ok)

	gov, ok := book.Governing(7)
	require.True(t, ok)
	require.Equal(t, 2, gov.ID)
}

func TestGoverningBillingParams(t *testing.T) {
	book := contracts.NewBook([]models.Contract{mk(4, 7, models.ContractActive, dec2024)})
	params, ok := book.GoverningBillingParams(7)
	require.True(t, ok)
	require.Equal(t, contracts.BillingParams{ContratID: 4, PrixExcesPoids: 15, PoidsForfait: 100}, params)
}

func TestCanCreateContract(t *testing.T) {
	tests := []struct {
		name  string
		etats []models.ContractState
		want  bool
	}{
		{"no contract", nil, true},
		{"only terminated", []models.ContractState{models.ContractTerminated, models.ContractTerminated}, true},
		{"one active", []models.ContractState{models.ContractTerminated, models.ContractActive}, false},
		{"one paused", []models.ContractState{models.ContractPaused, models.ContractTerminated}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cs []models.Contract
			for i, etat := range tt.etats {
				cs = append(cs, mk(i+1, 7, etat, dec2024))
			}
			require.Equal(t, tt.want, contracts.NewBook(cs).CanCreateContract(7))
		})
	}
}

func TestCanCreateContract_OtherClientsDoNotBlock(t *testing.T) {
	book := contracts.NewBook([]models.Contract{mk(1, 8, models.ContractActive, dec2024)})
	require.True(t, book.CanCreateContract(7))
}

func TestCanEditContract(t *testing.T) {
	active := mk(1, 7, models.ContractActive, dec2024)
	old := mk(2, 7, models.ContractTerminated, dec2024)
	book := contracts.NewBook([]models.Contract{active, old})

	require.True(t, book.CanEditContract(active))
	require.False(t, book.CanEditContract(old))

	err := book.CheckEdit(old)
	var conflict *contracts.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, 1, conflict.Blocking.ID)
}

func TestCheckCreate_NamesBlockingContract(t *testing.T) {
	book := contracts.NewBook([]models.Contract{mk(3, 7, models.ContractActive, dec2024)})

	err := book.CheckCreate(7)
	var conflict *contracts.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, 3, conflict.Blocking.ID)
	require.Contains(t, err.Error(), "n° 3")
	require.Contains(t, err.Error(), "31/12/2024")
}

func TestRequireBillable(t *testing.T) {
	_, err := contracts.NewBook(nil).RequireBillable(7)
	require.ErrorIs(t, err, contracts.ErrNoActiveContract)

	_, err = contracts.NewBook([]models.Contract{mk(1, 7, models.ContractTerminated, dec2024)}).RequireBillable(7)
	require.ErrorIs(t, err, contracts.ErrNoActiveContract)

	_, err = contracts.NewBook([]models.Contract{mk(1, 7, models.ContractPaused, dec2024)}).RequireBillable(7)
	require.ErrorIs(t, err, contracts.ErrContractPaused)
	require.NotEqual(t, contracts.ErrNoActiveContract.Error(), contracts.ErrContractPaused.Error())

	c, err := contracts.NewBook([]models.Contract{mk(5, 7, models.ContractActive, dec2024)}).RequireBillable(7)
	require.NoError(t, err)
	require.Equal(t, 5, c.ID)
}

func TestTerminate_Idempotent(t *testing.T) {
	c := mk(1, 7, models.ContractPaused, dec2024)
	require.True(t, contracts.Terminate(&c))
	require.Equal(t, models.ContractTerminated, c.Etat)

	before := c
	require.False(t, contracts.Terminate(&c))
	require.Equal(t, before, c)
}

func TestProject(t *testing.T) {
	client := models.Client{ID: 7, Nom: "Cabinet"}

	p := contracts.NewBook(nil).Project(client)
	require.Nil(t, p.EtatContrat)
	require.Nil(t, p.DebutContrat)
	require.Nil(t, p.FinContrat)

	older := mk(1, 7, models.ContractTerminated, models.NewDate(2022, time.June, 30))
	newer := mk(2, 7, models.ContractTerminated, models.NewDate(2023, time.June, 30))
	p = contracts.NewBook([]models.Contract{older, newer}).Project(client)
	require.Equal(t, models.ContractTerminated, *p.EtatContrat)
	require.Equal(t, "30/06/2023", p.FinContrat.String())

	paused := mk(3, 7, models.ContractPaused, dec2024)
	p = contracts.NewBook([]models.Contract{older, paused, newer}).Project(client)
	require.Equal(t, models.ContractPaused, *p.EtatContrat)
	require.Equal(t, "31/12/2023", p.DebutContrat.String())
	require.Equal(t, "31/12/2024", p.FinContrat.String())
}
