package scheduler_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vitalecosystem/internal/contracts"
	"vitalecosystem/internal/memstore"
	"vitalecosystem/internal/scheduler"
	"vitalecosystem/internal/validation"
	"vitalecosystem/models"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := scheduler.New("chaque jour", contracts.NewManager(memstore.New(), validation.New(), discard), discard)
	require.Error(t, err)
}

func TestRunOnce_ExpiresContracts(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	client := &models.Client{Nom: "Cabinet Amrani", Tel: "0555123456", Mode: 30, Agent: "Karim"}
	require.NoError(t, store.CreateClient(ctx, client))
	k := &models.Contract{
		ClientID:       client.ID,
		DateDebut:      models.NewDate(2024, time.January, 1),
		DateFin:        models.NewDate(2024, time.December, 31),
		Montant:        12000,
		PrixExcesPoids: 15,
		PoidsForfait:   100,
		Etat:           models.ContractPaused,
	}
	require.NoError(t, store.CreateContract(ctx, k))

	manager := contracts.NewManager(store, validation.New(), discard)
	s, err := scheduler.New("@daily", manager, discard)
	require.NoError(t, err)

	s.WithClock(func() time.Time { return time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC) })
	n, err := s.RunOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	s.WithClock(func() time.Time { return time.Date(2025, time.January, 1, 0, 5, 0, 0, time.UTC) })
	n, err = s.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := store.GetContract(ctx, k.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContractTerminated, got.Etat)

	s.Start()
	s.Stop()
}
