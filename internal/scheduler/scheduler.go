// Package scheduler planifie le passage à Terminé des contrats échus.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Expirer termine les contrats Actif/Pause dont la date de fin est passée.
type Expirer interface {
	ExpireContracts(ctx context.Context, today time.Time) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	expirer Expirer
	log     *slog.Logger
	now     func() time.Time
	timeout time.Duration
}

// New enregistre la tâche d'expiration selon schedule (format cron à 5 champs).
func New(schedule string, expirer Expirer, log *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		expirer: expirer,
		log:     log.With("component", "scheduler"),
		now:     time.Now,
		timeout: 5 * time.Minute,
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("scheduler: invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

// WithClock remplace l'horloge, pour les tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("contract expiry scheduled", "entries", len(s.cron.Entries()))
}

// Stop arrête la planification et attend la fin d'une exécution en cours.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce exécute immédiatement une passe d'expiration.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.expirer.ExpireContracts(ctx, s.now())
	if err != nil {
		s.log.Error("contract expiry failed", "expired", n, "error", err)
		return n, err
	}
	if n > 0 {
		s.log.Info("contracts expired", "count", n)
	}
	return n, nil
}
