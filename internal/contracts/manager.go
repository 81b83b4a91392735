package contracts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vitalecosystem/db"
	"vitalecosystem/internal/validation"
	"vitalecosystem/models"
)

// Manager applique les règles de cycle de vie sur le stockage. Chaque
// écriture s'exécute dans une transaction qui verrouille d'abord le client.
type Manager struct {
	store    db.Store
	validate *validation.Validator
	log      *slog.Logger
}

func NewManager(store db.Store, v *validation.Validator, log *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		validate: v,
		log:      log.With("component", "contracts"),
	}
}

// Clients

func (m *Manager) Clients(ctx context.Context) ([]models.Client, error) {
	clients, err := m.store.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	all, err := m.store.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	book := NewBook(all)
	for i := range clients {
		clients[i] = book.Project(clients[i])
	}
	return clients, nil
}

func (m *Manager) Client(ctx context.Context, id int) (*models.Client, error) {
	return m.projectedClient(ctx, m.store, id)
}

func (m *Manager) projectedClient(ctx context.Context, q db.Queries, id int) (*models.Client, error) {
	c, err := q.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	cs, err := q.ListClientContracts(ctx, id)
	if err != nil {
		return nil, err
	}
	projected := NewBook(cs).Project(*c)
	return &projected, nil
}

func (m *Manager) CreateClient(ctx context.Context, c *models.Client) error {
	if err := m.validate.Struct(c); err != nil {
		return err
	}
	if err := m.store.CreateClient(ctx, c); err != nil {
		return err
	}
	*c = NewBook(nil).Project(*c)
	m.log.Info("client created", "client_id", c.ID)
	return nil
}

// UpdateClient modifie la fiche client. Les champs de contrat projetés sont
// ignorés en entrée et recalculés en sortie.
func (m *Manager) UpdateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	if err := m.validate.Struct(c); err != nil {
		return nil, err
	}
	var out *models.Client
	err := m.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockClient(ctx, c.ID); err != nil {
			return err
		}
		if err := q.UpdateClient(ctx, c); err != nil {
			return err
		}
		var err error
		out, err = m.projectedClient(ctx, q, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Manager) DeleteClient(ctx context.Context, id int) error {
	if err := m.store.DeleteClient(ctx, id); err != nil {
		return err
	}
	m.log.Info("client deleted", "client_id", id)
	return nil
}

// Contrats

func (m *Manager) Contracts(ctx context.Context) ([]models.Contract, error) {
	return m.store.ListContracts(ctx)
}

func (m *Manager) Contract(ctx context.Context, id int) (*models.Contract, error) {
	return m.store.GetContract(ctx, id)
}

// ClientContracts renvoie tous les contrats du client, ErrNotFound si le
// client n'existe pas.
func (m *Manager) ClientContracts(ctx context.Context, clientID int) ([]models.Contract, error) {
	if _, err := m.store.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	return m.store.ListClientContracts(ctx, clientID)
}

// BillingParams renvoie les paramètres de facturation courants du client.
func (m *Manager) BillingParams(ctx context.Context, clientID int) (BillingParams, error) {
	if _, err := m.store.GetClient(ctx, clientID); err != nil {
		return BillingParams{}, err
	}
	cs, err := m.store.ListClientContracts(ctx, clientID)
	if err != nil {
		return BillingParams{}, err
	}
	c, err := NewBook(cs).RequireBillable(clientID)
	if err != nil {
		return BillingParams{}, err
	}
	return paramsOf(c), nil
}

// Create enregistre un nouveau contrat. Refusé tant qu'un contrat Actif ou
// Pause existe pour ce client, quel que soit l'état du nouveau contrat.
func (m *Manager) Create(ctx context.Context, c *models.Contract) error {
	c.ID = 0
	if c.Etat == "" {
		c.Etat = models.ContractActive
	}
	if err := m.validate.Struct(c); err != nil {
		return err
	}

	err := m.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockClient(ctx, c.ClientID); err != nil {
			return clientErr(err)
		}
		cs, err := q.ListClientContracts(ctx, c.ClientID)
		if err != nil {
			return err
		}
		if err := NewBook(cs).CheckCreate(c.ClientID); err != nil {
			return err
		}
		return q.CreateContract(ctx, c)
	})
	if errors.Is(err, db.ErrGoverningContractExists) {
		return m.conflict(ctx, c)
	}
	if err != nil {
		return err
	}

	m.log.Info("contract created", "contrat_id", c.ID, "client_id", c.ClientID, "etat", c.Etat)
	return nil
}

// Edit remplace les valeurs du contrat id par celles de c. Le client d'un
// contrat ne change jamais; un état vide conserve l'état courant.
func (m *Manager) Edit(ctx context.Context, id int, c *models.Contract) error {
	existing, err := m.store.GetContract(ctx, id)
	if err != nil {
		return err
	}
	if c.ClientID != 0 && c.ClientID != existing.ClientID {
		return validation.Violations{"client_id": "le client d'un contrat ne peut pas être modifié"}.Err()
	}
	c.ID = id
	c.ClientID = existing.ClientID

	err = m.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockClient(ctx, c.ClientID); err != nil {
			return err
		}
		current, err := q.GetContract(ctx, id)
		if err != nil {
			return err
		}
		if current.Etat == models.ContractTerminated {
			return ErrContractTerminated
		}
		if c.Etat == "" {
			c.Etat = current.Etat
		}
		if err := m.validate.Struct(c); err != nil {
			return err
		}
		cs, err := q.ListClientContracts(ctx, c.ClientID)
		if err != nil {
			return err
		}
		if err := NewBook(cs).CheckEdit(*c); err != nil {
			return err
		}
		return q.UpdateContract(ctx, c)
	})
	if errors.Is(err, db.ErrGoverningContractExists) {
		return m.conflict(ctx, c)
	}
	if err != nil {
		return err
	}

	m.log.Info("contract updated", "contrat_id", c.ID, "client_id", c.ClientID, "etat", c.Etat)
	return nil
}

// Terminate passe le contrat à Terminé. L'opération est toujours permise et
// sans effet sur un contrat déjà terminé (changed vaut alors false).
func (m *Manager) Terminate(ctx context.Context, id int) (*models.Contract, bool, error) {
	existing, err := m.store.GetContract(ctx, id)
	if err != nil {
		return nil, false, err
	}

	var (
		out     *models.Contract
		changed bool
	)
	err = m.store.InTx(ctx, func(q db.Queries) error {
		if _, err := q.LockClient(ctx, existing.ClientID); err != nil {
			return err
		}
		c, err := q.GetContract(ctx, id)
		if err != nil {
			return err
		}
		out = c
		if changed = Terminate(c); !changed {
			return nil
		}
		return q.UpdateContract(ctx, c)
	})
	if err != nil {
		return nil, false, err
	}

	if changed {
		m.log.Info("contract terminated", "contrat_id", id, "client_id", out.ClientID)
	}
	return out, changed, nil
}

// ExpireContracts termine les contrats Actif ou Pause dont la date de fin est
// antérieure à today. Renvoie le nombre de contrats terminés.
func (m *Manager) ExpireContracts(ctx context.Context, today time.Time) (int, error) {
	expired, err := m.store.ListExpiredContracts(ctx, today)
	if err != nil {
		return 0, err
	}
	limit := models.DateOf(today)

	count := 0
	for _, e := range expired {
		var changed bool
		err := m.store.InTx(ctx, func(q db.Queries) error {
			if _, err := q.LockClient(ctx, e.ClientID); err != nil {
				return err
			}
			c, err := q.GetContract(ctx, e.ID)
			if err != nil {
				return err
			}
			// relu sous verrou: le contrat a pu être prolongé entre-temps
			if !c.Etat.Governing() || !c.DateFin.Before(limit) {
				return nil
			}
			changed = Terminate(c)
			return q.UpdateContract(ctx, c)
		})
		if err != nil {
			return count, err
		}
		if changed {
			count++
			m.log.Info("contract expired", "contrat_id", e.ID, "client_id", e.ClientID, "date_fin", e.DateFin.String())
		}
	}
	return count, nil
}

// conflict relit le contrat bloquant après une violation de l'index unique,
// hors de la transaction annulée.
func (m *Manager) conflict(ctx context.Context, c *models.Contract) error {
	cs, err := m.store.ListClientContracts(ctx, c.ClientID)
	if err != nil {
		return err
	}
	if err := NewBook(cs).CheckEdit(*c); err != nil {
		m.log.Warn("concurrent contract write rejected", "client_id", c.ClientID)
		return err
	}
	return db.ErrGoverningContractExists
}

// clientErr précise qu'un client absent est désigné par client_id.
func clientErr(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return validation.Violations{"client_id": "client introuvable"}.Err()
	}
	return err
}
