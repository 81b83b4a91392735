// Package memstore fournit un db.Store en mémoire, utilisé en mode
// développement (STORAGE_DRIVER=memory) et dans les tests.
package memstore

import (
	"context"
	"maps"
	"sync"

	"vitalecosystem/db"
	"vitalecosystem/models"
)

// data porte l'état complet. guard n'est jamais réaffecté; il est nil pour la
// copie de travail d'une transaction, déjà protégée par le verrou du Store.
type data struct {
	guard *sync.Mutex
	seq   int

	clients       map[int]models.Client
	contracts     map[int]models.Contract
	notes         map[int]models.DeliveryNote
	noteProducts  map[int]models.DeliveryNoteProduct
	noteServices  map[int]models.DeliveryNoteService
	versements    map[int]models.Versement
	bonAchats     map[int]models.BonAchat
	bonProducts   map[int]models.BonAchatProduct
	bonVersements map[int]models.BonAchatVersement
	inventory     map[string]models.InventoryItem
	agents        map[int]models.Agent
	produits      map[int]models.Produit
	services      map[int]models.Service
	fournisseurs  map[int]models.Fournisseur
}

type Store struct {
	*data
}

var _ db.Store = (*Store)(nil)

func New() *Store {
	return &Store{data: &data{
		guard:         &sync.Mutex{},
		clients:       map[int]models.Client{},
		contracts:     map[int]models.Contract{},
		notes:         map[int]models.DeliveryNote{},
		noteProducts:  map[int]models.DeliveryNoteProduct{},
		noteServices:  map[int]models.DeliveryNoteService{},
		versements:    map[int]models.Versement{},
		bonAchats:     map[int]models.BonAchat{},
		bonProducts:   map[int]models.BonAchatProduct{},
		bonVersements: map[int]models.BonAchatVersement{},
		inventory:     map[string]models.InventoryItem{},
		agents:        map[int]models.Agent{},
		produits:      map[int]models.Produit{},
		services:      map[int]models.Service{},
		fournisseurs:  map[int]models.Fournisseur{},
	}}
}

// InTx exécute fn sur une copie de l'état et ne la publie que si fn réussit.
// Les transactions sont sérialisées.
func (s *Store) InTx(ctx context.Context, fn func(q db.Queries) error) error {
	guard := s.guard
	guard.Lock()
	defer guard.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.data.replace(work)
	return nil
}

func (d *data) lock() func() {
	if d.guard == nil {
		return func() {}
	}
	d.guard.Lock()
	return d.guard.Unlock
}

func (d *data) nextID() int {
	d.seq++
	return d.seq
}

func (d *data) replace(w *data) {
	d.seq = w.seq
	d.clients, d.contracts = w.clients, w.contracts
	d.notes, d.noteProducts, d.noteServices = w.notes, w.noteProducts, w.noteServices
	d.versements = w.versements
	d.bonAchats, d.bonProducts, d.bonVersements = w.bonAchats, w.bonProducts, w.bonVersements
	d.inventory = w.inventory
	d.agents, d.produits, d.services, d.fournisseurs = w.agents, w.produits, w.services, w.fournisseurs
}

func (d *data) clone() *data {
	return &data{
		seq:           d.seq,
		clients:       maps.Clone(d.clients),
		contracts:     maps.Clone(d.contracts),
		notes:         maps.Clone(d.notes),
		noteProducts:  maps.Clone(d.noteProducts),
		noteServices:  maps.Clone(d.noteServices),
		versements:    maps.Clone(d.versements),
		bonAchats:     maps.Clone(d.bonAchats),
		bonProducts:   maps.Clone(d.bonProducts),
		bonVersements: maps.Clone(d.bonVersements),
		inventory:     maps.Clone(d.inventory),
		agents:        maps.Clone(d.agents),
		produits:      maps.Clone(d.produits),
		services:      maps.Clone(d.services),
		fournisseurs:  maps.Clone(d.fournisseurs),
	}
}
