package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

type invKey struct {
	locationID string
	skuID      string
}

// state contenido completo del store; cada transacción trabaja sobre una copia.
type state struct {
	locations map[string]*entity.Location // por ID
	skus      map[string]*entity.SKU
	inventory map[invKey]*entity.Inventory
	logs      []*entity.MovementLog // orden de inserción
	users     map[string]*entity.User
}

func newState() *state {
	return &state{
		locations: make(map[string]*entity.Location),
		skus:      make(map[string]*entity.SKU),
		inventory: make(map[invKey]*entity.Inventory),
		users:     make(map[string]*entity.User),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.locations {
		cp := *v
		c.locations[k] = &cp
	}
	for k, v := range s.skus {
		cp := *v
		c.skus[k] = &cp
	}
	for k, v := range s.inventory {
		cp := *v
		c.inventory[k] = &cp
	}
	c.logs = make([]*entity.MovementLog, len(s.logs))
	for i, v := range s.logs {
		cp := *v
		c.logs[i] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	return c
}

// Store implementación en memoria de los repositorios y del TxRunner.
// Las transacciones se serializan con un mutex: fn trabaja sobre una copia del estado
// que solo reemplaza al original si fn termina sin error.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// Run ejecuta fn con repositorios atados a una transacción; cualquier error la descarta completa.
func (s *Store) Run(ctx context.Context, fn func(
	locationRepo repository.LocationRepository,
	skuRepo repository.SKURepository,
	inventoryRepo repository.InventoryRepository,
	logRepo repository.MovementLogRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	if err := fn(
		&LocationRepo{store: s, tx: tx},
		&SKURepo{store: s, tx: tx},
		&InventoryRepo{store: s, tx: tx},
		&MovementLogRepo{store: s, tx: tx},
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.st = tx
	return nil
}

// Locations repositorio fuera de transacción.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{store: s} }

// SKUs repositorio fuera de transacción.
func (s *Store) SKUs() *SKURepo { return &SKURepo{store: s} }

// Inventory repositorio fuera de transacción.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{store: s} }

// MovementLogs repositorio fuera de transacción.
func (s *Store) MovementLogs() *MovementLogRepo { return &MovementLogRepo{store: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// view ejecuta fn sobre el estado de la tx o, sin tx, sobre el estado compartido bajo el mutex.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}
