package sync

import (
	"sync"
	"time"

	"github.com/jhoicas/stocksync-api/internal/domain"
)

// RunLockRegistry exclusión mutua por estrategia: a lo sumo una corrida
// fetching/persisting por estrategia a la vez. Un lock no liberado (proceso
// muerto a mitad de corrida) expira tras el TTL para no dejar el sync trabado.
type RunLockRegistry struct {
	mu    sync.Mutex
	held  map[string]time.Time // estrategia -> momento de adquisición
	ttl   time.Duration
	clock func() time.Time
}

// NewRunLockRegistry crea el registro con el TTL de expiración dado.
func NewRunLockRegistry(ttl time.Duration) *RunLockRegistry {
	return &RunLockRegistry{
		held:  make(map[string]time.Time),
		ttl:   ttl,
		clock: time.Now,
	}
}

// Acquire toma el lock de la estrategia o falla de inmediato con
// domain.ErrSyncEnCurso si otra corrida lo tiene y no está vencido.
func (r *RunLockRegistry) Acquire(strategy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if at, ok := r.held[strategy]; ok {
		if r.clock().Sub(at) < r.ttl {
			return domain.ErrSyncEnCurso
		}
		// Lock vencido: la corrida anterior nunca liberó (crash); lo robamos.
	}
	r.held[strategy] = r.clock()
	return nil
}

// Release libera el lock. Es idempotente: liberar un lock no tomado no hace nada.
func (r *RunLockRegistry) Release(strategy string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, strategy)
}

// Running indica si hay una corrida en curso (lock vigente) para la estrategia.
func (r *RunLockRegistry) Running(strategy string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	at, ok := r.held[strategy]
	return ok && r.clock().Sub(at) < r.ttl
}
