package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocksync-api/internal/domain"
)

// Test interno al paquete para poder inyectar el reloj del registro.

func TestRunLock_ExclusionPorEstrategia(t *testing.T) {
	r := NewRunLockRegistry(10 * time.Minute)

	require.NoError(t, r.Acquire("inventory"))
	err := r.Acquire("inventory")
	assert.ErrorIs(t, err, domain.ErrSyncEnCurso,
		"una segunda corrida de la misma estrategia debe rechazarse de inmediato")
}

func TestRunLock_EstrategiasIndependientes(t *testing.T) {
	r := NewRunLockRegistry(10 * time.Minute)

	require.NoError(t, r.Acquire("inventory"))
	assert.NoError(t, r.Acquire("vendors"),
		"estrategias distintas no comparten lock")
}

func TestRunLock_ReleasePermiteNuevaCorrida(t *testing.T) {
	r := NewRunLockRegistry(10 * time.Minute)

	require.NoError(t, r.Acquire("full"))
	r.Release("full")
	assert.NoError(t, r.Acquire("full"))
}

func TestRunLock_ReleaseIdempotente(t *testing.T) {
	r := NewRunLockRegistry(10 * time.Minute)

	// Liberar un lock nunca tomado no debe hacer nada raro.
	r.Release("inventory")
	r.Release("inventory")
	assert.NoError(t, r.Acquire("inventory"))
}

func TestRunLock_LockVencidoSeRoba(t *testing.T) {
	r := NewRunLockRegistry(10 * time.Minute)

	now := time.Now()
	r.clock = func() time.Time { return now }
	require.NoError(t, r.Acquire("inventory"))

	// El proceso anterior "murió": avanza el reloj más allá del TTL.
	r.clock = func() time.Time { return now.Add(11 * time.Minute) }
	assert.NoError(t, r.Acquire("inventory"),
		"un lock vencido debe poder robarse para no dejar el sync trabado")
}

func TestRunLock_RunningReflejaVigencia(t *testing.T) {
	r := NewRunLockRegistry(10 * time.Minute)

	assert.False(t, r.Running("inventory"))

	now := time.Now()
	r.clock = func() time.Time { return now }
	require.NoError(t, r.Acquire("inventory"))
	assert.True(t, r.Running("inventory"))

	// Un lock vencido no cuenta como corrida en curso.
	r.clock = func() time.Time { return now.Add(11 * time.Minute) }
	assert.False(t, r.Running("inventory"))

	r.clock = func() time.Time { return now }
	r.Release("inventory")
	assert.False(t, r.Running("inventory"))
}
