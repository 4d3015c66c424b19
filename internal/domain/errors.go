package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrSyncEnCurso           = errors.New("ya hay una sincronización en curso para esta estrategia")
	ErrCredencialesFaltantes = errors.New("credenciales de Finale no configuradas")
	ErrSyncDeshabilitado     = errors.New("la sincronización está deshabilitada en settings")
	ErrEstrategiaInvalida    = errors.New("estrategia de sincronización desconocida")
	ErrOrdenYaRecibida       = errors.New("la orden de compra ya fue recibida")
)
