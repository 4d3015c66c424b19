package repository

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/domain/entity"
)

// SyncLogRepository puerto append-only para SyncLog.
// Create registra la corrida en estado running; Finish la cierra exactamente una vez.
type SyncLogRepository interface {
	Create(ctx context.Context, log *entity.SyncLog) error
	Finish(ctx context.Context, log *entity.SyncLog) error
	Latest(ctx context.Context, strategy string) (*entity.SyncLog, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SyncLog, error)
}
