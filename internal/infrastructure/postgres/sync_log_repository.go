package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

var _ repository.SyncLogRepository = (*SyncLogRepo)(nil)

// SyncLogRepo implementación del puerto SyncLogRepository sobre PostgreSQL.
// La tabla es append-only: Finish solo toca filas en estado running.
type SyncLogRepo struct {
	q Querier
}

// NewSyncLogRepository construye el adaptador de persistencia para sync logs.
func NewSyncLogRepository(q Querier) *SyncLogRepo {
	return &SyncLogRepo{q: q}
}

const syncLogColumns = `id, strategy, status, dry_run, items_seen, items_changed, items_failed, error_summary, started_at, finished_at`

// Create registra la corrida en estado running.
func (r *SyncLogRepo) Create(ctx context.Context, l *entity.SyncLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sync_logs (`+syncLogColumns+`)
		VALUES ($1, $2, $3, $4, 0, 0, 0, '', $5, NULL)`,
		l.ID, l.Strategy, l.Status, l.DryRun, l.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sync log: %w", err)
	}
	return nil
}

// Finish cierra la corrida: escribe estado terminal, contadores y resumen.
// El guard status = 'running' asegura que una corrida nunca se finaliza dos veces.
func (r *SyncLogRepo) Finish(ctx context.Context, l *entity.SyncLog) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sync_logs
		SET status = $2, items_seen = $3, items_changed = $4, items_failed = $5,
		    error_summary = $6, finished_at = $7
		WHERE id = $1 AND status = $8`,
		l.ID, l.Status, l.ItemsSeen, l.ItemsChanged, l.ItemsFailed,
		l.ErrorSummary, l.FinishedAt, entity.SyncStatusRunning,
	)
	if err != nil {
		return fmt.Errorf("finalizar sync log: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("sync log %s no está en estado running", l.ID)
	}
	return nil
}

// Latest devuelve la corrida más reciente, opcionalmente filtrada por estrategia.
func (r *SyncLogRepo) Latest(ctx context.Context, strategy string) (*entity.SyncLog, error) {
	query := `SELECT ` + syncLogColumns + ` FROM sync_logs`
	args := []any{}
	if strategy != "" {
		query += ` WHERE strategy = $1`
		args = append(args, strategy)
	}
	query += ` ORDER BY started_at DESC LIMIT 1`

	var l entity.SyncLog
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.Strategy, &l.Status, &l.DryRun, &l.ItemsSeen, &l.ItemsChanged,
		&l.ItemsFailed, &l.ErrorSummary, &l.StartedAt, &l.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("último sync log: %w", err)
	}
	return &l, nil
}

// List lista corridas con paginación, más recientes primero.
func (r *SyncLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.SyncLog, error) {
	query := `SELECT ` + syncLogColumns + ` FROM sync_logs ORDER BY started_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sync logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.SyncLog
	for rows.Next() {
		var l entity.SyncLog
		if err := rows.Scan(&l.ID, &l.Strategy, &l.Status, &l.DryRun, &l.ItemsSeen,
			&l.ItemsChanged, &l.ItemsFailed, &l.ErrorSummary, &l.StartedAt, &l.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan sync log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
