package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocksync-api/internal/application/dto"
	"github.com/jhoicas/stocksync-api/internal/domain"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/fingerprint"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
	"github.com/jhoicas/stocksync-api/pkg/logger"
)

// Options afinación del orquestador.
type Options struct {
	BatchSize  int           // registros por upsert (100 por defecto)
	RunTimeout time.Duration // tope de una corrida completa
}

// UseCase orquesta una corrida de sincronización contra Finale:
// settings → fetch paginado (rate-limited) → detección de cambios por
// fingerprint → upserts por lotes → eventos de umbral → SyncLog.
//
// Semántica de fallos: un error de fetch aborta la corrida (un fetch parcial
// no es autoritativo); un lote fallido se cuenta y la corrida continúa; un
// fallo del notificador jamás afecta el resultado.
type UseCase struct {
	settingsRepo repository.SettingsRepository
	itemRepo     repository.InventoryItemRepository
	vendorRepo   repository.VendorRepository
	orderRepo    repository.PurchaseOrderRepository
	logRepo      repository.SyncLogRepository
	gateway      InventoryGateway
	notifier     ThresholdNotifier
	calc         *fingerprint.Calculator
	locks        *RunLockRegistry
	log          *logger.Logger
	batchSize    int
	runTimeout   time.Duration
}

// NewUseCase construye el orquestador.
func NewUseCase(
	settingsRepo repository.SettingsRepository,
	itemRepo repository.InventoryItemRepository,
	vendorRepo repository.VendorRepository,
	orderRepo repository.PurchaseOrderRepository,
	logRepo repository.SyncLogRepository,
	gateway InventoryGateway,
	notifier ThresholdNotifier,
	locks *RunLockRegistry,
	log *logger.Logger,
	opts Options,
) *UseCase {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.RunTimeout <= 0 {
		opts.RunTimeout = 55 * time.Second
	}
	return &UseCase{
		settingsRepo: settingsRepo,
		itemRepo:     itemRepo,
		vendorRepo:   vendorRepo,
		orderRepo:    orderRepo,
		logRepo:      logRepo,
		gateway:      gateway,
		notifier:     notifier,
		calc:         fingerprint.NewCalculator(),
		locks:        locks,
		log:          log,
		batchSize:    opts.BatchSize,
		runTimeout:   opts.RunTimeout,
	}
}

// Run ejecuta una corrida para la estrategia dada. Errores de configuración
// (settings ausentes/credenciales) y de concurrencia (corrida en curso) se
// devuelven de inmediato, antes de cualquier llamada HTTP. Con dryRun la
// detección corre completa pero no se persiste ni se alerta.
func (u *UseCase) Run(ctx context.Context, strategy string, dryRun bool) (*dto.SyncRunResponse, error) {
	if !entity.ValidStrategy(strategy) {
		return nil, domain.ErrEstrategiaInvalida
	}

	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer settings: %w", err)
	}
	if !settings.HasFinaleCredentials() {
		return nil, domain.ErrCredencialesFaltantes
	}
	if !settings.SyncEnabled {
		return nil, domain.ErrSyncDeshabilitado
	}

	if err := u.locks.Acquire(strategy); err != nil {
		return nil, err
	}
	defer u.locks.Release(strategy)

	// La corrida se desacopla de la cancelación del request: si el caller
	// abandona (timeout de ruta), terminamos igual del lado del servidor para
	// no dejar escrituras parciales en estado ambiguo.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.runTimeout)
	defer cancel()

	runLog := &entity.SyncLog{
		ID:        uuid.New().String(),
		Strategy:  strategy,
		Status:    entity.SyncStatusRunning,
		DryRun:    dryRun,
		StartedAt: time.Now(),
	}
	if err := u.logRepo.Create(runCtx, runLog); err != nil {
		return nil, fmt.Errorf("crear sync log: %w", err)
	}

	u.log.Info().
		Str("strategy", strategy).
		Bool("dry_run", dryRun).
		Str("log_id", runLog.ID).
		Msg("corrida de sincronización iniciada")

	creds := Credentials{
		Account:   settings.FinaleAccount,
		APIKey:    settings.FinaleAPIKey,
		APISecret: settings.FinaleAPISecret,
	}

	if err := u.runStrategy(runCtx, strategy, creds, settings, dryRun, runLog); err != nil {
		u.finish(runCtx, runLog, entity.SyncStatusFailed, err.Error())
		return nil, err
	}

	u.finish(runCtx, runLog, entity.SyncStatusCompleted, "")
	return &dto.SyncRunResponse{
		LogID:        runLog.ID,
		Strategy:     strategy,
		Status:       runLog.Status,
		DryRun:       dryRun,
		ItemsSeen:    runLog.ItemsSeen,
		ItemsChanged: runLog.ItemsChanged,
		ItemsFailed:  runLog.ItemsFailed,
	}, nil
}

// Status devuelve la última corrida registrada y si hay una en curso.
func (u *UseCase) Status(ctx context.Context, strategy string) (*dto.SyncStatusResponse, error) {
	if strategy != "" && !entity.ValidStrategy(strategy) {
		return nil, domain.ErrEstrategiaInvalida
	}
	latest, err := u.logRepo.Latest(ctx, strategy)
	if err != nil {
		return nil, fmt.Errorf("leer último sync log: %w", err)
	}
	return &dto.SyncStatusResponse{
		Running:   u.locks.Running(strategy),
		LatestRun: toSyncLogResponse(latest),
	}, nil
}

// History lista corridas pasadas (más recientes primero).
func (u *UseCase) History(ctx context.Context, limit, offset int) ([]dto.SyncLogResponse, error) {
	list, err := u.logRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar sync logs: %w", err)
	}
	out := make([]dto.SyncLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toSyncLogResponse(l))
	}
	return out, nil
}

func (u *UseCase) runStrategy(
	ctx context.Context,
	strategy string,
	creds Credentials,
	settings *entity.Settings,
	dryRun bool,
	runLog *entity.SyncLog,
) error {
	switch strategy {
	case entity.StrategyInventory, entity.StrategyFull, entity.StrategyCritical:
		criticalOnly := strategy == entity.StrategyCritical
		if err := u.syncItems(ctx, creds, settings, criticalOnly, dryRun, runLog); err != nil {
			return err
		}
		if strategy != entity.StrategyFull {
			return nil
		}
		fallthrough
	case entity.StrategyVendors:
		if err := u.syncVendors(ctx, creds, dryRun, runLog); err != nil {
			return err
		}
		if strategy != entity.StrategyFull {
			return nil
		}
		fallthrough
	case entity.StrategyPurchaseOrders:
		return u.syncOrders(ctx, creds, dryRun, runLog)
	}
	return nil
}

// syncItems fase de inventario: fetch completo, partición changed/unchanged por
// fingerprint, upserts por lotes y eventos de cruce de umbral hacia abajo.
func (u *UseCase) syncItems(
	ctx context.Context,
	creds Credentials,
	settings *entity.Settings,
	criticalOnly, dryRun bool,
	runLog *entity.SyncLog,
) error {
	remote, err := u.gateway.FetchItems(ctx, creds)
	if err != nil {
		return fmt.Errorf("fetch de items: %w", err)
	}
	snapshot, err := u.itemRepo.SnapshotBySKU(ctx)
	if err != nil {
		// Sin el snapshot no hay detección de cambios: se aborta como fetch fallido.
		return fmt.Errorf("snapshot de fingerprints: %w", err)
	}

	runLog.ItemsSeen += len(remote)
	now := time.Now()

	type pending struct {
		item  *entity.InventoryItem
		event *ThresholdEvent
	}
	var changed []pending

	for _, r := range remote {
		fields := fingerprint.Fields{
			SKU:          r.SKU,
			Name:         r.Name,
			Quantity:     r.Quantity,
			UnitCost:     r.UnitCost,
			ReorderPoint: r.ReorderPoint,
		}
		prev, known := snapshot[r.SKU]
		if known && !u.calc.HasChanged(fields, prev.Fingerprint) {
			continue
		}
		if criticalOnly && r.Quantity > r.ReorderPoint {
			// Estrategia critical: solo persiste los SKUs ya en o bajo umbral.
			continue
		}

		p := pending{item: &entity.InventoryItem{
			ID:              uuid.New().String(),
			SKU:             r.SKU,
			Name:            r.Name,
			Quantity:        r.Quantity,
			UnitCost:        r.UnitCost,
			ReorderPoint:    r.ReorderPoint,
			VendorID:        r.VendorExternalID,
			Fingerprint:     u.calc.Calculate(fields),
			Active:          true,
			SourceUpdatedAt: r.UpdatedAt,
			LastSyncedAt:    now,
		}}

		// Cruce hacia abajo: cantidad nueva en o bajo umbral, la anterior por
		// encima. Un SKU nunca visto no tiene observación anterior: no alerta.
		if known && r.Quantity <= r.ReorderPoint && prev.Quantity > r.ReorderPoint {
			p.event = &ThresholdEvent{
				SKU:              r.SKU,
				Name:             r.Name,
				Quantity:         r.Quantity,
				PreviousQuantity: prev.Quantity,
				ReorderPoint:     r.ReorderPoint,
				Recipients:       settings.Recipients(),
			}
		}
		changed = append(changed, p)
	}

	u.log.Info().
		Int("seen", len(remote)).
		Int("changed", len(changed)).
		Bool("dry_run", dryRun).
		Msg("detección de cambios de inventario")

	if dryRun {
		runLog.ItemsChanged += len(changed)
		return nil
	}

	for start := 0; start < len(changed); start += u.batchSize {
		end := start + u.batchSize
		if end > len(changed) {
			end = len(changed)
		}
		batch := changed[start:end]
		items := make([]*entity.InventoryItem, len(batch))
		for i, p := range batch {
			items[i] = p.item
		}
		if err := u.itemRepo.UpsertBatch(ctx, items); err != nil {
			// Fallo parcial: el lote se cuenta y la corrida sigue con el resto.
			runLog.ItemsFailed += len(batch)
			u.log.Warn().Err(err).
				Int("batch_size", len(batch)).
				Msg("lote de upsert fallido, la corrida continúa")
			continue
		}
		runLog.ItemsChanged += len(batch)

		if settings.AlertsEnabled {
			for _, p := range batch {
				if p.event != nil {
					u.notifier.Notify(ctx, *p.event)
				}
			}
		}
	}
	return nil
}

// syncVendors fase de proveedores: upsert completo por external id.
func (u *UseCase) syncVendors(ctx context.Context, creds Credentials, dryRun bool, runLog *entity.SyncLog) error {
	remote, err := u.gateway.FetchVendors(ctx, creds)
	if err != nil {
		return fmt.Errorf("fetch de vendors: %w", err)
	}
	runLog.ItemsSeen += len(remote)
	if dryRun {
		runLog.ItemsChanged += len(remote)
		return nil
	}

	now := time.Now()
	vendors := make([]*entity.Vendor, 0, len(remote))
	for _, r := range remote {
		vendors = append(vendors, &entity.Vendor{
			ID:         uuid.New().String(),
			ExternalID: r.ExternalID,
			Name:       r.Name,
			Email:      r.Email,
			Phone:      r.Phone,
			UpdatedAt:  now,
		})
	}
	for start := 0; start < len(vendors); start += u.batchSize {
		end := start + u.batchSize
		if end > len(vendors) {
			end = len(vendors)
		}
		if err := u.vendorRepo.UpsertBatch(ctx, vendors[start:end]); err != nil {
			runLog.ItemsFailed += end - start
			u.log.Warn().Err(err).Msg("lote de vendors fallido, la corrida continúa")
			continue
		}
		runLog.ItemsChanged += end - start
	}
	return nil
}

// syncOrders fase de órdenes de compra: upsert completo por external id.
func (u *UseCase) syncOrders(ctx context.Context, creds Credentials, dryRun bool, runLog *entity.SyncLog) error {
	remote, err := u.gateway.FetchPurchaseOrders(ctx, creds)
	if err != nil {
		return fmt.Errorf("fetch de órdenes de compra: %w", err)
	}
	runLog.ItemsSeen += len(remote)
	if dryRun {
		runLog.ItemsChanged += len(remote)
		return nil
	}

	now := time.Now()
	orders := make([]*entity.PurchaseOrder, 0, len(remote))
	for _, r := range remote {
		o := &entity.PurchaseOrder{
			ID:         uuid.New().String(),
			ExternalID: r.ExternalID,
			VendorID:   r.VendorExternalID,
			Status:     r.Status,
			OrderDate:  r.OrderDate,
			UpdatedAt:  now,
			CreatedAt:  now,
		}
		for _, l := range r.Lines {
			o.Lines = append(o.Lines, entity.PurchaseOrderLine{
				ID:       uuid.New().String(),
				OrderID:  o.ID,
				SKU:      l.SKU,
				Quantity: l.Quantity,
				UnitCost: l.UnitCost,
			})
			o.Total = o.Total.Add(l.UnitCost.Mul(decimal.NewFromInt(l.Quantity)))
		}
		orders = append(orders, o)
	}
	for start := 0; start < len(orders); start += u.batchSize {
		end := start + u.batchSize
		if end > len(orders) {
			end = len(orders)
		}
		if err := u.orderRepo.UpsertBatch(ctx, orders[start:end]); err != nil {
			runLog.ItemsFailed += end - start
			u.log.Warn().Err(err).Msg("lote de órdenes fallido, la corrida continúa")
			continue
		}
		runLog.ItemsChanged += end - start
	}
	return nil
}

// finish cierra el SyncLog una sola vez. Si el Finish falla solo se loguea:
// la corrida ya terminó y el lock se libera igual en el defer de Run.
// El cierre usa un contexto propio, desacoplado del deadline de la corrida:
// cuando la corrida falla justo por ese deadline, el UPDATE de cierre aún debe
// ejecutarse o la fila quedaría en running para siempre.
func (u *UseCase) finish(ctx context.Context, runLog *entity.SyncLog, status, summary string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	now := time.Now()
	runLog.Status = status
	runLog.ErrorSummary = summary
	runLog.FinishedAt = &now
	if err := u.logRepo.Finish(ctx, runLog); err != nil {
		u.log.Error().Err(err).Str("log_id", runLog.ID).Msg("finalizar sync log")
	}
	u.log.Info().
		Str("log_id", runLog.ID).
		Str("status", status).
		Int("seen", runLog.ItemsSeen).
		Int("changed", runLog.ItemsChanged).
		Int("failed", runLog.ItemsFailed).
		Msg("corrida de sincronización terminada")
}

func toSyncLogResponse(l *entity.SyncLog) *dto.SyncLogResponse {
	if l == nil {
		return nil
	}
	return &dto.SyncLogResponse{
		ID:           l.ID,
		Strategy:     l.Strategy,
		Status:       l.Status,
		DryRun:       l.DryRun,
		ItemsSeen:    l.ItemsSeen,
		ItemsChanged: l.ItemsChanged,
		ItemsFailed:  l.ItemsFailed,
		ErrorSummary: l.ErrorSummary,
		StartedAt:    l.StartedAt,
		FinishedAt:   l.FinishedAt,
	}
}
