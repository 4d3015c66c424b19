package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/jhoicas/stocksync-api/internal/application/sync"
	"github.com/jhoicas/stocksync-api/internal/application/usecase"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
	apphttp "github.com/jhoicas/stocksync-api/internal/interfaces/http"
	"github.com/jhoicas/stocksync-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar la app completa sin base de datos
// ──────────────────────────────────────────────────────────────────────────────

type memSettingsRepo struct{ s *entity.Settings }

func (m *memSettingsRepo) Get(context.Context) (*entity.Settings, error) { return m.s, nil }
func (m *memSettingsRepo) Upsert(_ context.Context, s *entity.Settings) error {
	m.s = s
	return nil
}

type memItemRepo struct{ items map[string]*entity.InventoryItem }

func (m *memItemRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	return m.items[sku], nil
}
func (m *memItemRepo) List(context.Context, int, int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (m *memItemRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	m.items[it.SKU] = it
	return nil
}
func (m *memItemRepo) SetActive(context.Context, string, bool) error { return nil }
func (m *memItemRepo) UpsertBatch(_ context.Context, items []*entity.InventoryItem) error {
	for _, it := range items {
		m.items[it.SKU] = it
	}
	return nil
}
func (m *memItemRepo) SnapshotBySKU(context.Context) (map[string]repository.ItemSnapshot, error) {
	return map[string]repository.ItemSnapshot{}, nil
}
func (m *memItemRepo) AdjustQuantity(context.Context, string, int64) error { return nil }

type memVendorRepo struct{}

func (memVendorRepo) GetByExternalID(context.Context, string) (*entity.Vendor, error) {
	return nil, nil
}
func (memVendorRepo) List(context.Context, int, int) ([]*entity.Vendor, error) { return nil, nil }
func (memVendorRepo) UpsertBatch(context.Context, []*entity.Vendor) error      { return nil }

type memOrderRepo struct{}

func (memOrderRepo) GetByID(context.Context, string) (*entity.PurchaseOrder, error) {
	return nil, nil
}
func (memOrderRepo) List(context.Context, int, int) ([]*entity.PurchaseOrder, error) {
	return nil, nil
}
func (memOrderRepo) UpsertBatch(context.Context, []*entity.PurchaseOrder) error { return nil }
func (memOrderRepo) MarkReceived(context.Context, *entity.PurchaseOrder) error  { return nil }

type memLogRepo struct{ logs []*entity.SyncLog }

func (m *memLogRepo) Create(_ context.Context, l *entity.SyncLog) error {
	m.logs = append(m.logs, l)
	return nil
}
func (m *memLogRepo) Finish(context.Context, *entity.SyncLog) error { return nil }
func (m *memLogRepo) Latest(context.Context, string) (*entity.SyncLog, error) {
	if len(m.logs) == 0 {
		return nil, nil
	}
	return m.logs[len(m.logs)-1], nil
}
func (m *memLogRepo) List(context.Context, int, int) ([]*entity.SyncLog, error) {
	return m.logs, nil
}

type memAlertRepo struct{}

func (memAlertRepo) Create(context.Context, *entity.Alert) error         { return nil }
func (memAlertRepo) HasOpenForSKU(context.Context, string) (bool, error) { return false, nil }
func (memAlertRepo) Acknowledge(context.Context, string) error           { return nil }
func (memAlertRepo) List(context.Context, bool, int, int) ([]*entity.Alert, error) {
	return nil, nil
}

type memGateway struct{ items []appsync.RemoteItem }

func (m *memGateway) FetchItems(context.Context, appsync.Credentials) ([]appsync.RemoteItem, error) {
	return m.items, nil
}
func (m *memGateway) FetchVendors(context.Context, appsync.Credentials) ([]appsync.RemoteVendor, error) {
	return nil, nil
}
func (m *memGateway) FetchPurchaseOrders(context.Context, appsync.Credentials) ([]appsync.RemoteOrder, error) {
	return nil, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, appsync.ThresholdEvent) {}

type noopTxRunner struct{}

func (noopTxRunner) RunReceive(_ context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return fn(&memItemRepo{items: map[string]*entity.InventoryItem{}}, memOrderRepo{})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture HTTP
// ──────────────────────────────────────────────────────────────────────────────

type webFixture struct {
	app      *fiber.App
	settings *memSettingsRepo
	gw       *memGateway
	locks    *appsync.RunLockRegistry
}

func newWebFixture() *webFixture {
	f := &webFixture{
		settings: &memSettingsRepo{s: &entity.Settings{
			ID:              entity.SettingsID,
			FinaleAccount:   "acme",
			FinaleAPIKey:    "key",
			FinaleAPISecret: "secret",
			SyncEnabled:     true,
			AlertsEnabled:   true,
		}},
		gw:    &memGateway{},
		locks: appsync.NewRunLockRegistry(10 * time.Minute),
	}

	itemRepo := &memItemRepo{items: map[string]*entity.InventoryItem{}}
	syncUC := appsync.NewUseCase(
		f.settings, itemRepo, memVendorRepo{}, memOrderRepo{}, &memLogRepo{},
		f.gw, noopNotifier{}, f.locks, logger.Nop(), appsync.Options{},
	)

	f.app = fiber.New()
	apphttp.Router(f.app, apphttp.RouterDeps{
		SyncUC:     syncUC,
		ItemUC:     usecase.NewItemUseCase(itemRepo),
		VendorUC:   usecase.NewVendorUseCase(memVendorRepo{}),
		OrderUC:    usecase.NewPurchaseOrderUseCase(memOrderRepo{}, noopTxRunner{}),
		SettingsUC: usecase.NewSettingsUseCase(f.settings),
		AlertUC:    usecase.NewAlertUseCase(memAlertRepo{}),
	})
	return f
}

func (f *webFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/sync/trigger
// ──────────────────────────────────────────────────────────────────────────────

func TestTrigger_EstrategiaInvalidaRetorna400(t *testing.T) {
	f := newWebFixture()
	resp := f.do(t, http.MethodPost, "/api/sync/trigger", map[string]any{"strategy": "everything"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_STRATEGY", body["code"])
}

func TestTrigger_SinCredencialesRetorna422(t *testing.T) {
	f := newWebFixture()
	f.settings.s = nil

	resp := f.do(t, http.MethodPost, "/api/sync/trigger", map[string]any{"strategy": "inventory"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "MISSING_CREDENTIALS", body["code"])
}

func TestTrigger_SyncDeshabilitadoRetorna422(t *testing.T) {
	f := newWebFixture()
	f.settings.s.SyncEnabled = false

	resp := f.do(t, http.MethodPost, "/api/sync/trigger", map[string]any{"strategy": "inventory"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "SYNC_DISABLED", body["code"])
}

func TestTrigger_CorridaEnCursoRetorna409(t *testing.T) {
	f := newWebFixture()
	require.NoError(t, f.locks.Acquire(entity.StrategyInventory))

	resp := f.do(t, http.MethodPost, "/api/sync/trigger", map[string]any{"strategy": "inventory"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "SYNC_RUNNING", body["code"])
}

func TestTrigger_CorridaExitosaRetornaContadores(t *testing.T) {
	f := newWebFixture()
	f.gw.items = []appsync.RemoteItem{
		{SKU: "SKU-1", Name: "Item 1", Quantity: 7, ReorderPoint: 2},
	}

	resp := f.do(t, http.MethodPost, "/api/sync/trigger", map[string]any{"strategy": "inventory"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, float64(1), body["items_seen"])
	assert.Equal(t, float64(1), body["items_changed"])
	assert.NotEmpty(t, body["log_id"])
}

func TestTrigger_SinEstrategiaUsaFull(t *testing.T) {
	f := newWebFixture()
	resp := f.do(t, http.MethodPost, "/api/sync/trigger", map[string]any{})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "full", body["strategy"])
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/sync/status
// ──────────────────────────────────────────────────────────────────────────────

func TestStatus_SinCorridas(t *testing.T) {
	f := newWebFixture()
	resp := f.do(t, http.MethodGet, "/api/sync/status", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["running"])
	assert.NotContains(t, body, "latest_run")
}

func TestStatus_EstrategiaInvalidaRetorna400(t *testing.T) {
	f := newWebFixture()
	resp := f.do(t, http.MethodGet, "/api/sync/status?strategy=nope", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatus_DespuesDeUnaCorrida(t *testing.T) {
	f := newWebFixture()
	resp := f.do(t, http.MethodPost, "/api/sync/trigger", map[string]any{"strategy": "inventory"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/sync/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["running"])
	require.Contains(t, body, "latest_run")
	latest := body["latest_run"].(map[string]any)
	assert.Equal(t, "completed", latest["status"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Settings: el secret nunca sale en la respuesta
// ──────────────────────────────────────────────────────────────────────────────

func TestSettings_GetNoExponeElSecret(t *testing.T) {
	f := newWebFixture()
	resp := f.do(t, http.MethodGet, "/api/settings/", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["finale_api_key_set"])
	assert.NotContains(t, body, "finale_api_key")
	assert.NotContains(t, body, "finale_api_secret")
}

func TestSettings_SaveConservaCredencialesSiVienenVacias(t *testing.T) {
	f := newWebFixture()
	resp := f.do(t, http.MethodPut, "/api/settings/", map[string]any{
		"sync_enabled": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	assert.Equal(t, false, body["sync_enabled"])
	assert.Equal(t, true, body["finale_api_key_set"],
		"guardar toggles sin re-tipear credenciales debe conservar las guardadas")
	assert.Equal(t, "secret", f.settings.s.FinaleAPISecret)
}
