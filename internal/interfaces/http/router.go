package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocksync-api/internal/application/sync"
	"github.com/jhoicas/stocksync-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SyncUC     *sync.UseCase
	ItemUC     *usecase.ItemUseCase
	VendorUC   *usecase.VendorUseCase
	OrderUC    *usecase.PurchaseOrderUseCase
	SettingsUC *usecase.SettingsUseCase
	AlertUC    *usecase.AlertUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sync
	syncGroup := api.Group("/sync")
	syncHandler := NewSyncHandler(deps.SyncUC)
	syncGroup.Post("/trigger", syncHandler.Trigger)
	syncGroup.Get("/status", syncHandler.Status)
	syncGroup.Get("/history", syncHandler.History)

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:sku", itemHandler.GetBySKU)
	items.Put("/:sku", itemHandler.Update)
	items.Delete("/:sku", itemHandler.Deactivate)

	// Vendors
	vendors := api.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:external_id", vendorHandler.GetByExternalID)

	// Purchase orders
	orders := api.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/receive", orderHandler.Receive)

	// Settings
	settings := api.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Save)

	// Alerts
	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Post("/:id/ack", alertHandler.Acknowledge)
}
