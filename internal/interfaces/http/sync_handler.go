package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocksync-api/internal/application/dto"
	"github.com/jhoicas/stocksync-api/internal/application/sync"
	"github.com/jhoicas/stocksync-api/internal/domain"
	"github.com/jhoicas/stocksync-api/internal/infrastructure/finale"
)

// SyncHandler maneja las peticiones HTTP del orquestador de sincronización.
type SyncHandler struct {
	uc *sync.UseCase
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *sync.UseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Trigger godoc
// @Summary      Disparar una corrida de sincronización
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TriggerSyncRequest  true  "Estrategia y dry_run"
// @Success      200   {object}  dto.SyncRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/sync/trigger [post]
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	var in dto.TriggerSyncRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Strategy == "" {
		in.Strategy = "full"
	}

	out, err := h.uc.Run(c.UserContext(), in.Strategy, in.DryRun)
	if err != nil {
		var apiErr *finale.APIError
		switch {
		case errors.Is(err, domain.ErrEstrategiaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STRATEGY", Message: "estrategia desconocida"})
		case errors.Is(err, domain.ErrSyncEnCurso):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SYNC_RUNNING", Message: "ya hay una corrida en curso para esta estrategia"})
		case errors.Is(err, domain.ErrCredencialesFaltantes):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_CREDENTIALS", Message: "credenciales de Finale no configuradas"})
		case errors.Is(err, domain.ErrSyncDeshabilitado):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SYNC_DISABLED", Message: "la sincronización está deshabilitada en settings"})
		case errors.Is(err, finale.ErrRetryAgotado), errors.As(err, &apiErr):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado de la sincronización (polling de la UI)
// @Tags         sync
// @Produce      json
// @Param        strategy  query  string  false  "Filtrar por estrategia"
// @Success      200  {object}  dto.SyncStatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.UserContext(), c.Query("strategy"))
	if err != nil {
		if errors.Is(err, domain.ErrEstrategiaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STRATEGY", Message: "estrategia desconocida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de corridas de sincronización
// @Tags         sync
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.SyncLogResponse
// @Router       /api/sync/history [get]
func (h *SyncHandler) History(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.History(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
