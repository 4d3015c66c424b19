package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stocksync-api/internal/application/sync"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
	"github.com/jhoicas/stocksync-api/pkg/logger"
)

// Mailer puerto de salida hacia el transporte de correo.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Options afinación del notificador.
type Options struct {
	MaxAttempts int           // intentos de envío (1 + reintentos)
	BaseDelay   time.Duration // delay inicial del backoff, se duplica por intento
}

// Notifier procesa eventos de cruce de umbral: deduplica contra alertas
// abiertas, persiste la alerta y despacha el correo con reintentos.
// Todo fallo aquí se loguea y se traga: el sync nunca depende de una alerta.
type Notifier struct {
	alerts      repository.AlertRepository
	mailer      Mailer
	log         *logger.Logger
	maxAttempts int
	baseDelay   time.Duration
}

var _ sync.ThresholdNotifier = (*Notifier)(nil)

// NewNotifier construye el notificador.
func NewNotifier(alerts repository.AlertRepository, mailer Mailer, log *logger.Logger, opts Options) *Notifier {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	return &Notifier{
		alerts:      alerts,
		mailer:      mailer,
		log:         log,
		maxAttempts: opts.MaxAttempts,
		baseDelay:   opts.BaseDelay,
	}
}

// Notify implementa sync.ThresholdNotifier. Mientras exista una alerta sin
// reconocer para el SKU no se vuelve a alertar; al reconocerla, el siguiente
// cruce genera una nueva.
func (n *Notifier) Notify(ctx context.Context, ev sync.ThresholdEvent) {
	open, err := n.alerts.HasOpenForSKU(ctx, ev.SKU)
	if err != nil {
		// Si la consulta de dedup falla, preferimos alertar de más que callar.
		n.log.Warn().Err(err).Str("sku", ev.SKU).Msg("consulta de alertas abiertas fallida")
	}
	if open {
		n.log.Debug().Str("sku", ev.SKU).Msg("alerta abierta existente, se suprime la repetida")
		return
	}

	severity := entity.AlertSeverityWarning
	if ev.Quantity <= 0 {
		severity = entity.AlertSeverityCritical
	}
	message := fmt.Sprintf(
		"El SKU %s (%s) cruzó su umbral de reorden: existencias %d, umbral %d (antes %d).",
		ev.SKU, ev.Name, ev.Quantity, ev.ReorderPoint, ev.PreviousQuantity,
	)

	a := &entity.Alert{
		ID:        uuid.New().String(),
		SKU:       ev.SKU,
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := n.alerts.Create(ctx, a); err != nil {
		n.log.Error().Err(err).Str("sku", ev.SKU).Msg("persistir alerta")
	}

	if len(ev.Recipients) == 0 {
		n.log.Debug().Str("sku", ev.SKU).Msg("sin destinatarios configurados, alerta solo persistida")
		return
	}

	subject := fmt.Sprintf("[stocksync] Stock bajo: %s", ev.SKU)
	n.sendWithRetry(ctx, ev.Recipients, subject, message, ev.SKU)
}

// sendWithRetry reintenta entregas transitorias con backoff exponencial y,
// agotados los intentos, loguea y retorna sin propagar (best-effort).
func (n *Notifier) sendWithRetry(ctx context.Context, to []string, subject, body, sku string) {
	delay := n.baseDelay
	for attempt := 1; attempt <= n.maxAttempts; attempt++ {
		err := n.mailer.Send(ctx, to, subject, body)
		if err == nil {
			n.log.Info().Str("sku", sku).Int("attempt", attempt).Msg("alerta enviada")
			return
		}
		n.log.Warn().Err(err).
			Str("sku", sku).
			Int("attempt", attempt).
			Int("max_attempts", n.maxAttempts).
			Msg("envío de alerta fallido")
		if attempt == n.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			n.log.Warn().Str("sku", sku).Msg("contexto cancelado durante reintentos de alerta")
			return
		case <-time.After(delay):
		}
		delay *= 2
	}
	n.log.Error().Str("sku", sku).Msg("alerta no entregada tras agotar reintentos")
}
