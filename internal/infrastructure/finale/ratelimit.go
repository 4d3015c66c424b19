package finale

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jhoicas/stocksync-api/pkg/logger"
)

// ErrRetryAgotado envuelve el último error transitorio cuando se agota el
// presupuesto de reintentos; el caller distingue "retriable agotado" de fatal.
var ErrRetryAgotado = errors.New("reintentos agotados contra Finale")

// APIError respuesta no-2xx no transitoria de Finale (4xx distinto de 429).
type APIError struct {
	Status int
	URL    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("finale respondió %d en %s", e.Status, e.URL)
}

// EsTransitorio indica si el error fue clasificado como transitorio
// (429/5xx/red) y agotó sus reintentos, en oposición a un fallo fatal.
func EsTransitorio(err error) bool {
	return errors.Is(err, ErrRetryAgotado)
}

// RateLimitOptions afinación del throttle y los reintentos.
type RateLimitOptions struct {
	PerSecond   int           // techo de requests por segundo (2 por defecto, el límite documentado de Finale)
	MaxAttempts int           // intentos por request (4 por defecto)
	BaseDelay   time.Duration // delay inicial del backoff, se duplica por intento
	Timeout     time.Duration // timeout por request HTTP
}

// RateLimitedClient serializa las salidas HTTP hacia Finale: a lo sumo
// PerSecond requests por segundo (admisión FIFO vía rate.Limiter.Wait) y
// backoff exponencial ante 429/5xx o errores de red. Todo el estado vive en
// memoria y muere con el proceso.
type RateLimitedClient struct {
	limiter     *rate.Limiter
	client      *http.Client
	log         *logger.Logger
	maxAttempts int
	baseDelay   time.Duration
}

// NewRateLimitedClient construye el cliente con throttle.
func NewRateLimitedClient(log *logger.Logger, opts RateLimitOptions) *RateLimitedClient {
	if opts.PerSecond <= 0 {
		opts.PerSecond = 2
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 4
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &RateLimitedClient{
		limiter:     rate.NewLimiter(rate.Limit(opts.PerSecond), opts.PerSecond),
		client:      &http.Client{Timeout: opts.Timeout},
		log:         log,
		maxAttempts: opts.MaxAttempts,
		baseDelay:   opts.BaseDelay,
	}
}

// Get ejecuta un GET con Basic auth respetando el rate limit. Respuestas 429 y
// 5xx y errores de transporte se reintentan con backoff; otros 4xx son fatales
// y se devuelven de inmediato como *APIError.
func (c *RateLimitedClient) Get(ctx context.Context, url, user, pass string) (*http.Response, error) {
	var lastErr error
	delay := c.baseDelay

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		// Admisión FIFO: Wait encola en orden de llegada y libera según el cupo.
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("esperar cupo de rate limit: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("construir request: %w", err)
		}
		req.SetBasicAuth(user, pass)
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err == nil {
			if resp.StatusCode < 300 {
				return resp, nil
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
				return nil, &APIError{Status: resp.StatusCode, URL: url}
			}
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
		} else {
			// Timeouts y fallos de red cuentan como transitorios.
			lastErr = err
		}

		c.log.Warn().Err(lastErr).
			Str("url", url).
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Dur("backoff", delay).
			Msg("request a Finale fallido, aplicando backoff")

		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("%w tras %d intentos: %w", ErrRetryAgotado, c.maxAttempts, lastErr)
}
