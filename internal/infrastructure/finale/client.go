// Package finale: cliente del API REST de Finale Inventory.
// La ruta base se parametriza con el identificador de cuenta:
// https://app.finaleinventory.com/{account}/api. Autenticación Basic con
// key/secret; listados paginados con limit/offset hasta recibir página corta.
package finale

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/jhoicas/stocksync-api/internal/application/sync"
	"github.com/jhoicas/stocksync-api/pkg/logger"
)

const defaultBaseURL = "https://app.finaleinventory.com"

var _ sync.InventoryGateway = (*Client)(nil)

// ClientOptions afinación del cliente.
type ClientOptions struct {
	BaseURL  string // override para tests; vacío = producción
	PageSize int    // tamaño de página de los listados (100 por defecto)
}

// Client implementa sync.InventoryGateway contra Finale.
// Toda salida pasa por el RateLimitedClient.
type Client struct {
	rl       *RateLimitedClient
	log      *logger.Logger
	baseURL  string
	pageSize int
}

// NewClient construye el cliente.
func NewClient(rl *RateLimitedClient, log *logger.Logger, opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	return &Client{rl: rl, log: log, baseURL: opts.BaseURL, pageSize: opts.PageSize}
}

// FetchItems pagina /product hasta agotar resultados.
func (c *Client) FetchItems(ctx context.Context, creds sync.Credentials) ([]sync.RemoteItem, error) {
	var out []sync.RemoteItem
	err := c.paginate(ctx, creds, "product", func(data json.RawMessage) (int, error) {
		var page []productPayload
		if err := json.Unmarshal(data, &page); err != nil {
			return 0, err
		}
		for _, p := range page {
			out = append(out, p.toRemote())
		}
		return len(page), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchVendors pagina /party (los proveedores son parties en Finale).
func (c *Client) FetchVendors(ctx context.Context, creds sync.Credentials) ([]sync.RemoteVendor, error) {
	var out []sync.RemoteVendor
	err := c.paginate(ctx, creds, "party", func(data json.RawMessage) (int, error) {
		var page []partyPayload
		if err := json.Unmarshal(data, &page); err != nil {
			return 0, err
		}
		for _, p := range page {
			out = append(out, p.toRemote())
		}
		return len(page), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchPurchaseOrders pagina /order filtrando por tipo orden de compra.
func (c *Client) FetchPurchaseOrders(ctx context.Context, creds sync.Credentials) ([]sync.RemoteOrder, error) {
	var out []sync.RemoteOrder
	err := c.paginate(ctx, creds, "order?orderTypeId=PURCHASE_ORDER", func(data json.RawMessage) (int, error) {
		var page []orderPayload
		if err := json.Unmarshal(data, &page); err != nil {
			return 0, err
		}
		for _, o := range page {
			out = append(out, o.toRemote())
		}
		return len(page), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// paginate recorre un listado con limit/offset; decode procesa una página y
// devuelve cuántos registros trajo. Una página corta termina el recorrido.
func (c *Client) paginate(
	ctx context.Context,
	creds sync.Credentials,
	resource string,
	decode func(json.RawMessage) (int, error),
) error {
	for offset := 0; ; offset += c.pageSize {
		endpoint := c.pageURL(creds.Account, resource, offset)

		resp, err := c.rl.Get(ctx, endpoint, creds.APIKey, creds.APISecret)
		if err != nil {
			return fmt.Errorf("GET %s: %w", resource, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("leer respuesta de %s: %w", resource, err)
		}

		n, err := decode(body)
		if err != nil {
			return fmt.Errorf("decodificar página de %s: %w", resource, err)
		}
		c.log.Debug().
			Str("resource", resource).
			Int("offset", offset).
			Int("count", n).
			Msg("página de Finale recibida")

		if n < c.pageSize {
			return nil
		}
	}
}

// pageURL arma la URL de una página preservando query params ya presentes en resource.
func (c *Client) pageURL(account, resource string, offset int) string {
	sep := "?"
	if u, err := url.Parse(resource); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	return fmt.Sprintf("%s/%s/api/%s%slimit=%d&offset=%d", c.baseURL, account, resource, sep, c.pageSize, offset)
}
