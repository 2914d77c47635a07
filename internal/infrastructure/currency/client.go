package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-api/pkg/config"
)

// Rate valor de 1 unidad de una moneda en EUR, con el momento de la consulta.
type Rate struct {
	Currency    string          `json:"currency"`
	Rate        decimal.Decimal `json:"rate"`
	RetrievedAt time.Time       `json:"retrieved_at"`
}

// Client consulta una API externa de tasas de cambio (colaborador externo,
// sin estado propio). Usa net/http de la librería estándar; no requiere SDK.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

// NewClient construye el cliente con la configuración de la app.
func NewClient(cfg config.CurrencyConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accessKey: cfg.AccessKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetRate consulta el valor de 1 unidad de code en EUR.
func (c *Client) GetRate(ctx context.Context, code string) (*Rate, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return nil, fmt.Errorf("currency: código inválido %q", code)
	}

	endpoint := fmt.Sprintf("%s/latest?access_key=%s&symbols=%s",
		c.baseURL, url.QueryEscape(c.accessKey), code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("currency: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("currency: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("currency: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("currency: decode response: %w", err)
	}
	rate, ok := payload.Rates[code]
	if !ok {
		return nil, fmt.Errorf("currency: tasa para %s no encontrada", code)
	}
	return &Rate{
		Currency:    code,
		Rate:        rate,
		RetrievedAt: time.Now().UTC(),
	}, nil
}
