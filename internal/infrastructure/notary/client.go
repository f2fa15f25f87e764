// Package notary implementa el cliente HTTP del notario de trazabilidad
// (ledger externo). Es un colaborador tolerante a fallos: cualquier error
// devuelve referencia vacía y se registra, nunca interrumpe el flujo de dominio.
package notary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agroconserva/trazabilidad-api/internal/application/ports"
)

var _ ports.NotarySink = (*Client)(nil)

// Client notariza hitos contra un servicio HTTP externo.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient construye el cliente. baseURL vacío deshabilita la notarización
// (útil en desarrollo); usar NewDisabled directamente en ese caso.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type notarizeRequest struct {
	BatchCode   string `json:"batch_code"`
	ProductType string `json:"product_type"`
	Stage       string `json:"stage"`
}

type notarizeResponse struct {
	TxRef string `json:"tx_ref"`
}

// Notarize envía el hito y devuelve la referencia de transacción del ledger.
// Devuelve cadena vacía sin error cuando el servicio está deshabilitado.
func (c *Client) Notarize(ctx context.Context, batchCode, productType, stage string) (string, error) {
	if c.baseURL == "" {
		return "", nil
	}
	body, err := json.Marshal(notarizeRequest{
		BatchCode:   batchCode,
		ProductType: productType,
		Stage:       stage,
	})
	if err != nil {
		return "", fmt.Errorf("marshal notarize request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notarize", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build notarize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("notarize request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("notarize request: status %d", resp.StatusCode)
	}
	var out notarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode notarize response: %w", err)
	}
	c.log.Debug().
		Str("batch_code", batchCode).
		Str("stage", stage).
		Str("tx_ref", out.TxRef).
		Msg("hito notarizado")
	return out.TxRef, nil
}

// Disabled es un NotarySink que no hace nada; se usa cuando la notarización
// no está configurada.
type Disabled struct{}

func NewDisabled() Disabled { return Disabled{} }

func (Disabled) Notarize(ctx context.Context, batchCode, productType, stage string) (string, error) {
	return "", nil
}
