package timbrado

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ── Constantes de entorno ──────────────────────────────────────────────────────

const (
	// AppEnvTest es el identificador del ambiente de certificación del proveedor.
	AppEnvTest = "test"
	// AppEnvProd es el identificador del ambiente de producción del proveedor.
	AppEnvProd = "prod"
	// AppEnvDev es el identificador local: el documento se genera pero no se envía.
	AppEnvDev = "dev"
)

// ── Puerto (interfaz) ──────────────────────────────────────────────────────────

// SubmitResult resultado de la entrega al proveedor de imprenta digital.
type SubmitResult struct {
	TrackID  string // identificador de seguimiento devuelto por el proveedor
	Accepted bool   // true si el proveedor aceptó el documento
	Errors   string // mensajes de rechazo del proveedor (puede ser vacío)
}

// Submitter define el puerto de salida para la entrega de documentos
// electrónicos al proveedor. La implementación concreta usa HTTP/JSON;
// para tests se puede inyectar un mock.
type Submitter interface {
	// Submit envía el documento electrónico serializado en JSON.
	// env debe ser "test" o "prod"; se envía como cabecera para que el
	// proveedor enrute al ambiente correspondiente.
	Submit(ctx context.Context, docJSON []byte, env string) (*SubmitResult, error)
}

// ── Implementación HTTP ────────────────────────────────────────────────────────

// HTTPClient implementa Submitter contra el API REST del proveedor.
type HTTPClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewHTTPClient construye el cliente con un timeout de red generoso (60 s):
// el proveedor valida y persiste el documento antes de responder.
func NewHTTPClient(endpoint, token string) *HTTPClient {
	return &HTTPClient{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// submitResponse respuesta del endpoint de recepción del proveedor.
type submitResponse struct {
	Codigo   string   `json:"codigo"`   // "00" aceptado
	TrackID  string   `json:"trackId"`  // identificador asignado por el proveedor
	Mensajes []string `json:"mensajes"` // errores de validación, vacío si aceptado
}

// Submit entrega el documento al endpoint de recepción del proveedor.
func (c *HTTPClient) Submit(ctx context.Context, docJSON []byte, env string) (*SubmitResult, error) {
	if env != AppEnvTest && env != AppEnvProd {
		return nil, fmt.Errorf("timbrado: entorno desconocido %q (usar 'test' o 'prod')", env)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/documentos",
		bytes.NewReader(docJSON))
	if err != nil {
		return nil, fmt.Errorf("timbrado: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Ambiente", env)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("timbrado: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("timbrado: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("timbrado: leer respuesta: %w", err)
	}

	return parseResponse(resp.StatusCode, rawBody)
}

// parseResponse interpreta la respuesta del proveedor. Los rechazos de negocio
// se devuelven como SubmitResult no aceptado, no como error: el documento ya
// existe localmente y el llamador decide cómo registrar el rechazo.
func parseResponse(status int, rawBody []byte) (*SubmitResult, error) {
	var body submitResponse
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return &SubmitResult{
			Accepted: false,
			Errors:   fmt.Sprintf("respuesta no parseable (HTTP %d): %s", status, string(rawBody)),
		}, nil
	}

	accepted := status >= 200 && status < 300 && body.Codigo == "00"
	errMsg := ""
	if len(body.Mensajes) > 0 {
		errMsg = body.Mensajes[0]
		for _, m := range body.Mensajes[1:] {
			errMsg += "; " + m
		}
	}
	return &SubmitResult{
		TrackID:  body.TrackID,
		Accepted: accepted,
		Errors:   errMsg,
	}, nil
}
