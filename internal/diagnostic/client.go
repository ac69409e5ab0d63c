package diagnostic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PhotoURLs agrupa las URLs firmadas que se envían al proveedor.
// Solo la frontal es obligatoria.
type PhotoURLs struct {
	Frontal      string `json:"frontal"`
	LeftProfile  string `json:"left_profile,omitempty"`
	RightProfile string `json:"right_profile,omitempty"`
}

// Client define la interfaz hacia la API externa de diagnóstico de piel.
// Analyze devuelve el cuerpo crudo de la respuesta; el parseo es del caller.
type Client interface {
	Analyze(ctx context.Context, photos PhotoURLs, locale string) ([]byte, error)
}

// HTTPClient implementa Client contra la API HTTP del proveedor.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente con timeout acotado. El proveedor puede
// tardar más de un minuto en analizar; timeout <= 0 usa 2 minutos.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type analyzeRequest struct {
	PhotoURLs PhotoURLs `json:"photo_urls"`
	Locale    string    `json:"locale,omitempty"`
}

func (c *HTTPClient) Analyze(ctx context.Context, photos PhotoURLs, locale string) ([]byte, error) {
	bodyBytes, err := json.Marshal(analyzeRequest{PhotoURLs: photos, Locale: locale})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/diagnostics", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Warn("diagnostic api error",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", truncate(respBody, 512)),
			)
		}
		return nil, fmt.Errorf("diagnostic api error: status=%d", resp.StatusCode)
	}

	return respBody, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
