package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SignedURLResolver convierte rutas de storage en URLs HTTPS temporales.
type SignedURLResolver interface {
	SignedURL(ctx context.Context, storagePath string) (string, error)
}

// HTTPResolver implementa SignedURLResolver contra el servicio de storage.
type HTTPResolver struct {
	baseURL    string
	serviceKey string
	ttlSeconds int
	client     *http.Client
}

func NewHTTPResolver(baseURL, serviceKey string, ttlSeconds int, httpClient *http.Client) *HTTPResolver {
	if ttlSeconds <= 0 {
		ttlSeconds = 600
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPResolver{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		ttlSeconds: ttlSeconds,
		client:     httpClient,
	}
}

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
	Error     string `json:"error,omitempty"`
}

func (r *HTTPResolver) SignedURL(ctx context.Context, storagePath string) (string, error) {
	path := strings.TrimLeft(storagePath, "/")
	if path == "" {
		return "", fmt.Errorf("empty storage path")
	}

	bodyBytes, err := json.Marshal(signRequest{ExpiresIn: r.ttlSeconds})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/object/sign/"+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("sign url for %s: status=%d", path, resp.StatusCode)
	}

	var sr signResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if sr.SignedURL == "" {
		return "", fmt.Errorf("sign url for %s: empty signed url", path)
	}

	// El servicio devuelve una ruta relativa firmada.
	if strings.HasPrefix(sr.SignedURL, "http") {
		return sr.SignedURL, nil
	}
	return r.baseURL + "/" + strings.TrimLeft(sr.SignedURL, "/"), nil
}
