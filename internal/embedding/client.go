package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client calls the vector service's POST endpoint with the text to embed and
// expects a float array back.
type Client struct {
	endpoint string
	model    string
	http     *http.Client
	logger   *slog.Logger
}

type Config struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type embedRequest struct {
	Texto  string `json:"texto"`
	Modelo string `json:"modelo,omitempty"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed posts text to the vector service and returns the embedding.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	reqID := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(embedRequest{Texto: text, Modelo: c.model})
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("embedding.http.request", "req_id", reqID, "bytes", len(bs))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("embedding.http.send_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("embedding.http.body_close_error", "req_id", reqID, "error", err)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)
	c.logger.Info("embedding.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}

	var out embedResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// the original service answered a bare JSON array
		var plain []float32
		if err2 := json.Unmarshal(raw, &plain); err2 == nil {
			return plain, nil
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Embedding, nil
}
