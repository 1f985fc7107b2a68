package spam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PabloPavan/sniply_projects/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// HTTPClassifier asks an external scoring service. The service receives
// the content plus metadata as JSON and answers {"spam": bool}.
type HTTPClassifier struct {
	Endpoint string
	Token    string
	Client   *http.Client
	Timeout  time.Duration
}

type classifyRequest struct {
	Content string `json:"content"`
	Metadata
}

type classifyResponse struct {
	Spam bool `json:"spam"`
}

func (c *HTTPClassifier) IsSpam(ctx context.Context, content string, meta Metadata) (isSpam bool, err error) {
	if c.Endpoint == "" {
		return false, fmt.Errorf("spam classifier endpoint not configured")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := telemetry.StartSpan(ctx, "spam.classify",
		attribute.String("spam.endpoint", c.Endpoint),
		attribute.Int("spam.content_bytes", len(content)),
	)
	status := "classifier_unavailable"
	defer func() { telemetry.EndSpan(span, err, status) }()

	payload, err := json.Marshal(classifyRequest{Content: content, Metadata: meta})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("spam classifier request: %w", err)
	}
	defer res.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))
	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		status = "classifier_status"
		return false, fmt.Errorf("spam classifier status: %d", res.StatusCode)
	}

	var out classifyResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		status = "classifier_response"
		return false, fmt.Errorf("spam classifier response: %w", err)
	}
	span.SetAttributes(attribute.Bool("spam.verdict", out.Spam))
	return out.Spam, nil
}
