// Package httputil provides pooled HTTP clients and safe response handling
// for rampart's outbound model traffic: classification calls made during
// ensemble voting and embedding calls made while seeding the similarity index.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// MaxResponseSize is the default maximum size for reading HTTP response bodies.
// Classifier responses are small JSON arrays; embedding batches are the largest
// payloads we expect and fit comfortably under 4MB.
const MaxResponseSize = 4 * 1024 * 1024 // 4MB

// Shared transport with optimized connection pooling.
// This is safe for concurrent use. The ensemble fans out to the same endpoints
// on every analysis, so reusing TCP connections matters here.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          64,
	MaxIdleConnsPerHost:   16,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// Tier selects the outer timeout for a class of outbound call. Per-request
// deadlines still come from the caller's context; the tier is the hard upper
// bound when no deadline is set.
type Tier int

const (
	// TierProbe for endpoint liveness checks (3s)
	TierProbe Tier = iota
	// TierScore for single classification calls (10s)
	TierScore
	// TierEmbed for embedding batches during index seeding (45s)
	TierEmbed
)

var tierTimeouts = map[Tier]time.Duration{
	TierProbe: 3 * time.Second,
	TierScore: 10 * time.Second,
	TierEmbed: 45 * time.Second,
}

// Singleton clients for each tier - initialized once, reused everywhere.
var (
	probeClient *http.Client
	scoreClient *http.Client
	embedClient *http.Client
	clientOnce  sync.Once
)

func initClients() {
	probeClient = &http.Client{
		Timeout:   tierTimeouts[TierProbe],
		Transport: sharedTransport,
	}
	scoreClient = &http.Client{
		Timeout:   tierTimeouts[TierScore],
		Transport: sharedTransport,
	}
	embedClient = &http.Client{
		Timeout:   tierTimeouts[TierEmbed],
		Transport: sharedTransport,
	}
}

// Client returns the shared HTTP client for the given tier.
// These clients share a connection pool and should be used instead of
// creating new http.Client instances per request.
//
// Usage:
//
//	client := httputil.Client(httputil.TierScore)
//	resp, err := client.Post(url, "application/json", body)
func Client(tier Tier) *http.Client {
	clientOnce.Do(initClients)
	switch tier {
	case TierProbe:
		return probeClient
	case TierEmbed:
		return embedClient
	default:
		return scoreClient
	}
}

// ProbeClient returns a client with 3s timeout (endpoint health probes).
func ProbeClient() *http.Client {
	return Client(TierProbe)
}

// ScoreClient returns a client with 10s timeout (classification calls).
func ScoreClient() *http.Client {
	return Client(TierScore)
}

// EmbedClient returns a client with 45s timeout (embedding batches).
func EmbedClient() *http.Client {
	return Client(TierEmbed)
}

// PostJSON sends payload as a JSON POST and decodes the response into out.
// A nil out discards the response body. Non-2xx statuses become errors
// carrying the status code and the start of the body.
func PostJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer DrainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := ReadErrorBody(resp.Body)
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	body, err := ReadBody(resp.Body, MaxResponseSize)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ReadBody safely reads an HTTP response body with a size limit.
// A maxSize of zero or below falls back to MaxResponseSize.
func ReadBody(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = MaxResponseSize
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// ReadErrorBody reads the response body for error messages.
// Inference APIs return short JSON errors, so 64KB is plenty.
func ReadErrorBody(r io.Reader) ([]byte, error) {
	const maxErrorSize = 64 * 1024
	return io.ReadAll(io.LimitReader(r, maxErrorSize))
}

// DrainAndClose properly drains and closes an HTTP response body.
// This ensures connection reuse in the pool.
func DrainAndClose(body io.ReadCloser) {
	if body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, MaxResponseSize))
		_ = body.Close()
	}
}
