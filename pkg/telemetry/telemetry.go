// Package telemetry is the no-op analytics client shipped in OSS builds.
// Hosted deployments swap in a real exporter; call sites stay identical,
// and every method is safe on the nil GlobalClient.
package telemetry

type Client struct{}

// GlobalClient is nil in OSS builds.
var GlobalClient *Client

// TrackAnalysis records one finished analysis.
func (c *Client) TrackAnalysis(analysisID string, score float64, riskLevel string, durationMs float64) {
}

// Track records a generic named event.
func (c *Client) Track(event string, props map[string]interface{}) {}
