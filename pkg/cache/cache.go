// Package cache stores finished analysis results keyed by a fast content
// hash, so repeated submissions of the same message skip the pipeline
// entirely. Two backends share one interface: an in-process LRU and a
// Redis client for deployments where several workers should share hits.
package cache

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/TryMightyAI/rampart/pkg/engine"
)

// Cache is a result store. Get misses must be indistinguishable from
// backend errors: the caller re-analyzes either way.
type Cache interface {
	Get(ctx context.Context, key string) (engine.AnalysisResult, bool)
	Set(ctx context.Context, key string, result engine.AnalysisResult)
	Close() error
}

// fieldSep terminates each field in the hash stream so adjacent fields
// cannot merge into the same byte sequence.
const fieldSep = "\x1f"

// Key hashes the scorable input fields into a cache key. xxhash keeps
// this off the analysis hot path's profile; the key is stable across
// processes and Go versions.
func Key(name, email, subject, message string) string {
	d := xxhash.New()
	for _, f := range []string{name, email, subject, message} {
		_, _ = d.WriteString(f)
		_, _ = d.WriteString(fieldSep)
	}
	return fmt.Sprintf("rampart:result:%016x", d.Sum64())
}

// KeyForText is Key for the single-string entry points.
func KeyForText(text string) string {
	return Key("", "", "", text)
}
