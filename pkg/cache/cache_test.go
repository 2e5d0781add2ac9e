package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/TryMightyAI/rampart/pkg/engine"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("alice", "a@example.com", "hi", "hello there")
	b := Key("alice", "a@example.com", "hi", "hello there")
	if a != b {
		t.Errorf("same input must hash identically: %s vs %s", a, b)
	}
}

func TestKeyFieldBoundaries(t *testing.T) {
	// Shifting a byte across a field boundary must change the key.
	a := Key("ab", "", "", "cd")
	b := Key("a", "b", "", "cd")
	if a == b {
		t.Error("field boundary shift collided")
	}

	if Key("", "", "", "x") == Key("x", "", "", "") {
		t.Error("field position must matter")
	}

	if KeyForText("spam text") != Key("", "", "", "spam text") {
		t.Error("KeyForText must match the message-only Key")
	}
}

func sampleResult(id string, score float64) engine.AnalysisResult {
	return engine.AnalysisResult{
		AnalysisID: id,
		Score:      score,
		RiskLevel:  engine.RiskModerate,
		IsSpam:     true,
		Flags:      []string{"[HARASSMENT] direct threat (+8.0)"},
	}
}

func TestMemoryHitMiss(t *testing.T) {
	m, err := NewMemory(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()
	ctx := context.Background()

	if _, ok := m.Get(ctx, "absent"); ok {
		t.Error("expected miss on empty cache")
	}

	want := sampleResult("id-1", 7.5)
	m.Set(ctx, "k1", want)

	got, ok := m.Get(ctx, "k1")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.AnalysisID != want.AnalysisID || got.Score != want.Score || !got.IsSpam {
		t.Errorf("cached result mangled: %+v", got)
	}
}

func TestMemoryEvictsOldest(t *testing.T) {
	m, err := NewMemory(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	m.Set(ctx, "a", sampleResult("a", 1))
	m.Set(ctx, "b", sampleResult("b", 2))
	m.Set(ctx, "c", sampleResult("c", 3))

	if m.Len() != 2 {
		t.Errorf("expected 2 entries after eviction, got %d", m.Len())
	}
	if _, ok := m.Get(ctx, "a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := m.Get(ctx, "c"); !ok {
		t.Error("newest entry should survive")
	}
}

func TestNewMemoryRejectsBadSize(t *testing.T) {
	if _, err := NewMemory(0); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestRedisRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	r, err := NewRedis(ctx, RedisConfig{Addr: srv.Addr(), TTL: time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	if _, ok := r.Get(ctx, "absent"); ok {
		t.Error("expected miss on empty cache")
	}

	want := sampleResult("id-redis", 12.0)
	r.Set(ctx, "k1", want)

	got, ok := r.Get(ctx, "k1")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.AnalysisID != want.AnalysisID || got.Score != want.Score || got.RiskLevel != want.RiskLevel {
		t.Errorf("round trip mangled result: %+v", got)
	}
	if len(got.Flags) != 1 || got.Flags[0] != want.Flags[0] {
		t.Errorf("flags lost in round trip: %v", got.Flags)
	}
}

func TestRedisTTLExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	r, err := NewRedis(ctx, RedisConfig{Addr: srv.Addr(), TTL: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	r.Set(ctx, "k1", sampleResult("ttl", 3))
	srv.FastForward(2 * time.Second)

	if _, ok := r.Get(ctx, "k1"); ok {
		t.Error("entry should have expired")
	}
}

func TestRedisCorruptEntryReadsAsMiss(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	r, err := NewRedis(ctx, RedisConfig{Addr: srv.Addr(), TTL: time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	if err := srv.Set("bad", "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, ok := r.Get(ctx, "bad"); ok {
		t.Error("corrupt entry must read as a miss")
	}
}

func TestRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := NewRedis(ctx, RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("expected connection error")
	}
}
