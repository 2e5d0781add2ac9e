package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/TryMightyAI/rampart/pkg/engine"
)

// Memory is an in-process LRU result cache. Safe for concurrent use.
type Memory struct {
	lru *lru.Cache[string, engine.AnalysisResult]
}

// NewMemory creates a memory cache holding at most size results.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		return nil, fmt.Errorf("memory cache size must be positive, got %d", size)
	}
	l, err := lru.New[string, engine.AnalysisResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to build LRU: %w", err)
	}
	return &Memory{lru: l}, nil
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) (engine.AnalysisResult, bool) {
	return m.lru.Get(key)
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key string, result engine.AnalysisResult) {
	m.lru.Add(key, result)
}

// Len returns the number of cached results.
func (m *Memory) Len() int {
	return m.lru.Len()
}

// Close implements Cache. The LRU needs no teardown.
func (m *Memory) Close() error {
	return nil
}
