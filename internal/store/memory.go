package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/agenthands/kinship/internal/core/model"
)

type MemoryStore struct {
	mu      sync.RWMutex
	matches []model.MatchRecord
	nodes   []model.Node
	links   []model.Link
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListMatches(ctx context.Context) ([]model.MatchRecord, error) {
	return s.filterMatches(func(model.MatchRecord) bool { return true }), nil
}

func (s *MemoryStore) FindMatchesByName(ctx context.Context, name string) ([]model.MatchRecord, error) {
	return s.filterMatches(func(m model.MatchRecord) bool { return m.Name == name }), nil
}

func (s *MemoryStore) FindMatchesBySurname(ctx context.Context, surname string) ([]model.MatchRecord, error) {
	return s.filterMatches(func(m model.MatchRecord) bool {
		return strings.Contains(m.AllAncestralSurnames, surname)
	}), nil
}

func (s *MemoryStore) filterMatches(keep func(model.MatchRecord) bool) []model.MatchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []model.MatchRecord{}
	for _, m := range s.matches {
		if keep(m) {
			result = append(result, m)
		}
	}
	return result
}

func (s *MemoryStore) ListNodes(ctx context.Context) ([]model.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Node{}, s.nodes...), nil
}

func (s *MemoryStore) ListLinks(ctx context.Context) ([]model.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Link{}, s.links...), nil
}

func (s *MemoryStore) ReplaceAllMatches(ctx context.Context, matches []model.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = slices.Clone(matches)
	return nil
}

func (s *MemoryStore) ReplaceAllNodes(ctx context.Context, nodes []model.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = slices.Clone(nodes)
	return nil
}

func (s *MemoryStore) ReplaceAllLinks(ctx context.Context, links []model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = slices.Clone(links)
	return nil
}

func (s *MemoryStore) BuildIndices(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
