package profile

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/flowintel/flowintel/internal/core"
)

// MemoryRepository is an in-memory, concurrency-safe profile catalogue.
type MemoryRepository struct {
	profiles map[string]Profile
	order    []string // insertion order, used as the tie-breaker when sorting
	mu       sync.RWMutex
}

// NewMemoryRepository creates a repository seeded with profiles.
func NewMemoryRepository(profiles ...Profile) *MemoryRepository {
	m := &MemoryRepository{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		m.put(p)
	}
	return m
}

func (m *MemoryRepository) put(p Profile) {
	if _, ok := m.profiles[p.ID]; !ok {
		m.order = append(m.order, p.ID)
	}
	m.profiles[p.ID] = p.Clone()
}

// Replace swaps the whole catalogue.
func (m *MemoryRepository) Replace(profiles []Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]Profile, len(profiles))
	m.order = nil
	for _, p := range profiles {
		m.put(p)
	}
}

// Len returns the number of profiles.
func (m *MemoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

// Get retrieves a profile by id.
func (m *MemoryRepository) Get(ctx context.Context, id string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, core.ErrProfileNotFound
	}
	c := p.Clone()
	return &c, nil
}

// List returns profiles matching the filter.
func (m *MemoryRepository) List(ctx context.Context, filter ListFilter) ([]Profile, error) {
	m.mu.RLock()
	result := make([]Profile, 0, len(m.order))
	for _, id := range m.order {
		p := m.profiles[id]
		if matches(p, filter) {
			result = append(result, p.Clone())
		}
	}
	m.mu.RUnlock()

	sortProfiles(result, filter.SortBy)

	if filter.Offset >= len(result) {
		return []Profile{}, nil
	}
	if filter.Offset > 0 {
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

func matches(p Profile, filter ListFilter) bool {
	if filter.Kind != "" && p.Kind != filter.Kind {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.ID), q) ||
		strings.Contains(strings.ToLower(p.Label), q) ||
		strings.Contains(strings.ToLower(p.Address), q)
}

func sortProfiles(ps []Profile, by SortField) {
	switch by {
	case SortLabel:
		sort.SliceStable(ps, func(i, j int) bool {
			return strings.ToLower(ps[i].Label) < strings.ToLower(ps[j].Label)
		})
	case SortScore:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Decision().Score > ps[j].Decision().Score
		})
	case SortConfidence, "":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Confidence > ps[j].Confidence
		})
	}
}
