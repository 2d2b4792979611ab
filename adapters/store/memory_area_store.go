package store

import (
	"context"
	"sort"
	"sync"

	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
)

// MemoryAreaStore keeps areas in a map. It is used when no database is
// configured and in tests.
type MemoryAreaStore struct {
	mu    sync.RWMutex
	areas map[string]core.Area
}

// NewMemoryAreaStore creates an empty area store
func NewMemoryAreaStore() ports.AreaRepository {
	return &MemoryAreaStore{areas: make(map[string]core.Area)}
}

// Insert adds a new area. Codes are unique.
func (s *MemoryAreaStore) Insert(ctx context.Context, area *core.Area) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.areas[area.ID]; exists {
		return core.ErrAreaConflict
	}
	if s.codeTaken(area.Code, area.ID) {
		return core.ErrAreaConflict
	}
	s.areas[area.ID] = *area
	return nil
}

// Update replaces an existing area
func (s *MemoryAreaStore) Update(ctx context.Context, area *core.Area) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.areas[area.ID]
	if !exists {
		return core.ErrAreaNotFound
	}
	if s.codeTaken(area.Code, area.ID) {
		return core.ErrAreaConflict
	}
	area.CreatedAt = stored.CreatedAt
	s.areas[area.ID] = *area
	return nil
}

func (s *MemoryAreaStore) Get(ctx context.Context, id string) (*core.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	area, exists := s.areas[id]
	if !exists {
		return nil, core.ErrAreaNotFound
	}
	return &area, nil
}

func (s *MemoryAreaStore) GetByCode(ctx context.Context, code string) (*core.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, area := range s.areas {
		if area.Code == code {
			a := area
			return &a, nil
		}
	}
	return nil, core.ErrAreaNotFound
}

func (s *MemoryAreaStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.areas[id]; !exists {
		return core.ErrAreaNotFound
	}
	delete(s.areas, id)
	return nil
}

func (s *MemoryAreaStore) List(ctx context.Context, filter core.AreaFilter) ([]*core.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.matching(filter), nil
}

func (s *MemoryAreaStore) Page(ctx context.Context, filter core.AreaFilter, offset, limit int) ([]*core.Area, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.matching(filter)
	total := int64(len(all))
	if offset < 0 || limit < 1 || offset >= len(all) {
		return []*core.Area{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// matching must be called with the lock held
func (s *MemoryAreaStore) matching(filter core.AreaFilter) []*core.Area {
	result := make([]*core.Area, 0, len(s.areas))
	for _, area := range s.areas {
		if filter.Matches(&area) {
			a := area
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Sort != result[j].Sort {
			return result[i].Sort < result[j].Sort
		}
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (s *MemoryAreaStore) codeTaken(code, exceptID string) bool {
	for id, area := range s.areas {
		if id != exceptID && area.Code == code {
			return true
		}
	}
	return false
}
