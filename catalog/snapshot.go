package catalog

import (
	"context"
	"sync"

	apperrors "medcart-agent/errors"

	"go.uber.org/zap"
)

// Snapshot is the process-wide in-memory copy of the catalog. It is populated
// exactly once by Load and read-only afterwards, so reads need no locking
// beyond the loaded check.
type Snapshot struct {
	store  Store
	logger *zap.Logger

	mu          sync.Mutex
	loaded      bool
	parentOrder []string
	parents     map[string]ParentRecord
	children    map[string][]ChildRecord
}

func NewSnapshot(store Store, logger *zap.Logger) *Snapshot {
	return &Snapshot{
		store:    store,
		logger:   logger,
		parents:  make(map[string]ParentRecord),
		children: make(map[string][]ChildRecord),
	}
}

// Load fetches all parent and child records from the store and builds the
// in-memory mappings. The first successful call wins; subsequent calls are
// no-ops. Concurrent callers serialize on the mutex, so the snapshot is never
// populated twice.
func (s *Snapshot) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	parents, err := s.store.FetchParents(ctx)
	if err != nil {
		return apperrors.WrapError(err, "load parent records")
	}
	children, err := s.store.FetchChildren(ctx)
	if err != nil {
		return apperrors.WrapError(err, "load child records")
	}

	// parentOrder preserves store iteration order; map iteration in Go is
	// randomized and the filter contract requires snapshot order.
	for _, p := range parents {
		if _, ok := s.parents[p.ParentID]; !ok {
			s.parentOrder = append(s.parentOrder, p.ParentID)
		}
		s.parents[p.ParentID] = p
	}
	for _, c := range children {
		pid := c.ParentID()
		s.children[pid] = append(s.children[pid], c)
	}

	s.loaded = true
	s.logger.Info("Catalog snapshot loaded",
		zap.Int("parents", len(s.parents)),
		zap.Int("children", len(children)))
	return nil
}

// Loaded reports whether the snapshot has been populated.
func (s *Snapshot) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Parent returns the parent record for the given id.
func (s *Snapshot) Parent(id string) (ParentRecord, bool) {
	p, ok := s.parents[id]
	return p, ok
}

// Children returns the child records grouped under the given parent id.
// A parent with no children yields an empty slice, not an error.
func (s *Snapshot) Children(parentID string) []ChildRecord {
	return s.children[parentID]
}

// ParentCount returns the number of parent records in the snapshot.
func (s *Snapshot) ParentCount() int {
	return len(s.parents)
}
