package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

// stubStore is an in-memory Store shared by the package tests.
type stubStore struct {
	parents    []ParentRecord
	children   []ChildRecord
	fetchCalls int32
	failParent bool
}

func (s *stubStore) FetchParents(ctx context.Context) ([]ParentRecord, error) {
	atomic.AddInt32(&s.fetchCalls, 1)
	if s.failParent {
		return nil, errors.New("store down")
	}
	return s.parents, nil
}

func (s *stubStore) FetchChildren(ctx context.Context) ([]ChildRecord, error) {
	return s.children, nil
}

func loadedSnapshot(t *testing.T, store *stubStore) *Snapshot {
	t.Helper()
	snap := NewSnapshot(store, zap.NewNop())
	if err := snap.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return snap
}

func TestLoadIsIdempotent(t *testing.T) {
	store := &stubStore{
		parents: []ParentRecord{
			{ParentID: "p1", Category: "Diabetic Care"},
			{ParentID: "p2", Category: "First Aid"},
		},
		children: []ChildRecord{
			{"Parent_id": "p1", "name": "Sugar Free Biscuits"},
		},
	}
	snap := loadedSnapshot(t, store)

	if err := snap.Load(context.Background()); err != nil {
		t.Fatalf("second Load() error: %v", err)
	}
	if got := atomic.LoadInt32(&store.fetchCalls); got != 1 {
		t.Errorf("store fetched %d times, want 1", got)
	}
	if snap.ParentCount() != 2 {
		t.Errorf("ParentCount() = %d, want 2", snap.ParentCount())
	}
	if len(snap.Children("p1")) != 1 {
		t.Errorf("Children(p1) = %d records, want 1", len(snap.Children("p1")))
	}
}

func TestLoadConcurrentPopulatesOnce(t *testing.T) {
	store := &stubStore{
		parents: []ParentRecord{{ParentID: "p1", Category: "Diabetic Care"}},
	}
	snap := NewSnapshot(store, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := snap.Load(context.Background()); err != nil {
				t.Errorf("Load() error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&store.fetchCalls); got != 1 {
		t.Errorf("store fetched %d times, want 1", got)
	}
	if snap.ParentCount() != 1 {
		t.Errorf("ParentCount() = %d, want 1", snap.ParentCount())
	}
}

func TestLoadFailureLeavesSnapshotUnloaded(t *testing.T) {
	store := &stubStore{failParent: true}
	snap := NewSnapshot(store, zap.NewNop())

	if err := snap.Load(context.Background()); err == nil {
		t.Fatal("Load() should fail when the store fails")
	}
	if snap.Loaded() {
		t.Error("snapshot should not report loaded after a failed load")
	}

	// A later retry can still succeed.
	store.failParent = false
	if err := snap.Load(context.Background()); err != nil {
		t.Fatalf("retry Load() error: %v", err)
	}
	if !snap.Loaded() {
		t.Error("snapshot should report loaded after a successful retry")
	}
}

func TestChildrenMissingParent(t *testing.T) {
	snap := loadedSnapshot(t, &stubStore{
		parents: []ParentRecord{{ParentID: "p1"}},
		children: []ChildRecord{
			// Orphan child: no referential integrity is enforced.
			{"Parent_id": "ghost", "name": "Orphan"},
		},
	})

	if got := snap.Children("p1"); len(got) != 0 {
		t.Errorf("Children(p1) = %d records, want 0", len(got))
	}
	if got := snap.Children("ghost"); len(got) != 1 {
		t.Errorf("Children(ghost) = %d records, want 1", len(got))
	}
}
