package orchestrators_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"kweku/internal/application/orchestrators"
	domain "kweku/internal/domain/resource"
)

// memResourceStore is an in-memory resource store. An optional read barrier
// lets a test hold every GetByID until all readers have arrived, forcing the
// interleaving where concurrent increments read the same base value.
type memResourceStore struct {
	mu          sync.Mutex
	resources   map[string]domain.Resource
	readBarrier *sync.WaitGroup
}

func newMemResourceStore(rs ...domain.Resource) *memResourceStore {
	s := &memResourceStore{resources: make(map[string]domain.Resource)}
	for _, r := range rs {
		s.resources[r.ID] = r
	}
	return s
}

func (s *memResourceStore) GetByID(ctx context.Context, id string) (domain.Resource, error) {
	if s.readBarrier != nil {
		s.readBarrier.Done()
		s.readBarrier.Wait()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok {
		return domain.Resource{}, errors.New("not found")
	}
	return r, nil
}

func (s *memResourceStore) Save(ctx context.Context, r domain.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[r.ID] = r
	return nil
}

// TestExecuteRecordDownload tests the single-caller increment.
func TestExecuteRecordDownload(t *testing.T) {
	ctx := context.Background()
	store := newMemResourceStore(domain.Resource{ID: "r1", Title: "Formula sheet", ResourceType: "notes", FileURL: "/f.pdf", Downloads: 5})

	got, err := orchestrators.ExecuteRecordDownload(ctx, "r1", orchestrators.RecordDownloadDeps{ResourceStore: store})
	if err != nil {
		t.Fatalf("ExecuteRecordDownload() error = %v", err)
	}
	if got != 6 {
		t.Errorf("downloads = %d, want 6", got)
	}

	r, _ := store.GetByID(ctx, "r1")
	if r.Downloads != 6 {
		t.Errorf("stored downloads = %d, want 6", r.Downloads)
	}
}

// TestExecuteRecordDownload_LostUpdate tests that two concurrent increments
// from a base of 5 can land on 6, not 7. The increment is a read-then-write
// with no atomicity, so when both callers read before either writes, one
// increment is lost. The barrier forces exactly that interleaving.
func TestExecuteRecordDownload_LostUpdate(t *testing.T) {
	ctx := context.Background()
	store := newMemResourceStore(domain.Resource{ID: "r1", Title: "Formula sheet", ResourceType: "notes", FileURL: "/f.pdf", Downloads: 5})

	var barrier sync.WaitGroup
	barrier.Add(2)
	store.readBarrier = &barrier

	var done sync.WaitGroup
	deps := orchestrators.RecordDownloadDeps{ResourceStore: store}
	for i := 0; i < 2; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			if _, err := orchestrators.ExecuteRecordDownload(ctx, "r1", deps); err != nil {
				t.Errorf("ExecuteRecordDownload() error = %v", err)
			}
		}()
	}
	done.Wait()

	store.readBarrier = nil
	r, err := store.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if r.Downloads != 6 {
		t.Errorf("downloads = %d, want 6 (one of the two increments is lost)", r.Downloads)
	}
}

// TestExecuteRecordDownload_MissingResource tests the error path.
func TestExecuteRecordDownload_MissingResource(t *testing.T) {
	store := newMemResourceStore()
	if _, err := orchestrators.ExecuteRecordDownload(context.Background(), "nope", orchestrators.RecordDownloadDeps{ResourceStore: store}); err == nil {
		t.Error("expected error for unknown resource")
	}
}
