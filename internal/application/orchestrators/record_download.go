package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	domain "kweku/internal/domain/resource"
)

// RecordDownloadDeps are the external dependencies for this orchestrator.
type RecordDownloadDeps struct {
	ResourceStore downloadResourceStore
}

type downloadResourceStore interface {
	GetByID(ctx context.Context, id string) (domain.Resource, error)
	Save(ctx context.Context, r domain.Resource) error
}

// ExecuteRecordDownload bumps a resource's download counter.
//
// The increment is a deliberate read-then-write, not an atomic UPDATE SET
// downloads = downloads + 1: two concurrent downloads can read the same base
// value and one increment is lost. That lost update is accepted for this
// low-contention counter; callers must not rely on the count being exact.
// POST: Returns the value written, which is the read value plus one
func ExecuteRecordDownload(ctx context.Context, resourceID string, deps RecordDownloadDeps) (int, error) {
	r, err := deps.ResourceStore.GetByID(ctx, resourceID)
	if err != nil {
		return 0, fmt.Errorf("load resource: %w", err)
	}

	r.Downloads++
	if err := deps.ResourceStore.Save(ctx, r); err != nil {
		slog.Error("download_record_failed", "error", err.Error(), "resource_id", resourceID)
		return 0, fmt.Errorf("save resource: %w", err)
	}

	slog.Info("download_recorded", "resource_id", resourceID, "downloads", r.Downloads)
	return r.Downloads, nil
}
