package projections

import (
	"context"

	"golang.org/x/sync/errgroup"

	domainMessage "kweku/internal/domain/message"
)

// Counter is the count-only slice of a content store.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// DashboardMessageStore defines the message store interface needed by the
// dashboard projection. The full list is fetched so the unread count can be
// derived from it rather than via a separate count predicate.
type DashboardMessageStore interface {
	List(ctx context.Context, orderBy string, ascending bool) ([]domainMessage.Message, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Papers       Counter
	Videos       Counter
	Resources    Counter
	Posts        Counter
	Testimonials Counter
	Messages     DashboardMessageStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Papers       int
	Videos       int
	Resources    int
	Posts        int
	Testimonials int
	Messages     int
	Unread       int
}

// QueryGetDashboard aggregates the admin dashboard counts. One count query
// runs per table concurrently; results are combined only after every query
// has resolved, so one slow table delays the summary but never blocks the
// other queries from completing.
//
// The unread count is derived by filtering the fetched message set on the
// read flag. It is recomputed on every call, never cached, so it always
// reflects the latest snapshot.
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	var result DashboardResult
	var g errgroup.Group

	count := func(dst *int, store Counter) {
		g.Go(func() error {
			n, err := store.Count(ctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(&result.Papers, deps.Papers)
	count(&result.Videos, deps.Videos)
	count(&result.Resources, deps.Resources)
	count(&result.Posts, deps.Posts)
	count(&result.Testimonials, deps.Testimonials)

	g.Go(func() error {
		msgs, err := deps.Messages.List(ctx, "created_at", false)
		if err != nil {
			return err
		}
		result.Messages = len(msgs)
		result.Unread = countUnread(msgs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardResult{}, err
	}
	return result, nil
}

func countUnread(msgs []domainMessage.Message) int {
	n := 0
	for _, m := range msgs {
		if !m.Read {
			n++
		}
	}
	return n
}
