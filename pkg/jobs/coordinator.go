// Package jobs is the host-side face of the search kernel: it partitions
// a seed interval into disjoint sub-intervals, runs one single-threaded
// search per worker goroutine, and coordinates the global match cap and
// cancellation the kernel deliberately leaves to its host.
package jobs

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"valley-oracle/pkg/search"
	"valley-oracle/pkg/version"
)

// Request describes one parallel search.
type Request struct {
	FilterJSON []byte
	SeedLo     int32
	SeedHi     int32
	MaxResults int
	Version    version.Version
	Workers    int

	// OnProgress, when set, receives aggregated counters as workers
	// report chunk boundaries. Unlike the kernel callback its return
	// value is ignored; cancel through the context instead.
	OnProgress func(checked, found int64)

	// OnMatch, when set, receives each accepted match (after the global
	// cap) in completion order.
	OnMatch func(seed int32)
}

// Summary is the aggregated outcome of a parallel search.
type Summary struct {
	JobID   string       `json:"job_id"`
	Checked int64        `json:"checked"`
	Found   int64        `json:"found"`
	Matches []int32      `json:"matches"`
	State   search.State `json:"state"`
}

// Coordinator runs parallel searches. The zero value is unusable; use
// NewCoordinator.
type Coordinator struct {
	logger *logrus.Logger
}

// NewCoordinator creates a coordinator logging through the given logger.
func NewCoordinator(logger *logrus.Logger) *Coordinator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Coordinator{logger: logger}
}

// Run executes the request, blocking until every worker finishes. The
// filter is parsed up front so malformed input fails before any worker
// starts. Matches are returned sorted ascending for stable output; the
// cap is applied in completion order before sorting.
func (c *Coordinator) Run(ctx context.Context, req Request) (Summary, error) {
	// Fail fast on filters the workers would each reject.
	if _, err := search.Parse(req.FilterJSON); err != nil {
		return Summary{}, err
	}

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	span := int64(req.SeedHi) - int64(req.SeedLo) + 1
	if span <= 0 {
		return Summary{JobID: uuid.NewString(), State: search.StateExhausted}, nil
	}
	if int64(workers) > span {
		workers = int(span)
	}

	jobID := uuid.NewString()
	log := c.logger.WithFields(logrus.Fields{
		"job_id":  jobID,
		"seed_lo": req.SeedLo,
		"seed_hi": req.SeedHi,
		"workers": workers,
		"version": req.Version.String(),
	})
	log.Info("search job started")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		checked atomic.Int64
		found   atomic.Int64

		mu      sync.Mutex
		matches []int32
	)

	accept := func(seed int32) bool {
		mu.Lock()
		defer mu.Unlock()
		if req.MaxResults > 0 && len(matches) >= req.MaxResults {
			return false
		}
		matches = append(matches, seed)
		if req.OnMatch != nil {
			req.OnMatch(seed)
		}
		if req.MaxResults > 0 && len(matches) >= req.MaxResults {
			cancel()
		}
		return true
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := req.SeedLo + int32(span*int64(w)/int64(workers))
		hi := req.SeedLo + int32(span*int64(w+1)/int64(workers)) - 1

		wg.Add(1)
		go func(lo, hi int32) {
			defer wg.Done()

			var lastChecked, lastFound int64
			report := func(chk, fnd int64) {
				checked.Add(chk - lastChecked)
				found.Add(fnd - lastFound)
				lastChecked, lastFound = chk, fnd
				if req.OnProgress != nil {
					req.OnProgress(checked.Load(), found.Load())
				}
			}

			res, err := search.Run(req.FilterJSON, lo, hi, 0,
				search.Evaluator{Version: req.Version},
				func(chk, fnd int64) bool {
					report(chk, fnd)
					return runCtx.Err() == nil
				},
				func(seed int32) bool {
					if runCtx.Err() != nil {
						return false
					}
					return accept(seed)
				})
			if err != nil {
				// Parse succeeded up front; workers cannot fail here.
				c.logger.WithError(err).Error("worker failed unexpectedly")
				return
			}
			if res.State == search.StateCancelled {
				// The final counters never arrived through the progress
				// callback; fold them in directly.
				report(res.Checked, res.Found)
			}
		}(lo, hi)
	}
	wg.Wait()

	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })

	state := search.StateExhausted
	switch {
	case req.MaxResults > 0 && len(matches) >= req.MaxResults:
		state = search.StateLimitReached
	case ctx.Err() != nil:
		state = search.StateCancelled
	}

	summary := Summary{
		JobID:   jobID,
		Checked: checked.Load(),
		Found:   found.Load(),
		Matches: matches,
		State:   state,
	}
	log.WithFields(logrus.Fields{
		"checked": summary.Checked,
		"found":   summary.Found,
		"state":   summary.State,
	}).Info("search job finished")
	return summary, nil
}
