package harvest

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// workerSlot is one unit of bounded concurrency capacity, occupied by
// exactly one in-flight per-host fetch. The slot table is read and
// mutated only by the scheduler goroutine.
type workerSlot struct {
	id       int
	hostname string
}

type completion struct {
	slot   int
	result HostResult
}

// Scheduler owns the bounded set of concurrently running fetch workers,
// replenishing from the host source as workers finish. Replenishment is
// round-based: each poll tick reclaims finished slots and dispatches at
// most that many replacements, so the worker count never exceeds
// Config.Concurrency.
type Scheduler struct {
	cfg       Config
	source    HostSource
	processor HostProcessor
	clock     Clock
	logger    *zap.Logger
}

// NewScheduler constructs a Scheduler.
func NewScheduler(cfg Config, source HostSource, processor HostProcessor, clock Clock, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cfg:       cfg,
		source:    source,
		processor: processor,
		clock:     clock,
		logger:    logger,
	}
}

// Run drains the host source to completion and reports elapsed time and
// per-outcome counts. Context cancellation stops replenishment; workers
// already in flight are always waited for.
func (s *Scheduler) Run(ctx context.Context) (RunResult, error) {
	start := s.clock.Now()
	var result RunResult

	slots := make(map[int]*workerSlot, s.cfg.Concurrency)
	done := make(chan completion, s.cfg.Concurrency)
	nextID := 0
	exhausted := false

	dispatch := func(hostname string) {
		id := nextID
		nextID++
		slots[id] = &workerSlot{id: id, hostname: hostname}
		result.Dispatched++
		ActiveWorkers.Set(float64(len(slots)))
		go func() {
			done <- completion{slot: id, result: s.processor.Process(ctx, hostname)}
		}()
	}

	// Fill the pool, skipping invalid lines without consuming a slot.
	for len(slots) < s.cfg.Concurrency {
		hostname, ok := s.nextHost(&result)
		if !ok {
			exhausted = true
			break
		}
		dispatch(hostname)
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for len(slots) > 0 {
		<-ticker.C

		freed := 0
	drain:
		for {
			select {
			case c := <-done:
				s.reclaim(slots, c, &result)
				freed++
			default:
				break drain
			}
		}
		ActiveWorkers.Set(float64(len(slots)))

		if ctx.Err() != nil {
			// No early exit: stop pulling new hosts, drain the rest.
			continue
		}
		for i := 0; i < freed && !exhausted; i++ {
			hostname, ok := s.nextHost(&result)
			if !ok {
				exhausted = true
				break
			}
			dispatch(hostname)
		}
	}

	if err := s.source.Err(); err != nil {
		s.logger.Warn("Host source ended with error", zap.Error(err))
	}

	result.Elapsed = s.clock.Now().Sub(start)
	s.logger.Info("Run complete",
		zap.Duration("elapsed", result.Elapsed),
		zap.Int("dispatched", result.Dispatched),
		zap.Int("saved", result.Saved),
		zap.Int("skipped", result.Skipped),
		zap.Int("aborted", result.Aborted),
		zap.Int("rejected", result.Rejected),
	)
	return result, nil
}

// nextHost pulls lines from the source until one passes validation or the
// source runs dry. Rejections are logged and counted, never fatal.
func (s *Scheduler) nextHost(result *RunResult) (string, bool) {
	for {
		line, ok := s.source.Next()
		if !ok {
			return "", false
		}
		hostname, valid := ValidHostLine(line)
		if !valid {
			s.logger.Debug("Rejected host line", zap.String("line", line))
			TotalRejectedLines.Inc()
			result.Rejected++
			continue
		}
		return hostname, true
	}
}

func (s *Scheduler) reclaim(slots map[int]*workerSlot, c completion, result *RunResult) {
	delete(slots, c.slot)
	switch c.result.Outcome {
	case OutcomeSaved:
		result.Saved++
	case OutcomeSkippedFresh:
		result.Skipped++
	default:
		result.Aborted++
	}
}
