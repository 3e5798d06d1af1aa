package worker

import (
	"context"
	"log/slog"
	"time"
)

// Reaper drops expired state and reports how many entries went.
type Reaper interface {
	Reap() int
}

type ReaperWorker struct {
	targets  map[string]Reaper
	interval time.Duration
	logger   *slog.Logger
}

// NewReaperWorker reaps every target once per interval. Nil targets are skipped.
func NewReaperWorker(targets map[string]Reaper, interval time.Duration, logger *slog.Logger) *ReaperWorker {
	live := make(map[string]Reaper, len(targets))
	for name, r := range targets {
		if r != nil {
			live[name] = r
		}
	}
	return &ReaperWorker{
		targets:  live,
		interval: interval,
		logger:   logger,
	}
}

func (w *ReaperWorker) Start(ctx context.Context) {
	if len(w.targets) == 0 {
		w.logger.Info("reaper worker has nothing to reap")
		return
	}

	w.logger.Info("reaper worker started", "interval", w.interval, "targets", len(w.targets))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reaper worker stopping")
			return
		case <-ticker.C:
			w.reapOnce()
		}
	}
}

func (w *ReaperWorker) reapOnce() map[string]int {
	counts := make(map[string]int, len(w.targets))
	for name, r := range w.targets {
		n := w.reap(name, r)
		counts[name] = n
		if n > 0 {
			w.logger.Debug("reaped expired entries", "target", name, "count", n)
		}
	}
	return counts
}

func (w *ReaperWorker) reap(name string, r Reaper) (n int) {
	defer func() {
		if rec := recover(); rec != nil {
			w.logger.Error("reap panicked", "target", name, "panic", rec)
			n = 0
		}
	}()
	return r.Reap()
}
