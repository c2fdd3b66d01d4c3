package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"lolbin-monitor/internal/metrics"
	"lolbin-monitor/internal/model"
	"lolbin-monitor/internal/notify"
	"lolbin-monitor/internal/store"
)

// Source yields the current alert batch from the backend.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Alert, error)
}

// Stats summarizes one poll cycle.
type Stats struct {
	Fetched int
	New     int
}

// Poller runs fetch-and-notify cycles against a single source. Cycles are
// mutually exclusive: a manual CheckOnce and the scheduled tick serialize on
// the same lock, so the seen set only ever has one writer at a time.
type Poller struct {
	src       Source
	seen      *store.Seen
	notifiers []notify.Notifier
	metrics   *metrics.Metrics
	interval  time.Duration
	verbose   bool

	mu sync.Mutex // serializes cycles

	lastMu    sync.RWMutex
	lastCheck time.Time
}

func New(src Source, seen *store.Seen, notifiers []notify.Notifier, m *metrics.Metrics, interval time.Duration, verbose bool) *Poller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{
		src:       src,
		seen:      seen,
		notifiers: notifiers,
		metrics:   m,
		interval:  interval,
		verbose:   verbose,
	}
}

// CheckOnce runs a single poll cycle and reports what it did. The returned
// error is informational: the caller logs it and carries on, nothing is
// retried before the next scheduled cycle.
func (p *Poller) CheckOnce(ctx context.Context) (Stats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	defer func() { p.metrics.CycleDur.Observe(time.Since(start).Seconds()) }()

	alerts, err := p.src.Fetch(ctx)
	if err != nil {
		p.metrics.PollCycles.WithLabelValues("error").Inc()
		return Stats{}, err
	}

	st := Stats{Fetched: len(alerts)}
	for _, a := range alerts {
		key := a.Key()
		if p.seen.Seen(key) {
			p.metrics.DupFiltered.Inc()
			continue
		}
		p.seen.Mark(key)
		st.New++
		for _, n := range p.notifiers {
			if err := n.Notify(ctx, a); err != nil {
				log.Printf("notify %s: %v", n.Name(), err)
				continue
			}
			p.metrics.Notifications.WithLabelValues(n.Name()).Inc()
		}
	}

	now := time.Now()
	p.metrics.PollCycles.WithLabelValues("ok").Inc()
	p.metrics.AlertsFetched.Add(float64(st.Fetched))
	p.metrics.AlertsNew.Add(float64(st.New))
	p.metrics.LastSuccess.Set(float64(now.Unix()))

	p.lastMu.Lock()
	p.lastCheck = now
	p.lastMu.Unlock()
	return st, nil
}

// LastCheck returns the wall-clock time of the most recent successful cycle.
// Advisory only: it is never used to filter or window fetches.
func (p *Poller) LastCheck() time.Time {
	p.lastMu.RLock()
	defer p.lastMu.RUnlock()
	return p.lastCheck
}

// Run polls immediately and then on the fixed interval until ctx is done.
// Cycle failures are logged and never stop the loop.
func (p *Poller) Run(ctx context.Context) {
	p.checkLogged(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("poller stopping: %v", ctx.Err())
			return
		case <-ticker.C:
			p.checkLogged(ctx)
		}
	}
}

func (p *Poller) checkLogged(ctx context.Context) {
	start := time.Now()
	st, err := p.CheckOnce(ctx)
	if err != nil {
		log.Printf("check %s: %v", p.src.Name(), err)
		return
	}
	switch {
	case st.New > 0:
		log.Printf("%s: %d alert(s), %d new", p.src.Name(), st.Fetched, st.New)
	case p.verbose:
		log.Printf("%s: no new alerts (%d fetched, cycle took %s)",
			p.src.Name(), st.Fetched, time.Since(start).Truncate(time.Millisecond))
	}
}
