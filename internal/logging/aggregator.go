package logging

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// eventID is one (component, event) pair, e.g. dial/render.
type eventID struct {
	component, event string
}

func (a eventID) compare(b eventID) int {
	return cmp.Or(cmp.Compare(a.component, b.component), cmp.Compare(a.event, b.event))
}

// eventCount holds the counts for one event: since the last summary and
// since start. last is the context of the most recent occurrence.
type eventCount struct {
	window int64
	total  int64
	last   []slog.Attr
}

// Aggregator turns per-frame events (render, activate, resize) into one
// "event_summary" record per event and interval, written in a fixed
// component/event order. Events with no occurrences in an interval are
// not written.
type Aggregator struct {
	logger   *slog.Logger
	interval time.Duration

	mu     sync.Mutex
	counts map[eventID]*eventCount

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewAggregator returns an aggregator summarising every intervalSecs
// seconds (default 30). A nil logger still counts, for Total.
func NewAggregator(logger *slog.Logger, intervalSecs int) *Aggregator {
	if intervalSecs <= 0 {
		intervalSecs = 30
	}
	return &Aggregator{
		logger:   logger,
		interval: time.Duration(intervalSecs) * time.Second,
		counts:   make(map[eventID]*eventCount),
		done:     make(chan struct{}),
	}
}

// Start runs the periodic summary in the background.
func (a *Aggregator) Start() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		tick := time.NewTicker(a.interval)
		defer tick.Stop()
		for {
			select {
			case <-a.done:
				return
			case <-tick.C:
				a.flush()
			}
		}
	}()
}

// Stop ends the background summary and writes what is still pending.
// Later calls do nothing.
func (a *Aggregator) Stop() {
	a.stopOnce.Do(func() {
		close(a.done)
		a.wg.Wait()
		a.flush()
	})
}

// Record counts one occurrence of event. Non-empty fields replace the
// context reported with the next summary.
func (a *Aggregator) Record(component, event string, fields ...slog.Attr) {
	id := eventID{component, event}

	a.mu.Lock()
	defer a.mu.Unlock()
	c := a.counts[id]
	if c == nil {
		c = &eventCount{}
		a.counts[id] = c
	}
	c.window++
	c.total++
	if len(fields) > 0 {
		c.last = fields
	}
}

// Total is the number of occurrences of event since the aggregator was
// created, across summaries.
func (a *Aggregator) Total(component, event string) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c := a.counts[eventID{component, event}]; c != nil {
		return c.total
	}
	return 0
}

type summary struct {
	id    eventID
	count eventCount
}

// flush writes one record per event seen since the previous flush and
// starts a new window.
func (a *Aggregator) flush() {
	a.mu.Lock()
	var pending []summary
	for id, c := range a.counts {
		if c.window == 0 {
			continue
		}
		pending = append(pending, summary{id: id, count: *c})
		c.window = 0
	}
	a.mu.Unlock()

	if a.logger == nil || len(pending) == 0 {
		return
	}
	slices.SortFunc(pending, func(x, y summary) int { return x.id.compare(y.id) })
	for _, s := range pending {
		attrs := make([]slog.Attr, 0, 5+len(s.count.last))
		attrs = append(attrs,
			slog.String("component", s.id.component),
			slog.String("event", s.id.event),
			slog.Int64("count", s.count.window),
			slog.Int64("total", s.count.total),
			slog.Duration("window", a.interval),
		)
		attrs = append(attrs, s.count.last...)
		a.logger.LogAttrs(context.Background(), slog.LevelInfo, "event_summary", attrs...)
	}
}
