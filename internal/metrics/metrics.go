package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// LabeledCounter counts per label, e.g. per failure kind.
type LabeledCounter struct {
	mu     sync.Mutex
	counts map[string]*Counter
}

func (l *LabeledCounter) Inc(label string) {
	l.mu.Lock()
	if l.counts == nil {
		l.counts = make(map[string]*Counter)
	}
	c, ok := l.counts[label]
	if !ok {
		c = &Counter{}
		l.counts[label] = c
	}
	l.mu.Unlock()

	c.Inc()
}

func (l *LabeledCounter) Load(label string) uint64 {
	l.mu.Lock()
	c, ok := l.counts[label]
	l.mu.Unlock()

	if !ok {
		return 0
	}
	return c.Load()
}

// Labels returns the labels seen so far, sorted.
func (l *LabeledCounter) Labels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.counts))
	for k := range l.counts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
