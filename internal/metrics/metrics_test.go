package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(100), c.Load())
}

func TestLabeledCounter(t *testing.T) {
	var l LabeledCounter

	assert.Equal(t, uint64(0), l.Load("mixed_vendor"))

	l.Inc("mixed_vendor")
	l.Inc("mixed_vendor")
	l.Inc("empty_cart")

	assert.Equal(t, uint64(2), l.Load("mixed_vendor"))
	assert.Equal(t, uint64(1), l.Load("empty_cart"))
	assert.Equal(t, []string{"empty_cart", "mixed_vendor"}, l.Labels())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)

	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}
