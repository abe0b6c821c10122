package asynchook

import (
	"sync"
	"testing"
)

type counting struct {
	mu   sync.Mutex
	heal int
	rej  int
	errs int
	gate chan struct{}
}

func (c *counting) SelfHeal(string, string, string) {
	if c.gate != nil {
		<-c.gate
	}
	c.mu.Lock()
	c.heal++
	c.mu.Unlock()
}

func (c *counting) ProviderSetRejected(string, string) {
	c.mu.Lock()
	c.rej++
	c.mu.Unlock()
}

func (c *counting) ProviderError(string, string, string, error) {
	c.mu.Lock()
	c.errs++
	c.mu.Unlock()
}

func TestDeliversAllOnClose(t *testing.T) {
	inner := &counting{}
	h := New(inner, 2, 100)
	for i := 0; i < 10; i++ {
		h.SelfHeal("ns", "k", "corrupt")
	}
	h.ProviderSetRejected("ns", "k")
	h.ProviderError("ns", "get", "k", nil)
	h.Close()

	if inner.heal != 10 || inner.rej != 1 || inner.errs != 1 {
		t.Fatalf("delivered heal=%d rej=%d errs=%d", inner.heal, inner.rej, inner.errs)
	}
	if h.Dropped() != 0 {
		t.Fatalf("dropped=%d", h.Dropped())
	}
}

func TestDropsWhenFull(t *testing.T) {
	inner := &counting{gate: make(chan struct{})}
	h := New(inner, 1, 1)

	// the worker blocks on the first event, the second fills the queue
	h.SelfHeal("ns", "k", "a")
	for h.Dropped() == 0 {
		h.SelfHeal("ns", "k", "b")
	}
	close(inner.gate)
	h.Close()

	h.SelfHeal("ns", "k", "after close")
	if inner.heal < 1 {
		t.Fatalf("heal=%d", inner.heal)
	}
	if h.Dropped() < 2 {
		t.Fatalf("event after Close not dropped: %d", h.Dropped())
	}
}
