package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeBackend is a simple in-memory Backend implementation for tests.
type fakeBackend struct {
	mu sync.Mutex

	counters   []counterCall
	histograms []histCall
	flushCount int
}

type counterCall struct {
	name   string
	delta  float64
	labels Labels
}

type histCall struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters = append(f.counters, counterCall{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histograms = append(f.histograms, histCall{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCount++
	return nil
}

func TestRecordRows(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	backend = fb

	RecordRows("accounts", "committed", 10)
	RecordRows("accounts", "rejected", 0) // ignored
	RecordRows("flights", "rejected", 2)

	if len(fb.counters) != 2 {
		t.Fatalf("expected 2 counter calls, got %d", len(fb.counters))
	}
	c0 := fb.counters[0]
	if c0.name != "catalog_records_total" || c0.delta != 10 {
		t.Fatalf("counter[0] = %#v; want name=catalog_records_total, delta=10", c0)
	}
	if c0.labels["dataset"] != "accounts" || c0.labels["kind"] != "committed" {
		t.Fatalf("counter[0] labels = %v; want dataset=accounts, kind=committed", c0.labels)
	}
	c1 := fb.counters[1]
	if c1.labels["dataset"] != "flights" || c1.labels["kind"] != "rejected" || c1.delta != 2 {
		t.Fatalf("counter[1] = %#v; want flights/rejected delta=2", c1)
	}
}

func TestRecordCommand(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	backend = fb

	RecordCommand("1", nil, 2*time.Second)
	RecordCommand("8", errors.New("boom"), 500*time.Millisecond)

	if len(fb.counters) != 2 || len(fb.histograms) != 2 {
		t.Fatalf("expected 2 counters and 2 histograms, got %d/%d",
			len(fb.counters), len(fb.histograms))
	}
	if fb.counters[0].labels["status"] != "success" {
		t.Fatalf("counter[0].labels[status]=%q; want success", fb.counters[0].labels["status"])
	}
	if fb.counters[1].labels["status"] != "failure" {
		t.Fatalf("counter[1].labels[status]=%q; want failure", fb.counters[1].labels["status"])
	}
	if v := fb.histograms[0].value; v < 2.0-0.001 || v > 2.0+0.001 {
		t.Fatalf("hist[0].value=%v; want ~2.0", v)
	}
}

func TestSetBackendAndFlush(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	SetBackend(fb)

	if backend != fb {
		t.Fatal("SetBackend did not replace global backend")
	}
	if err := Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if fb.flushCount != 1 {
		t.Fatalf("expected flushCount=1, got %d", fb.flushCount)
	}

	// SetBackend(nil) should not nil out the backend.
	SetBackend(nil)
	if backend != fb {
		t.Fatal("SetBackend(nil) should not change backend")
	}
}
