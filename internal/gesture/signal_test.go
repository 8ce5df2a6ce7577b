package gesture

import (
	"strings"
	"testing"
	"time"
)

func TestSignalUnsubscribe(t *testing.T) {
	var sig Signal
	var a, b int
	unsubA := sig.Subscribe(func() { a++ })
	sig.Subscribe(func() { b++ })
	sig.Publish()
	unsubA()
	unsubA()
	sig.Publish()
	if a != 1 || b != 2 {
		t.Fatalf("a=%d b=%d", a, b)
	}
	if sig.Len() != 1 {
		t.Fatalf("len = %d", sig.Len())
	}
}

func TestSignalUnsubscribeDuringPublish(t *testing.T) {
	var sig Signal
	calls := 0
	var unsub func()
	unsub = sig.Subscribe(func() {
		calls++
		unsub()
	})
	sig.Subscribe(func() { calls++ })
	sig.Publish()
	sig.Publish()
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestManualSchedulerOrder(t *testing.T) {
	var m ManualScheduler
	var got []string
	m.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	cancel := m.AfterFunc(15*time.Millisecond, func() { got = append(got, "x") })
	m.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })
	cancel()
	if m.Pending() != 3 {
		t.Fatalf("pending = %d", m.Pending())
	}
	m.Advance(10 * time.Millisecond)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("got %v", got)
	}
	m.Advance(10 * time.Millisecond)
	if len(got) != 3 || got[1] != "b" || got[2] != "c" {
		t.Fatalf("got %v", got)
	}
	if m.Pending() != 0 {
		t.Fatalf("pending = %d", m.Pending())
	}
}

func TestManualSchedulerNested(t *testing.T) {
	var m ManualScheduler
	ran := false
	m.AfterFunc(0, func() {
		m.AfterFunc(0, func() { ran = true })
	})
	m.Advance(0)
	if !ran {
		t.Fatalf("callback scheduled by a callback did not run")
	}
}

func TestPostSchedulerCancel(t *testing.T) {
	posted := make(chan func(), 1)
	p := PostScheduler{Post: func(f func()) { posted <- f }}
	ran := false
	cancel := p.AfterFunc(time.Millisecond, func() { ran = true })
	select {
	case f := <-posted:
		cancel()
		f()
	case <-time.After(time.Second):
		t.Fatalf("callback never posted")
	}
	if ran {
		t.Fatalf("canceled callback ran")
	}
}

func TestManualSchedulerFlush(t *testing.T) {
	m := &ManualScheduler{}
	var order []string
	m.AfterFunc(time.Second, func() {
		order = append(order, "late")
		m.AfterFunc(time.Hour, func() { order = append(order, "chained") })
	})
	cancel := m.AfterFunc(time.Millisecond, func() { order = append(order, "canceled") })
	m.AfterFunc(2*time.Millisecond, func() { order = append(order, "early") })
	cancel()
	m.Flush()
	if got := strings.Join(order, ","); got != "early,late,chained" {
		t.Fatalf("order %s", got)
	}
	if m.Pending() != 0 {
		t.Fatalf("pending %d", m.Pending())
	}
}
