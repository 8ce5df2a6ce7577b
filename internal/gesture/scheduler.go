package gesture

import (
	"sort"
	"time"
)

// Scheduler runs deferred callbacks on the goroutine that owns the
// session. The returned func cancels the callback if it has not run.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

// PostScheduler waits on a timer and hands the callback to Post, which
// must run it on the owning goroutine (for example by queueing it on a
// window's event loop).
type PostScheduler struct {
	Post func(func())
}

func (p PostScheduler) AfterFunc(d time.Duration, f func()) func() {
	canceled := false
	t := time.AfterFunc(d, func() {
		p.Post(func() {
			if !canceled {
				f()
			}
		})
	})
	return func() {
		canceled = true
		t.Stop()
	}
}

// ManualScheduler runs callbacks only when its clock is advanced. It is
// used by headless replays and tests.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	at       time.Duration
	seq      int
	f        func()
	canceled bool
}

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) func() {
	t := &manualTimer{at: m.now + d, seq: m.seq, f: f}
	m.seq++
	m.pending = append(m.pending, t)
	return func() { t.canceled = true }
}

// Advance moves the clock forward by d and runs every callback that came
// due, earliest first.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.now += d
	for {
		due := m.due()
		if due == nil {
			return
		}
		due.f()
	}
}

func (m *ManualScheduler) due() *manualTimer {
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at != m.pending[j].at {
			return m.pending[i].at < m.pending[j].at
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	for i, t := range m.pending {
		if t.canceled {
			continue
		}
		if t.at > m.now {
			break
		}
		m.pending = append(m.pending[:i:i], m.pending[i+1:]...)
		return t
	}
	return nil
}

// Flush advances the clock until every pending callback, including those
// scheduled while flushing, has run.
func (m *ManualScheduler) Flush() {
	for {
		next, ok := m.next()
		if !ok {
			return
		}
		if next > m.now {
			m.now = next
		}
		m.Advance(0)
	}
}

func (m *ManualScheduler) next() (time.Duration, bool) {
	var (
		at    time.Duration
		found bool
	)
	for _, t := range m.pending {
		if t.canceled {
			continue
		}
		if !found || t.at < at {
			at, found = t.at, true
		}
	}
	return at, found
}

// Pending returns the number of callbacks that have neither run nor been
// canceled.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.canceled {
			n++
		}
	}
	return n
}
