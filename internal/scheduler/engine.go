// Package scheduler fires session-end alarms on a channel so the UI can
// finish a session on time even when tick messages are delayed.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// Alarm fires when a timer session is projected to end. Generation is the
// timer generation at scheduling time; receivers drop alarms whose
// generation no longer matches.
type Alarm struct {
	ID         string
	Generation uint64
	Session    string
	TriggerAt  time.Time
}

// pending is a heap entry; index is maintained by the heap methods so an
// alarm can be removed or replaced by ID without a scan.
type pending struct {
	alarm Alarm
	index int
}

type alarmHeap []*pending

func (h alarmHeap) Len() int { return len(h) }

func (h alarmHeap) Less(i, j int) bool {
	return h[i].alarm.TriggerAt.Before(h[j].alarm.TriggerAt)
}

func (h alarmHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *alarmHeap) Push(x any) {
	p := x.(*pending)
	p.index = len(*h)
	*h = append(*h, p)
}

func (h *alarmHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	p.index = -1
	*h = old[:n-1]
	return p
}

// Engine keeps at most one pending alarm per ID. Delivery never blocks: when
// the consumer falls behind, alarms are counted in Dropped instead.
type Engine struct {
	mu      sync.Mutex
	alarms  alarmHeap
	byID    map[string]*pending
	out     chan Alarm
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		byID:   make(map[string]*pending),
		out:    make(chan Alarm, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// C delivers due alarms. It is closed once Stop returns.
func (e *Engine) C() <-chan Alarm {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	go e.run()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	started := e.started
	close(e.stopCh)
	e.mu.Unlock()
	if started {
		<-e.doneCh
		return
	}
	close(e.out)
}

// Schedule queues a, replacing any pending alarm with the same ID.
func (e *Engine) Schedule(a Alarm) error {
	if a.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	if p, ok := e.byID[a.ID]; ok {
		p.alarm = a
		heap.Fix(&e.alarms, p.index)
	} else {
		p := &pending{alarm: a}
		heap.Push(&e.alarms, p)
		e.byID[a.ID] = p
	}
	e.signalWakeup()
	return nil
}

// Cancel drops the pending alarm with the given id and reports whether one
// was pending.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&e.alarms, p.index)
	delete(e.byID, id)
	e.signalWakeup()
	return true
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.alarms)
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.doneCh)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		wait, armed := e.nextWait()
		if armed {
			timer.Reset(wait)
		} else {
			timer.Stop()
		}

		select {
		case <-e.stopCh:
			return
		case <-e.wakeup:
		case <-timer.C:
			e.deliver(e.popDue(time.Now()))
		}
	}
}

func (e *Engine) deliver(due []Alarm) {
	for _, a := range due {
		select {
		case e.out <- a:
		default:
			e.dropped.Add(1)
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) nextWait() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.alarms) == 0 {
		return 0, false
	}
	return max(time.Until(e.alarms[0].alarm.TriggerAt), 0), true
}

func (e *Engine) popDue(now time.Time) []Alarm {
	e.mu.Lock()
	defer e.mu.Unlock()

	var due []Alarm
	for len(e.alarms) > 0 && !e.alarms[0].alarm.TriggerAt.After(now) {
		p := heap.Pop(&e.alarms).(*pending)
		delete(e.byID, p.alarm.ID)
		due = append(due, p.alarm)
	}
	return due
}
