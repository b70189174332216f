package timer

import (
	"fmt"
	"strings"
	"time"
)

type SessionType int

const (
	SessionWork SessionType = iota
	SessionShortBreak
	SessionLongBreak
)

func (s SessionType) String() string {
	switch s {
	case SessionWork:
		return "work"
	case SessionShortBreak:
		return "short_break"
	case SessionLongBreak:
		return "long_break"
	default:
		return fmt.Sprintf("SessionType(%d)", int(s))
	}
}

// Label is the human title shown above the clock.
func (s SessionType) Label() string {
	switch s {
	case SessionShortBreak:
		return "Short Break"
	case SessionLongBreak:
		return "Long Break"
	default:
		return "Work"
	}
}

func ParseSessionType(raw string) (SessionType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "work", "w":
		return SessionWork, nil
	case "short", "short_break", "break", "b":
		return SessionShortBreak, nil
	case "long", "long_break", "l":
		return SessionLongBreak, nil
	default:
		return SessionWork, fmt.Errorf("timer: unknown session type %q", raw)
	}
}

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

type Durations struct {
	Work           time.Duration
	ShortBreak     time.Duration
	LongBreak      time.Duration
	LongBreakEvery int
}

func DefaultDurations() Durations {
	return Durations{
		Work:           25 * time.Minute,
		ShortBreak:     5 * time.Minute,
		LongBreak:      15 * time.Minute,
		LongBreakEvery: 4,
	}
}

// Completion describes a session that ran to zero.
type Completion struct {
	Session     SessionType
	Planned     time.Duration
	StartedAt   time.Time
	CompletedAt time.Time
}

type Timer struct {
	durations         Durations
	now               func() time.Time
	state             State
	session           SessionType
	remaining         time.Duration
	planned           time.Duration
	sessionsCompleted int
	lastTick          time.Time
	startedAt         time.Time
	generation        uint64
	last              Completion
}

func New(d Durations, now func() time.Time) *Timer {
	def := DefaultDurations()
	if d.Work <= 0 {
		d.Work = def.Work
	}
	if d.ShortBreak <= 0 {
		d.ShortBreak = def.ShortBreak
	}
	if d.LongBreak <= 0 {
		d.LongBreak = def.LongBreak
	}
	if d.LongBreakEvery <= 0 {
		d.LongBreakEvery = def.LongBreakEvery
	}
	if now == nil {
		now = time.Now
	}
	t := &Timer{durations: d, now: now, session: SessionWork}
	t.remaining = t.durationFor(SessionWork)
	t.planned = t.remaining
	return t
}

func (t *Timer) State() State               { return t.state }
func (t *Timer) Session() SessionType       { return t.session }
func (t *Timer) Remaining() time.Duration   { return t.remaining }
func (t *Timer) SessionsCompleted() int     { return t.sessionsCompleted }
func (t *Timer) Generation() uint64         { return t.generation }
func (t *Timer) LastCompletion() Completion { return t.last }
func (t *Timer) IsIdle() bool               { return t.state == StateIdle }
func (t *Timer) IsRunning() bool            { return t.state == StateRunning }
func (t *Timer) Planned() time.Duration     { return t.planned }

// StartedAt is when the current session first left idle. Zero while idle.
func (t *Timer) StartedAt() time.Time {
	if t.state == StateIdle {
		return time.Time{}
	}
	return t.startedAt
}

// IsWorkSessionActive reports a running work session.
func (t *Timer) IsWorkSessionActive() bool {
	return t.state == StateRunning && t.session == SessionWork
}

// EndsAt projects when the running session reaches zero.
func (t *Timer) EndsAt() time.Time {
	return t.now().Add(t.remaining)
}

func (t *Timer) Start() {
	if t.state == StateRunning {
		return
	}
	now := t.now()
	if t.state == StateIdle {
		t.startedAt = now
		t.planned = t.remaining
	}
	t.state = StateRunning
	t.lastTick = now
	t.generation++
}

func (t *Timer) Pause() {
	if t.state != StateRunning {
		return
	}
	t.advance()
	t.state = StatePaused
	t.generation++
}

func (t *Timer) Toggle() {
	if t.state == StateRunning {
		t.Pause()
		return
	}
	t.Start()
}

func (t *Timer) Reset() {
	t.state = StateIdle
	t.remaining = t.durationFor(t.session)
	t.generation++
}

// SetSessionType only applies while idle.
func (t *Timer) SetSessionType(s SessionType) bool {
	if t.state != StateIdle {
		return false
	}
	t.session = s
	t.remaining = t.durationFor(s)
	return true
}

// CycleSessionType goes work -> short break -> long break -> work while idle.
func (t *Timer) CycleSessionType() bool {
	next := SessionWork
	switch t.session {
	case SessionWork:
		next = SessionShortBreak
	case SessionShortBreak:
		next = SessionLongBreak
	}
	return t.SetSessionType(next)
}

func (t *Timer) AddMinute() bool {
	if t.state != StateIdle {
		return false
	}
	t.remaining += time.Minute
	return true
}

// SubtractMinute never takes the clock below one minute.
func (t *Timer) SubtractMinute() bool {
	if t.state != StateIdle || t.remaining <= time.Minute {
		return false
	}
	t.remaining -= time.Minute
	return true
}

// Tick advances a running timer and reports whether the session finished.
func (t *Timer) Tick() bool {
	if t.state != StateRunning {
		return false
	}
	if t.advance() {
		t.complete()
		return true
	}
	return false
}

func (t *Timer) advance() bool {
	now := t.now()
	elapsed := now.Sub(t.lastTick)
	t.lastTick = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= t.remaining {
		t.remaining = 0
		return true
	}
	t.remaining -= elapsed
	return false
}

func (t *Timer) complete() {
	t.last = Completion{
		Session:     t.session,
		Planned:     t.planned,
		StartedAt:   t.startedAt,
		CompletedAt: t.lastTick,
	}
	switch t.session {
	case SessionWork:
		t.sessionsCompleted++
		if t.sessionsCompleted%t.durations.LongBreakEvery == 0 {
			t.session = SessionLongBreak
		} else {
			t.session = SessionShortBreak
		}
	default:
		t.session = SessionWork
	}
	t.remaining = t.durationFor(t.session)
	t.state = StateIdle
	t.generation++
}

func (t *Timer) durationFor(s SessionType) time.Duration {
	switch s {
	case SessionShortBreak:
		return t.durations.ShortBreak
	case SessionLongBreak:
		return t.durations.LongBreak
	default:
		return t.durations.Work
	}
}

// Progress is the elapsed fraction of the current session in [0, 1].
func (t *Timer) Progress() float64 {
	total := t.planned
	if t.state == StateIdle {
		total = t.remaining
	}
	if total <= 0 {
		return 0
	}
	p := 1 - float64(t.remaining)/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Clock formats the remaining time as MM:SS.
func (t *Timer) Clock() string {
	secs := int(t.remaining.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
