package tracker

import "fmt"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWork
	PhaseBreak
)

func (p Phase) String() string {
	switch p {
	case PhaseWork:
		return "WORK"
	case PhaseBreak:
		return "BREAK"
	default:
		return "IDLE"
	}
}

const (
	WorkSeconds  = 25 * 60
	BreakSeconds = 5 * 60
)

// Event is what a tick produced, for the caller to notify the user.
type Event int

const (
	EventNone Event = iota
	EventWorkDone
	EventBreakDone
)

// Pomodoro is the idle -> work -> break -> idle countdown. Enabled is the
// user-facing mode switch; the countdown only runs while enabled and not
// idle.
type Pomodoro struct {
	Enabled  bool
	Phase    Phase
	TimeLeft int // seconds
}

func NewPomodoro() Pomodoro {
	return Pomodoro{Phase: PhaseIdle, TimeLeft: WorkSeconds}
}

func (p *Pomodoro) Start() {
	p.Phase = PhaseWork
	p.TimeLeft = WorkSeconds
}

// Cancel returns to idle without touching any session.
func (p *Pomodoro) Cancel() {
	p.Phase = PhaseIdle
	p.TimeLeft = WorkSeconds
}

// Tick advances the countdown by one second. The phase expires on the tick
// that would take TimeLeft from 1 to 0.
func (p *Pomodoro) Tick() Event {
	if !p.Enabled || p.Phase == PhaseIdle {
		return EventNone
	}
	if p.TimeLeft > 1 {
		p.TimeLeft--
		return EventNone
	}
	switch p.Phase {
	case PhaseWork:
		p.Phase = PhaseBreak
		p.TimeLeft = BreakSeconds
		return EventWorkDone
	default:
		p.Phase = PhaseIdle
		p.TimeLeft = WorkSeconds
		return EventBreakDone
	}
}

// Clock renders TimeLeft as m:ss.
func (p Pomodoro) Clock() string {
	left := p.TimeLeft
	if left < 0 {
		left = 0
	}
	return fmt.Sprintf("%d:%02d", left/60, left%60)
}

func (t *Tracker) Pomodoro() Pomodoro { return t.pomodoro }

func (t *Tracker) EnablePomodoro() { t.pomodoro.Enabled = true }

// DisablePomodoro switches the mode off and cancels any running phase.
func (t *Tracker) DisablePomodoro() {
	t.pomodoro.Cancel()
	t.pomodoro.Enabled = false
}

func (t *Tracker) StartPomodoro() { t.pomodoro.Start() }

func (t *Tracker) CancelPomodoro() { t.pomodoro.Cancel() }

// Tick runs one second of the Pomodoro countdown. When a work phase
// expires every open session is stopped.
func (t *Tracker) Tick() (Event, error) {
	ev := t.pomodoro.Tick()
	if ev == EventWorkDone {
		if _, err := t.StopAll(); err != nil {
			return ev, err
		}
	}
	return ev, nil
}
