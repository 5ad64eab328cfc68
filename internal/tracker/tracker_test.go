package tracker

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/chronos-tracker/chronos/internal/store"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }
func (c *fakeClock) set(t time.Time)         { c.t = t }
func (c *fakeClock) day() string             { return c.t.Format(store.DateLayout) }

var baseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestTracker(t *testing.T) (*Tracker, *fakeClock) {
	t.Helper()
	s := newTestStore(t)
	clk := &fakeClock{t: baseTime}
	return New(s, WithClock(clk.now), WithIDs(sequentialIDs())), clk
}

// track runs a closed session of the given length for activityID.
func track(t *testing.T, tr *Tracker, clk *fakeClock, activityID string, d time.Duration) {
	t.Helper()
	if _, err := tr.Start(activityID); err != nil {
		t.Fatal(err)
	}
	clk.advance(d)
	if err := tr.Stop(activityID); err != nil {
		t.Fatal(err)
	}
}

func openCount(tr *Tracker, activityID string) int {
	n := 0
	for _, l := range tr.OpenLogs() {
		if l.ActivityID == activityID {
			n++
		}
	}
	return n
}

type failingRepo struct{}

var errDiskFull = errors.New("disk full")

func (failingRepo) LoadActivities() []store.Activity      { return store.PresetActivities() }
func (failingRepo) LoadLogs() []store.TimeLog             { return nil }
func (failingRepo) LoadGoals() store.Goals                { return nil }
func (failingRepo) SaveActivities([]store.Activity) error { return errDiskFull }
func (failingRepo) SaveLogs([]store.TimeLog) error        { return errDiskFull }
func (failingRepo) SaveGoals(store.Goals) error           { return errDiskFull }

// ============================================================
// Registry
// ============================================================

func TestNewSeedsPresets(t *testing.T) {
	tr, _ := newTestTracker(t)
	acts := tr.Activities()
	if len(acts) != 9 {
		t.Fatalf("expected 9 preset activities, got %d", len(acts))
	}
	if acts[0].ID != "sleep" || acts[4].ID != "deep_work" {
		t.Fatalf("unexpected preset order: %s, %s", acts[0].ID, acts[4].ID)
	}
	if len(tr.Logs()) != 0 {
		t.Fatal("expected no logs on first run")
	}
	if len(tr.Goals()) != 0 {
		t.Fatal("expected no goals on first run")
	}
}

func TestAddActivity(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, err := tr.AddActivity("  Reading ", "")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != "id-1" || a.Name != "Reading" || a.Icon != "✨" || !a.Enabled {
		t.Fatalf("unexpected activity: %+v", a)
	}
	if len(a.Color) != 7 || a.Color[0] != '#' {
		t.Fatalf("expected hex colour, got %q", a.Color)
	}
	if _, ok := tr.Activity("id-1"); !ok {
		t.Fatal("new activity not in registry")
	}
}

func TestAddActivityEmptyName(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.AddActivity("   ", "🎯")
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if len(tr.Activities()) != 9 {
		t.Fatal("registry should be unchanged")
	}
}

func TestToggleActivityHidesFromGrid(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "eat", time.Minute)

	if err := tr.ToggleActivity("eat"); err != nil {
		t.Fatal(err)
	}
	for _, a := range tr.EnabledActivities() {
		if a.ID == "eat" {
			t.Fatal("disabled activity should be hidden from the grid")
		}
	}
	if len(tr.Activities()) != 9 {
		t.Fatal("disabling must not delete")
	}
	if len(tr.Logs()) != 1 {
		t.Fatal("disabling must not touch logs")
	}

	tr.ToggleActivity("eat")
	if len(tr.EnabledActivities()) != 9 {
		t.Fatal("toggle should re-enable")
	}
}

func TestToggleActivityNotFound(t *testing.T) {
	tr, _ := newTestTracker(t)
	if err := tr.ToggleActivity("nope"); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestDeleteActivityKeepsLogs(t *testing.T) {
	tr, clk := newTestTracker(t)
	for i := 0; i < 3; i++ {
		track(t, tr, clk, "meetings", 10*time.Minute)
	}

	if err := tr.DeleteActivity("meetings"); err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.Activity("meetings"); ok {
		t.Fatal("activity should be removed from registry")
	}

	logs := tr.Logs()
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs to remain, got %d", len(logs))
	}
	for _, l := range logs {
		if l.ActivityID != "meetings" {
			t.Fatalf("log lost its activity id: %+v", l)
		}
	}
	if tr.ActivityName("meetings") != "meetings" {
		t.Fatal("orphaned reference should fall back to the raw id")
	}
}

func TestDeleteActivityRunning(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Start("learning")

	err := tr.DeleteActivity("learning")
	if !errors.Is(err, ErrActivityRunning) {
		t.Fatalf("expected ErrActivityRunning, got %v", err)
	}
	if _, ok := tr.Activity("learning"); !ok {
		t.Fatal("registry should be unchanged")
	}
}

// ============================================================
// Session engine
// ============================================================

func TestStartStopNinetySeconds(t *testing.T) {
	tr, clk := newTestTracker(t)
	started, err := tr.Start("deep_work")
	if err != nil || !started {
		t.Fatalf("start: started=%v err=%v", started, err)
	}

	open := tr.OpenLogs()
	if len(open) != 1 || open[0].Duration != 0 || open[0].Date != "2026-03-10" {
		t.Fatalf("unexpected open log: %+v", open)
	}

	clk.advance(90 * time.Second)
	if err := tr.Stop("deep_work"); err != nil {
		t.Fatal(err)
	}

	logs := tr.Logs()
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	l := logs[0]
	if l.EndTime == nil {
		t.Fatal("log should be closed")
	}
	if got := l.EndTime.Sub(l.StartTime); got != 90*time.Second {
		t.Fatalf("end-start = %v, want 90s", got)
	}
	if l.Duration != 90 {
		t.Fatalf("duration = %d, want 90", l.Duration)
	}
}

func TestStartTwiceIsNoop(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.Start("sleep")
	clk.advance(time.Second)
	started, err := tr.Start("sleep")
	if err != nil {
		t.Fatal(err)
	}
	if started {
		t.Fatal("second start should be a no-op")
	}
	if n := openCount(tr, "sleep"); n != 1 {
		t.Fatalf("expected exactly one open sleep log, got %d", n)
	}
}

func TestStopIdempotent(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "rest", 30*time.Second)
	before := tr.Logs()

	clk.advance(time.Hour)
	if err := tr.Stop("rest"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Stop("never-started"); err != nil {
		t.Fatal(err)
	}
	after := tr.Logs()
	if len(after) != 1 || after[0].Duration != before[0].Duration || !after[0].EndTime.Equal(*before[0].EndTime) {
		t.Fatal("stop on a closed activity must not change anything")
	}
}

func TestStopOnlyTargetActivity(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.Start("eat")
	tr.Start("admin")
	clk.advance(time.Minute)
	tr.Stop("eat")

	if tr.Running("eat") {
		t.Fatal("eat should be stopped")
	}
	if !tr.Running("admin") {
		t.Fatal("admin should still be running")
	}
}

func TestStopAll(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.Start("eat")
	tr.Start("admin")
	tr.Start("learning")
	clk.advance(2 * time.Minute)

	n, err := tr.StopAll()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 sessions closed, got %d", n)
	}
	if len(tr.OpenLogs()) != 0 {
		t.Fatal("no sessions should remain open")
	}
	for _, l := range tr.Logs() {
		if l.Duration != 120 {
			t.Fatalf("duration = %d, want 120", l.Duration)
		}
	}

	n, _ = tr.StopAll()
	if n != 0 {
		t.Fatal("second StopAll should be a no-op")
	}
}

func TestAtMostOneOpenPerActivity(t *testing.T) {
	tr, clk := newTestTracker(t)
	ops := []struct {
		start bool
		id    string
	}{
		{true, "sleep"}, {true, "sleep"}, {true, "eat"}, {false, "sleep"},
		{true, "sleep"}, {true, "eat"}, {false, "eat"}, {false, "eat"},
		{true, "sleep"}, {true, "eat"}, {true, "eat"},
	}
	for i, op := range ops {
		clk.advance(time.Second)
		if op.start {
			tr.Start(op.id)
		} else {
			tr.Stop(op.id)
		}
		for _, id := range []string{"sleep", "eat"} {
			if n := openCount(tr, id); n > 1 {
				t.Fatalf("step %d: %d open sessions for %s", i, n, id)
			}
		}
	}
}

func TestDurationTruncates(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "admin", 1999*time.Millisecond)
	l := tr.Logs()[0]
	if l.Duration != 1 {
		t.Fatalf("duration = %d, want 1", l.Duration)
	}
	if l.Duration != int64(l.EndTime.Sub(l.StartTime)/time.Second) {
		t.Fatal("duration should equal truncated end-start")
	}
}

func TestToggle(t *testing.T) {
	tr, clk := newTestTracker(t)
	started, _ := tr.Toggle("exercise")
	if !started || !tr.Running("exercise") {
		t.Fatal("toggle should start an idle activity")
	}
	clk.advance(time.Minute)
	started, _ = tr.Toggle("exercise")
	if started || tr.Running("exercise") {
		t.Fatal("toggle should stop a running activity")
	}
	if tr.Logs()[0].Duration != 60 {
		t.Fatal("toggle stop should finalize duration")
	}
}

func TestEditDurationWins(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "learning", 90*time.Second)
	tr.Start("eat")

	for _, l := range tr.Logs() {
		if err := tr.EditDuration(l.ID, 45); err != nil {
			t.Fatal(err)
		}
	}
	for _, l := range tr.Logs() {
		if l.Duration != 45*60 {
			t.Fatalf("duration = %d, want %d", l.Duration, 45*60)
		}
	}

	closed := tr.Logs()[0]
	if got := int64(closed.EndTime.Sub(closed.StartTime) / time.Second); got != 90 {
		t.Fatalf("edit must not move end time, end-start = %d", got)
	}
	if !tr.Running("eat") {
		t.Fatal("editing an open log must not close it")
	}
}

func TestEditDurationAcceptsNegative(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "learning", time.Minute)
	id := tr.Logs()[0].ID
	if err := tr.EditDuration(id, -5); err != nil {
		t.Fatal(err)
	}
	if tr.Logs()[0].Duration != -300 {
		t.Fatalf("duration = %d, want -300", tr.Logs()[0].Duration)
	}
}

func TestEditDurationNotFound(t *testing.T) {
	tr, _ := newTestTracker(t)
	if err := tr.EditDuration("missing", 5); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}

func TestDeleteLog(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "eat", time.Minute)
	tr.Start("eat")

	for _, l := range tr.Logs() {
		if err := tr.DeleteLog(l.ID); err != nil {
			t.Fatal(err)
		}
	}
	if len(tr.Logs()) != 0 {
		t.Fatal("all logs should be deleted, open ones included")
	}
	if err := tr.DeleteLog("missing"); err != nil {
		t.Fatalf("deleting an unknown log should be a no-op, got %v", err)
	}
}

func TestElapsed(t *testing.T) {
	start := baseTime
	open := store.TimeLog{StartTime: start}
	if got := Elapsed(open, start.Add(75500*time.Millisecond)); got != 75 {
		t.Fatalf("open elapsed = %d, want 75", got)
	}

	end := start.Add(time.Hour)
	closed := store.TimeLog{StartTime: start, EndTime: &end, Duration: 42}
	if got := Elapsed(closed, start.Add(10*time.Hour)); got != 42 {
		t.Fatalf("closed elapsed = %d, want stored 42", got)
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"30", 30},
		{" 15 ", 15},
		{"-4", -4},
		{"", 0},
		{"abc", 0},
		{"12.5", 0},
	}
	for _, tt := range tests {
		if got := ParseMinutes(tt.in); got != tt.want {
			t.Errorf("ParseMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClosedLogsOn(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "eat", time.Minute)
	clk.advance(time.Hour)
	track(t, tr, clk, "rest", time.Minute)
	tr.Start("admin")

	clk.set(baseTime.AddDate(0, 0, 1))
	track(t, tr, clk, "eat", time.Minute)

	logs := tr.ClosedLogsOn("2026-03-10")
	if len(logs) != 2 {
		t.Fatalf("expected 2 closed logs, got %d", len(logs))
	}
	if logs[0].ActivityID != "rest" {
		t.Fatal("expected newest first")
	}

	dates := tr.RecordedDates()
	if !dates["2026-03-10"] || !dates["2026-03-11"] || len(dates) != 2 {
		t.Fatalf("unexpected recorded dates: %v", dates)
	}
}

// ============================================================
// Persistence
// ============================================================

func TestStateSurvivesReload(t *testing.T) {
	s := newTestStore(t)
	clk := &fakeClock{t: baseTime}
	tr := New(s, WithClock(clk.now), WithIDs(sequentialIDs()))

	track(t, tr, clk, "deep_work", 10*time.Minute)
	tr.Start("sleep")
	tr.SetGoal("deep_work", 60)
	tr.ToggleActivity("admin")

	// Simulate a restart eight hours later.
	clk.advance(8 * time.Hour)
	reloaded := New(s, WithClock(clk.now))

	if len(reloaded.Logs()) != 2 {
		t.Fatalf("expected 2 logs after reload, got %d", len(reloaded.Logs()))
	}
	if !reloaded.Running("sleep") {
		t.Fatal("open session should still be running after reload")
	}
	open := reloaded.OpenLogs()[0]
	if got := Elapsed(open, reloaded.Now()); got != 8*3600 {
		t.Fatalf("elapsed after reload = %d, want %d", got, 8*3600)
	}
	if reloaded.Goal("deep_work") != 60 {
		t.Fatal("goal not persisted")
	}
	if a, _ := reloaded.Activity("admin"); a.Enabled {
		t.Fatal("disabled flag not persisted")
	}
	if reloaded.Pomodoro().Phase != PhaseIdle {
		t.Fatal("pomodoro state must not persist")
	}
}

func TestPersistErrorIsReturned(t *testing.T) {
	tr := New(failingRepo{})
	_, err := tr.Start("eat")
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected wrapped persist error, got %v", err)
	}
	if !tr.Running("eat") {
		t.Fatal("in-memory state should still reflect the start")
	}
	if err := tr.SetGoal("eat", 10); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected goal persist error, got %v", err)
	}
	if _, err := tr.AddActivity("X", ""); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected activity persist error, got %v", err)
	}
}

// ============================================================
// Pomodoro
// ============================================================

func TestPomodoroInit(t *testing.T) {
	p := NewPomodoro()
	if p.Phase != PhaseIdle || p.TimeLeft != WorkSeconds || p.Enabled {
		t.Fatalf("unexpected initial state: %+v", p)
	}
	if p.Clock() != "25:00" {
		t.Fatalf("clock = %q", p.Clock())
	}
}

func TestPomodoroTickIgnoredWhenIdleOrDisabled(t *testing.T) {
	p := NewPomodoro()
	p.Enabled = true
	if ev := p.Tick(); ev != EventNone || p.TimeLeft != WorkSeconds {
		t.Fatal("idle pomodoro should not count down")
	}

	p.Enabled = false
	p.Start()
	if ev := p.Tick(); ev != EventNone || p.TimeLeft != WorkSeconds {
		t.Fatal("disabled pomodoro should not count down")
	}
}

func TestPomodoroWorkExpiryStopsSessions(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.EnablePomodoro()
	tr.Toggle("deep_work")
	tr.Start("meetings")

	if tr.Pomodoro().Phase != PhaseWork {
		t.Fatal("starting an activity with pomodoro enabled should enter work")
	}

	for i := 1; i < WorkSeconds; i++ {
		clk.advance(time.Second)
		ev, err := tr.Tick()
		if err != nil || ev != EventNone {
			t.Fatalf("tick %d: ev=%v err=%v", i, ev, err)
		}
	}
	if tr.Pomodoro().TimeLeft != 1 {
		t.Fatalf("time left = %d, want 1", tr.Pomodoro().TimeLeft)
	}

	clk.advance(time.Second)
	ev, err := tr.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if ev != EventWorkDone {
		t.Fatalf("expected EventWorkDone, got %v", ev)
	}
	p := tr.Pomodoro()
	if p.Phase != PhaseBreak || p.TimeLeft != BreakSeconds {
		t.Fatalf("unexpected state after work: %+v", p)
	}
	if len(tr.OpenLogs()) != 0 {
		t.Fatal("work expiry should stop all sessions")
	}
	for _, l := range tr.Logs() {
		if l.Duration != WorkSeconds {
			t.Fatalf("duration = %d, want %d", l.Duration, WorkSeconds)
		}
	}
}

func TestPomodoroBreakExpiry(t *testing.T) {
	p := NewPomodoro()
	p.Enabled = true
	p.Phase = PhaseBreak
	p.TimeLeft = 2

	if ev := p.Tick(); ev != EventNone {
		t.Fatal("break should not expire yet")
	}
	if ev := p.Tick(); ev != EventBreakDone {
		t.Fatalf("expected EventBreakDone, got %v", ev)
	}
	if p.Phase != PhaseIdle || p.TimeLeft != WorkSeconds {
		t.Fatalf("unexpected state after break: %+v", p)
	}
}

func TestPomodoroCancelKeepsSessions(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.EnablePomodoro()
	tr.Toggle("learning")
	clk.advance(10 * time.Second)
	tr.Tick()

	tr.CancelPomodoro()
	p := tr.Pomodoro()
	if p.Phase != PhaseIdle || p.TimeLeft != WorkSeconds || !p.Enabled {
		t.Fatalf("unexpected state after cancel: %+v", p)
	}
	if !tr.Running("learning") {
		t.Fatal("cancel must not stop sessions")
	}
}

func TestPomodoroDisableCancels(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.EnablePomodoro()
	tr.StartPomodoro()
	tr.DisablePomodoro()
	p := tr.Pomodoro()
	if p.Enabled || p.Phase != PhaseIdle || p.TimeLeft != WorkSeconds {
		t.Fatalf("unexpected state after disable: %+v", p)
	}
}

func TestToggleWithoutPomodoroStaysIdle(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.Toggle("eat")
	if tr.Pomodoro().Phase != PhaseIdle {
		t.Fatal("pomodoro should stay idle when disabled")
	}
}

func TestNeedsTick(t *testing.T) {
	tr, clk := newTestTracker(t)
	if tr.NeedsTick() {
		t.Fatal("nothing running, no tick needed")
	}
	tr.Start("eat")
	if !tr.NeedsTick() {
		t.Fatal("open session needs tick")
	}
	clk.advance(time.Second)
	tr.StopAll()
	if tr.NeedsTick() {
		t.Fatal("no tick after stop")
	}
	tr.EnablePomodoro()
	tr.StartPomodoro()
	if !tr.NeedsTick() {
		t.Fatal("active pomodoro needs tick")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseIdle.String() != "IDLE" || PhaseWork.String() != "WORK" || PhaseBreak.String() != "BREAK" {
		t.Fatal("unexpected phase names")
	}
}

// ============================================================
// Goals
// ============================================================

func TestGoalProgressHalf(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.SetGoal("exercise", 30)
	track(t, tr, clk, "exercise", 900*time.Second)

	if got := tr.Progress("exercise", clk.day()); got != 50 {
		t.Fatalf("progress = %v, want 50", got)
	}
}

func TestGoalProgressUnset(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "exercise", time.Hour)
	if got := tr.Progress("exercise", clk.day()); got != 0 {
		t.Fatalf("progress without goal = %v, want 0", got)
	}
	tr.SetGoal("exercise", -10)
	if got := tr.Progress("exercise", clk.day()); got != 0 {
		t.Fatalf("progress with negative goal = %v, want 0", got)
	}
}

func TestGoalProgressClampedAndMonotonic(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.SetGoal("learning", 20)

	prev := 0.0
	for i := 0; i < 6; i++ {
		track(t, tr, clk, "learning", 7*time.Minute)
		got := tr.Progress("learning", clk.day())
		if got < prev {
			t.Fatalf("progress decreased: %v -> %v", prev, got)
		}
		if got > 100 {
			t.Fatalf("progress not clamped: %v", got)
		}
		prev = got
	}
	if prev != 100 {
		t.Fatalf("expected 100 after exceeding goal, got %v", prev)
	}
}

func TestGoalProgressCountsOpenSession(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.SetGoal("deep_work", 60)
	tr.Start("deep_work")
	clk.advance(30*time.Minute + 59*time.Second)

	if got := tr.Progress("deep_work", clk.day()); got != 50 {
		t.Fatalf("progress = %v, want 50 (floored minutes)", got)
	}
}

func TestGoalProgressOtherDayExcluded(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.SetGoal("eat", 10)
	track(t, tr, clk, "eat", 10*time.Minute)
	if got := tr.Progress("eat", "2026-03-09"); got != 0 {
		t.Fatalf("progress for another day = %v, want 0", got)
	}
}

func TestGoalForUnknownActivity(t *testing.T) {
	tr, _ := newTestTracker(t)
	if err := tr.SetGoal("ghost", 15); err != nil {
		t.Fatal(err)
	}
	if tr.Goal("ghost") != 15 {
		t.Fatal("goal for unknown activity should be stored")
	}
}

// ============================================================
// Aggregation
// ============================================================

func TestDailyBreakdown(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "deep_work", 89*time.Second) // rounds to 1
	track(t, tr, clk, "deep_work", 30*time.Minute)
	track(t, tr, clk, "eat", 29*time.Second) // rounds to 0, dropped
	track(t, tr, clk, "ghost", 5*time.Minute)
	tr.Start("admin")
	clk.advance(time.Hour)

	got := tr.DailyBreakdown(clk.day())
	if len(got) != 2 {
		t.Fatalf("expected 2 slices, got %+v", got)
	}
	if got[0].ActivityID != "deep_work" || got[0].Minutes != 31 || got[0].Name != "Deep Work / Coding" {
		t.Fatalf("unexpected first slice: %+v", got[0])
	}
	if got[1].Name != "ghost" || got[1].Color != fallbackColor {
		t.Fatalf("orphaned slice should fall back to id: %+v", got[1])
	}
}

func TestWeeklyHeatmap(t *testing.T) {
	tr, clk := newTestTracker(t)
	track(t, tr, clk, "sleep", 10*time.Hour)

	clk.set(baseTime.AddDate(0, 0, -3))
	track(t, tr, clk, "eat", 2*time.Hour)

	clk.set(baseTime.AddDate(0, 0, -7))
	track(t, tr, clk, "eat", time.Hour)

	clk.set(baseTime.Add(11 * time.Hour))
	tr.Start("admin")
	clk.advance(time.Hour)

	cells := tr.WeeklyHeatmap(baseTime)
	if len(cells) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(cells))
	}
	if cells[0].Date != "2026-03-04" || cells[6].Date != "2026-03-10" {
		t.Fatalf("unexpected range: %s .. %s", cells[0].Date, cells[6].Date)
	}
	for i := 1; i < len(cells); i++ {
		if cells[i].Date <= cells[i-1].Date {
			t.Fatal("cells should be ordered oldest to newest")
		}
	}
	if cells[6].Seconds != 10*3600 || cells[6].Intensity != 1 {
		t.Fatalf("today: %+v (open session must not count, intensity clamps)", cells[6])
	}
	if cells[3].Seconds != 2*3600 || math.Abs(cells[3].Intensity-0.25) > 1e-9 {
		t.Fatalf("three days ago: %+v", cells[3])
	}
	if cells[0].Seconds != 0 {
		t.Fatal("logs older than the window must be ignored")
	}
}

func TestEfficiency(t *testing.T) {
	tr, clk := newTestTracker(t)
	if got := tr.Efficiency("deep_work", clk.day()); got != 0 {
		t.Fatalf("no history should give 0, got %v", got)
	}

	clk.set(baseTime.AddDate(0, 0, -2))
	track(t, tr, clk, "deep_work", time.Hour)
	clk.set(baseTime.AddDate(0, 0, -1))
	track(t, tr, clk, "deep_work", 30*time.Minute)
	clk.set(baseTime)
	track(t, tr, clk, "deep_work", 15*time.Minute)

	// total 6300s over 3 days -> avg 2100s; today 900s.
	want := (900.0 - 2100.0) / 2100.0 * 100
	if got := tr.Efficiency("deep_work", clk.day()); math.Abs(got-want) > 1e-9 {
		t.Fatalf("efficiency = %v, want %v", got, want)
	}
}
