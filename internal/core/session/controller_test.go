package session

import (
	"errors"
	"testing"

	"passata/internal/core/model"
)

type fakeClock struct {
	starts int
	stops  int
	tick   func()
}

func (clock *fakeClock) Start(tick func()) {
	clock.starts++
	clock.tick = tick
}

func (clock *fakeClock) Stop() {
	clock.stops++
}

type recordingAlert struct {
	events []Event
}

func (alert *recordingAlert) PhaseCompleted(event Event) {
	alert.events = append(alert.events, event)
}

func classicConfig() model.SessionConfig {
	return model.SessionConfig{
		PomodoroMinutes:   25,
		ShortRestMinutes:  5,
		LongRestMinutes:   15,
		PomodorosPerCycle: 4,
	}
}

func newTestController(t *testing.T, config model.SessionConfig) (*Controller, *fakeClock, *recordingAlert) {
	t.Helper()
	clock := &fakeClock{}
	alert := &recordingAlert{}
	controller, err := New(config, Options{Clock: clock, Alert: alert})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return controller, clock, alert
}

func tickN(controller *Controller, n int) {
	for i := 0; i < n; i++ {
		controller.Tick()
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	config := classicConfig()
	config.PomodorosPerCycle = 0
	if _, err := New(config, Options{}); !errors.Is(err, model.ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestBaselineAfterApplyConfig(t *testing.T) {
	configs := []model.SessionConfig{
		classicConfig(),
		{PomodoroMinutes: 1, ShortRestMinutes: 1, LongRestMinutes: 1, PomodorosPerCycle: 1},
		{PomodoroMinutes: 50, ShortRestMinutes: 10, LongRestMinutes: 30, PomodorosPerCycle: 2, InvertProgress: true},
	}
	for _, config := range configs {
		controller, _, _ := newTestController(t, classicConfig())
		if err := controller.ApplyConfig(config); err != nil {
			t.Fatalf("ApplyConfig: %v", err)
		}
		snapshot := controller.Snapshot()
		if snapshot.Phase != PhaseStopped {
			t.Errorf("Phase = %s, want stopped", snapshot.Phase)
		}
		if snapshot.RemainingSeconds != config.PomodoroMinutes*60 {
			t.Errorf("RemainingSeconds = %d, want %d", snapshot.RemainingSeconds, config.PomodoroMinutes*60)
		}
		want := 0
		if config.InvertProgress {
			want = 100
		}
		if snapshot.ProgressFraction != want {
			t.Errorf("ProgressFraction = %d, want %d", snapshot.ProgressFraction, want)
		}
	}
}

func TestApplyConfigIsIdempotent(t *testing.T) {
	controller, _, _ := newTestController(t, classicConfig())
	config := classicConfig()
	config.PomodoroMinutes = 30

	if err := controller.ApplyConfig(config); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	first := controller.Snapshot()
	if err := controller.ApplyConfig(config); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if second := controller.Snapshot(); second != first {
		t.Fatalf("second apply changed state:\n%+v\n%+v", first, second)
	}
}

func TestApplyConfigRejectsInvalidAndKeepsPrevious(t *testing.T) {
	controller, _, _ := newTestController(t, classicConfig())
	config := classicConfig()
	config.ShortRestMinutes = 0

	err := controller.ApplyConfig(config)
	var invalid *model.InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("ApplyConfig() error = %v, want *InvalidConfigError", err)
	}
	if got := controller.Config(); got != classicConfig() {
		t.Fatalf("Config() = %+v, want previous config", got)
	}
}

func TestApplyConfigWhileRunningKeepsCountdown(t *testing.T) {
	controller, _, _ := newTestController(t, classicConfig())
	controller.ToggleStartInterrupt()
	tickN(controller, 10)

	config := classicConfig()
	config.PomodoroMinutes = 50
	config.ShortRestMinutes = 7
	if err := controller.ApplyConfig(config); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}

	snapshot := controller.Snapshot()
	if snapshot.Phase != PhaseWorking || snapshot.TargetSeconds != 1500 || snapshot.ElapsedSeconds != 10 {
		t.Fatalf("in-flight countdown altered: %+v", snapshot)
	}

	tickN(controller, 1490)
	if snapshot := controller.Snapshot(); snapshot.TargetSeconds != 7*60 {
		t.Fatalf("next rest target = %d, want %d", snapshot.TargetSeconds, 7*60)
	}
}

func TestApplyConfigWhileInterruptedReturnsToStopped(t *testing.T) {
	controller, _, _ := newTestController(t, classicConfig())
	controller.ToggleStartInterrupt()
	tickN(controller, 5)
	controller.ToggleStartInterrupt()

	if err := controller.ApplyConfig(classicConfig()); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	snapshot := controller.Snapshot()
	if snapshot.Phase != PhaseStopped || snapshot.ElapsedSeconds != 0 {
		t.Fatalf("snapshot = %+v, want stopped baseline", snapshot)
	}
	if snapshot.Counters.Interruptions != 1 {
		t.Fatalf("Interruptions = %d, want 1", snapshot.Counters.Interruptions)
	}
}

func TestWorkOverflowEntersShortRest(t *testing.T) {
	controller, clock, alert := newTestController(t, classicConfig())
	controller.ToggleStartInterrupt()
	if clock.starts != 1 {
		t.Fatalf("clock starts = %d, want 1", clock.starts)
	}

	tickN(controller, 1500-1)
	if snapshot := controller.Snapshot(); snapshot.Phase != PhaseWorking {
		t.Fatalf("Phase = %s before overflow, want working", snapshot.Phase)
	}
	if len(alert.events) != 0 {
		t.Fatalf("alert fired early")
	}

	controller.Tick()
	snapshot := controller.Snapshot()
	if snapshot.Phase != PhaseShortResting {
		t.Fatalf("Phase = %s, want short_resting", snapshot.Phase)
	}
	if snapshot.Counters.Pomodoros != 1 {
		t.Fatalf("Pomodoros = %d, want 1", snapshot.Counters.Pomodoros)
	}
	if snapshot.RemainingSeconds != 300 {
		t.Fatalf("RemainingSeconds = %d, want 300", snapshot.RemainingSeconds)
	}
	if snapshot.ElapsedSeconds != 0 || snapshot.ProgressFraction != 0 {
		t.Fatalf("rest did not start at baseline: %+v", snapshot)
	}
	if !snapshot.Running || clock.stops != 0 {
		t.Fatalf("clock should keep running through rests")
	}
	if len(alert.events) != 1 || alert.events[0].Completed != PhaseWorking {
		t.Fatalf("alert events = %+v, want one completion of working", alert.events)
	}
}

func TestCycleOfFourHasOneLongRest(t *testing.T) {
	controller, _, alert := newTestController(t, classicConfig())
	controller.ToggleStartInterrupt()

	var rests []Phase
	for i := 0; i < 4; i++ {
		tickN(controller, 1500)
		snapshot := controller.Snapshot()
		rests = append(rests, snapshot.Phase)
		tickN(controller, snapshot.TargetSeconds)
		if phase := controller.Snapshot().Phase; phase != PhaseWorking {
			t.Fatalf("after rest %d phase = %s, want working", i, phase)
		}
	}

	long := 0
	for _, phase := range rests {
		if phase == PhaseLongResting {
			long++
		}
	}
	if long != 1 || rests[3] != PhaseLongResting {
		t.Fatalf("rests = %v, want exactly one long rest in fourth place", rests)
	}

	counters := controller.Snapshot().Counters
	want := Counters{Pomodoros: 4, ShortRests: 3, LongRests: 1}
	if counters != want {
		t.Fatalf("Counters = %+v, want %+v", counters, want)
	}
	if len(alert.events) != 8 {
		t.Fatalf("alerts = %d, want 8", len(alert.events))
	}
}

func TestCycleOfOneAlwaysLongRest(t *testing.T) {
	config := classicConfig()
	config.PomodoroMinutes = 1
	config.PomodorosPerCycle = 1
	controller, _, _ := newTestController(t, config)
	controller.ToggleStartInterrupt()

	for i := 0; i < 3; i++ {
		tickN(controller, 60)
		snapshot := controller.Snapshot()
		if snapshot.Phase != PhaseLongResting {
			t.Fatalf("rest %d = %s, want long_resting", i, snapshot.Phase)
		}
		tickN(controller, snapshot.TargetSeconds)
	}
}

func TestInterruptFreezesProgress(t *testing.T) {
	controller, clock, _ := newTestController(t, classicConfig())
	controller.ToggleStartInterrupt()
	tickN(controller, 100)
	before := controller.Snapshot()

	controller.ToggleStartInterrupt()
	after := controller.Snapshot()
	if after.Phase != PhaseInterrupted {
		t.Fatalf("Phase = %s, want interrupted", after.Phase)
	}
	if after.Running || clock.stops != 1 {
		t.Fatalf("clock still running after interrupt")
	}
	if after.Counters.Interruptions != 1 {
		t.Fatalf("Interruptions = %d, want 1", after.Counters.Interruptions)
	}
	if after.ElapsedSeconds != 100 || after.ProgressFraction != before.ProgressFraction {
		t.Fatalf("progress not frozen: before %+v after %+v", before, after)
	}
	if after.StartButtonLabel != "Resume" {
		t.Fatalf("StartButtonLabel = %q, want Resume", after.StartButtonLabel)
	}

	controller.Tick()
	if got := controller.Snapshot().ElapsedSeconds; got != 100 {
		t.Fatalf("tick while interrupted advanced elapsed to %d", got)
	}
}

func TestResumeRestartsPomodoro(t *testing.T) {
	controller, clock, _ := newTestController(t, classicConfig())
	controller.ToggleStartInterrupt()
	tickN(controller, 100)
	controller.ToggleStartInterrupt()
	controller.ToggleStartInterrupt()

	snapshot := controller.Snapshot()
	if snapshot.Phase != PhaseWorking || snapshot.ElapsedSeconds != 0 || !snapshot.Running {
		t.Fatalf("snapshot = %+v, want fresh working phase", snapshot)
	}
	if clock.starts != 2 {
		t.Fatalf("clock starts = %d, want 2", clock.starts)
	}
}

func TestStopDuringRest(t *testing.T) {
	controller, clock, _ := newTestController(t, classicConfig())
	controller.ToggleStartInterrupt()
	tickN(controller, 1500+30)
	if label := controller.Snapshot().StartButtonLabel; label != "Stop" {
		t.Fatalf("StartButtonLabel during rest = %q, want Stop", label)
	}

	controller.ToggleStartInterrupt()
	snapshot := controller.Snapshot()
	if snapshot.Phase != PhaseStopped || snapshot.Running {
		t.Fatalf("snapshot = %+v, want stopped", snapshot)
	}
	if snapshot.ProgressFraction != 0 || snapshot.RemainingSeconds != 1500 {
		t.Fatalf("stop did not restore baseline: %+v", snapshot)
	}
	if snapshot.Counters.Interruptions != 0 || snapshot.Counters.ShortRests != 0 {
		t.Fatalf("stopping a rest must not touch counters: %+v", snapshot.Counters)
	}
	if clock.stops != 1 {
		t.Fatalf("clock stops = %d, want 1", clock.stops)
	}
}

func TestResetCounters(t *testing.T) {
	controller, _, _ := newTestController(t, classicConfig())
	controller.ToggleStartInterrupt()
	tickN(controller, 1500)

	err := controller.ResetCounters()
	if !errors.Is(err, ErrNotAllowedInState) {
		t.Fatalf("ResetCounters() while running = %v, want ErrNotAllowedInState", err)
	}
	if got := controller.Snapshot().Counters.Pomodoros; got != 1 {
		t.Fatalf("counters changed by rejected reset: %d", got)
	}

	controller.ToggleStartInterrupt()
	controller.ToggleStartInterrupt()
	controller.ToggleStartInterrupt()
	snapshot := controller.Snapshot()
	if snapshot.Phase != PhaseInterrupted || !snapshot.ResetButtonEnabled {
		t.Fatalf("snapshot = %+v, want interrupted with reset enabled", snapshot)
	}

	if err := controller.ResetCounters(); err != nil {
		t.Fatalf("ResetCounters: %v", err)
	}
	snapshot = controller.Snapshot()
	if snapshot.Counters != (Counters{}) {
		t.Fatalf("Counters = %+v, want zero", snapshot.Counters)
	}
	if snapshot.Phase != PhaseStopped || snapshot.ResetButtonEnabled {
		t.Fatalf("snapshot = %+v, want stopped baseline with reset disabled", snapshot)
	}
}

func TestButtonStates(t *testing.T) {
	controller, _, _ := newTestController(t, classicConfig())

	snapshot := controller.Snapshot()
	if snapshot.StartButtonLabel != "Start" || !snapshot.ConfigureButtonEnabled || snapshot.ResetButtonEnabled {
		t.Fatalf("stopped buttons = %+v", snapshot)
	}

	controller.ToggleStartInterrupt()
	snapshot = controller.Snapshot()
	if snapshot.StartButtonLabel != "Interrupt" || snapshot.ConfigureButtonEnabled || snapshot.ResetButtonEnabled {
		t.Fatalf("working buttons = %+v", snapshot)
	}
}

func TestTickIgnoredWhenStopped(t *testing.T) {
	controller, _, alert := newTestController(t, classicConfig())
	tickN(controller, 5000)
	snapshot := controller.Snapshot()
	if snapshot.ElapsedSeconds != 0 || snapshot.Phase != PhaseStopped || len(alert.events) != 0 {
		t.Fatalf("ticks while stopped changed state: %+v", snapshot)
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	config := classicConfig()
	config.PomodoroMinutes = 1
	controller, _, _ := newTestController(t, config)
	events := controller.Subscribe(100)

	controller.ToggleStartInterrupt()
	tickN(controller, 60)

	var types []EventType
	for len(events) > 0 {
		types = append(types, (<-events).Type)
	}
	if len(types) != 62 {
		t.Fatalf("received %d events, want 62", len(types))
	}
	if types[0] != EventStateChange || types[60] != EventPhaseCompleted || types[61] != EventStateChange {
		t.Fatalf("unexpected event order: first=%s completed=%s last=%s", types[0], types[60], types[61])
	}

	controller.Dispose()
	if _, ok := <-events; ok {
		t.Fatalf("channel not closed after Dispose")
	}
}

func TestUnknownPhasePanics(t *testing.T) {
	controller, _, _ := newTestController(t, classicConfig())
	controller.phase = Phase("bogus")

	defer func() {
		recovered := recover()
		if _, ok := recovered.(InvariantViolation); !ok {
			t.Fatalf("recover() = %v, want InvariantViolation", recovered)
		}
	}()
	controller.ToggleStartInterrupt()
}

func TestTickFromPreviousClockRunIsDropped(t *testing.T) {
	controller, clock, _ := newTestController(t, classicConfig())

	controller.ToggleStartInterrupt()
	staleTick := clock.tick
	controller.ToggleStartInterrupt()
	controller.ToggleStartInterrupt()
	if clock.starts != 2 {
		t.Fatalf("clock starts = %d, want 2", clock.starts)
	}

	staleTick()
	if got := controller.Snapshot().ElapsedSeconds; got != 0 {
		t.Fatalf("elapsed after stale tick = %d, want 0", got)
	}

	clock.tick()
	if got := controller.Snapshot().ElapsedSeconds; got != 1 {
		t.Fatalf("elapsed after current tick = %d, want 1", got)
	}
}

func TestTickReleasesLockOnUnknownPhase(t *testing.T) {
	controller, _, _ := newTestController(t, classicConfig())
	controller.phase = Phase("bogus")

	func() {
		defer func() {
			if _, ok := recover().(InvariantViolation); !ok {
				t.Fatalf("Tick did not panic with InvariantViolation")
			}
		}()
		controller.Tick()
	}()

	if !controller.mu.TryLock() {
		t.Fatalf("controller lock still held after panic")
	}
	controller.mu.Unlock()
}
