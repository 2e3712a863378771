package update

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ytget/bing-wallpaper/internal/lifecycle"
	"github.com/ytget/bing-wallpaper/internal/model"
	"github.com/ytget/bing-wallpaper/internal/notify"
)

const (
	// MaxRetries is how many times a failed fetch is retried before the normal schedule resumes
	MaxRetries = 3

	// RetryDelay is the fixed backoff between fetch retries
	RetryDelay = 60 * time.Second

	// FetchCount is the number of archive entries requested per cycle
	FetchCount = 8

	// DownloadConcurrency bounds parallel image downloads within a cycle
	DownloadConcurrency = 4

	cycleTimeout   = 5 * time.Minute
	applyTimeout   = 30 * time.Second
	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second
)

// orchestratorCmd is the command interface for the Orchestrator actor.
type orchestratorCmd interface{ isOrchestratorCmd() }

type baseOrchestratorCmd struct{}

func (baseOrchestratorCmd) isOrchestratorCmd() {}

type startCmd struct{ baseOrchestratorCmd }

type forceRefreshCmd struct{ baseOrchestratorCmd }

type rescheduleCmd struct{ baseOrchestratorCmd }

type signalCmd struct {
	baseOrchestratorCmd
	signal lifecycle.Signal
}

type timerFiredCmd struct {
	baseOrchestratorCmd
	generation uint64
}

type fetchDoneCmd struct {
	baseOrchestratorCmd
	ctx     context.Context
	entries []model.ImageEntry
	err     error
}

type downloadsDoneCmd struct {
	baseOrchestratorCmd
	ctx        context.Context
	newImages  []model.ImageDescriptor
	downloaded int
}

type snapshotCmd struct {
	baseOrchestratorCmd
	replyChannel chan model.UpdateState
}

type applyWallpaperCmd struct {
	baseOrchestratorCmd
	startDate    string // empty selects the newest on-disk image
	errorChannel chan error
}

type restoreCmd struct {
	baseOrchestratorCmd
	errorChannel chan error
}

type resetCatalogCmd struct {
	baseOrchestratorCmd
	errorChannel chan error
}

type stopCmd struct{ baseOrchestratorCmd }

// Config holds the orchestrator's collaborators
type Config struct {
	Clock    clockwork.Clock
	Settings Settings
	Fetcher  Fetcher
	Catalog  Catalog
	Applier  Applier
	Notifier notify.Notifier // optional
}

// Orchestrator schedules and runs wallpaper fetch cycles
type Orchestrator struct {
	cmdCh  chan orchestratorCmd
	done   chan struct{}
	events *eventHub

	clock    clockwork.Clock
	settings Settings
	fetcher  Fetcher
	catalog  Catalog
	applier  Applier
	notifier notify.Notifier

	ctx    context.Context
	cancel context.CancelFunc

	// Owned by the run goroutine.
	state      model.UpdateState
	started    bool
	timer      clockwork.Timer
	generation uint64
}

// NewOrchestrator creates an orchestrator and starts its command loop.
// Scheduling begins with Start.
func NewOrchestrator(cfg Config) *Orchestrator {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	ctx, cancel := context.WithCancel(context.Background())

	o := &Orchestrator{
		cmdCh:    make(chan orchestratorCmd, 64),
		done:     make(chan struct{}),
		events:   newEventHub(),
		clock:    clock,
		settings: cfg.Settings,
		fetcher:  cfg.Fetcher,
		catalog:  cfg.Catalog,
		applier:  cfg.Applier,
		notifier: cfg.Notifier,
		ctx:      ctx,
		cancel:   cancel,
		state: model.UpdateState{
			Phase:              model.PhaseIdle,
			IsNetworkAvailable: true,
		},
	}
	go o.run()
	return o
}

// Start evaluates the schedule and either fetches now or arms the timer
func (o *Orchestrator) Start() {
	o.post(startCmd{})
}

// ForceRefresh cancels the pending timer and starts a cycle now.
// It is ignored while a cycle is running.
func (o *Orchestrator) ForceRefresh() {
	o.post(forceRefreshCmd{})
}

// Reschedule cancels the pending timer and recomputes it from the current settings
func (o *Orchestrator) Reschedule() {
	o.post(rescheduleCmd{})
}

// HandleSignal feeds a lifecycle signal into the orchestrator
func (o *Orchestrator) HandleSignal(sig lifecycle.Signal) {
	o.post(signalCmd{signal: sig})
}

// Attach subscribes the orchestrator to src and returns the unsubscribe func
func (o *Orchestrator) Attach(src lifecycle.Source) func() {
	return src.Subscribe(o.HandleSignal)
}

// Subscribe returns a channel of events and a func that closes it
func (o *Orchestrator) Subscribe(buffer int) (<-chan model.Event, func()) {
	return o.events.subscribe(buffer)
}

// Snapshot returns the current update state
func (o *Orchestrator) Snapshot() (model.UpdateState, error) {
	replyCh := make(chan model.UpdateState, 1)
	if !o.post(snapshotCmd{replyChannel: replyCh}) {
		return model.UpdateState{}, ErrStopped
	}

	timer := o.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case state := <-replyCh:
		return state, nil
	case <-o.done:
		return model.UpdateState{}, ErrStopped
	case <-timer.Chan():
		return model.UpdateState{}, fmt.Errorf("snapshot timed out after %v", commandTimeout)
	}
}

// ApplyWallpaper applies the descriptor for startDate (the newest on-disk image
// when empty) and remembers it as the current wallpaper
func (o *Orchestrator) ApplyWallpaper(startDate string) error {
	errCh := make(chan error, 1)
	return o.request(applyWallpaperCmd{startDate: startDate, errorChannel: errCh}, errCh)
}

// RestoreLastWallpaper re-applies the wallpaper that was current when the app last ran
func (o *Orchestrator) RestoreLastWallpaper() error {
	errCh := make(chan error, 1)
	return o.request(restoreCmd{errorChannel: errCh}, errCh)
}

// ResetCatalog deletes every stored image older than today and fetches again
func (o *Orchestrator) ResetCatalog() error {
	errCh := make(chan error, 1)
	return o.request(resetCatalogCmd{errorChannel: errCh}, errCh)
}

// Stop shuts the command loop down and closes all subscriber channels.
// In-flight requests are cancelled.
func (o *Orchestrator) Stop() {
	if !o.post(stopCmd{}) {
		return
	}

	timeout := o.clock.NewTimer(stopTimeout)
	defer timeout.Stop()

	select {
	case <-o.done:
		slog.Info("update orchestrator stopped")
	case <-timeout.Chan():
		slog.Warn("update orchestrator stop timed out", "timeout", stopTimeout)
	}
}

// post enqueues cmd; it returns false once the loop has exited
func (o *Orchestrator) post(cmd orchestratorCmd) bool {
	select {
	case <-o.done:
		return false
	default:
	}
	select {
	case o.cmdCh <- cmd:
		return true
	case <-o.done:
		return false
	}
}

// request posts cmd and waits for its reply on errCh. Operations that apply a
// wallpaper may run for a while, so there is no command timeout here.
func (o *Orchestrator) request(cmd orchestratorCmd, errCh chan error) error {
	if !o.post(cmd) {
		return ErrStopped
	}
	select {
	case err := <-errCh:
		return err
	case <-o.done:
		return ErrStopped
	}
}

func (o *Orchestrator) run() {
	defer close(o.done)
	defer o.events.close()
	defer o.cancel()

	for cmd := range o.cmdCh {
		if stop := o.dispatch(cmd); stop {
			o.cancelTimer()
			return
		}
	}
}

// dispatch handles one command; a panic in a handler is logged and the loop keeps running
func (o *Orchestrator) dispatch(cmd orchestratorCmd) (stop bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("update orchestrator panic recovered", "panic", r)
		}
	}()

	switch c := cmd.(type) {
	case startCmd:
		o.handleStart()
	case forceRefreshCmd:
		o.handleForceRefresh()
	case rescheduleCmd:
		o.handleReschedule()
	case signalCmd:
		o.handleSignal(c.signal)
	case timerFiredCmd:
		o.handleTimerFired(c.generation)
	case fetchDoneCmd:
		o.handleFetchDone(c)
	case downloadsDoneCmd:
		o.handleDownloadsDone(c)
	case snapshotCmd:
		c.replyChannel <- o.snapshot()
	case applyWallpaperCmd:
		c.errorChannel <- o.handleApplyWallpaper(c.startDate)
	case restoreCmd:
		c.errorChannel <- o.handleRestore()
	case resetCatalogCmd:
		c.errorChannel <- o.handleResetCatalog()
	case stopCmd:
		return true
	}
	return false
}

func (o *Orchestrator) snapshot() model.UpdateState {
	state := o.state
	if state.NextUpdateTime != nil {
		next := *state.NextUpdateTime
		state.NextUpdateTime = &next
	}
	return state
}

func (o *Orchestrator) handleStart() {
	if o.started {
		return
	}
	o.started = true
	slog.Info("update orchestrator started")
	o.evaluate()
}

func (o *Orchestrator) handleForceRefresh() {
	if o.state.IsUpdating {
		slog.Info("refresh ignored, update already running")
		return
	}
	o.started = true
	o.cancelTimer()
	o.state.RetryCount = 0
	o.beginUpdate()
}

func (o *Orchestrator) handleReschedule() {
	if o.state.IsUpdating {
		// The running cycle reschedules with the new settings when it ends.
		return
	}
	o.state.RetryCount = 0
	o.evaluate()
}

func (o *Orchestrator) handleSignal(sig lifecycle.Signal) {
	switch sig {
	case lifecycle.SignalSleep:
		o.cancelTimer()
		o.state.IsSuspended = true
		slog.Info("system sleeping, update timer suspended")
		if !o.state.IsUpdating {
			o.setIdle()
		}

	case lifecycle.SignalWake:
		o.state.IsSuspended = false
		slog.Info("system woke, recomputing schedule")
		if o.started {
			o.evaluate()
		}

	case lifecycle.SignalNetworkDown:
		o.state.IsNetworkAvailable = false

	case lifecycle.SignalNetworkUp:
		wasDown := !o.state.IsNetworkAvailable
		o.state.IsNetworkAvailable = true
		if wasDown && o.started {
			slog.Info("network available again, re-evaluating schedule")
			o.evaluate()
		}
	}
}

func (o *Orchestrator) handleTimerFired(generation uint64) {
	if generation != o.generation || o.timer == nil {
		return
	}
	o.timer = nil
	o.beginUpdate()
}

// evaluate cancels any timer and either starts a cycle now or arms the timer
func (o *Orchestrator) evaluate() {
	o.cancelTimer()
	if o.state.IsUpdating {
		return
	}
	if !o.state.IsNetworkAvailable {
		slog.Info("network unavailable, waiting before scheduling")
		o.setIdle()
		return
	}

	now := o.clock.Now()
	wait := nextFetchInterval(now, o.settings)
	if wait == 0 {
		o.beginUpdate()
		return
	}
	o.armTimer(wait, model.PhaseScheduled)
}

func (o *Orchestrator) armTimer(wait time.Duration, phase model.UpdatePhase) {
	o.cancelTimer()
	o.generation++
	generation := o.generation
	o.timer = o.clock.AfterFunc(wait, func() {
		o.post(timerFiredCmd{generation: generation})
	})

	next := o.clock.Now().Add(wait)
	o.state.Phase = phase
	o.state.NextUpdateTime = &next
	slog.Info("next update scheduled", "at", next.Format(time.RFC3339), "in", wait.Round(time.Second), "phase", phase.String())
	o.publishStatus()
}

func (o *Orchestrator) cancelTimer() {
	if o.timer == nil {
		return
	}
	o.timer.Stop()
	o.timer = nil
	o.generation++
}

func (o *Orchestrator) setIdle() {
	o.state.Phase = model.PhaseIdle
	o.state.NextUpdateTime = nil
	o.publishStatus()
}

func (o *Orchestrator) publishStatus() {
	var next *time.Time
	if o.state.NextUpdateTime != nil {
		t := *o.state.NextUpdateTime
		next = &t
	}
	o.events.publish(model.StatusEvent{NextUpdate: next, IsUpdating: o.state.IsUpdating})
}
