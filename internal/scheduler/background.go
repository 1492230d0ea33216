package scheduler

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/service"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
	"github.com/MKhiriev/go-inventory-sync/models"
	"k8s.io/utils/clock"
)

const (
	SyncJobID    = "inventory.sync"
	CleanupJobID = "inventory.cleanup"
)

// JobState is the lifecycle state of a background job.
type JobState uint8

const (
	StateUnregistered JobState = iota
	StateRegistered
	StateScheduled
	StateRunning
	StateCompleted
	StateExpired
)

var stateNames = [...]string{"unregistered", "registered", "scheduled", "running", "completed", "expired"}

func (s JobState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Syncer runs one sync cycle.
type Syncer interface {
	SyncInventory(ctx context.Context) (models.SyncResult, error)
}

// BackgroundScheduler owns the recurring sync and cleanup jobs. Each job
// moves Registered → Scheduled → Running → Completed|Expired and is submitted
// again right after every run, so exactly one request per job stays
// outstanding.
type BackgroundScheduler struct {
	tasks   TaskScheduler
	syncer  Syncer
	cleaner service.MaintenanceService
	cfg     config.Scheduler
	clock   clock.PassiveClock

	mu         sync.Mutex
	registered bool
	states     map[string]JobState

	logger *logger.Logger
}

func NewBackgroundScheduler(
	tasks TaskScheduler,
	syncer Syncer,
	cleaner service.MaintenanceService,
	cfg config.Scheduler,
	clk clock.PassiveClock,
	log *logger.Logger,
) *BackgroundScheduler {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &BackgroundScheduler{
		tasks:   tasks,
		syncer:  syncer,
		cleaner: cleaner,
		cfg:     cfg,
		clock:   clk,
		states:  make(map[string]JobState),
		logger:  log.WithComponent("background"),
	}
}

// RegisterBackgroundTasks binds both job handlers. Calling it again does
// nothing.
func (b *BackgroundScheduler) RegisterBackgroundTasks() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.registered {
		return nil
	}

	jobs := map[string]func(context.Context) error{
		SyncJobID:    b.runSync,
		CleanupJobID: b.cleaner.Cleanup,
	}
	for _, id := range []string{SyncJobID, CleanupJobID} {
		if err := b.tasks.Register(id, b.handler(id, jobs[id])); err != nil && !errors.Is(err, ErrJobAlreadyRegistered) {
			return err
		}
		b.states[id] = StateRegistered
	}
	b.registered = true
	return nil
}

// ScheduleSyncTask asks for the next sync run one SyncInterval from now,
// once the remote is reachable.
func (b *BackgroundScheduler) ScheduleSyncTask() {
	b.submit(Request{
		JobID:         SyncJobID,
		Constraints:   Constraints{RequiresNetwork: true},
		EarliestBegin: b.clock.Now().Add(b.cfg.SyncInterval),
	})
}

// ScheduleCleanupTask asks for the next cleanup run one CleanupInterval from
// now.
func (b *BackgroundScheduler) ScheduleCleanupTask() {
	b.submit(Request{
		JobID:         CleanupJobID,
		EarliestBegin: b.clock.Now().Add(b.cfg.CleanupInterval),
	})
}

func (b *BackgroundScheduler) State(jobID string) JobState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.states[jobID]
}

// Outstanding reports whether a run of jobID is waiting to start.
func (b *BackgroundScheduler) Outstanding(jobID string) bool {
	_, ok := b.tasks.Pending(jobID)
	return ok
}

// submit never escalates a refusal: the next manual or scheduled trigger
// recovers. A running job keeps its state; the handler moves it on when the
// run ends.
func (b *BackgroundScheduler) submit(req Request) {
	if err := b.tasks.Submit(req); err != nil {
		b.logger.Warn().Err(err).Str("func", "BackgroundScheduler.submit").
			Str("job", req.JobID).Msg("failed to schedule background task")
		return
	}
	b.markScheduled(req.JobID)
	b.logger.Debug().Str("func", "BackgroundScheduler.submit").
		Str("job", req.JobID).Time("earliest_begin", req.EarliestBegin).Msg("background task scheduled")
}

func (b *BackgroundScheduler) handler(jobID string, run func(context.Context) error) Handler {
	return func(ctx context.Context) error {
		b.setState(jobID, StateRunning)
		err := run(ctx)

		if errors.Is(context.Cause(ctx), ErrTaskExpired) {
			b.setState(jobID, StateExpired)
			logger.FromContext(ctx).Warn().Err(err).Str("func", "BackgroundScheduler.handler").
				Msg("background task expired before completing")
		} else {
			b.setState(jobID, StateCompleted)
		}

		b.reschedule(jobID)
		return err
	}
}

func (b *BackgroundScheduler) reschedule(jobID string) {
	switch jobID {
	case SyncJobID:
		b.ScheduleSyncTask()
	case CleanupJobID:
		b.ScheduleCleanupTask()
	}
}

func (b *BackgroundScheduler) runSync(ctx context.Context) error {
	ctx = utils.WithTrigger(ctx, utils.TriggerScheduler)
	_, err := b.syncer.SyncInventory(ctx)
	if errors.Is(err, service.ErrSyncInProgress) {
		logger.FromContext(ctx).Debug().Str("func", "BackgroundScheduler.runSync").
			Msg("a sync cycle is already running, skipping this occurrence")
		return nil
	}
	return err
}

func (b *BackgroundScheduler) markScheduled(jobID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.states[jobID] != StateRunning {
		b.states[jobID] = StateScheduled
	}
}

func (b *BackgroundScheduler) setState(jobID string, s JobState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.states[jobID] = s
}
