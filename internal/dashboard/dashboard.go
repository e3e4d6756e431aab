// Package dashboard holds the Today Dashboard view model: the tasks due in
// the current local calendar day, a loading flag, and the completion action.
//
// State changes only happen through the Dashboard methods, which are meant
// to be called from a single goroutine (the UI event loop). Fetch and
// CompleteTask perform I/O without touching state so they can run elsewhere.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	apierrors "github.com/yukikurage/followup-tasks/internal/errors"
	"github.com/yukikurage/followup-tasks/internal/models"
	"github.com/yukikurage/followup-tasks/internal/utils"
)

// AlertUpdateFailed is shown when marking a task complete fails.
const AlertUpdateFailed = "Error updating task"

// Store is the query and update capability the dashboard consumes.
type Store interface {
	ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)
	MarkCompleted(ctx context.Context, id string) (int64, error)
}

// Window is the half-open due range [From, To) of a load.
type Window struct {
	From time.Time
	To   time.Time
}

// LoadRequest identifies one load. Seq increases with every BeginLoad so
// replies to superseded loads can be recognised and dropped.
type LoadRequest struct {
	Window
	Seq uint64
}

// TodayWindow returns [00:00:00, 23:59:59) of the local day containing now.
func TodayWindow(now time.Time) Window {
	from, to := utils.DayBounds(now)
	return Window{From: from, To: to}
}

type Dashboard struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger

	tasks   []models.Task
	loading bool
	loaded  bool
	alert   string
	seq     uint64
}

// New creates a dashboard. now defaults to time.Now.
func New(store Store, now func() time.Time, logger *slog.Logger) *Dashboard {
	if now == nil {
		now = time.Now
	}
	return &Dashboard{
		store:  store,
		now:    now,
		logger: logger.With(slog.String("component", "dashboard")),
		tasks:  []models.Task{},
	}
}

// Tasks returns the rows currently held.
func (d *Dashboard) Tasks() []models.Task { return d.tasks }

// Loading reports whether a load is in flight.
func (d *Dashboard) Loading() bool { return d.loading }

// Loaded reports whether at least one load has settled.
func (d *Dashboard) Loaded() bool { return d.loaded }

// Alert returns the pending blocking alert, if any.
func (d *Dashboard) Alert() string { return d.alert }

// DismissAlert clears the blocking alert.
func (d *Dashboard) DismissAlert() { d.alert = "" }

// Empty reports the terminal "no tasks" state: a load has settled and
// nothing is due.
func (d *Dashboard) Empty() bool {
	return d.loaded && !d.loading && len(d.tasks) == 0
}

// BeginLoad marks a load as started and returns what to query. Starting a
// load supersedes any load still in flight.
func (d *Dashboard) BeginLoad() LoadRequest {
	d.seq++
	d.loading = true
	return LoadRequest{Window: TodayWindow(d.now()), Seq: d.seq}
}

// Fetch queries the store for req. It does not modify the dashboard.
func (d *Dashboard) Fetch(ctx context.Context, req LoadRequest) ([]models.Task, error) {
	return d.store.ListDueBetween(ctx, req.From, req.To)
}

// FinishLoad settles the load numbered seq and reports whether it was
// applied. Replies to superseded loads are dropped. On failure the previous
// rows are kept and the error is only logged.
func (d *Dashboard) FinishLoad(seq uint64, tasks []models.Task, err error) bool {
	if seq != d.seq {
		d.logger.Debug("dropping stale load", slog.Uint64("seq", seq), slog.Uint64("latest", d.seq))
		return false
	}

	d.loading = false
	d.loaded = true

	if err != nil {
		d.logger.Error("error fetching tasks",
			slog.String("kind", apierrors.KindLoadFailed),
			slog.String("error", err.Error()))
		return true
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	d.tasks = tasks
	return true
}

// Load runs a full load synchronously.
func (d *Dashboard) Load(ctx context.Context) {
	req := d.BeginLoad()
	tasks, err := d.Fetch(ctx, req)
	d.FinishLoad(req.Seq, tasks, err)
}

// CompleteTask issues the status update. It does not modify the dashboard.
func (d *Dashboard) CompleteTask(ctx context.Context, id string) error {
	rows, err := d.store.MarkCompleted(ctx, id)
	if err != nil {
		return apierrors.Wrap(apierrors.KindUpdateFailed, AlertUpdateFailed, err)
	}
	if rows == 0 {
		d.logger.Debug("complete matched no rows", slog.String("task_id", id))
	}
	return nil
}

// FinishComplete records the outcome of CompleteTask. It returns true when
// the caller should reload; on failure it raises the blocking alert and
// leaves the rows as they are.
func (d *Dashboard) FinishComplete(id string, err error) bool {
	if err != nil {
		d.logger.Error("error updating task",
			slog.String("kind", apierrors.KindUpdateFailed),
			slog.String("task_id", id),
			slog.String("error", err.Error()))
		d.alert = AlertUpdateFailed
		return false
	}
	return true
}

// Complete marks id completed and reloads on success, synchronously.
func (d *Dashboard) Complete(ctx context.Context, id string) error {
	err := d.CompleteTask(ctx, id)
	if d.FinishComplete(id, err) {
		d.Load(ctx)
	}
	return err
}
