package update

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ytget/bing-wallpaper/internal/logging"
	"github.com/ytget/bing-wallpaper/internal/model"
	"github.com/ytget/bing-wallpaper/internal/notify"
	"github.com/ytget/bing-wallpaper/internal/schedule"
)

func nextFetchInterval(now time.Time, settings Settings) time.Duration {
	return schedule.NextFetchInterval(now, settings.GetLastUpdate(), settings.ScheduleConfig())
}

// beginUpdate starts a fetch cycle off the loop goroutine
func (o *Orchestrator) beginUpdate() {
	if o.state.IsUpdating {
		return
	}
	if !o.state.IsNetworkAvailable {
		slog.Info("network unavailable, skipping update")
		o.cancelTimer()
		o.setIdle()
		return
	}

	o.state.IsUpdating = true
	o.state.Phase = model.PhaseUpdating
	o.state.NextUpdateTime = nil
	o.settings.SetLastUpdate(o.clock.Now())
	o.publishStatus()

	ctx, cancel := context.WithTimeout(o.ctx, cycleTimeout)
	ctx = logging.WithCycleID(ctx, logging.NewCycleID())
	market := o.settings.GetMarketRegion()
	slog.InfoContext(ctx, "update cycle started", "market", market, "retry", o.state.RetryCount)

	go func() {
		entries, err := o.fetcher.DownloadImageEntries(ctx, FetchCount, market)
		o.post(fetchDoneCmd{ctx: withCancel(ctx, cancel), entries: entries, err: err})
	}()
}

func (o *Orchestrator) handleFetchDone(c fetchDoneCmd) {
	ctx := c.ctx
	if c.err != nil {
		o.failCycle(ctx, fmt.Errorf("%w: %w", ErrFetchFailure, c.err))
		return
	}
	slog.InfoContext(ctx, "archive fetched", "entries", len(c.entries))

	var fresh []model.ImageDescriptor
	for _, e := range c.entries {
		if _, ok := o.catalog.Get(e.StartDate); !ok && model.IsValidStartDate(e.StartDate) {
			fresh = append(fresh, model.NewImageDescriptor(e))
		}
	}

	batch, err := o.catalog.Upsert(c.entries)
	if err != nil {
		o.abortCycle(ctx, fmt.Errorf("update catalog: %w", err))
		return
	}

	var missing []model.ImageDescriptor
	for _, d := range batch {
		if !o.catalog.IsOnDisk(d) {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		o.finishCycle(ctx, fresh, 0)
		return
	}

	go func() {
		downloaded := o.downloadMissing(ctx, missing)
		o.post(downloadsDoneCmd{ctx: ctx, newImages: fresh, downloaded: downloaded})
	}()
}

// downloadMissing fetches and stores each image; one failure never aborts the others
func (o *Orchestrator) downloadMissing(ctx context.Context, missing []model.ImageDescriptor) int {
	var downloaded atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DownloadConcurrency)
	for _, d := range missing {
		g.Go(func() error {
			data, err := o.fetcher.DownloadBinary(gctx, o.fetcher.ImageURL(d.URL))
			if err == nil {
				err = o.catalog.SaveImage(d, data)
			}
			if err != nil {
				slog.WarnContext(ctx, "image skipped", "start_date", d.StartDate,
					"error", fmt.Errorf("%w: %w", ErrImageDownload, err))
				return nil
			}
			downloaded.Add(1)
			slog.DebugContext(ctx, "image downloaded", "start_date", d.StartDate, "bytes", len(data))
			return nil
		})
	}
	_ = g.Wait()

	return int(downloaded.Load())
}

func (o *Orchestrator) handleDownloadsDone(c downloadsDoneCmd) {
	o.finishCycle(c.ctx, c.newImages, c.downloaded)
}

// finishCycle runs the post-download steps of a successful cycle and reschedules
func (o *Orchestrator) finishCycle(ctx context.Context, fresh []model.ImageDescriptor, downloaded int) {
	defer cancelContext(ctx)

	o.state.IsUpdating = false
	o.state.RetryCount = 0

	o.cleanup(ctx)

	if len(fresh) > 0 {
		o.events.publish(model.NewImagesEvent{Descriptors: fresh})
	}
	if downloaded > 0 {
		o.events.publish(model.DownloadedEvent{Count: downloaded})
	}

	if o.settings.GetAutoSetNewestWallpaper() {
		o.applyNewest(ctx)
	}

	if downloaded > 0 && o.notifier != nil && o.settings.GetShowUpdateNotification() {
		o.notifier.Notify(notify.UpdatedTitle, notify.DownloadedBody(downloaded))
	}

	slog.InfoContext(ctx, "update cycle finished", "new_images", len(fresh), "downloaded", downloaded)
	o.events.publish(model.CycleFinishedEvent{NewImages: len(fresh), Downloaded: downloaded})
	o.evaluate()
}

// failCycle arms a retry or, after MaxRetries, falls back to the normal schedule
func (o *Orchestrator) failCycle(ctx context.Context, err error) {
	defer cancelContext(ctx)

	o.state.IsUpdating = false
	o.state.RetryCount++
	retry := o.state.RetryCount

	o.events.publish(model.CycleFinishedEvent{Err: err, RetryCount: retry})

	if retry <= MaxRetries {
		slog.WarnContext(ctx, "update failed, retry scheduled", "error", err, "retry", retry, "delay", RetryDelay)
		o.armTimer(RetryDelay, model.PhaseRetryPending)
		return
	}

	slog.ErrorContext(ctx, "update failed, retries exhausted", "error", err, "retries", MaxRetries)
	o.state.RetryCount = 0
	o.evaluate()
}

// abortCycle reports a failure that retrying in a minute would not fix and
// returns to the normal schedule
func (o *Orchestrator) abortCycle(ctx context.Context, err error) {
	defer cancelContext(ctx)

	o.state.IsUpdating = false
	o.state.RetryCount = 0

	slog.ErrorContext(ctx, "update cycle aborted", "error", err)
	o.events.publish(model.CycleFinishedEvent{Err: err})
	o.evaluate()
}

func (o *Orchestrator) cleanup(ctx context.Context) {
	cutoff, ok := o.settings.OldestDateStringToKeep(o.clock.Now())
	if !ok {
		return
	}
	removed, err := o.catalog.DeleteOlderThan(cutoff)
	if err != nil {
		slog.ErrorContext(ctx, "retention cleanup failed", "cutoff", cutoff, "error", err)
		return
	}
	if removed > 0 {
		slog.InfoContext(ctx, "old images removed", "cutoff", cutoff, "count", removed)
	}
}

func (o *Orchestrator) applyNewest(ctx context.Context) {
	newest, ok := o.catalog.Newest()
	if !ok {
		return
	}
	if err := o.apply(ctx, newest); err != nil {
		slog.ErrorContext(ctx, "set newest wallpaper failed", "start_date", newest.StartDate, "error", err)
	}
}

// apply sets d and records it as the current wallpaper
func (o *Orchestrator) apply(ctx context.Context, d model.ImageDescriptor) error {
	if o.applier == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	if err := o.applier.Apply(ctx, d); err != nil {
		return err
	}
	o.settings.SetCurrentWallpaperStartDate(d.StartDate)
	o.events.publish(model.WallpaperEvent{Descriptor: d})
	return nil
}

func (o *Orchestrator) handleApplyWallpaper(startDate string) error {
	var (
		d  model.ImageDescriptor
		ok bool
	)
	if startDate == "" {
		d, ok = o.catalog.Newest()
	} else {
		d, ok = o.catalog.Get(startDate)
		ok = ok && o.catalog.IsOnDisk(d)
	}
	if !ok {
		if startDate == "" {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %s", ErrNotFound, startDate)
	}
	return o.apply(o.ctx, d)
}

func (o *Orchestrator) handleRestore() error {
	key := o.settings.GetCurrentWallpaperStartDate()
	if key == "" {
		return nil
	}
	d, ok := o.catalog.Get(key)
	if !ok || !o.catalog.IsOnDisk(d) {
		slog.Info("last wallpaper no longer available", "start_date", key)
		return nil
	}
	return o.apply(o.ctx, d)
}

func (o *Orchestrator) handleResetCatalog() error {
	if o.state.IsUpdating {
		return ErrUpdateInProgress
	}
	today := o.clock.Now().Format(model.StartDateLayout)
	removed, err := o.catalog.DeleteOlderThan(today)
	if err != nil {
		return fmt.Errorf("reset catalog: %w", err)
	}
	slog.Info("catalog reset", "removed", removed)

	o.handleForceRefresh()
	return nil
}

type cancelKey struct{}

// withCancel stores the cycle's cancel func so the loop can release it when the cycle ends
func withCancel(ctx context.Context, cancel context.CancelFunc) context.Context {
	return context.WithValue(ctx, cancelKey{}, cancel)
}

func cancelContext(ctx context.Context) {
	if cancel, ok := ctx.Value(cancelKey{}).(context.CancelFunc); ok {
		cancel()
	}
}
