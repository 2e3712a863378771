package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ytget/bing-wallpaper/internal/config"
	"github.com/ytget/bing-wallpaper/internal/model"
	"github.com/ytget/bing-wallpaper/internal/update"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the update daemon in the foreground",
	Long: `Run the update engine without a menu bar icon.

The daemon fetches new images on the configured schedule, retries failed
fetches, waits for the network, and re-applies the wallpaper after the machine
wakes. Edits to the settings file are picked up without a restart.

Press Ctrl+C to stop.`,
	RunE: runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(true)
	if err != nil {
		return err
	}
	defer svc.Close()

	events, unsubscribe := svc.Orchestrator.Subscribe(0)
	defer unsubscribe()
	go logCycles(events)

	svc.Start(ctx)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, FormatSuccess("Bing wallpaper daemon started"))
	fmt.Fprintln(out, FormatMuted("Settings: "+prefsStore.Path()))
	fmt.Fprintln(out, FormatMuted("Catalog: "+plural(svc.Catalog.Len(), "wallpaper", "wallpapers")))
	fmt.Fprintln(out, FormatMuted("Press Ctrl+C to stop"))

	err = watchSettings(ctx, prefsStore.Path(), settingsDebounce, func() {
		reloadSettings(prefsStore, appSettings, svc.Orchestrator)
	})

	fmt.Fprintln(out, FormatMuted("Daemon stopped"))
	return err
}

// scheduleInputs are the settings that change when the next update happens
type scheduleInputs struct {
	schedule model.ScheduleConfig
	market   string
}

func currentScheduleInputs(settings *config.Settings) scheduleInputs {
	return scheduleInputs{schedule: settings.ScheduleConfig(), market: settings.GetMarketRegion()}
}

type rescheduler interface {
	Reschedule()
}

// reloadSettings re-reads the file and reschedules only when schedule inputs
// changed, so the daemon's own writes never reset a pending retry
func reloadSettings(store *config.FileStore, settings *config.Settings, orch rescheduler) bool {
	before := currentScheduleInputs(settings)
	store.Reload()
	after := currentScheduleInputs(settings)
	if before == after {
		return false
	}
	slog.Info("settings changed, rescheduling", "interval_hours", after.schedule.IntervalHours,
		"scheduled", after.schedule.UseScheduledTime, "market", after.market)
	orch.Reschedule()
	return true
}

func logCycles(events <-chan model.Event) {
	for ev := range events {
		switch e := ev.(type) {
		case model.CycleFinishedEvent:
			if e.Err != nil {
				slog.Warn("update cycle failed", "error", e.Err, "retry", e.RetryCount, "max_retries", update.MaxRetries)
				continue
			}
			slog.Info("update cycle complete", "new_images", e.NewImages, "downloaded", e.Downloaded)
		case model.WallpaperEvent:
			slog.Info("wallpaper set", "start_date", e.Descriptor.StartDate, "title", e.Descriptor.Title())
		}
	}
}

var _ rescheduler = (*update.Orchestrator)(nil)
