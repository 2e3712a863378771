package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/bing-wallpaper/internal/model"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch new images now",
	Long:  `Fetch the latest archive entries, download missing images and apply retention once.`,
	RunE:  runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	svc, err := newService(false)
	if err != nil {
		return err
	}
	defer svc.Close()

	events, unsubscribe := svc.Orchestrator.Subscribe(0)
	defer unsubscribe()

	svc.Orchestrator.ForceRefresh()
	return reportCycle(cmd, events)
}

// reportCycle waits for the running cycle and prints its outcome
func reportCycle(cmd *cobra.Command, events <-chan model.Event) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cycleTimeout)
	defer cancel()

	result, err := waitForCycle(ctx, events)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Err != nil {
		fmt.Fprintln(out, FormatError("Update failed: "+result.Err.Error()))
		return result.Err
	}
	if result.Downloaded == 0 {
		fmt.Fprintln(out, FormatSuccess("Already up to date"))
		return nil
	}
	fmt.Fprintln(out, FormatSuccess("Downloaded "+plural(result.Downloaded, "new wallpaper", "new wallpapers")))
	return nil
}
