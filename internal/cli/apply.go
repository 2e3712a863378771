package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply [date]",
	Short: "Set a downloaded wallpaper as the desktop background",
	Long: `Set the wallpaper for the given date (YYYYMMDD or YYYY-MM-DD) as the desktop
background. Without a date the newest downloaded image is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		parsed, err := parseDateArg(args[0])
		if err != nil {
			return err
		}
		key = parsed
	}

	svc, err := newService(false)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Orchestrator.ApplyWallpaper(key); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), FormatError("Could not set wallpaper: "+err.Error()))
		return err
	}

	current := appSettings.GetCurrentWallpaperStartDate()
	title := current
	if d, ok := svc.Catalog.Get(current); ok && d.Title() != "" {
		title = d.Title()
	}
	fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess(fmt.Sprintf("Wallpaper set: %s (%s)", title, formatDate(current))))
	return nil
}
