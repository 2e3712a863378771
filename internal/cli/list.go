package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listOnDisk bool

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List catalogued wallpapers",
	Aliases: []string{"ls"},
	Long: `List every wallpaper in the catalog, oldest first.

● the image is on disk
○ only the metadata is known
★ the current wallpaper`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listOnDisk, "on-disk", false, "only show downloaded images")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}

	items := store.All()
	if listOnDisk {
		items = store.OnDisk()
	}
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, FormatMuted("No wallpapers yet. Run 'bingwallpaper refresh' to fetch some."))
		return nil
	}

	current := appSettings.GetCurrentWallpaperStartDate()
	for _, d := range items {
		icon := IconMissing
		if store.IsOnDisk(d) {
			icon = IconOnDisk
		}
		line := fmt.Sprintf("%s %s  %s", icon, formatDate(d.StartDate), d.Title())
		if d.StartDate == current {
			line = StyleCurrent.Render(line + " " + IconCurrent)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, FormatMuted(plural(len(items), "wallpaper", "wallpapers")))
	return nil
}
