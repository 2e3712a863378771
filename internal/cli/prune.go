package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneBefore string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete wallpapers older than the retention period",
	Long: `Delete catalog entries and image files older than the configured retention.
Use --before to delete everything before a specific date instead.`,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().StringVar(&pruneBefore, "before", "", "delete entries before this date (YYYYMMDD or YYYY-MM-DD)")
}

func runPrune(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var cutoff string
	if pruneBefore != "" {
		parsed, err := parseDateArg(pruneBefore)
		if err != nil {
			return err
		}
		cutoff = parsed
	} else {
		oldest, ok := appSettings.OldestDateStringToKeep(nowFunc())
		if !ok {
			fmt.Fprintln(out, FormatMuted("Retention is set to forever, nothing to prune"))
			return nil
		}
		cutoff = oldest
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	removed, err := store.DeleteOlderThan(cutoff)
	if err != nil {
		fmt.Fprintln(out, FormatError("Prune failed: "+err.Error()))
		return err
	}
	fmt.Fprintln(out, FormatSuccess(fmt.Sprintf("Removed %s older than %s",
		plural(removed, "wallpaper", "wallpapers"), formatDate(cutoff))))
	return nil
}
