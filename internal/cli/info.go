package cli

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ytget/bing-wallpaper/internal/model"
	"github.com/ytget/bing-wallpaper/internal/update"
)

var infoCopy bool

var infoCmd = &cobra.Command{
	Use:   "info [date]",
	Short: "Show details of a wallpaper",
	Long: `Show the title, credit and copyright link of a wallpaper. Without a date the
current wallpaper is shown, or the newest one if none was set yet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVarP(&infoCopy, "copy", "c", false, "copy the copyright link to the clipboard")
}

func runInfo(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}

	var (
		d  model.ImageDescriptor
		ok bool
	)
	switch {
	case len(args) == 1:
		key, err := parseDateArg(args[0])
		if err != nil {
			return err
		}
		d, ok = store.Get(key)
	case appSettings.GetCurrentWallpaperStartDate() != "":
		d, ok = store.Get(appSettings.GetCurrentWallpaperStartDate())
	default:
		d, ok = store.Newest()
	}
	if !ok {
		return update.ErrNotFound
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, FormatTitle(d.Title()))
	fmt.Fprintln(out, RenderKeyValue("Date", formatDate(d.StartDate)))
	fmt.Fprintln(out, RenderKeyValue("Credit", d.Credit()))
	fmt.Fprintln(out, RenderKeyValue("Link", d.CopyrightLink))
	fmt.Fprintln(out, RenderKeyValue("File", store.ImagePath(d)))
	fmt.Fprintln(out, RenderKeyValue("On disk", fmt.Sprintf("%t", store.IsOnDisk(d))))

	if !infoCopy {
		return nil
	}
	if d.CopyrightLink == "" {
		return errors.New("wallpaper has no copyright link")
	}
	if err := clipboard.WriteAll(d.CopyrightLink); err != nil {
		return fmt.Errorf("copy link: %w", err)
	}
	fmt.Fprintln(out, FormatSuccess("Link copied to clipboard"))
	return nil
}
