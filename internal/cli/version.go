package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/bing-wallpaper/internal/appupdate"
)

var (
	versionCheck bool
	releasesURL  = appupdate.DefaultReleasesURL
)

const versionCheckTimeout = 15 * time.Second

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Display version information",
	Aliases: []string{"v"},
	RunE:    runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check whether a newer release is available")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, FormatTitle("bingwallpaper")+" - Bing daily wallpaper downloader")
	fmt.Fprintln(out, RenderKeyValue("Version", Version))

	if !versionCheck {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), versionCheckTimeout)
	defer cancel()

	result, err := appupdate.NewChecker(releasesURL, nil).Check(ctx, Version)
	if err != nil {
		fmt.Fprintln(out, FormatError("Update check failed: "+err.Error()))
		return err
	}
	if !result.UpdateAvailable {
		fmt.Fprintln(out, FormatSuccess("You are running the latest version ("+result.LatestVersion+")"))
		return nil
	}
	fmt.Fprintln(out, FormatWarning("Version "+result.LatestVersion+" is available"))
	fmt.Fprintln(out, RenderKeyValue("Download", result.ReleaseURL))
	return nil
}
