package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the catalog and download again",
	Long:  `Delete every stored wallpaper except today's, then fetch the archive again.`,
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	svc, err := newService(false)
	if err != nil {
		return err
	}
	defer svc.Close()

	events, unsubscribe := svc.Orchestrator.Subscribe(0)
	defer unsubscribe()

	if err := svc.Orchestrator.ResetCatalog(); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), FormatError("Reset failed: "+err.Error()))
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess("Catalog reset"))
	return reportCycle(cmd, events)
}
