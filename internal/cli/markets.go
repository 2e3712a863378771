package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/bing-wallpaper/internal/bing"
)

var marketsPopular bool

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List the Bing market regions",
	Long: `List the market regions Bing publishes images for. Set one with
'bingwallpaper settings set market_region <code>'.`,
	RunE: runMarkets,
}

func init() {
	marketsCmd.Flags().BoolVar(&marketsPopular, "popular", false, "only show the most used markets")
}

func runMarkets(cmd *cobra.Command, args []string) error {
	markets := bing.Markets
	if marketsPopular {
		markets = bing.PopularMarkets()
	}

	current := appSettings.GetMarketRegion()
	out := cmd.OutOrStdout()
	for _, m := range markets {
		line := fmt.Sprintf("%-6s %s", m.Code, m.DisplayName())
		if m.Code == current {
			line = StyleCurrent.Render(line + " " + IconCurrent)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
