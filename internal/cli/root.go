package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ytget/bing-wallpaper/internal/config"
	"github.com/ytget/bing-wallpaper/internal/logging"
)

var (
	// Version is reported by the version command and sent as the user agent
	Version = "dev"

	// Global flags
	configPath string
	logLevel   string
	logFormat  string

	// Settings loaded by initializeApp
	prefsStore  *config.FileStore
	appSettings *config.Settings
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bingwallpaper",
	Short: "Bing daily wallpaper downloader",
	Long: FormatTitle("bingwallpaper") + " - Bing daily wallpaper downloader\n\n" +
		"Downloads Bing's daily images, keeps a local catalog and sets the newest\n" +
		"one as the desktop background. Run 'bingwallpaper run' to keep it updated.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultStorePath(), "settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(marketsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp sets up logging and loads the settings file
func initializeApp(cmd *cobra.Command, args []string) error {
	logging.InitLogger(logLevel, logFormat)

	store, err := config.OpenFileStore(configPath)
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	prefsStore = store
	appSettings = config.NewSettingsWithStore(store)
	appSettings.Migrate()
	return nil
}
