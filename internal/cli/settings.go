package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/bing-wallpaper/internal/bing"
	"github.com/ytget/bing-wallpaper/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting in the settings file. A running daemon picks the change up.

Keys: image_download_path, keep_image_duration, update_interval_hours,
market_region, use_scheduled_update, scheduled_update_hour,
scheduled_update_minute, show_update_notification, auto_set_newest_wallpaper,
hide_menu_bar_icon`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	values := appSettings.Describe()
	values[config.KeySettingsVersion] = strconv.Itoa(appSettings.GetSettingsVersion())

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, FormatMuted(prefsStore.Path()))
	for _, k := range keys {
		fmt.Fprintln(out, RenderKeyValue(k, values[k]))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], strings.TrimSpace(args[1])
	if err := applySetting(appSettings, key, value); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), FormatError(err.Error()))
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess(key+" = "+appSettings.Describe()[key]))
	return nil
}

// applySetting validates value and stores it under key
func applySetting(s *config.Settings, key, value string) error {
	switch key {
	case config.KeyImageDownloadPath:
		if value == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
		s.SetImageDirectory(value)

	case config.KeyKeepImageDuration:
		r, err := parseRetentionArg(value)
		if err != nil {
			return err
		}
		s.SetKeepImageDuration(r)

	case config.KeyUpdateIntervalHours:
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil || !config.ValidUpdateIntervalHours(hours) {
			return fmt.Errorf("%s must be a number of hours between %g and %d", key,
				config.MinUpdateIntervalHours, config.MaxUpdateIntervalHours)
		}
		s.SetUpdateIntervalHours(hours)

	case config.KeyMarketRegion:
		m, ok := bing.LookupMarket(value)
		if !ok {
			return fmt.Errorf("unknown market %q, see 'bingwallpaper markets'", value)
		}
		s.SetMarketRegion(m.Code)

	case config.KeyScheduledUpdateHour:
		hour, err := parseIntInRange(key, value, 0, 23)
		if err != nil {
			return err
		}
		s.SetScheduledUpdateHour(hour)

	case config.KeyScheduledUpdateMinute:
		minute, err := parseIntInRange(key, value, 0, 59)
		if err != nil {
			return err
		}
		s.SetScheduledUpdateMinute(minute)

	case config.KeyUseScheduledUpdate, config.KeyShowUpdateNotification,
		config.KeyAutoSetNewestWallpaper, config.KeyHideMenuBarIcon:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		setBool(s, key, b)

	case config.KeyLastUpdate, config.KeySettingsVersion, config.KeyCurrentWallpaperDate:
		return fmt.Errorf("%s is read-only", key)

	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func setBool(s *config.Settings, key string, b bool) {
	switch key {
	case config.KeyUseScheduledUpdate:
		s.SetUseScheduledUpdate(b)
	case config.KeyShowUpdateNotification:
		s.SetShowUpdateNotification(b)
	case config.KeyAutoSetNewestWallpaper:
		s.SetAutoSetNewestWallpaper(b)
	case config.KeyHideMenuBarIcon:
		s.SetHideMenuBarIcon(b)
	}
}

// parseRetentionArg accepts a class index or a label such as "5 days"
func parseRetentionArg(value string) (config.RetentionDuration, error) {
	if n, err := strconv.Atoi(value); err == nil {
		r := config.RetentionDuration(n)
		if !r.IsValid() {
			return 0, fmt.Errorf("retention index %d out of range", n)
		}
		return r, nil
	}
	for _, r := range config.RetentionOptions() {
		if strings.EqualFold(r.String(), value) {
			return r, nil
		}
	}
	return config.ParseRetention(value)
}

func parseIntInRange(key, value string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s must be between %d and %d", key, lo, hi)
	}
	return n, nil
}
