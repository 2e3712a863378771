package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/bing-wallpaper/internal/bing"
	"github.com/ytget/bing-wallpaper/internal/config"
)

// SettingsWindow edits the persisted settings
type SettingsWindow struct {
	settings *config.Settings
	ctl      Controller
	loc      *Localization
	window   fyne.Window

	// UI components
	marketSelect    *widget.Select
	intervalEntry   *widget.Entry
	scheduledCheck  *widget.Check
	hourSelect      *widget.Select
	minuteSelect    *widget.Select
	retentionSelect *widget.Select
	notifyCheck     *widget.Check
	autoSetCheck    *widget.Check
	hideIconCheck   *widget.Check
	imageDirEntry   *widget.Entry
}

// NewSettingsWindow creates the settings window; it is hidden until Show
func NewSettingsWindow(app fyne.App, settings *config.Settings, ctl Controller, loc *Localization) *SettingsWindow {
	sw := &SettingsWindow{
		settings: settings,
		ctl:      ctl,
		loc:      loc,
		window:   app.NewWindow(loc.GetText(KeySettings)),
	}

	sw.createUI()
	return sw
}

// Show loads the current settings and displays the window
func (sw *SettingsWindow) Show() {
	sw.loadCurrentSettings()
	sw.window.Show()
	sw.window.RequestFocus()
}

func (sw *SettingsWindow) createUI() {
	marketOptions := make([]string, 0, len(bing.Markets))
	for _, m := range bing.Markets {
		marketOptions = append(marketOptions, m.DisplayName())
	}
	sw.marketSelect = widget.NewSelect(marketOptions, nil)

	sw.intervalEntry = widget.NewEntry()
	sw.intervalEntry.SetPlaceHolder(IntervalPlaceholder)

	sw.hourSelect = widget.NewSelect(paddedRange(HoursPerDay), nil)
	sw.minuteSelect = widget.NewSelect(paddedRange(MinutesPerHour), nil)
	sw.scheduledCheck = widget.NewCheck(sw.loc.GetText(KeyScheduledUpdate), sw.onScheduledToggled)

	retentionOptions := []string{}
	for _, r := range config.RetentionOptions() {
		retentionOptions = append(retentionOptions, r.String())
	}
	sw.retentionSelect = widget.NewSelect(retentionOptions, nil)

	sw.notifyCheck = widget.NewCheck(sw.loc.GetText(KeyShowNotification), nil)
	sw.autoSetCheck = widget.NewCheck(sw.loc.GetText(KeyAutoSetNewest), nil)
	sw.hideIconCheck = widget.NewCheck(sw.loc.GetText(KeyHideMenuBarIcon), nil)

	sw.imageDirEntry = widget.NewEntry()
	browseBtn := widget.NewButton(sw.loc.GetText(KeyBrowse), sw.onBrowseDirectory)
	imageDirRow := container.NewBorder(nil, nil, nil, browseBtn, sw.imageDirEntry)

	timeRow := container.NewHBox(sw.hourSelect, widget.NewLabel(":"), sw.minuteSelect)

	form := container.NewVBox(
		widget.NewLabel(sw.loc.GetText(KeyMarket)),
		sw.marketSelect,

		widget.NewSeparator(),
		widget.NewLabel(sw.loc.GetText(KeyIntervalHours)),
		sw.intervalEntry,
		sw.scheduledCheck,
		widget.NewLabel(sw.loc.GetText(KeyScheduledTime)),
		timeRow,

		widget.NewSeparator(),
		widget.NewLabel(sw.loc.GetText(KeyKeepImages)),
		sw.retentionSelect,
		widget.NewLabel(sw.loc.GetText(KeyImageDirectory)),
		imageDirRow,

		widget.NewSeparator(),
		sw.notifyCheck,
		sw.autoSetCheck,
		sw.hideIconCheck,
	)

	resetBtn := widget.NewButton(sw.loc.GetText(KeyResetDatabase), sw.onResetDatabase)
	saveBtn := widget.NewButton(sw.loc.GetText(KeySave), sw.onSave)
	saveBtn.Importance = widget.HighImportance
	buttons := container.NewBorder(nil, nil, resetBtn, saveBtn)

	sw.window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	sw.window.Resize(fyne.NewSize(SettingsWindowWidth, SettingsWindowHeight))
	sw.window.SetCloseIntercept(sw.window.Hide)
}

func (sw *SettingsWindow) loadCurrentSettings() {
	if m, ok := bing.LookupMarket(sw.settings.GetMarketRegion()); ok {
		sw.marketSelect.SetSelected(m.DisplayName())
	}
	sw.intervalEntry.SetText(strconv.FormatFloat(sw.settings.GetUpdateIntervalHours(), 'g', -1, 64))
	sw.hourSelect.SetSelected(fmt.Sprintf("%02d", sw.settings.GetScheduledUpdateHour()))
	sw.minuteSelect.SetSelected(fmt.Sprintf("%02d", sw.settings.GetScheduledUpdateMinute()))
	sw.scheduledCheck.SetChecked(sw.settings.GetUseScheduledUpdate())
	sw.onScheduledToggled(sw.scheduledCheck.Checked)
	sw.retentionSelect.SetSelected(sw.settings.GetKeepImageDuration().String())
	sw.notifyCheck.SetChecked(sw.settings.GetShowUpdateNotification())
	sw.autoSetCheck.SetChecked(sw.settings.GetAutoSetNewestWallpaper())
	sw.hideIconCheck.SetChecked(sw.settings.GetHideMenuBarIcon())
	sw.imageDirEntry.SetText(sw.settings.GetImageDirectory())
}

func (sw *SettingsWindow) onScheduledToggled(scheduled bool) {
	if scheduled {
		sw.intervalEntry.Disable()
		sw.hourSelect.Enable()
		sw.minuteSelect.Enable()
		return
	}
	sw.intervalEntry.Enable()
	sw.hourSelect.Disable()
	sw.minuteSelect.Disable()
}

func (sw *SettingsWindow) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sw.imageDirEntry.SetText(uri.Path())
	}, sw.window)
}

func (sw *SettingsWindow) onSave() {
	if err := sw.save(); err != nil {
		dialog.ShowError(err, sw.window)
		return
	}
	dialog.ShowInformation(sw.loc.GetText(KeySettings), sw.loc.GetText(KeySettingsSaved), sw.window)
}

// save validates the form, stores it and reschedules the next update
func (sw *SettingsWindow) save() error {
	interval, err := strconv.ParseFloat(strings.TrimSpace(sw.intervalEntry.Text), 64)
	if err != nil || !config.ValidUpdateIntervalHours(interval) {
		return errors.New(sw.loc.GetText(KeyInvalidInterval))
	}

	for _, m := range bing.Markets {
		if m.DisplayName() == sw.marketSelect.Selected {
			sw.settings.SetMarketRegion(m.Code)
			break
		}
	}
	sw.settings.SetUpdateIntervalHours(interval)
	sw.settings.SetUseScheduledUpdate(sw.scheduledCheck.Checked)
	if hour, err := strconv.Atoi(sw.hourSelect.Selected); err == nil {
		sw.settings.SetScheduledUpdateHour(hour)
	}
	if minute, err := strconv.Atoi(sw.minuteSelect.Selected); err == nil {
		sw.settings.SetScheduledUpdateMinute(minute)
	}
	if retention, err := config.ParseRetention(sw.retentionSelect.Selected); err == nil {
		sw.settings.SetKeepImageDuration(retention)
	}
	sw.settings.SetShowUpdateNotification(sw.notifyCheck.Checked)
	sw.settings.SetAutoSetNewestWallpaper(sw.autoSetCheck.Checked)
	sw.settings.SetHideMenuBarIcon(sw.hideIconCheck.Checked)
	if dir := strings.TrimSpace(sw.imageDirEntry.Text); dir != "" && dir != sw.settings.GetImageDirectory() {
		sw.settings.SetImageDirectory(dir)
		slog.Info("image directory changed, takes effect after restart", "dir", dir)
	}

	sw.ctl.Reschedule()
	return nil
}

func (sw *SettingsWindow) onResetDatabase() {
	dialog.ShowConfirm(sw.loc.GetText(KeyResetDatabase), sw.loc.GetText(KeyResetConfirm), func(confirmed bool) {
		if !confirmed {
			return
		}
		go func() {
			if err := sw.ctl.ResetCatalog(); err != nil {
				slog.Error("failed to reset database", "error", err)
				fyne.Do(func() { dialog.ShowError(err, sw.window) })
			}
		}()
	}, sw.window)
}

// paddedRange returns "00" through n-1, zero padded to two digits
func paddedRange(n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("%02d", i)
	}
	return values
}
