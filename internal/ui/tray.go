package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/atotto/clipboard"

	"github.com/ytget/bing-wallpaper/internal/appupdate"
	"github.com/ytget/bing-wallpaper/internal/config"
	"github.com/ytget/bing-wallpaper/internal/model"
	"github.com/ytget/bing-wallpaper/internal/notify"
	"github.com/ytget/bing-wallpaper/internal/platform"
)

// Controller is the part of the update orchestrator the UI drives
type Controller interface {
	ForceRefresh()
	Reschedule()
	Snapshot() (model.UpdateState, error)
	Subscribe(buffer int) (<-chan model.Event, func())
	ApplyWallpaper(startDate string) error
	ResetCatalog() error
}

// Library lists the stored images
type Library interface {
	OnDisk() []model.ImageDescriptor
	ImagePath(d model.ImageDescriptor) string
}

// TrayOptions configure the tray menu
type TrayOptions struct {
	App        fyne.App
	Settings   *config.Settings
	Controller Controller
	Library    Library
	Checker    *appupdate.Checker
	Notifier   notify.Notifier
	Version    string
}

// Tray is the menu bar menu
type Tray struct {
	app      fyne.App
	settings *config.Settings
	ctl      Controller
	library  Library
	checker  *appupdate.Checker
	notifier notify.Notifier
	version  string
	loc      *Localization
	browser  *Browser

	settingsWindow *SettingsWindow

	menu        *fyne.Menu
	titleItem   *fyne.MenuItem
	creditItem  *fyne.MenuItem
	prevItem    *fyne.MenuItem
	nextItem    *fyne.MenuItem
	openItem    *fyne.MenuItem
	revealItem  *fyne.MenuItem
	aboutItem   *fyne.MenuItem
	copyItem    *fyne.MenuItem
	statusItem  *fyne.MenuItem
	unsubscribe func()
}

// NewTray builds the tray menu; call Install to show it
func NewTray(opts TrayOptions) *Tray {
	loc := NewLocalization()
	loc.SetLanguage("system")

	t := &Tray{
		app:      opts.App,
		settings: opts.Settings,
		ctl:      opts.Controller,
		library:  opts.Library,
		checker:  opts.Checker,
		notifier: opts.Notifier,
		version:  opts.Version,
		loc:      loc,
		browser:  NewBrowser(nil, ""),
	}
	if t.notifier == nil {
		t.notifier = notify.LogNotifier{}
	}
	t.settingsWindow = NewSettingsWindow(opts.App, opts.Settings, opts.Controller, loc)
	t.menu = t.buildMenu()
	t.reloadImages()
	return t
}

// Install places the menu in the system tray. It returns false when the
// driver has no tray or the icon is hidden in settings.
func (t *Tray) Install() bool {
	if t.settings.GetHideMenuBarIcon() {
		slog.Info("menu bar icon hidden by settings")
		return false
	}
	desk, ok := t.app.(desktop.App)
	if !ok {
		slog.Warn("system tray not supported by this driver")
		return false
	}
	desk.SetSystemTrayMenu(t.menu)
	desk.SetSystemTrayIcon(LoadTrayIcon())
	return true
}

// Listen follows orchestrator events until Close
func (t *Tray) Listen() {
	events, unsubscribe := t.ctl.Subscribe(0)
	t.unsubscribe = unsubscribe
	go func() {
		for ev := range events {
			t.handleEvent(ev)
		}
	}()
}

// Close stops following events
func (t *Tray) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

// ShowSettings opens the settings window
func (t *Tray) ShowSettings() {
	t.settingsWindow.Show()
}

// Menu returns the tray menu
func (t *Tray) Menu() *fyne.Menu {
	return t.menu
}

func (t *Tray) handleEvent(ev model.Event) {
	switch ev.(type) {
	case model.StatusEvent:
		state, err := t.ctl.Snapshot()
		if err != nil {
			slog.Debug("status snapshot unavailable", "error", err)
			return
		}
		fyne.Do(func() { t.setStatus(state) })
	case model.NewImagesEvent, model.DownloadedEvent, model.WallpaperEvent:
		fyne.Do(t.reloadImages)
	}
}

func (t *Tray) buildMenu() *fyne.Menu {
	t.titleItem = fyne.NewMenuItem(t.loc.GetText(KeyNoImage), nil)
	t.titleItem.Disabled = true
	t.creditItem = fyne.NewMenuItem("", nil)
	t.creditItem.Disabled = true

	t.prevItem = fyne.NewMenuItem(t.loc.GetText(KeyPrevious), t.onPrevious)
	t.nextItem = fyne.NewMenuItem(t.loc.GetText(KeyNext), t.onNext)
	t.openItem = fyne.NewMenuItem(t.loc.GetText(KeyOpenImage), t.onOpenImage)
	t.revealItem = fyne.NewMenuItem(t.loc.GetText(KeyRevealImage), t.onRevealImage)
	t.aboutItem = fyne.NewMenuItem(t.loc.GetText(KeyAboutImage), t.onAboutImage)
	t.copyItem = fyne.NewMenuItem(t.loc.GetText(KeyCopyLink), t.onCopyLink)

	t.statusItem = fyne.NewMenuItem(t.loc.GetText(KeyStatusIdle), nil)
	t.statusItem.Disabled = true

	refreshItem := fyne.NewMenuItem(t.loc.GetText(KeyRefresh), t.ctl.ForceRefresh)
	settingsItem := fyne.NewMenuItem(t.loc.GetText(KeySettings), t.ShowSettings)
	updatesItem := fyne.NewMenuItem(t.loc.GetText(KeyCheckUpdates), t.onCheckUpdates)
	quitItem := fyne.NewMenuItem(t.loc.GetText(KeyQuit), t.app.Quit)
	quitItem.IsQuit = true

	return fyne.NewMenu(t.loc.GetText(KeyAppTitle),
		t.titleItem,
		t.creditItem,
		fyne.NewMenuItemSeparator(),
		t.prevItem,
		t.nextItem,
		fyne.NewMenuItemSeparator(),
		t.openItem,
		t.revealItem,
		t.aboutItem,
		t.copyItem,
		fyne.NewMenuItemSeparator(),
		t.statusItem,
		refreshItem,
		fyne.NewMenuItemSeparator(),
		settingsItem,
		updatesItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)
}

// reloadImages re-reads the library and selects the current wallpaper
func (t *Tray) reloadImages() {
	t.browser.Reset(t.library.OnDisk(), t.settings.GetCurrentWallpaperStartDate())
	t.updateImageItems()
}

func (t *Tray) updateImageItems() {
	d, ok := t.browser.Current()
	if ok {
		t.titleItem.Label = TruncateLabel(d.Title(), MenuTitleMaxRunes)
		t.creditItem.Label = TruncateLabel(d.Credit(), MenuTitleMaxRunes)
	} else {
		t.titleItem.Label = t.loc.GetText(KeyNoImage)
		t.creditItem.Label = ""
	}

	t.prevItem.Disabled = !t.browser.HasPrevious()
	t.nextItem.Disabled = !t.browser.HasNext()
	t.openItem.Disabled = !ok
	t.revealItem.Disabled = !ok
	t.aboutItem.Disabled = !ok || d.CopyrightLink == ""
	t.copyItem.Disabled = t.aboutItem.Disabled
	t.menu.Refresh()
}

func (t *Tray) setStatus(state model.UpdateState) {
	t.statusItem.Label = StatusText(t.loc, state)
	t.menu.Refresh()
}

func (t *Tray) onPrevious() {
	if d, ok := t.browser.Previous(); ok {
		t.updateImageItems()
		t.applyAsync(d)
	}
}

func (t *Tray) onNext() {
	if d, ok := t.browser.Next(); ok {
		t.updateImageItems()
		t.applyAsync(d)
	}
}

func (t *Tray) applyAsync(d model.ImageDescriptor) {
	go func() {
		if err := t.ctl.ApplyWallpaper(d.StartDate); err != nil {
			slog.Error("failed to set wallpaper", "start_date", d.StartDate, "error", err)
			t.notifier.Notify(t.loc.GetText(KeyApplyFailed), err.Error())
		}
	}()
}

func (t *Tray) onOpenImage() {
	d, ok := t.browser.Current()
	if !ok {
		return
	}
	if err := platform.OpenFileWithDefaultApp(t.library.ImagePath(d)); err != nil {
		slog.Error("failed to open image", "start_date", d.StartDate, "error", err)
	}
}

func (t *Tray) onRevealImage() {
	d, ok := t.browser.Current()
	if !ok {
		return
	}
	if err := platform.OpenFileInManager(t.library.ImagePath(d)); err != nil {
		slog.Error("failed to reveal image", "start_date", d.StartDate, "error", err)
	}
}

func (t *Tray) onAboutImage() {
	d, ok := t.browser.Current()
	if !ok || d.CopyrightLink == "" {
		return
	}
	if err := platform.OpenURL(d.CopyrightLink); err != nil {
		slog.Error("failed to open copyright link", "url", d.CopyrightLink, "error", err)
	}
}

func (t *Tray) onCopyLink() {
	d, ok := t.browser.Current()
	if !ok || d.CopyrightLink == "" {
		return
	}
	if err := clipboard.WriteAll(d.CopyrightLink); err != nil {
		slog.Error("failed to copy link", "error", err)
	}
}

func (t *Tray) onCheckUpdates() {
	if t.checker == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), UpdateCheckTimeout)
		defer cancel()

		title := t.loc.GetText(KeyAppTitle)
		result, err := t.checker.Check(ctx, t.version)
		if err != nil {
			slog.Warn("update check failed", "error", err)
			t.notifier.Notify(title, t.loc.GetText(KeyUpdateCheckFailed))
			return
		}
		if !result.UpdateAvailable {
			t.notifier.Notify(title, fmt.Sprintf(t.loc.GetText(KeyUpToDate), result.CurrentVersion))
			return
		}

		t.notifier.Notify(title, fmt.Sprintf(t.loc.GetText(KeyUpdateAvailable), result.LatestVersion))
		if err := platform.OpenURL(result.ReleaseURL); err != nil {
			slog.Error("failed to open release page", "url", result.ReleaseURL, "error", err)
		}
	}()
}
