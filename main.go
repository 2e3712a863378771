package main

import (
	"context"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"

	wallpaperapp "github.com/ytget/bing-wallpaper/internal/app"
	"github.com/ytget/bing-wallpaper/internal/appupdate"
	"github.com/ytget/bing-wallpaper/internal/config"
	"github.com/ytget/bing-wallpaper/internal/logging"
	"github.com/ytget/bing-wallpaper/internal/notify"
	"github.com/ytget/bing-wallpaper/internal/ui"
)

// version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.bing-wallpaper"
	AppName = "Bing Wallpaper"

	EnvLogLevel  = "BING_WALLPAPER_LOG_LEVEL"
	EnvLogFormat = "BING_WALLPAPER_LOG_FORMAT"
)

func main() {
	logging.InitLogger(os.Getenv(EnvLogLevel), os.Getenv(EnvLogFormat))
	slog.Info("starting", "app", AppName, "version", version)

	myApp := app.NewWithID(AppID)

	settings := config.NewSettings(myApp)
	svc, err := wallpaperapp.New(wallpaperapp.Options{
		Settings: settings,
		Version:  version,
		Notifier: notify.NewFyneNotifier(myApp),
	})
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	tray := ui.NewTray(ui.TrayOptions{
		App:        myApp,
		Settings:   settings,
		Controller: svc.Orchestrator,
		Library:    svc.Catalog,
		Checker:    appupdate.NewChecker(appupdate.DefaultReleasesURL, nil),
		Notifier:   notify.NewFyneNotifier(myApp),
		Version:    version,
	})
	if !tray.Install() {
		// Without a menu bar icon the settings window is the only way in.
		tray.ShowSettings()
	}
	tray.Listen()

	myApp.Lifecycle().SetOnStopped(func() {
		tray.Close()
		svc.Close()
	})

	svc.Start(context.Background())
	myApp.Run()
}
