package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/ytget/bing-wallpaper/internal/bing"
	"github.com/ytget/bing-wallpaper/internal/catalog"
	"github.com/ytget/bing-wallpaper/internal/config"
	"github.com/ytget/bing-wallpaper/internal/lifecycle"
	"github.com/ytget/bing-wallpaper/internal/notify"
	"github.com/ytget/bing-wallpaper/internal/platform"
	"github.com/ytget/bing-wallpaper/internal/update"
	"github.com/ytget/bing-wallpaper/internal/wallpaper"
)

// Options configure the wallpaper service
type Options struct {
	Settings *config.Settings
	Version  string

	Clock    clockwork.Clock // nil uses the real clock
	Notifier notify.Notifier // nil logs notifications
	BaseURL  string          // empty uses bing.DefaultBaseURL

	// Primary and Fallback override the osascript strategies
	Primary  wallpaper.Setter
	Fallback wallpaper.Setter

	// Probe overrides the TCP reachability probe
	Probe lifecycle.Prober

	// ScreenProbe overrides the display layout reader; macOS uses osascript
	ScreenProbe lifecycle.ScreenProbe

	// DisableMonitors skips the network monitor and wake detector
	DisableMonitors bool
}

// Service holds the running components
type Service struct {
	Settings     *config.Settings
	Catalog      *catalog.Store
	Client       *bing.Client
	Applier      *wallpaper.Applier
	Orchestrator *update.Orchestrator
	Hub          *lifecycle.Hub

	clock           clockwork.Clock
	probe           lifecycle.Prober
	screenProbe     lifecycle.ScreenProbe
	disableMonitors bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
	unsubs []func()
}

// New builds the service; nothing is fetched until Start
func New(opts Options) (*Service, error) {
	if opts.Settings == nil {
		return nil, fmt.Errorf("settings are required")
	}
	settings := opts.Settings
	settings.Migrate()

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	imageDir, err := config.ExpandPath(settings.GetImageDirectory())
	if err != nil {
		return nil, fmt.Errorf("resolve image directory: %w", err)
	}
	if err := platform.CreateDirectoryIfNotExists(imageDir); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	store, err := catalog.Open(imageDir)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = bing.DefaultBaseURL
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	client, err := bing.NewClient(baseURL, bing.WithUserAgent("bing-wallpaper/"+version))
	if err != nil {
		return nil, fmt.Errorf("init bing client: %w", err)
	}

	primary, fallback := opts.Primary, opts.Fallback
	if primary == nil || fallback == nil {
		defPrimary, defFallback := wallpaper.NewDarwinSetters()
		if primary == nil {
			primary = defPrimary
		}
		if fallback == nil {
			fallback = defFallback
		}
	}
	applier := wallpaper.NewApplier(primary, fallback, store.ImagePath)

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}

	orch := update.NewOrchestrator(update.Config{
		Clock:    clock,
		Settings: settings,
		Fetcher:  client,
		Catalog:  store,
		Applier:  applier,
		Notifier: notifier,
	})

	probe := opts.Probe
	if probe == nil {
		probe = lifecycle.TCPProbe(lifecycle.DefaultProbeAddress, lifecycle.DefaultProbeTimeout)
	}

	screenProbe := opts.ScreenProbe
	if screenProbe == nil && runtime.GOOS == platform.OSDarwin {
		screenProbe = platform.ScreenLayout
	}

	return &Service{
		Settings:        settings,
		Catalog:         store,
		Client:          client,
		Applier:         applier,
		Orchestrator:    orch,
		Hub:             lifecycle.NewHub(),
		clock:           clock,
		probe:           probe,
		screenProbe:     screenProbe,
		disableMonitors: opts.DisableMonitors,
	}, nil
}

// Start connects lifecycle signals, restores the last wallpaper and starts scheduling
func (s *Service) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.unsubs = append(s.unsubs,
		s.Orchestrator.Attach(s.Hub),
		s.Hub.Subscribe(func(sig lifecycle.Signal) {
			s.Applier.HandleSignal(ctx, sig)
		}),
	)

	if !s.disableMonitors {
		monitor := lifecycle.NewNetworkMonitor(s.clock, lifecycle.DefaultProbeInterval, s.probe, s.Hub)
		wake := lifecycle.NewWakeDetector(s.clock, lifecycle.DefaultWakeCheckInterval, lifecycle.DefaultWakeThreshold, s.Hub)
		s.wg.Add(2)
		go func() {
			defer s.wg.Done()
			monitor.Run(ctx)
		}()
		go func() {
			defer s.wg.Done()
			wake.Run(ctx)
		}()

		if s.screenProbe != nil {
			screens := lifecycle.NewScreenWatcher(s.clock, lifecycle.DefaultScreenCheckInterval, s.screenProbe, s.Hub)
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				screens.Run(ctx)
			}()
		}
	}

	if err := s.Orchestrator.RestoreLastWallpaper(); err != nil {
		slog.Warn("failed to restore last wallpaper", "error", err)
	}
	s.Orchestrator.Start()
}

// Close stops monitors and the orchestrator
func (s *Service) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.Orchestrator.Stop()
}
