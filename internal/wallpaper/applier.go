package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/ytget/bing-wallpaper/internal/lifecycle"
	"github.com/ytget/bing-wallpaper/internal/model"
	"github.com/ytget/bing-wallpaper/internal/platform"
)

var (
	// ErrApplyFailed means neither strategy could set the picture
	ErrApplyFailed = errors.New("set wallpaper failed")

	// ErrNoImage means there is no image file to apply
	ErrNoImage = errors.New("no image available")
)

// PathResolver maps a descriptor to its image file
type PathResolver func(model.ImageDescriptor) string

// Applier sets the desktop picture and remembers what it applied
type Applier struct {
	mu       sync.Mutex
	primary  Setter
	fallback Setter
	pathOf   PathResolver

	current            *model.ImageDescriptor
	lastAppliedPath    string
	primaryUnavailable bool
}

// NewApplier creates an applier with explicit strategies
func NewApplier(primary, fallback Setter, pathOf PathResolver) *Applier {
	return &Applier{primary: primary, fallback: fallback, pathOf: pathOf}
}

// Apply makes d the current wallpaper. Re-applying the same image is skipped.
// On failure the previous wallpaper stays current.
func (a *Applier) Apply(ctx context.Context, d model.ImageDescriptor) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.applyLocked(ctx, d, false); err != nil {
		return err
	}
	a.current = &d
	return nil
}

// Reapply sets the current wallpaper again; force bypasses the duplicate check
func (a *Applier) Reapply(ctx context.Context, force bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return nil
	}
	return a.applyLocked(ctx, *a.current, force)
}

// Current returns the descriptor last passed to Apply
func (a *Applier) Current() (model.ImageDescriptor, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return model.ImageDescriptor{}, false
	}
	return *a.current, true
}

// PrimaryUnavailable reports whether the all-desktops strategy last failed with a recognised code
func (a *Applier) PrimaryUnavailable() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.primaryUnavailable
}

// HandleSignal re-applies the wallpaper after screen, space and wake transitions
func (a *Applier) HandleSignal(ctx context.Context, sig lifecycle.Signal) {
	var force bool
	switch sig {
	case lifecycle.SignalScreensChanged, lifecycle.SignalWake:
		force = true
	case lifecycle.SignalSpaceChanged:
		// The primary strategy already covers every space.
		force = a.PrimaryUnavailable()
	default:
		return
	}

	if err := a.Reapply(ctx, force); err != nil {
		slog.WarnContext(ctx, "failed to re-apply wallpaper", "signal", sig.String(), "error", err)
	}
}

func (a *Applier) applyLocked(ctx context.Context, d model.ImageDescriptor, force bool) error {
	path := a.pathOf(d)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNoImage, path)
	}
	if !force && path == a.lastAppliedPath {
		slog.DebugContext(ctx, "wallpaper already applied", "path", path)
		return nil
	}

	err := a.primary.SetDesktopPicture(ctx, path)
	if err == nil {
		a.primaryUnavailable = false
		a.lastAppliedPath = path
		slog.InfoContext(ctx, "wallpaper set", "start_date", d.StartDate)
		return nil
	}

	if !shouldFallback(err) {
		return fmt.Errorf("%w: %v", ErrApplyFailed, err)
	}

	a.primaryUnavailable = true
	slog.InfoContext(ctx, "all-desktops wallpaper unavailable, using active space fallback", "error", err)

	if ferr := a.fallback.SetDesktopPicture(ctx, path); ferr != nil {
		return fmt.Errorf("%w: primary: %v, fallback: %v", ErrApplyFailed, err, ferr)
	}
	a.lastAppliedPath = path
	slog.InfoContext(ctx, "wallpaper set on active space", "start_date", d.StartDate)
	return nil
}

func shouldFallback(err error) bool {
	var scriptErr *platform.ScriptError
	if !errors.As(err, &scriptErr) {
		return false
	}
	return scriptErr.Code == errCodeNotAuthorized || scriptErr.Code == errCodeNotRunning
}
