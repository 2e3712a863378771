package wallpaper

import (
	"context"
	"fmt"

	"github.com/ytget/bing-wallpaper/internal/platform"
)

// AppleScript error numbers that make the fallback worth trying
const (
	errCodeNotAuthorized = -1743 // user denied Apple Events to System Events
	errCodeNotRunning    = -600  // System Events is not running
)

// Setter sets the desktop picture to the image at path
type Setter interface {
	SetDesktopPicture(ctx context.Context, path string) error
}

// ScriptRunner runs a script source and returns its output
type ScriptRunner func(ctx context.Context, script string) (string, error)

// AllDesktopsSetter sets the picture on every desktop of every screen via System Events
type AllDesktopsSetter struct {
	Run ScriptRunner
}

// SetDesktopPicture implements Setter
func (s AllDesktopsSetter) SetDesktopPicture(ctx context.Context, path string) error {
	_, err := s.Run(ctx, allDesktopsScript(path))
	return err
}

func allDesktopsScript(path string) string {
	return fmt.Sprintf(`tell application "System Events"
	tell every desktop
		set picture to %s
	end tell
end tell`, platform.QuoteAppleScript(path))
}

// ActiveSpaceSetter sets the picture for each screen's current space through NSWorkspace
type ActiveSpaceSetter struct {
	Run ScriptRunner
}

// SetDesktopPicture implements Setter
func (s ActiveSpaceSetter) SetDesktopPicture(ctx context.Context, path string) error {
	_, err := s.Run(ctx, activeSpaceScript(path))
	return err
}

func activeSpaceScript(path string) string {
	return fmt.Sprintf(`ObjC.import("AppKit");
var url = $.NSURL.fileURLWithPath(%s);
var ws = $.NSWorkspace.sharedWorkspace;
var screens = $.NSScreen.screens;
var failed = 0;
for (var i = 0; i < screens.count; i++) {
	if (!ws.setDesktopImageURLForScreenOptionsError(url, screens.objectAtIndex(i), $({}), null)) {
		failed++;
	}
}
if (failed > 0) {
	throw new Error(failed + " screen(s) rejected the image");
}`, platform.QuoteJavaScript(path))
}

// NewDarwinSetters returns the osascript backed primary and fallback setters
func NewDarwinSetters() (primary, fallback Setter) {
	return AllDesktopsSetter{Run: platform.RunAppleScript}, ActiveSpaceSetter{Run: platform.RunJavaScript}
}
