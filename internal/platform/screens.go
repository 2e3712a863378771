package platform

import "context"

// screenLayoutScript prints one "x,y,width,height" frame per screen, joined by ";"
const screenLayoutScript = `ObjC.import('AppKit');
var screens = $.NSScreen.screens;
var frames = [];
for (var i = 0; i < screens.count; i++) {
	var f = screens.objectAtIndex(i).frame;
	frames.push([f.origin.x, f.origin.y, f.size.width, f.size.height].join(','));
}
frames.join(';');`

// ScreenLayout returns the frames of all connected screens as a comparable signature
func ScreenLayout(ctx context.Context) (string, error) {
	return RunJavaScript(ctx, screenLayoutScript)
}
