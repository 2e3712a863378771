package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// OSAScriptCommand is the AppleScript interpreter
const OSAScriptCommand = "osascript"

// scriptErrorPattern matches the trailing "(-1743)" error number osascript prints
var scriptErrorPattern = regexp.MustCompile(`\((-?\d+)\)\s*$`)

// ScriptError is a failed osascript run with its AppleScript error number, if any
type ScriptError struct {
	Code   int // 0 when the output carried no error number
	Output string
	Err    error
}

func (e *ScriptError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("osascript failed (%d): %s", e.Code, e.Output)
	}
	return fmt.Sprintf("osascript failed: %v: %s", e.Err, e.Output)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// RunAppleScript executes an AppleScript source with osascript and returns its trimmed stdout
func RunAppleScript(ctx context.Context, script string) (string, error) {
	return runOSAScript(ctx, "-e", script)
}

// RunJavaScript executes a JavaScript for Automation source with osascript
func RunJavaScript(ctx context.Context, script string) (string, error) {
	return runOSAScript(ctx, "-l", "JavaScript", "-e", script)
}

func runOSAScript(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, OSAScriptCommand, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		return "", &ScriptError{Code: ParseScriptErrorCode(output), Output: output, Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// ParseScriptErrorCode extracts the AppleScript error number from osascript stderr
func ParseScriptErrorCode(output string) int {
	m := scriptErrorPattern.FindStringSubmatch(strings.TrimSpace(output))
	if m == nil {
		return 0
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return code
}

// QuoteJavaScript returns s as a JavaScript string literal
func QuoteJavaScript(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

// QuoteAppleScript returns s as an AppleScript string literal
func QuoteAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
