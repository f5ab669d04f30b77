package activity

import (
	"os/exec"
	"runtime"
	"strings"
)

// ForegroundFunc reports the frontmost application and its window title.
type ForegroundFunc func() (appID, title string)

// Foreground returns a reader for the frontmost window using the platform's
// scripting tool: osascript on macOS, xdotool on X11. Platforms without a
// known tool get a reader that reports nothing, which classifies as unknown.
func Foreground() ForegroundFunc {
	switch runtime.GOOS {
	case "darwin":
		return darwinForeground
	case "linux":
		if _, err := exec.LookPath("xdotool"); err == nil {
			return linuxForeground
		}
	}
	return func() (string, string) { return "", "" }
}

func darwinForeground() (string, string) {
	const script = `tell application "System Events"
	set frontApp to first application process whose frontmost is true
	set appName to name of frontApp
	set windowTitle to ""
	try
		set windowTitle to name of front window of frontApp
	end try
	return appName & "\n" & windowTitle
end tell`

	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		return "", ""
	}

	appID, title, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(appID), strings.TrimSpace(title)
}

func linuxForeground() (string, string) {
	title, err := exec.Command("xdotool", "getactivewindow", "getwindowname").Output()
	if err != nil {
		return "", ""
	}

	appID, err := exec.Command("xdotool", "getactivewindow", "getwindowclassname").Output()
	if err != nil {
		return "", strings.TrimSpace(string(title))
	}

	return strings.TrimSpace(string(appID)), strings.TrimSpace(string(title))
}
