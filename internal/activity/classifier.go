// Package activity classifies the user's foreground application into a
// context that modulates attention strictness and look-away tolerance.
package activity

import "strings"

// Class is the classification of the current foreground activity.
type Class string

const (
	Working       Class = "working"
	Meeting       Class = "meeting"
	Browsing      Class = "browsing"
	Entertainment Class = "entertainment"
	Distracting   Class = "distracting"
	Unknown       Class = "unknown"
)

// attributes are fixed per class; `distracting` always carries the highest
// strictness and never allows look-away.
var attributes = map[Class]struct {
	strictness     float64
	allowsLookAway bool
}{
	Working:       {1.0, false},
	Meeting:       {0.3, true},
	Browsing:      {0.8, false},
	Entertainment: {0.5, true},
	Distracting:   {1.5, false},
	Unknown:       {0.7, false},
}

// Strictness returns the decay-scaling strictness for this class.
func (c Class) Strictness() float64 {
	if a, ok := attributes[c]; ok {
		return a.strictness
	}
	return attributes[Unknown].strictness
}

// AllowsLookAway reports whether looking away from the screen is expected
// in this context (e.g. a meeting) and should not be penalized.
func (c Class) AllowsLookAway() bool {
	if a, ok := attributes[c]; ok {
		return a.allowsLookAway
	}
	return false
}

// Substring tables for foreground app identifiers. Matching is
// case-insensitive and first-match-wins in the order Classify documents.
var (
	distractingApps = []string{
		"steam", "epicgames", "epic games", "riotclient", "battle.net",
		"minecraft", "league of legends",
	}

	meetingApps = []string{
		"zoom", "teams", "webex", "facetime", "skype", "meet",
	}

	developmentApps = []string{
		"code", "xcode", "intellij", "goland", "pycharm", "terminal",
		"iterm", "vim", "emacs", "sublime", "zed",
	}

	entertainmentApps = []string{
		"spotify", "music", "netflix", "vlc", "iina", "podcasts",
	}

	browserApps = []string{
		"chrome", "safari", "firefox", "arc", "edge", "brave", "opera",
	}

	distractingSites = []string{
		"youtube", "reddit", "twitter", "x.com", "tiktok", "instagram",
		"facebook", "twitch", "netflix", "9gag",
	}
)

// Classify maps a foreground app identifier and window/tab title to an
// activity class. Evaluation order, first match wins:
//
//  1. user whitelist substring on app id or title  -> working
//  2. known distracting app ids                    -> distracting
//  3. known meeting apps                           -> meeting
//  4. known development tools                      -> working
//  5. known entertainment apps                     -> entertainment
//  6. browsers: title against whitelist, then the
//     distracting-site list, else                  -> browsing
//  7. default                                      -> unknown
//
// The function is pure and safe to call at the orchestrator tick rate.
func Classify(appID, title string, whitelist []string) Class {
	app := strings.ToLower(appID)
	lowTitle := strings.ToLower(title)

	for _, w := range whitelist {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if strings.Contains(app, w) || strings.Contains(lowTitle, w) {
			return Working
		}
	}

	if matchAny(app, distractingApps) {
		return Distracting
	}
	if matchAny(app, meetingApps) {
		return Meeting
	}
	if matchAny(app, developmentApps) {
		return Working
	}
	if matchAny(app, entertainmentApps) {
		return Entertainment
	}

	if matchAny(app, browserApps) {
		for _, w := range whitelist {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" && strings.Contains(lowTitle, w) {
				return Working
			}
		}
		if matchAny(lowTitle, distractingSites) {
			return Distracting
		}
		return Browsing
	}

	return Unknown
}

func matchAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
