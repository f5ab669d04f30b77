package activity

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		appID     string
		title     string
		whitelist []string
		want      Class
	}{
		{"dev tool", "com.microsoft.VSCode", "main.go", nil, Working},
		{"terminal", "com.googlecode.iterm2", "", nil, Working},
		{"meeting app", "us.zoom.xos", "Weekly sync", nil, Meeting},
		{"distracting app", "com.valvesoftware.steam", "", nil, Distracting},
		{"entertainment", "com.spotify.client", "Focus playlist", nil, Entertainment},
		{"plain browsing", "com.google.Chrome", "Go documentation", nil, Browsing},
		{"distracting site", "com.google.Chrome", "YouTube - cat videos", nil, Distracting},
		{"unknown", "com.example.mystery", "", nil, Unknown},
		{"case insensitive", "COM.VALVESOFTWARE.STEAM", "", nil, Distracting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.appID, tt.title, tt.whitelist); got != tt.want {
				t.Errorf("Classify(%q, %q) = %s, want %s", tt.appID, tt.title, got, tt.want)
			}
		})
	}
}

func TestClassify_WhitelistWinsFirst(t *testing.T) {
	// A whitelisted id overrides even the distracting table.
	got := Classify("com.valvesoftware.steam", "", []string{"steam"})
	if got != Working {
		t.Errorf("whitelisted app = %s, want %s", got, Working)
	}

	// Whitelist also matches on the window title.
	got = Classify("com.example.tool", "project-drishti notes", []string{"project-drishti"})
	if got != Working {
		t.Errorf("whitelisted title = %s, want %s", got, Working)
	}
}

func TestClassify_BrowserTitleWhitelist(t *testing.T) {
	// For browsers the tab title is checked against the whitelist before
	// the distracting-site list.
	got := Classify("com.google.Chrome", "YouTube - Go conference talk", []string{"go conference"})
	if got != Working {
		t.Errorf("whitelisted tab = %s, want %s", got, Working)
	}

	got = Classify("org.mozilla.firefox", "reddit - r/golang", nil)
	if got != Distracting {
		t.Errorf("distracting tab = %s, want %s", got, Distracting)
	}
}

func TestClassAttributes(t *testing.T) {
	if Distracting.Strictness() != 1.5 {
		t.Errorf("distracting strictness = %f, want 1.5", Distracting.Strictness())
	}
	if Distracting.AllowsLookAway() {
		t.Error("distracting must not allow look-away")
	}
	if !Meeting.AllowsLookAway() {
		t.Error("meeting must allow look-away")
	}
	if !Entertainment.AllowsLookAway() {
		t.Error("entertainment must allow look-away")
	}

	// distracting carries the highest strictness of any class.
	for _, c := range []Class{Working, Meeting, Browsing, Entertainment, Unknown} {
		if c.Strictness() >= Distracting.Strictness() {
			t.Errorf("%s strictness %f >= distracting", c, c.Strictness())
		}
	}

	// Unknown classes fall back to safe defaults.
	if Class("bogus").Strictness() != Unknown.Strictness() {
		t.Error("unexpected strictness for unrecognized class")
	}
}
