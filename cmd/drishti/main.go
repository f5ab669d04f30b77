package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ayusman/drishti/internal/activity"
	"github.com/ayusman/drishti/internal/app"
	"github.com/ayusman/drishti/internal/server"
	"github.com/ayusman/drishti/internal/store"
	"github.com/ayusman/drishti/internal/tray"
)

func main() {
	fmt.Println("Drishti - Attention & Focus Companion")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".drishti")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "drishti.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Wire the attention pipeline
	a := app.New(app.Config{
		Store:      st,
		HookDir:    filepath.Join(dataDir, "hooks"),
		Foreground: activity.Foreground(),
	})

	if err := a.LoadSettings(); err != nil {
		log.Printf("Failed to load settings, using defaults: %v", err)
	}
	if err := a.DiscoverHooks(); err != nil {
		log.Printf("Failed to discover hooks: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start attention pipeline: %v", err)
	}
	defer a.Stop()

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	srv := server.New(server.Config{
		StaticDir:      webDir,
		Store:          st,
		Camera:         a.Camera(),
		State:          a.Orchestrator().Snapshot,
		Settings:       a.Settings,
		UpdateSettings: a.UpdateSettings,
	})

	addr := ":8090"
	fmt.Printf("Starting server on %s\n", addr)
	go func() {
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main loop; quitting it shuts the process down.
	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnPhase(a.TogglePhase)
	t.OnSettings(func() { openBrowser("http://localhost" + addr) })
	t.OnQuit(a.Stop)

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			mood, level := a.MoodLine()
			t.SetMood(mood, level)
			t.SetPhase(a.Settings().Phase)
		}
	}()

	t.Run()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.drishti/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".drishti", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
