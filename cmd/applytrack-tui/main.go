package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/applytrack/internal/sidebar"
	"github.com/tinytelemetry/applytrack/internal/socketrpc"
	"github.com/tinytelemetry/applytrack/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var socketPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/applytrack/config.yml)")
	flag.StringVar(&socketPath, "socket", "", "override socket path to connect to applytrack service")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Applytrack CLI - Dashboard Client\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if socketPath != "" {
		cfg.SocketPath = socketPath
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	// The alt screen owns the terminal, so logs go to a file.
	if home, err := os.UserHomeDir(); err == nil {
		logDir := filepath.Join(home, ".local", "state", "applytrack")
		if err := os.MkdirAll(logDir, 0o755); err == nil {
			if f, err := tea.LogToFile(filepath.Join(logDir, "applytrack-tui.log"), "tui"); err == nil {
				defer f.Close()
			}
		}
	}

	client, err := socketrpc.Dial(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("cannot connect to applytrack service at %s: %w\nIs the applytrack service running? Start it with: applytrack", cfg.SocketPath, err)
	}
	defer client.Close()

	dashPage := tui.NewDashboardPage(tui.DashboardConfig{
		API:             client,
		Variant:         sidebar.ParseVariant(cfg.SidebarVariant),
		LoadAttempts:    cfg.LoadAttempts,
		LoadDelay:       cfg.LoadDelay,
		NotificationTTL: cfg.NotificationTTL,
		Version:         version,
	})
	app := tui.NewApp(dashPage, tui.NewDetailPage(), tui.NewFormPage(client, cfg.AutoSave))
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	log.Printf("tui: exited")
	return nil
}
