package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/applytrack/internal/backup"
	"github.com/tinytelemetry/applytrack/internal/dashboard"
	"github.com/tinytelemetry/applytrack/internal/duckdb"
	"github.com/tinytelemetry/applytrack/internal/httpserver"
	"github.com/tinytelemetry/applytrack/internal/ingest"
	"github.com/tinytelemetry/applytrack/internal/metrics"
	"github.com/tinytelemetry/applytrack/internal/session"
	"github.com/tinytelemetry/applytrack/internal/socketrpc"
	"github.com/tinytelemetry/applytrack/internal/source"
)

// runServer syncs applications from the configured source and serves the
// dashboard over HTTP and the unix socket.
func runServer(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger()
	defer cleanupLogger()

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := duckdb.NewStore(cfg.DBPath, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer store.Close()

	// Set up context and signal handling before anything dials out.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		cleanupSocket(cfg.SocketPath)
		os.Exit(1)
	}()

	src, err := source.Open(ctx, cfg.sourceConfig())
	if err != nil {
		return fmt.Errorf("failed to open %s source: %w", cfg.SourceKind, err)
	}
	defer src.Close()

	met := metrics.New()

	loader := dashboard.NewLoader(src)
	loader.Attempts = cfg.LoadAttempts
	loader.Delay = cfg.LoadDelay
	syncer := ingest.NewSyncer(loader, store, met)

	draftCleaner := duckdb.NewDraftCleaner(store, duckdb.DraftRetentionConfig{
		RetentionDays: cfg.DraftRetention,
	})
	if draftCleaner != nil {
		defer draftCleaner.Stop()
	}

	backupManager, err := backup.NewManager(store, backup.Config{
		Enabled:  cfg.BackupEnabled,
		Interval: cfg.BackupInterval,
		Dir:      cfg.BackupDir,
		KeepLast: cfg.BackupKeepLast,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize backups: %w", err)
	}
	if backupManager != nil {
		defer backupManager.Stop()
	}

	sessions, err := openSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer sessions.Close()

	apiServer := httpserver.NewServer(httpserver.Options{
		Addr:     cfg.APIAddr,
		Store:    store,
		Reloader: syncer,
		Sessions: sessions,
		Metrics:  met,
		Variant:  cfg.Variant(),
	})
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	defer apiServer.Stop()

	// Socket RPC for the terminal client.
	sockServer := socketrpc.NewServer(cfg.SocketPath, gatedStore{ReadAPI: store, counter: store, gate: syncer})
	if err := sockServer.Start(); err != nil {
		log.Printf("Warning: failed to start socket server: %v", err)
	} else {
		defer sockServer.Stop()
	}

	printStartupBanner(cfg, sessions)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		runSync(gctx, syncer, "startup")
		return nil
	})

	if cfg.SourceWatch && cfg.SourceKind == source.KindFile {
		if err := source.Watch(gctx, cfg.SourcePath, cfg.WatchDebounce, func() {
			runSync(gctx, syncer, "file change")
		}); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	if cfg.SyncInterval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(cfg.SyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					runSync(gctx, syncer, "interval")
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("server: errgroup exited with error: %v", err)
	}

	signal.Stop(sigCh)
	return nil
}

func runSync(ctx context.Context, syncer *ingest.Syncer, reason string) {
	n, err := syncer.Sync(ctx)
	switch {
	case err == nil:
		log.Printf("sync (%s): %d applications", reason, n)
	case errors.Is(err, context.Canceled):
	default:
		log.Printf("sync (%s): %v", reason, err)
	}
}

// openSessions uses Redis when an address is configured and process memory
// otherwise.
func openSessions(ctx context.Context, cfg appConfig) (session.Store, error) {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(cfg.SessionTTL), nil
	}
	rs, err := session.NewRedisStore(ctx, session.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect session store: %w", err)
	}
	return rs, nil
}

func cleanupSocket(path string) {
	if path != "" {
		os.Remove(path)
	}
}

func configureRuntimeLogger() func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	home, err := os.UserHomeDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logDir := filepath.Join(home, ".local", "state", "applytrack")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	f, err := os.OpenFile(filepath.Join(logDir, "applytrack.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		_ = f.Close()
	}
}

func printStartupBanner(cfg appConfig, sessions session.Store) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	row := func(mark, label, value string) string {
		return fmt.Sprintf("    %s  %-14s %s", mark, label, value)
	}

	logo := cyan.Bold(true).Render(`
    ╔═╗╔═╗╔═╗╦ ╦ ╦╔╦╗╦═╗╔═╗╔═╗╦╔═
    ╠═╣╠═╝╠═╝║ ╚╦╝ ║ ╠╦╝╠═╣║  ╠╩╗
    ╩ ╩╩  ╩  ╩═╝╩  ╩ ╩╚═╩ ╩╚═╝╩ ╩`)
	separator := dim.Render("    ─────────────────────────────────")

	lines := []string{"", logo, "    " + dim.Render("v"+version), "", separator, ""}

	lines = append(lines, bold.Render("    Gateway"), "")
	lines = append(lines, row(check, "Dashboard", cyan.Render("http://"+cfg.APIAddr+"/")))
	lines = append(lines, row(check, "Unix Socket", cyan.Render(shortenPath(cfg.SocketPath))))
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Data"), "")
	srcDesc := cfg.SourceURL
	switch cfg.SourceKind {
	case source.KindFile:
		srcDesc = shortenPath(cfg.SourcePath)
		if cfg.SourceWatch {
			srcDesc += " (watched)"
		}
	case source.KindPostgres:
		srcDesc = "postgres table " + cfg.SourceTable
	}
	lines = append(lines, row(check, "Source", dim.Render(srcDesc)))
	lines = append(lines, row(check, "Storage", dim.Render(shortenPath(cfg.DBPath))))
	if cfg.BackupEnabled {
		lines = append(lines, row(check, "Snapshots", dim.Render(shortenPath(cfg.BackupDir))))
	} else {
		lines = append(lines, row(dot, "Snapshots", dim.Render("disabled")))
	}
	if _, ok := sessions.(*session.RedisStore); ok {
		lines = append(lines, row(check, "Sessions", dim.Render("redis "+cfg.RedisAddr)))
	} else {
		lines = append(lines, row(check, "Sessions", dim.Render("in memory")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Config"), "")
	if cfg.ConfigPath != "" {
		lines = append(lines, row(check, "Config File", dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, row(dot, "Config File", dim.Render("default (no file)")))
	}
	lines = append(lines, row(check, "Sidebar", dim.Render(cfg.Variant().String())))

	lines = append(lines, "", separator, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"), "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
