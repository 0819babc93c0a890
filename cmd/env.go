package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/cfdroid/internal/assistant"
	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/chat"
	"github.com/abhisek/cfdroid/internal/config"
	"github.com/abhisek/cfdroid/internal/identity"
	"github.com/abhisek/cfdroid/internal/llm"
	"github.com/abhisek/cfdroid/internal/progress"
	"github.com/abhisek/cfdroid/internal/store"
)

// runtime bundles what every data-touching command needs.
type runtime struct {
	cfg       *config.Config
	store     *store.Store
	logger    *slog.Logger
	sessionID string
	identity  string // identity file path
	catalog   *catalog.Catalog
	tracker   *progress.Tracker

	closers []func() error
}

// openRuntime loads configuration, the logger, the store and the session
// progress. tui selects a file-only logger so the terminal stays clean.
func openRuntime(cmd *cobra.Command, tui bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}

	rt := &runtime{cfg: cfg}

	logFile, err := cfg.ResolveLogFile()
	if err != nil {
		return nil, fmt.Errorf("resolve log file: %w", err)
	}
	var closeLog func() error
	if tui {
		rt.logger, closeLog = config.SetupFileLogger(logFile, cfg.Level(), cfg.Rotation())
	} else {
		rt.logger, closeLog = config.SetupLogger(logFile, cfg.Level(), cfg.Rotation())
	}
	rt.closers = append(rt.closers, closeLog)
	slog.SetDefault(rt.logger)

	if rt.catalog, err = loadCatalog(cfg); err != nil {
		rt.Close()
		return nil, err
	}

	for _, w := range rt.catalog.Warnings() {
		rt.logger.Warn("catalog", "warning", w)
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	rt.store, err = store.Open(dbPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.closers = append(rt.closers, rt.store.Close)

	rt.identity, err = cfg.ResolveIdentityFile()
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve identity file: %w", err)
	}
	rt.sessionID, err = identity.LoadOrCreate(rt.identity)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.tracker = progress.NewTracker(rt.store.MetadataStore(), rt.sessionID, rt.catalog.Size(),
		progress.WithLogger(rt.logger))
	if err := rt.tracker.Load(cmd.Context()); err != nil {
		// Progress starts empty; the next write recreates the record.
		rt.logger.Warn("progress not loaded", "session", rt.sessionID, "err", err)
	}

	rt.logger.Debug("runtime ready", "db", dbPath, "session", rt.sessionID)
	return rt, nil
}

// loadCatalog returns the built-in catalog extended by CFDROID_CATALOG_FILE
// when set.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	extra, err := catalog.LoadOverlay(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	c, err := catalog.Default().Extend(extra)
	if err != nil {
		return nil, fmt.Errorf("extend catalog: %w", err)
	}
	slog.Debug("catalog extended", "file", cfg.CatalogFile, "topics", len(extra))
	return c, nil
}

// chatBackend builds the assistant. When no provider is configured it
// returns a nil backend and a hint explaining how to enable chat.
func (rt *runtime) chatBackend(ctx context.Context) (chat.Backend, string) {
	llmCfg, err := llm.Resolve()
	if err != nil {
		rt.logger.Info("assistant disabled", "reason", err)
		return nil, "No LLM provider configured. Set ANTHROPIC_API_KEY, OPENAI_API_KEY, " +
			"GEMINI_API_KEY or OPENROUTER_API_KEY (or CFDROID_LLM_PROVIDER) to chat with Droid."
	}

	provider, err := llm.NewProvider(ctx, llmCfg, rt.store.EventRepo(), rt.logger)
	if err != nil {
		rt.logger.Warn("assistant unavailable", "provider", llmCfg.Provider, "err", err)
		return nil, fmt.Sprintf("The %s provider could not start: %v", llmCfg.Provider, err)
	}

	acfg := assistant.DefaultConfig()
	acfg.HistoryLimit = rt.cfg.ChatHistory
	return assistant.NewService(provider, rt.store.TranscriptRepo(), rt.catalog, acfg, rt.logger), ""
}

// rotateSession moves the install to a new session id and points the
// progress tracker at it.
func (rt *runtime) rotateSession(context.Context) (string, error) {
	id, err := identity.Rotate(rt.identity)
	if err != nil {
		return "", err
	}
	rt.logger.Info("session rotated", "old_session", rt.sessionID, "session", id)
	rt.sessionID = id
	rt.tracker.Rebind(id)
	return id, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
