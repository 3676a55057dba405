// Package app implements the application layer for lunaria.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/lunaria/internal/adapters/cas" //nolint:depguard // Change cache is owned by the app layer
	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports"
	"go.trai.ch/lunaria/internal/engine/scheduler"
	"go.trai.ch/lunaria/internal/engine/tracker"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	lister       ports.FileLister
	hasher       ports.Hasher
	stores       ports.CacheStoreFactory
	tracker      *tracker.Tracker
	scheduler    *scheduler.Scheduler
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// RunOptions configures a tracking run.
type RunOptions struct {
	// WorkDir is where configuration discovery starts. Defaults to the process working directory.
	WorkDir string
	// ConfigPath is an explicit configuration file, relative to WorkDir unless absolute.
	ConfigPath string
	// Force ignores and does not persist cached checkpoints.
	Force bool
	// Parallelism bounds concurrent history queries. Non-positive means the host core count.
	Parallelism int
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	lister ports.FileLister,
	hasher ports.Hasher,
	stores ports.CacheStoreFactory,
	tr *tracker.Tracker,
	sched *scheduler.Scheduler,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		lister:       lister,
		hasher:       hasher,
		stores:       stores,
		tracker:      tr,
		scheduler:    sched,
		telemetry:    telemetry,
		logger:       logger,
	}
}

// Run resolves the latest tracked change of every configured file, sorted by path.
func (a *App) Run(ctx context.Context, opts RunOptions) ([]domain.ResolutionResult, error) {
	// 1. Load the configuration
	cfg, err := a.loadConfig(opts.WorkDir, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 2. List tracked files
	files, err := a.lister.ListFiles(cfg.Root, cfg.Files, skipDirs(cfg))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list tracked files")
	}
	a.logger.Debug("tracked files listed", "count", len(files), "root", cfg.Root)

	// 3. Load checkpoints for this configuration
	fingerprint := a.hasher.Fingerprint(cfg)
	cache := cas.NewChangeCache(a.stores(cfg.CacheDir), domain.CacheDomainGit, fingerprint, opts.Force)
	if err := cache.Load(); err != nil {
		a.logger.Warn("ignoring unreadable cache", "dir", cfg.CacheDir, "error", err.Error())
	}
	a.logger.Debug("cache loaded", "fingerprint", fingerprint, "entries", cache.Len(), "force", opts.Force)

	// 4. Resolve every file
	resolver := domain.NewResolver(cfg.Tracking)
	tr := a.tracker.WithParallelism(opts.Parallelism)
	results, err := a.scheduler.Run(ctx, files, opts.Parallelism,
		func(ctx context.Context, path string) (domain.ResolutionResult, error) {
			return tr.Track(ctx, cfg.Root, path, resolver, cache)
		})
	if err != nil {
		return nil, errors.Join(domain.ErrTrackingFailed, err)
	}

	// 5. Persist checkpoints
	for _, res := range results {
		cache.Set(res.Path, res.LatestTrackedChange.Hash)
	}
	if err := cache.Flush(); err != nil {
		a.logger.Warn("failed to persist cache", "dir", cfg.CacheDir, "error", err.Error())
	}

	return results, nil
}

// CleanCache removes every persisted checkpoint of the configured project.
func (a *App) CleanCache(_ context.Context, workDir, configPath string) error {
	cfg, err := a.loadConfig(workDir, configPath)
	if err != nil {
		return err
	}

	if err := a.stores(cfg.CacheDir).Clean(); err != nil {
		return zerr.Wrap(err, "failed to clean cache")
	}
	a.logger.Info("cache cleaned", "dir", cfg.CacheDir)
	return nil
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func (a *App) loadConfig(workDir, configPath string) (*domain.Config, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
		workDir = wd
	}

	cfg, err := a.configLoader.Load(workDir, configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// skipDirs returns the cache directory relative to the root when it lives inside it.
func skipDirs(cfg *domain.Config) []string {
	rel, err := filepath.Rel(cfg.Root, cfg.CacheDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return []string{filepath.ToSlash(rel)}
}
