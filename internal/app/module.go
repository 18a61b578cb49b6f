package app

import (
	"context"
	"fmt"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/bus"
	"github.com/matheus3301/outreach/internal/config"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/lock"
	"github.com/matheus3301/outreach/internal/logging"
	"github.com/matheus3301/outreach/internal/profile"
	"github.com/matheus3301/outreach/internal/store"
	"github.com/matheus3301/outreach/internal/tui"
	"github.com/matheus3301/outreach/internal/tui/model"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Params holds the command-line overrides passed to the fx modules.
type Params struct {
	// Binary names the log file under the profile's log directory.
	Binary      string
	ProfileFlag string
	BaseURLFlag string
	// Console mirrors logs to stderr. Never set it for the terminal UI.
	Console bool
	Debug   bool
	// ConfigPath overrides ~/.outreach/config.toml; empty = default.
	ConfigPath string
}

// Settings is the effective configuration after flags, environment, config
// file and defaults have been applied.
type Settings struct {
	Profile  string
	BaseURL  string
	Locale   string
	LogLevel string
}

// Core returns the fx module shared by both binaries: configuration, logging,
// local storage and the backend client.
func Core(p Params) fx.Option {
	return fx.Module("core",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			ResolveSettings,
			provideLogger,
			provideBus,
			provideCatalog,
			provideStore,
			provideTokens,
			provideClient,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Invoke(registerCore),
	)
}

// TUI returns the fx module of the terminal client. It takes the profile
// lock and runs the UI for the lifetime of the application.
func TUI() fx.Option {
	return fx.Module("tui",
		fx.Provide(
			provideLock,
			provideViewModel,
			provideApp,
		),
		fx.Invoke(registerTUI),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	path := p.ConfigPath
	if path == "" {
		path = profile.ConfigPath()
	}
	return config.Resolve(path)
}

// ResolveSettings applies the flag overrides of p on top of cfg.
func ResolveSettings(p Params, cfg *config.Config) (*Settings, error) {
	name := profile.Resolve(p.ProfileFlag, cfg)
	if err := profile.ValidateName(name); err != nil {
		return nil, err
	}
	s := &Settings{
		Profile:  name,
		BaseURL:  cfg.BaseURL,
		Locale:   cfg.Locale,
		LogLevel: cfg.LogLevel,
	}
	if p.BaseURLFlag != "" {
		s.BaseURL = p.BaseURLFlag
	}
	if p.Debug {
		s.LogLevel = "debug"
	}
	return s, nil
}

func provideLogger(p Params, s *Settings) (*zap.Logger, error) {
	return logging.New(profile.LogPath(s.Profile, p.Binary), s.Profile, logging.Options{
		Level:   s.LogLevel,
		Console: p.Console,
	})
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideCatalog(s *Settings) *i18n.Catalog {
	return i18n.For(s.Locale)
}

func provideStore(s *Settings, logger *zap.Logger) (*store.DB, error) {
	if err := profile.EnsureDir(s.Profile); err != nil {
		return nil, err
	}
	path := profile.StorePath(s.Profile)
	db, result, err := store.OpenMigrated(path)
	if err != nil {
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Debug("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", path))
	return db, nil
}

func provideTokens(db *store.DB) *store.Tokens {
	return store.NewTokens(db)
}

func provideClient(s *Settings, tokens *store.Tokens, logger *zap.Logger) (*api.Client, error) {
	return api.New(s.BaseURL, tokens, logger.Named("api"))
}

func provideLock(s *Settings, logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring profile lock", zap.String("profile", s.Profile))
	l, err := lock.Acquire(profile.Dir(s.Profile))
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", s.Profile, err)
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func provideViewModel(_ *lock.Lock, client *api.Client, tokens *store.Tokens, b *bus.Bus, cat *i18n.Catalog, logger *zap.Logger) *model.ViewModel {
	return model.NewViewModel(client, tokens, b, cat, logger.Named("model"))
}

func provideApp(vm *model.ViewModel, b *bus.Bus, s *Settings, logger *zap.Logger) *tui.App {
	return tui.NewApp(vm, b, logger.Named("tui"), tui.Options{
		Profile: s.Profile,
		Backend: s.BaseURL,
	})
}

func registerCore(lc fx.Lifecycle, db *store.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			_ = logger.Sync()
			return nil
		},
	})
}

func registerTUI(lc fx.Lifecycle, sh fx.Shutdowner, a *tui.App, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := a.Run(); err != nil {
					logger.Error("terminal ui error", zap.Error(err))
					_ = sh.Shutdown(fx.ExitCode(1))
					return
				}
				_ = sh.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			a.Stop()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("terminal client stopped")
			return nil
		},
	})
}
