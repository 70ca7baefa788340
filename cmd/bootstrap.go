package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fridayfun/internal/config"
	"github.com/abhisek/fridayfun/internal/llm"
	"github.com/abhisek/fridayfun/internal/logger"
	"github.com/abhisek/fridayfun/internal/questiongen"
	"github.com/abhisek/fridayfun/internal/store"
)

// runtime bundles the dependencies shared by the TUI and serve commands.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store // nil when the event log is off or unavailable
	gen    questiongen.Generator
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{
		ConfigFile: path,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore opens the diagnostics database at the configured path, or
// the default XDG path when none is set.
func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	} else {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// bootstrap wires config, logging, the diagnostics log, the provider and
// the generator. The TUI owns the terminal, so it logs to a file.
func bootstrap(cmd *cobra.Command, tui bool) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logOpts := logger.Options{Env: cfg.Env, Level: cfg.Log.Level}
	if tui {
		logOpts.File = cfg.Log.File
		if logOpts.File == "" {
			if logOpts.File, err = logger.DefaultLogPath(); err != nil {
				return nil, err
			}
		}
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: log}

	var repo store.EventRepo
	if cfg.EventLog {
		s, err := openStore(cfg)
		if err != nil {
			log.Warn("LLM event log unavailable", zap.Error(err))
		} else {
			rt.store = s
			repo = s.EventRepo()
		}
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, repo, log)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	log.Info("llm provider ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", provider.ModelID()),
	)

	rt.gen = questiongen.New(provider, cfg.GeneratorConfig(), log)
	return rt, nil
}

func (rt *runtime) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.logger.Warn("close database", zap.Error(err))
		}
	}
	_ = rt.logger.Sync()
}
