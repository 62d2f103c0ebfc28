package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bastiangx/strokeserve/internal/logger"
	"github.com/bastiangx/strokeserve/internal/utils"
	"github.com/bastiangx/strokeserve/pkg/config"
	"github.com/bastiangx/strokeserve/pkg/dictionary"
	"github.com/bastiangx/strokeserve/pkg/learn"
	"github.com/bastiangx/strokeserve/pkg/session"
	"github.com/bastiangx/strokeserve/pkg/store"
	"github.com/bastiangx/strokeserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// app bundles everything a front end needs.
type app struct {
	cfg        *config.Config
	configPath string
	dataDir    string
	dictStatus dictionary.Status
	engine     *suggest.Engine
	menu       []string
	store      store.Store
}

// bootstrap loads config, dictionaries and the learned model.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, usedPath, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	resolvedDataDir := dataDir
	if pr, err := utils.NewPathResolver(); err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
	} else {
		resolvedDataDir = pr.GetDataDir(dataDir)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)
	paths := cfg.Dict.Resolve(resolvedDataDir)

	dict, status := dictionary.LoadFile(paths.MainPath)
	phrases := dictionary.LoadPhrasesFile(paths.PhrasePath)
	menu := dictionary.LoadMenuFile(paths.PunctMenuPath)

	model := learn.NewModel(learn.WithPolicy(cfg.Engine.LearnPolicy()))
	storePath := paths.UserPath
	if paths.UserStore == config.StoreSQLite {
		storePath = paths.SQLitePath
	}
	st, err := store.Open(paths.UserStore, storePath, paths.MaxUserEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}
	if n, err := st.Load(ctx, model); err != nil {
		log.Warnf("Failed to load learned words from %s: %v. Starting empty...", st.Path(), err)
	} else {
		log.Debugf("Restored %d learned words", n)
	}

	return &app{
		cfg:        cfg,
		configPath: usedPath,
		dataDir:    resolvedDataDir,
		dictStatus: status,
		engine:     suggest.NewEngine(dict, phrases, model, cfg.Engine.SuggestOptions()),
		menu:       menu,
		store:      st,
	}, nil
}

func (a *app) newSession() *session.Session {
	return session.New(a.engine,
		session.WithOptions(a.cfg.Engine.SessionOptions(a.cfg.CLI.ChineseMode)),
		session.WithMenu(a.menu),
	)
}

// saveModel writes learned words when they changed.
func (a *app) saveModel(ctx context.Context) {
	model := a.engine.Model()
	if !model.Dirty() {
		return
	}
	n, err := a.store.Save(ctx, model)
	if err != nil {
		log.Errorf("Failed to save learned words: %v", err)
		return
	}
	model.MarkClean()
	log.Debugf("Saved %d learned words to %s", n, a.store.Path())
}

func (a *app) close() {
	if cerr := a.store.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "failed to close user store: %v\n", cerr)
	}
}

func setupLogging() {
	logger.Setup(debugMode)
	if !debugMode {
		log.SetLevel(log.WarnLevel)
	}
}
