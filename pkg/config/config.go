/*
Package config manages TOML config for strokeserve.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/strokeserve/internal/utils"
	"github.com/bastiangx/strokeserve/pkg/learn"
	"github.com/bastiangx/strokeserve/pkg/session"
	"github.com/bastiangx/strokeserve/pkg/stroke"
	"github.com/bastiangx/strokeserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// User dictionary backends.
const (
	StoreText   = "text"
	StoreSQLite = "sqlite"
)

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// EngineConfig has resolver, ranking, learning and prediction options.
type EngineConfig struct {
	PageSize           int       `toml:"page_size"`
	MaxCodeLength      int       `toml:"max_code_length"`
	PrefixLimit        int       `toml:"prefix_limit"`
	ThreePlusThreeMin  int       `toml:"three_plus_three_min"`
	PromotionThreshold int       `toml:"promotion_threshold"`
	ContextCapacity    int       `toml:"context_capacity"`
	PredictionLimit    int       `toml:"prediction_limit"`
	PredictionBackfill int       `toml:"prediction_backfill"`
	EnablePrediction   bool      `toml:"enable_prediction"`
	DecayDays          []int     `toml:"decay_days"`
	DecayWeights       []float64 `toml:"decay_weights"`
	DecayFloor         float64   `toml:"decay_floor"`
	CacheSize          int       `toml:"cache_size"`
}

// DictConfig holds dictionary and persistence options. Relative paths are
// resolved against the data directory.
type DictConfig struct {
	MainPath       string `toml:"main_path"`
	PhrasePath     string `toml:"phrase_path"`
	PunctMenuPath  string `toml:"punct_menu_path"`
	UserPath       string `toml:"user_path"`
	UserStore      string `toml:"user_store"`
	SQLitePath     string `toml:"sqlite_path"`
	MaxUserEntries int    `toml:"max_user_entries"`
	SaveDebounceMs int    `toml:"save_debounce_ms"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	ChineseMode bool `toml:"chinese_mode"`
	ShowCodes   bool `toml:"show_codes"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "strokeserve")
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "strokeserve")
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/strokeserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	policy := learn.DefaultPolicy()
	opts := suggest.DefaultOptions()
	return &Config{
		Engine: EngineConfig{
			PageSize:           opts.PageSize,
			MaxCodeLength:      stroke.MaxCodeLength,
			PrefixLimit:        opts.PrefixLimit,
			ThreePlusThreeMin:  opts.ThreePlusThreeMin,
			PromotionThreshold: policy.PromotionThreshold,
			ContextCapacity:    policy.ContextCapacity,
			PredictionLimit:    opts.PredictionLimit,
			PredictionBackfill: opts.PredictionBackfill,
			EnablePrediction:   true,
			DecayDays:          policy.DecayDays,
			DecayWeights:       policy.DecayWeights,
			DecayFloor:         policy.DecayFloor,
			CacheSize:          opts.CacheSize,
		},
		Dict: DictConfig{
			MainPath:       "strokes.txt",
			PhrasePath:     "phrases.txt",
			PunctMenuPath:  "punct_menu.txt",
			UserPath:       "user_dict.txt",
			UserStore:      StoreText,
			SQLitePath:     "user.db",
			MaxUserEntries: learn.DefaultMaxUserEntries,
			SaveDebounceMs: 2000,
		},
		CLI: CliConfig{
			ChineseMode: true,
			ShowCodes:   true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.validate()
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(engineSection, &config.Engine)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	config.validate()
	return config, nil
}

// extractEngineConfig extracts engine configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	ints := map[string]*int{
		"page_size":            &engine.PageSize,
		"max_code_length":      &engine.MaxCodeLength,
		"prefix_limit":         &engine.PrefixLimit,
		"three_plus_three_min": &engine.ThreePlusThreeMin,
		"promotion_threshold":  &engine.PromotionThreshold,
		"context_capacity":     &engine.ContextCapacity,
		"prediction_limit":     &engine.PredictionLimit,
		"prediction_backfill":  &engine.PredictionBackfill,
		"cache_size":           &engine.CacheSize,
	}
	for key, dst := range ints {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
	if val, ok := utils.ExtractBool(data, "enable_prediction"); ok {
		engine.EnablePrediction = val
	}
	if val, ok := utils.ExtractIntSlice(data, "decay_days"); ok {
		engine.DecayDays = val
	}
	if val, ok := utils.ExtractFloatSlice(data, "decay_weights"); ok {
		engine.DecayWeights = val
	}
	if val, ok := utils.ExtractFloat(data, "decay_floor"); ok {
		engine.DecayFloor = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	strs := map[string]*string{
		"main_path":       &dict.MainPath,
		"phrase_path":     &dict.PhrasePath,
		"punct_menu_path": &dict.PunctMenuPath,
		"user_path":       &dict.UserPath,
		"user_store":      &dict.UserStore,
		"sqlite_path":     &dict.SQLitePath,
	}
	for key, dst := range strs {
		if val, ok := utils.ExtractString(data, key); ok {
			*dst = val
		}
	}
	if val, ok := utils.ExtractInt64(data, "max_user_entries"); ok {
		dict.MaxUserEntries = val
	}
	if val, ok := utils.ExtractInt64(data, "save_debounce_ms"); ok {
		dict.SaveDebounceMs = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "chinese_mode"); ok {
		cli.ChineseMode = val
	}
	if val, ok := utils.ExtractBool(data, "show_codes"); ok {
		cli.ShowCodes = val
	}
}

// validate replaces values the engine cannot run with by their defaults.
func (c *Config) validate() {
	def := DefaultConfig()
	e := &c.Engine
	if e.PageSize <= 0 || e.PageSize > 9 {
		log.Warnf("page_size %d out of range 1-9, using %d", e.PageSize, def.Engine.PageSize)
		e.PageSize = def.Engine.PageSize
	}
	if e.MaxCodeLength <= 0 {
		e.MaxCodeLength = def.Engine.MaxCodeLength
	}
	if e.PrefixLimit < 0 {
		e.PrefixLimit = def.Engine.PrefixLimit
	}
	if e.ThreePlusThreeMin <= 0 {
		e.ThreePlusThreeMin = def.Engine.ThreePlusThreeMin
	}
	if e.PromotionThreshold <= 0 {
		e.PromotionThreshold = def.Engine.PromotionThreshold
	}
	if e.ContextCapacity <= 0 {
		e.ContextCapacity = def.Engine.ContextCapacity
	}
	if e.PredictionLimit <= 0 {
		e.PredictionLimit = def.Engine.PredictionLimit
	}
	if e.PredictionBackfill < 0 {
		e.PredictionBackfill = def.Engine.PredictionBackfill
	}
	if e.CacheSize < 0 {
		e.CacheSize = 0
	}
	if len(e.DecayDays) == 0 || len(e.DecayDays) != len(e.DecayWeights) {
		log.Warnf("decay_days and decay_weights must have the same non-zero length, using defaults")
		e.DecayDays = def.Engine.DecayDays
		e.DecayWeights = def.Engine.DecayWeights
	}

	d := &c.Dict
	if d.UserStore != StoreText && d.UserStore != StoreSQLite {
		log.Warnf("Unknown user_store %q, using %q", d.UserStore, StoreText)
		d.UserStore = StoreText
	}
	if d.MaxUserEntries <= 0 {
		d.MaxUserEntries = def.Dict.MaxUserEntries
	}
	if d.SaveDebounceMs < 0 {
		d.SaveDebounceMs = 0
	}
}

// SuggestOptions maps the engine section onto the resolver options.
func (e EngineConfig) SuggestOptions() suggest.Options {
	return suggest.Options{
		PageSize:           e.PageSize,
		PrefixLimit:        e.PrefixLimit,
		ThreePlusThreeMin:  e.ThreePlusThreeMin,
		PredictionLimit:    e.PredictionLimit,
		PredictionBackfill: e.PredictionBackfill,
		CacheSize:          e.CacheSize,
	}
}

// LearnPolicy maps the engine section onto the learning policy.
func (e EngineConfig) LearnPolicy() learn.Policy {
	return learn.Policy{
		PromotionThreshold: e.PromotionThreshold,
		ContextCapacity:    e.ContextCapacity,
		DecayDays:          append([]int(nil), e.DecayDays...),
		DecayWeights:       append([]float64(nil), e.DecayWeights...),
		DecayFloor:         e.DecayFloor,
	}
}

// SessionOptions maps the engine section onto the session options.
func (e EngineConfig) SessionOptions(chinese bool) session.Options {
	return session.Options{
		PageSize:         e.PageSize,
		MaxCodeLength:    e.MaxCodeLength,
		EnablePrediction: e.EnablePrediction,
		Chinese:          chinese,
	}
}

// SaveDebounce returns the minimum delay between user dictionary writes.
func (d DictConfig) SaveDebounce() time.Duration {
	return time.Duration(d.SaveDebounceMs) * time.Millisecond
}

// Resolve returns a copy of d with relative paths joined to dataDir.
func (d DictConfig) Resolve(dataDir string) DictConfig {
	if dataDir == "" {
		return d
	}
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dataDir, p)
	}
	d.MainPath = join(d.MainPath)
	d.PhrasePath = join(d.PhrasePath)
	d.PunctMenuPath = join(d.PunctMenuPath)
	d.UserPath = join(d.UserPath)
	d.SQLitePath = join(d.SQLitePath)
	return d
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the config values and saves to file
func (c *Config) Update(configPath string, enablePrediction, chineseMode, showCodes *bool) error {
	if enablePrediction != nil {
		c.Engine.EnablePrediction = *enablePrediction
	}
	if chineseMode != nil {
		c.CLI.ChineseMode = *chineseMode
	}
	if showCodes != nil {
		c.CLI.ShowCodes = *showCodes
	}
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
