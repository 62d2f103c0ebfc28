package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// MainDictFile marks a directory as a data directory.
const MainDictFile = "strokes.txt"

// PathResolver locates the data directory relative to the running binary.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a resolver from the location of the executable.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := newPathResolverAt(execPath, homeDir)
	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		pr.executablePath, pr.executableDir, pr.configDir)
	return pr, nil
}

func newPathResolverAt(execPath, homeDir string) *PathResolver {
	return &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      getConfigDir(homeDir),
	}
}

// getConfigDir returns the platform config directory.
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "strokeserve")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "strokeserve")
		}
		return filepath.Join(homeDir, ".config", "strokeserve")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "strokeserve")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "strokeserve")
	default:
		return filepath.Join(homeDir, ".strokeserve")
	}
}

// GetDataDir resolves the directory holding the stroke dictionary.
// Candidates are tried in order:
// 1. User-specified path (if absolute)
// 2. Relative to executable directory
// 3. Relative to current working directory
// 4. data/ next to the executable, its parent and the config directory
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) string {
	candidates := pr.getDataDirCandidates(userSpecifiedPath)
	for _, path := range candidates {
		if isValidDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	// nothing found; the loaders fall back to built-in tables
	if filepath.IsAbs(userSpecifiedPath) {
		return userSpecifiedPath
	}
	return filepath.Join(pr.executableDir, userSpecifiedPath)
}

func (pr *PathResolver) getDataDirCandidates(userSpecifiedPath string) []string {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.configDir, "data"),
	)
	return candidates
}

// isValidDataDir checks if a directory holds the main dictionary.
func isValidDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	return FileExists(filepath.Join(path, MainDictFile))
}

// GetExecutableDir returns the directory containing the executable.
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}

// GetConfigDir returns the config directory.
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// GetRuntimeInfo returns debug information about the runtime environment.
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"executable_path": pr.executablePath,
		"executable_dir":  pr.executableDir,
		"current_dir":     cwd,
		"home_dir":        pr.homeDir,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
	for _, envVar := range []string{"PWD", "HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}

// DiagnosePathIssues reports every data directory candidate and what it
// holds.
func (pr *PathResolver) DiagnosePathIssues(userDataPath string) map[string]any {
	diag := map[string]any{
		"runtime_info": pr.GetRuntimeInfo(),
	}
	dataDir := pr.GetDataDir(userDataPath)
	diag["data_dir_resolution"] = map[string]any{
		"requested_path": userDataPath,
		"resolved_path":  dataDir,
		"is_valid":       isValidDataDir(dataDir),
	}

	candidates := pr.getDataDirCandidates(userDataPath)
	tests := make([]map[string]any, 0, len(candidates))
	for _, c := range candidates {
		tests = append(tests, map[string]any{
			"path":     c,
			"exists":   FileExists(c),
			"is_valid": isValidDataDir(c),
			"files":    listTextFiles(c),
		})
	}
	diag["data_dir_candidates"] = tests
	return diag
}

func listTextFiles(path string) []string {
	matches, err := filepath.Glob(filepath.Join(path, "*.txt"))
	if err != nil {
		return []string{}
	}
	return matches
}
