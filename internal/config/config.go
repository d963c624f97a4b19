// Package config loads taskboard configuration from layered JSONC files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/taskboard/internal/task"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	TasksFile   string `json:"tasks_file"`
	HistoryFile string `json:"history_file,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	DefaultSort string `json:"default_sort,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd   string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	TasksFileAbs   string `json:"-"` // Absolute path to the task document
	HistoryFileAbs string `json:"-"` // Absolute path to shell history; empty disables history

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Error variables for config loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrTasksFileEmpty     = errors.New("tasks-file cannot be empty")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidSort        = errors.New("invalid default sort")
)

// FileName is the project config file name.
const FileName = ".taskboard.json"

// LogLevels lists accepted log_level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Default returns the default configuration. HistoryFile is filled in by
// Load from $HOME.
func Default() Config {
	return Config{
		TasksFile:   "tasks.json",
		LogLevel:    "warn",
		DefaultSort: string(task.SortDueDate),
	}
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride   string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath        string            // -c/--config flag value
	TasksFileOverride string            // --tasks-file flag value; empty means no override
	LogLevelOverride  string            // --log-level flag value; empty means no override
	Env               map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/taskboard/config.json or $XDG_CONFIG_HOME/taskboard/config.json)
// 3. Project config file at default location (.taskboard.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	if home := input.Env["HOME"]; home != "" {
		cfg.HistoryFile = filepath.Join(home, ".taskboard_history")
	}

	globalCfg, globalPath, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	if input.TasksFileOverride != "" {
		cfg.TasksFile = input.TasksFileOverride
	}

	if input.LogLevelOverride != "" {
		cfg.LogLevel = input.LogLevelOverride
	}

	validateErr := validate(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir
	cfg.TasksFileAbs = absPath(workDir, cfg.TasksFile)

	if cfg.HistoryFile != "" {
		cfg.HistoryFileAbs = absPath(workDir, cfg.HistoryFile)
	}

	return cfg, nil
}

// Format returns the serializable part of cfg as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}

// globalPath returns $XDG_CONFIG_HOME/taskboard/config.json, falling back
// to ~/.config/taskboard/config.json. Empty when neither variable is set.
func globalPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "taskboard", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "taskboard", "config.json")
	}

	return ""
}

func loadGlobal(env map[string]string) (Config, string, error) {
	return readLayer(globalPath(env), false)
}

// loadProject reads .taskboard.json in workDir, or configPath when given.
// An explicit configPath must exist.
func loadProject(workDir, configPath string) (Config, string, error) {
	if configPath == "" {
		return readLayer(filepath.Join(workDir, FileName), false)
	}

	path := absPath(workDir, configPath)

	if _, err := os.Stat(path); err != nil {
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	return readLayer(path, true)
}

// readLayer reads one config file. The returned path is empty when the file
// does not exist and required is false.
func readLayer(path string, required bool) (Config, string, error) {
	if path == "" {
		return Config{}, "", nil
	}

	data, err := os.ReadFile(path)

	switch {
	case err == nil:
	case required:
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	default:
		// Unreadable optional layers are skipped like missing ones.
		return Config{}, "", nil
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, path, nil
}

// parse decodes a JSONC config layer. Keys set to "" are meaningful:
// tasks_file may not be empty, and an empty history_file turns history off.
func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var raw map[string]json.RawMessage

	if err := json.Unmarshal(standardized, &raw); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if isEmptyString(raw["tasks_file"]) {
		return Config{}, ErrTasksFileEmpty
	}

	if isEmptyString(raw["history_file"]) {
		cfg.HistoryFile = disabled
	}

	return cfg, nil
}

func isEmptyString(msg json.RawMessage) bool {
	return string(msg) == `""`
}

// disabled marks a history_file explicitly set to "" until merge resolves it.
const disabled = "\x00"

func merge(base, overlay Config) Config {
	if overlay.TasksFile != "" {
		base.TasksFile = overlay.TasksFile
	}

	switch overlay.HistoryFile {
	case "":
	case disabled:
		base.HistoryFile = ""
	default:
		base.HistoryFile = overlay.HistoryFile
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.DefaultSort != "" {
		base.DefaultSort = overlay.DefaultSort
	}

	return base
}

func validate(cfg Config) error {
	if cfg.TasksFile == "" {
		return ErrTasksFileEmpty
	}

	if !slices.Contains(LogLevels, strings.ToLower(cfg.LogLevel)) {
		return fmt.Errorf("%w: %s (want %s)", ErrInvalidLogLevel, cfg.LogLevel, strings.Join(LogLevels, "|"))
	}

	if _, err := task.ParseSortKey(cfg.DefaultSort); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSort, cfg.DefaultSort)
	}

	return nil
}

func absPath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}
