package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config file names, in priority order.
const (
	DraceTomlFile  = ".drace.toml"
	PyprojectFile  = "pyproject.toml"
	envPrefix      = "DRACE"
	pyprojectTable = "drace"
)

// pyprojectConfig models the [tool.drace] table of pyproject.toml.
type pyprojectConfig struct {
	Tool struct {
		Drace *Config `toml:"drace"`
	} `toml:"tool"`
}

// Loader resolves configuration the way ruff does: a dedicated
// .drace.toml wins over pyproject.toml's [tool.drace], which wins over
// built-in defaults. DRACE_* environment variables override the file
// layer.
type Loader struct{}

// NewLoader creates a configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load resolves the effective configuration starting from startDir.
// Parent directories are searched upward until a config file or the
// filesystem root is reached. A missing config is not an error;
// defaults apply.
func (l *Loader) Load(startDir string) (*Config, error) {
	cfg := DefaultConfig()

	fileCfg, err := l.loadFromFiles(startDir)
	if err != nil {
		return nil, err
	}
	cfg.Merge(fileCfg)

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFile reads configuration from an explicit path, bypassing
// discovery. Unlike Load, a missing file is an error here.
func (l *Loader) LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	var fileCfg *Config
	var err error
	if filepath.Base(path) == PyprojectFile {
		fileCfg, err = decodePyproject(path)
	} else {
		fileCfg, err = decodeDraceToml(path)
	}
	if err != nil {
		return nil, err
	}

	cfg.Merge(fileCfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

func (l *Loader) loadFromFiles(startDir string) (*Config, error) {
	dir := startDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for {
		dracePath := filepath.Join(abs, DraceTomlFile)
		if fileExists(dracePath) {
			return decodeDraceToml(dracePath)
		}
		pyprojectPath := filepath.Join(abs, PyprojectFile)
		if fileExists(pyprojectPath) {
			if cfg, err := decodePyproject(pyprojectPath); err == nil && cfg != nil {
				return cfg, nil
			}
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, nil
		}
		abs = parent
	}
}

func decodeDraceToml(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodePyproject(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wrapper pyprojectConfig
	if err := toml.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Tool.Drace == nil {
		return nil, errors.New("pyproject.toml has no [tool." + pyprojectTable + "] section")
	}
	return wrapper.Tool.Drace, nil
}

// applyEnvOverrides overlays DRACE_* environment variables on top of
// the file configuration, e.g. DRACE_DUPLICATION_MIN_WINDOW=3 or
// DRACE_OUTPUT_FORMAT=json.
func applyEnvOverrides(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if n := v.GetInt("duplication.min_window"); n > 0 {
		cfg.Duplication.MinWindow = n
	}
	if n := v.GetInt("duplication.max_window"); n > 0 {
		cfg.Duplication.MaxWindow = n
	}
	if n := v.GetInt("duplication.min_dump_length"); n > 0 {
		cfg.Duplication.MinDumpLength = n
	}
	if n := v.GetInt("duplication.min_occurrences"); n > 0 {
		cfg.Duplication.MinOccurrences = n
	}
	if n := v.GetInt("duplication.max_displayed"); n > 0 {
		cfg.Duplication.MaxDisplayed = n
	}
	if s := v.GetString("lint.executable"); s != "" {
		cfg.Lint.Executable = s
	}
	if s := v.GetString("output.format"); s != "" {
		cfg.Output.Format = s
	}
}

// SearchRoot returns the directory discovery starts from for an
// analysis target: the path itself when it names a directory,
// otherwise its parent. Analyzing a single file still picks up the
// project configuration beside it.
func SearchRoot(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
