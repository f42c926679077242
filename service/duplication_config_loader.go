package service

import (
	"os"

	"github.com/drace-lint/drace/domain"
	"github.com/drace-lint/drace/internal/config"
)

// DuplicationConfigLoader implements domain.DuplicationConfigLoader
// over the TOML configuration layer.
type DuplicationConfigLoader struct {
	loader *config.Loader
}

// NewDuplicationConfigLoader creates a configuration loader.
func NewDuplicationConfigLoader() *DuplicationConfigLoader {
	return &DuplicationConfigLoader{loader: config.NewLoader()}
}

// LoadConfig resolves configuration from path (an explicit config
// file, or a directory to search from) into a request.
func (l *DuplicationConfigLoader) LoadConfig(path string) (*domain.DuplicationRequest, error) {
	var cfg *config.Config
	var err error
	if path != "" && !isDir(path) {
		cfg, err = l.loader.LoadFile(path)
	} else {
		cfg, err = l.loader.Load(path)
	}
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return l.toRequest(cfg), nil
}

// GetDefaultConfig returns the built-in default request.
func (l *DuplicationConfigLoader) GetDefaultConfig() *domain.DuplicationRequest {
	return l.toRequest(config.DefaultConfig())
}

func (l *DuplicationConfigLoader) toRequest(cfg *config.Config) *domain.DuplicationRequest {
	req := domain.DefaultDuplicationRequest()
	req.MinWindow = cfg.Duplication.MinWindow
	req.MaxWindow = cfg.Duplication.MaxWindow
	req.MinDumpLength = cfg.Duplication.MinDumpLength
	req.MinOccurrences = cfg.Duplication.MinOccurrences
	req.MaxDisplayed = cfg.Duplication.MaxDisplayed
	req.IncludePatterns = cfg.Input.IncludePatterns
	req.ExcludePatterns = cfg.Input.ExcludePatterns
	if cfg.Input.Recursive != nil {
		req.Recursive = *cfg.Input.Recursive
	}
	if cfg.Output.Format != "" {
		req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	}
	return req
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
