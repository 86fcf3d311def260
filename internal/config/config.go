package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SegmenterConfig configures how raw text is split into chunks.
type SegmenterConfig struct {
	Type      string `yaml:"type"`
	ChunkSize int    `yaml:"chunk_size"`
}

// FingerprintConfig selects the per-chunk digest scheme.
type FingerprintConfig struct {
	Type      string `yaml:"type"`
	Algorithm string `yaml:"algorithm"`
}

// ExtractorConfig configures entity extraction. ExtraKeywords extend the
// built-in declaration keyword list.
type ExtractorConfig struct {
	Type          string   `yaml:"type"`
	ExtraKeywords []string `yaml:"extra_keywords,omitempty"`
}

// ReasonerConfig bounds the flow narrative and the ranked name lists.
type ReasonerConfig struct {
	MaxFlowSteps       int `yaml:"max_flow_steps"`
	CycleFallbackNodes int `yaml:"cycle_fallback_nodes"`
	MaxComponents      int `yaml:"max_components"`
	MaxFunctions       int `yaml:"max_functions"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Segmenter   SegmenterConfig   `yaml:"segmenter"`
	Fingerprint FingerprintConfig `yaml:"fingerprint"`
	Extractor   ExtractorConfig   `yaml:"extractor"`
	Reasoner    ReasonerConfig    `yaml:"reasoner"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/reposcope/config.yaml.
// If neither exists, it writes defaults to ~/.config/reposcope/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "reposcope", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Segmenter:   SegmenterConfig{Type: "word", ChunkSize: 1000},
		Fingerprint: FingerprintConfig{Type: "digest", Algorithm: "md5"},
		Extractor:   ExtractorConfig{Type: "pattern"},
		Reasoner:    ReasonerConfig{MaxFlowSteps: 8, CycleFallbackNodes: 10, MaxComponents: 5, MaxFunctions: 5},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Segmenter.ChunkSize == 0 {
		cfg.Segmenter.ChunkSize = 1000
	}
	if cfg.Fingerprint.Algorithm == "" {
		cfg.Fingerprint.Algorithm = "md5"
	}
	if cfg.Reasoner.MaxFlowSteps == 0 {
		cfg.Reasoner.MaxFlowSteps = 8
	}
	if cfg.Reasoner.CycleFallbackNodes == 0 {
		cfg.Reasoner.CycleFallbackNodes = 10
	}
	if cfg.Reasoner.MaxComponents == 0 {
		cfg.Reasoner.MaxComponents = 5
	}
	if cfg.Reasoner.MaxFunctions == 0 {
		cfg.Reasoner.MaxFunctions = 5
	}
}
