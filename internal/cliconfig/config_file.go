package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/defendcode/internal/domain"
)

// FileConfig mirrors Config for TOML decoding. Pointer fields distinguish
// "unset" from the zero value.
type FileConfig struct {
	WorkDir        string   `toml:"work_dir"`
	LogFile        string   `toml:"log_file"`
	CredentialFile string   `toml:"credential_file"`
	Extensions     []string `toml:"extensions"`
	MaxInputBytes  int64    `toml:"max_input_bytes"`
	Digest         string   `toml:"digest"`
	Summary        *bool    `toml:"summary"`
	Debug          *bool    `toml:"debug"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.defendcode/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".defendcode", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("work-dir", fc.WorkDir, &cfg.WorkDir)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)
	s.setString("credential-file", fc.CredentialFile, &cfg.CredentialFile)
	s.setString("digest", fc.Digest, &cfg.Digest)

	s.setStrings("ext", fc.Extensions, &cfg.Extensions)
	s.setInt64("max-input-bytes", fc.MaxInputBytes, &cfg.MaxInputBytes)

	s.setBool("summary", fc.Summary, &cfg.Summary)
	s.setBool("debug", fc.Debug, &cfg.Debug)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
