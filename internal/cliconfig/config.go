package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bft-labs/defendcode/internal/adapters/fs"
	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/password"
	"github.com/bft-labs/defendcode/internal/rules"
)

// DefaultLogFile is the diagnostic log written in the work directory.
const DefaultLogFile = "error_log.txt"

// Config holds CLI configuration for defendcode.
type Config struct {
	WorkDir        string
	LogFile        string
	CredentialFile string

	Extensions    []string
	MaxInputBytes int64

	Digest  string
	Summary bool
	Debug   bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		WorkDir:        ".",
		LogFile:        DefaultLogFile,
		CredentialFile: fs.DefaultCredentialFileName,
		Extensions:     append([]string(nil), rules.DefaultExtensions...),
		MaxInputBytes:  rules.DefaultMaxInputBytes,
		Digest:         password.DigestSHA256,
		Summary:        true,
	}
}

// Validate checks the configuration for errors and normalizes it.
// Every error matches domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	info, err := os.Stat(c.WorkDir)
	if err != nil {
		return fmt.Errorf("%w: work-dir: %v", domain.ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: work-dir %s is not a directory", domain.ErrInvalidConfig, c.WorkDir)
	}

	if c.LogFile == "" {
		return fmt.Errorf("%w: log-file is required", domain.ErrInvalidConfig)
	}
	if c.CredentialFile == "" {
		return fmt.Errorf("%w: credential-file is required", domain.ErrInvalidConfig)
	}

	c.Extensions = rules.NormalizeExtensions(c.Extensions)
	for _, ext := range c.Extensions {
		if len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("%w: invalid extension %q", domain.ErrInvalidConfig, ext)
		}
	}

	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("%w: max-input-bytes must be positive", domain.ErrInvalidConfig)
	}

	c.Digest = strings.ToLower(strings.TrimSpace(c.Digest))
	if c.Digest == "" {
		c.Digest = password.DigestSHA256
	}
	if _, err := password.NewHasher(c.Digest); err != nil {
		return err
	}

	return nil
}

// LogPath returns the diagnostic log path, resolved against WorkDir when relative.
func (c Config) LogPath() string {
	return c.resolve(c.LogFile)
}

// CredentialPath returns the credential file path, resolved against WorkDir when relative.
func (c Config) CredentialPath() string {
	return c.resolve(c.CredentialFile)
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings replaces a list if the new one is non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setInt64 sets an int64 value if positive and flag not changed.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setListFromString splits a comma separated list and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setListFromString(flag, value string, dst *[]string) {
	if strings.TrimSpace(value) == "" || s.changed[flag] {
		return
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	s.setStrings(flag, out, dst)
}

// setInt64FromString parses a string to int64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
