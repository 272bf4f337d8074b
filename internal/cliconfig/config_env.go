package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (DEFENDCODE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("work-dir", os.Getenv("DEFENDCODE_WORK_DIR"), &cfg.WorkDir)
	s.setString("log-file", os.Getenv("DEFENDCODE_LOG_FILE"), &cfg.LogFile)
	s.setString("credential-file", os.Getenv("DEFENDCODE_CREDENTIAL_FILE"), &cfg.CredentialFile)
	s.setString("digest", os.Getenv("DEFENDCODE_DIGEST"), &cfg.Digest)

	s.setListFromString("ext", os.Getenv("DEFENDCODE_EXTENSIONS"), &cfg.Extensions)
	if err := s.setInt64FromString("max-input-bytes", os.Getenv("DEFENDCODE_MAX_INPUT_BYTES"), &cfg.MaxInputBytes); err != nil {
		return err
	}

	s.setBoolFromString("summary", os.Getenv("DEFENDCODE_SUMMARY"), &cfg.Summary)
	s.setBoolFromString("debug", os.Getenv("DEFENDCODE_DEBUG"), &cfg.Debug)

	return nil
}
