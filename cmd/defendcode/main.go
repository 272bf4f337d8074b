package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bft-labs/defendcode/internal/adapters/console"
	"github.com/bft-labs/defendcode/internal/adapters/fs"
	logAdapter "github.com/bft-labs/defendcode/internal/adapters/log"
	"github.com/bft-labs/defendcode/internal/app"
	"github.com/bft-labs/defendcode/internal/cliconfig"
	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/password"
	"github.com/bft-labs/defendcode/internal/ports"
)

const helpDescription = `
Collect a name, two integers, an input file, an output file and a password,
validating each answer and asking again until it is acceptable. The integers'
sum and product and the input file's contents are written to the output file.

Rejected answers and faults are appended to the diagnostic log. The password is
stored only as a salted digest in the credential file, which is emptied at the
start of every session.

Configure via $HOME/.defendcode/config.toml, DEFENDCODE_* variables, or flags.
`

var exampleUsage = strings.TrimSpace(`
  defendcode
  defendcode --work-dir ./data --ext .txt --ext .csv
  defendcode --digest argon2id --summary=false
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "defendcode",
		Short:         "Collect and validate operator input, then write a report",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if err := loadConfig(&cfg, cfgPath, changed); err != nil {
				return err
			}
			return runSession(cmd.Context(), cfg)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	})

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.defendcode/config.toml)")
	root.Flags().StringVar(&cfg.WorkDir, "work-dir", cfg.WorkDir, "directory input and output files are resolved in")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "diagnostic log, relative to work-dir unless absolute")
	root.Flags().StringVar(&cfg.CredentialFile, "credential-file", cfg.CredentialFile, "credential file, relative to work-dir unless absolute")
	root.Flags().StringSliceVar(&cfg.Extensions, "ext", cfg.Extensions, "accepted file extensions (repeatable)")
	root.Flags().Int64Var(&cfg.MaxInputBytes, "max-input-bytes", cfg.MaxInputBytes, "largest accepted input file in bytes")
	root.Flags().StringVar(&cfg.Digest, "digest", cfg.Digest, "password digest: sha256 or argon2id")
	root.Flags().BoolVar(&cfg.Summary, "summary", cfg.Summary, "print a summary after writing the output file")
	root.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "write debug lines to the diagnostic log")

	err := root.Execute()
	reportError(log, err)
	os.Exit(exitCode(err))
}

// sessionError marks an error the session has already shown to the operator
// and written to the diagnostic log.
type sessionError struct {
	err error
}

func (e *sessionError) Error() string { return e.err.Error() }

func (e *sessionError) Unwrap() error { return e.err }

// reportError writes err to log unless the session already reported it.
func reportError(log zerolog.Logger, err error) {
	var reported *sessionError
	if err == nil || errors.As(err, &reported) {
		return
	}
	log.Error().Err(err).Msg("defendcode")
}

// loadConfig applies the config file, then DEFENDCODE_* variables, to cfg
// without touching values set by flags, and validates the result.
func loadConfig(cfg *cliconfig.Config, cfgPath string, changed map[string]bool) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	switch {
	case cfgFile != "" && cliconfig.FileExists(cfgFile):
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidConfig) {
				return err
			}
			return fmt.Errorf("%w: load config: %v", domain.ErrInvalidConfig, err)
		}
		cliconfig.ApplyFileConfig(cfg, fc, changed)
	case cfgPath != "":
		return fmt.Errorf("%w: config file %s not found", domain.ErrInvalidConfig, cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}

// runSession wires the adapters for one interactive session and runs it.
func runSession(parent context.Context, cfg cliconfig.Config) error {
	if parent == nil {
		parent = context.Background()
	}

	sessionID := uuid.NewString()
	diag, logFile, err := logAdapter.OpenDiagnosticLog(cfg.LogPath(), sessionID)
	if err != nil {
		return err
	}
	defer logFile.Close()

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	diag = diag.Level(level)

	hasher, err := password.NewHasher(cfg.Digest)
	if err != nil {
		return err
	}
	store := fs.NewCredentialFile(cfg.CredentialPath())

	diag.Record(domain.SeverityInfo, "session started")
	diag.Debug("configuration",
		ports.String("work_dir", cfg.WorkDir),
		ports.String("credential_file", store.Path()),
		ports.String("extensions", strings.Join(cfg.Extensions, ",")),
		ports.Int64("max_input_bytes", cfg.MaxInputBytes),
		ports.String("digest", hasher.Name()),
	)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	go handleSignals(ctx, cancel, diag)

	session := app.NewSession(
		app.SessionConfig{
			WorkDir:       cfg.WorkDir,
			Extensions:    cfg.Extensions,
			MaxInputBytes: cfg.MaxInputBytes,
			Summary:       cfg.Summary,
			ReservedPaths: []string{store.Path(), cfg.LogPath()},
		},
		console.New(os.Stdin, os.Stdout),
		os.Stdout,
		store,
		diag,
		diag,
		password.WithHasher(hasher),
	)

	if _, err := session.Run(ctx); err != nil {
		diag.Info("session finished", ports.Int("exit_code", exitCode(err)))
		return &sessionError{err: err}
	}
	diag.Info("session finished", ports.Int("exit_code", ExitOK))
	return nil
}

// handleSignals ends the process on SIGINT or SIGTERM. A pending terminal
// read cannot be interrupted, so the process exits directly after restoring
// the terminal and logging the interruption.
func handleSignals(ctx context.Context, cancel context.CancelFunc, diag *logAdapter.ZerologAdapter) {
	var restore func()
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		if state, err := term.GetState(fd); err == nil {
			restore = func() { _ = term.Restore(fd, state) }
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		cancel()
		if restore != nil {
			restore()
		}
		diag.Record(domain.SeverityWarn, "session interrupted by "+sig.String())
		fmt.Fprintln(os.Stdout, "\nInterrupted.")
		os.Exit(ExitInterrupted)
	case <-ctx.Done():
	}
}
