// Package password issues a credential for the session password and
// confirms it by re-entry.
package password

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/ports"
	"github.com/bft-labs/defendcode/internal/prompt"
	"github.com/bft-labs/defendcode/internal/rules"
)

// State is a step of the issue flow.
type State int

const (
	StateCollectingPassword State = iota
	StateHashing
	StatePersisting
	StateAwaitingConfirmation
	StateConfirmed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateCollectingPassword:
		return "CollectingPassword"
	case StateHashing:
		return "Hashing"
	case StatePersisting:
		return "Persisting"
	case StateAwaitingConfirmation:
		return "AwaitingConfirmation"
	case StateConfirmed:
		return "Confirmed"
	default:
		return "Unknown"
	}
}

// EventEmitter is called when the issue flow changes state.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Manager collects, hashes, stores and confirms the session password.
type Manager struct {
	prompter *prompt.Prompter
	store    ports.CredentialStore
	out      io.Writer
	hasher   Hasher
	salts    SaltSource
	emitter  EventEmitter
}

// Option configures a Manager.
type Option func(*Manager)

// WithHasher overrides the default SHA-256 hasher.
func WithHasher(h Hasher) Option {
	return func(m *Manager) { m.hasher = h }
}

// WithSaltSource overrides the default four-digit salt.
func WithSaltSource(s SaltSource) Option {
	return func(m *Manager) { m.salts = s }
}

// WithEmitter reports state changes to e.
func WithEmitter(e EventEmitter) Option {
	return func(m *Manager) { m.emitter = e }
}

// NewManager creates a Manager.
func NewManager(p *prompt.Prompter, store ports.CredentialStore, out io.Writer, opts ...Option) *Manager {
	m := &Manager{
		prompter: p.WithLabel("password"),
		store:    store,
		out:      out,
		hasher:   SHA256Hasher{},
		salts:    DefaultSalt(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue prompts for a valid password, stores its credential (replacing any
// previous one), and returns once the operator has re-entered the same
// password. A mismatch re-prompts for confirmation only. A storage fault is
// reported and retried with the same credential.
func (m *Manager) Issue(ctx context.Context) (domain.Credential, string, error) {
	var (
		state     = StateCollectingPassword
		plaintext string
		cred      domain.Credential
	)

	for {
		switch state {
		case StateCollectingPassword:
			fmt.Fprintln(m.out, rules.PasswordRequirements())
			pw, err := m.prompter.RunSecret(ctx, "Enter a password: ", rules.PasswordRule{})
			if err != nil {
				return domain.Credential{}, "", err
			}
			plaintext = pw
			state = m.transition(state, StateHashing, "password accepted")

		case StateHashing:
			salt, err := m.salts.NewSalt()
			if err != nil {
				return domain.Credential{}, "", err
			}
			cred = domain.Credential{Salt: salt, Digest: m.hasher.Digest(plaintext, salt)}
			state = m.transition(state, StatePersisting, "digest computed")

		case StatePersisting:
			if err := m.store.Save(ctx, cred); err != nil {
				if err := m.awaitRetry(ctx, "could not store password", err); err != nil {
					return domain.Credential{}, "", err
				}
				continue
			}
			fmt.Fprintln(m.out, "Please re-enter your password to verify.")
			state = m.transition(state, StateAwaitingConfirmation, "credential stored")

		case StateAwaitingConfirmation:
			again, err := m.prompter.ReadSecret(ctx, "Re-enter password: ")
			if err != nil {
				return domain.Credential{}, "", err
			}
			ok, err := m.Verify(ctx, again)
			if err != nil {
				if err := m.awaitRetry(ctx, "could not verify password", err); err != nil {
					return domain.Credential{}, "", err
				}
				state = m.transition(state, StatePersisting, "stored credential unreadable")
				continue
			}
			if !ok {
				m.prompter.Notify(domain.SeverityWarn, "passwords do not match, please try again")
				state = m.transition(state, StateAwaitingConfirmation, "mismatch")
				continue
			}
			fmt.Fprintln(m.out, "Password verified successfully.")
			state = m.transition(state, StateConfirmed, "confirmed")

		case StateConfirmed:
			return cred, plaintext, nil

		default:
			return domain.Credential{}, "", fmt.Errorf("password: invalid state %v", state)
		}
	}
}

// Verify recomputes the digest of password with the stored salt and
// compares it with the stored digest.
func (m *Manager) Verify(ctx context.Context, password string) (bool, error) {
	stored, err := m.store.Load(ctx)
	if err != nil {
		return false, err
	}
	got := m.hasher.Digest(password, stored.Salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(stored.Digest)) == 1, nil
}

// awaitRetry reports a storage fault and waits for the operator before the
// caller retries. Faults other than storage faults are returned unchanged.
func (m *Manager) awaitRetry(ctx context.Context, what string, cause error) error {
	if !errors.Is(cause, domain.ErrIO) && !errors.Is(cause, domain.ErrNoCredential) {
		return cause
	}
	m.prompter.Notify(domain.SeverityError, fmt.Sprintf("%s: %v", what, cause))
	_, err := m.prompter.ReadLine(ctx, "Press Enter to try again: ")
	return err
}

func (m *Manager) transition(from, to State, reason string) State {
	if m.emitter != nil {
		m.emitter.OnStateChange(from, to, reason)
	}
	return to
}
