package fs

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bft-labs/defendcode/internal/domain"
)

// DefaultCredentialFileName is the store file name used when none is configured.
const DefaultCredentialFileName = "password.txt"

// CredentialFile implements ports.CredentialStore using a two-line text
// file: the salt on line 1 and the digest on line 2.
type CredentialFile struct {
	path string
}

// NewCredentialFile creates a store backed by the file at path.
func NewCredentialFile(path string) *CredentialFile {
	return &CredentialFile{path: path}
}

// Reset truncates the store to an empty file, creating it if needed.
func (r *CredentialFile) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(r.path, nil, 0o600); err != nil {
		return domain.NewIOError("reset credential store", r.path, err)
	}
	return nil
}

// Save replaces the stored record. The record is staged next to the store
// and renamed into place, so Load sees either the old or the new credential.
func (r *CredentialFile) Save(ctx context.Context, cred domain.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	data := cred.Salt + "\n" + cred.Digest

	if err := os.WriteFile(tmp, []byte(data), 0o600); err != nil {
		_ = os.Remove(tmp)
		return domain.NewIOError("save credential", tmp, err)
	}

	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return domain.NewIOError("save credential", r.path, err)
	}
	return nil
}

// Load reads the stored record.
// Returns domain.ErrNoCredential if the file is missing or empty.
func (r *CredentialFile) Load(ctx context.Context) (domain.Credential, error) {
	if err := ctx.Err(); err != nil {
		return domain.Credential{}, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Credential{}, domain.ErrNoCredential
		}
		return domain.Credential{}, domain.NewIOError("load credential", r.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return domain.Credential{}, domain.ErrNoCredential
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return domain.Credential{}, domain.NewIOError("load credential", r.path, errMalformed)
	}
	cred := domain.Credential{
		Salt:   strings.TrimSpace(lines[0]),
		Digest: strings.TrimSpace(lines[1]),
	}
	if !isDecimal(cred.Salt) || !isHex(cred.Digest) {
		return domain.Credential{}, domain.NewIOError("load credential", r.path, errMalformed)
	}
	return cred, nil
}

var errMalformed = errors.New("malformed record: want a decimal salt line and a hex digest line")

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// Path returns the full path to the store file.
func (r *CredentialFile) Path() string {
	return filepath.Clean(r.path)
}
