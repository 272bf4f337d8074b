package ports

import (
	"context"

	"github.com/bft-labs/defendcode/internal/domain"
)

// CredentialStore persists exactly one credential at a time.
type CredentialStore interface {
	// Reset empties the store. Called once at session start.
	Reset(ctx context.Context) error

	// Save replaces the stored record with cred.
	// The implementation should write atomically so a failed save never
	// leaves a half-written record.
	Save(ctx context.Context, cred domain.Credential) error

	// Load returns the stored record.
	// Returns domain.ErrNoCredential if the store is empty.
	Load(ctx context.Context) (domain.Credential, error)
}
