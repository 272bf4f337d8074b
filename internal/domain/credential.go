package domain

// Credential is the persisted record for one issued password.
// A new Credential replaces the previous one; it is never updated in place.
type Credential struct {
	Salt   string
	Digest string
}

// IsEmpty returns true if the credential has not been initialized.
func (c Credential) IsEmpty() bool {
	return c.Salt == "" && c.Digest == ""
}
