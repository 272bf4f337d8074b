package domain

// FileRole distinguishes the file a session reads from the one it writes.
type FileRole int

const (
	RoleInput FileRole = iota
	RoleOutput
)

// String returns a human-readable representation of the role.
func (r FileRole) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	default:
		return "unknown"
	}
}

// FileSelection is a confirmed file name for a role. Names never contain a
// path separator, so they always refer to the working directory.
type FileSelection struct {
	Name string
	Role FileRole
}
