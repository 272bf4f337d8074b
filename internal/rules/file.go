package rules

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bft-labs/defendcode/internal/domain"
)

// DefaultExtensions lists the file extensions accepted when none are configured.
var DefaultExtensions = []string{".txt"}

// DefaultMaxInputBytes caps the size of an input file.
const DefaultMaxInputBytes int64 = 10 << 20

// FileRule validates a file name for the input or output role. Names are
// resolved against Dir and may not contain path separators.
type FileRule struct {
	Role       domain.FileRole
	Dir        string
	Extensions []string

	// MaxBytes limits input files; zero means no limit.
	MaxBytes int64

	// InputName is the confirmed input file; output names must differ from it.
	InputName string

	// Reserved lists paths the session writes itself (credential file,
	// diagnostic log). Neither role may select them.
	Reserved []string
}

// NewInputFileRule returns a rule for the input role.
func NewInputFileRule(dir string, extensions []string, maxBytes int64, reserved ...string) *FileRule {
	return &FileRule{
		Role:       domain.RoleInput,
		Dir:        dir,
		Extensions: NormalizeExtensions(extensions),
		MaxBytes:   maxBytes,
		Reserved:   reserved,
	}
}

// NewOutputFileRule returns a rule for the output role that rejects inputName.
func NewOutputFileRule(dir string, extensions []string, inputName string, reserved ...string) *FileRule {
	return &FileRule{
		Role:       domain.RoleOutput,
		Dir:        dir,
		Extensions: NormalizeExtensions(extensions),
		InputName:  inputName,
		Reserved:   reserved,
	}
}

// NormalizeExtensions lower-cases extensions and adds a leading dot.
// An empty list yields DefaultExtensions.
func NormalizeExtensions(exts []string) []string {
	var out []string
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultExtensions...)
	}
	return out
}

// Path returns the location of name under the rule's directory.
func (r *FileRule) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// Validate implements ports.Validator.
func (r *FileRule) Validate(raw string) (domain.ValidationResult, error) {
	if res := r.checkName(raw); !res.Accepted {
		return res, nil
	}
	if r.Role == domain.RoleOutput {
		return r.checkWritable(raw)
	}
	return r.checkReadable(raw)
}

func (r *FileRule) checkName(raw string) domain.ValidationResult {
	if strings.IndexFunc(raw, unicode.IsControl) >= 0 {
		return domain.Reject("file name must not contain control characters")
	}
	if !r.hasAllowedExtension(raw) {
		return domain.Reject("file must have one of these extensions: " + strings.Join(r.extensions(), ", "))
	}
	if strings.ContainsAny(raw, `/\`) {
		return domain.Reject(`only files in the current directory are allowed; do not include path separators (/ or \)`)
	}
	if r.Role == domain.RoleOutput && r.InputName != "" && strings.EqualFold(raw, r.InputName) {
		return domain.Reject(fmt.Sprintf("output file cannot be the same as input file '%s'", r.InputName))
	}
	if r.isReserved(raw) {
		return domain.Reject(fmt.Sprintf("'%s' is used by this program and cannot be selected", raw))
	}
	return domain.Accept()
}

// isReserved compares case-insensitively, like the input name check.
func (r *FileRule) isReserved(name string) bool {
	target := absPath(r.Path(name))
	for _, p := range r.Reserved {
		if strings.EqualFold(absPath(p), target) {
			return true
		}
	}
	return false
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func (r *FileRule) hasAllowedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range r.extensions() {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (r *FileRule) extensions() []string {
	if len(r.Extensions) == 0 {
		return DefaultExtensions
	}
	return r.Extensions
}

// checkReadable accepts an existing regular file from which one byte can be
// read. An empty file is readable.
func (r *FileRule) checkReadable(name string) (domain.ValidationResult, error) {
	path := r.Path(name)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Reject(fmt.Sprintf("file '%s' does not exist", name)), nil
		}
		return domain.ValidationResult{}, domain.NewIOError("stat", name, err)
	}
	if !info.Mode().IsRegular() {
		return domain.Reject(fmt.Sprintf("'%s' is not a regular file", name)), nil
	}
	if r.MaxBytes > 0 && info.Size() > r.MaxBytes {
		return domain.Reject(fmt.Sprintf("file '%s' is too large (%d bytes, limit %d)", name, info.Size(), r.MaxBytes)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.ValidationResult{}, domain.NewIOError("open", name, err)
	}
	defer f.Close()

	var probe [1]byte
	if _, err := f.Read(probe[:]); err != nil && !errors.Is(err, io.EOF) {
		return domain.ValidationResult{}, domain.NewIOError("read", name, err)
	}
	return domain.Accept(), nil
}

// checkWritable creates or truncates the file to prove it can be written.
func (r *FileRule) checkWritable(name string) (domain.ValidationResult, error) {
	path := r.Path(name)

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return domain.Reject(fmt.Sprintf("'%s' is a directory", name)), nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return domain.ValidationResult{}, domain.NewIOError("open for writing", name, err)
	}
	if err := f.Close(); err != nil {
		return domain.ValidationResult{}, domain.NewIOError("close", name, err)
	}
	return domain.Accept(), nil
}
