// Package rules holds the concrete validators used by a session: names,
// integers, input and output files, and passwords.
//
// Every rule implements ports.Validator. A rule never fails on a malformed
// value; it rejects it with a reason the operator can act on. Only the file
// rules touch the file system, and only they can return a *domain.IOError.
package rules
