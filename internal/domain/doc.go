// Package domain contains the core entities and value objects for defendcode.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (terminal, file system, logging) and contains only
// the rules the rest of the program is built around.
//
// # Entities
//
//   - [ValidationResult]: the verdict a validator produces for one raw value
//   - [Credential]: the persisted {salt, digest} pair for an issued password
//   - [NumberPair]: two 32-bit integers with overflow-checked Sum and Product
//   - [FileSelection]: a confirmed file name and its role (input or output)
//
// # Errors
//
// Faults are reported as typed errors ([IOError], [OverflowError],
// [UnexpectedError]) that match the sentinels in errors.go with errors.Is.
// A rejected value is not an error; it is a ValidationResult with
// Accepted == false.
package domain
