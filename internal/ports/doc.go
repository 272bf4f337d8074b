// Package ports defines the interfaces (ports) that connect the session
// logic to infrastructure adapters.
//
// Ports are the boundaries between the core and the outside world. They
// define what the core needs from terminals, files and log sinks without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [Validator]: classifies a raw string as accepted or rejected
//   - [Console]: reads a line (or a secret) from the operator
//   - [CredentialStore]: persists the single {salt, digest} record
//   - [DiagnosticSink]: append-only record of faults and rejections
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app, internal/prompt, internal/password)
// depends only on these interfaces. Infrastructure adapters
// (internal/adapters) implement them with the file system, the terminal and
// zerolog.
package ports
