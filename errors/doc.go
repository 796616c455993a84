// Package errors provides the error taxonomy shared by every layer of
// sessionauth. It implements one structured error type carrying a
// machine-readable code, a human-readable message and the HTTP status the
// surrounding pipeline should use.
//
// Codes group into three kinds:
//
//   - KindValidation   (400) malformed input or a pre-existing resource
//   - KindUnauthorized (401) missing, invalid or expired credentials
//   - KindInternal     (500) hashing/signing failures, collaborator faults
//
// The core only classifies. Rendering is left to the HTTP layer, which calls
// ToResponse on the classified error.
package errors
