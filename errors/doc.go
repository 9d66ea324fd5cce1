// Package errors provides the structured error type used across fnkit.
// Contract violations raised by the library (shape and arity mismatches,
// empty numeric input, type mismatches between stages) are reported as
// *AppError values carrying a machine-readable code. Errors returned by
// caller-supplied functions are never wrapped.
package errors
