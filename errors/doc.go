// Package errors defines AppError, the error type carried from pipeline
// stages to the HTTP layer, with a machine-readable code and an HTTP status.
package errors
