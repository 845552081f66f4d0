// Package logger is the structured logger used across visitnote.
//
// It wraps zerolog with component-scoped children and request-scoped
// fields. Callers pass optional field maps to every level method:
//
//	log := logger.Get("visit")
//	log.Info("transcript ready", logger.Fields("chars", len(text)))
package logger
