// Package logger builds slog loggers and provides attribute helpers for
// security components.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithProduction("checkout-web"),
//		logger.WithOutput(os.Stderr),
//	)
//
//	log.Warn("secure response rejected",
//		logger.Component("transport"),
//		logger.CorrelationID(id),
//		logger.URL(req.URL),
//		logger.Error(err),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for zero input (nil error, empty ID), which
// slog drops, so they can be passed without guards.
//
// URL strips query strings, fragments and user info. Identifier is meant for
// hashed identifiers only; raw emails, passwords, tokens and request bodies
// must never reach a logger.
package logger
