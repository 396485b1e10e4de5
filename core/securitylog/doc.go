// Package securitylog keeps a bounded, in-memory record of security events.
//
// Entries are stored in a fixed-capacity ring buffer; once full, the oldest
// entry is evicted. Every entry's details are masked before storage: any key
// that looks like it carries a secret (password, token, cookie, signature and
// similar) has its value replaced with MaskedValue, recursively through nested
// maps and slices. Stored entries are mirrored to a slog logger after masking.
//
// A process-wide log is available through Default; components accept an
// explicit *Log so tests can use isolated instances.
//
//	log := securitylog.New(securitylog.WithCapacity(500))
//	log.Record(ctx, securitylog.KindLoginFailure, "login failed", map[string]any{
//		"identifier": hash,
//		"password":   password, // stored as MaskedValue
//	})
//
// The log is process-lifetime only and is never persisted.
package securitylog
