package secrets

import "errors"

// Sentinel errors for the cipher. Every returned error wraps exactly one of
// them, so callers can branch with errors.Is without parsing messages.
var (
	// ErrKeyDerivation is returned when a key cannot be derived from the
	// passphrase and salt. Fatal for the calling operation.
	ErrKeyDerivation = errors.New("secrets: key derivation failed")

	// ErrEncryption is returned when a payload cannot be serialized or sealed.
	ErrEncryption = errors.New("secrets: encryption failed")

	// ErrDecryption is returned when a payload cannot be opened. This covers
	// tag mismatch (tampering), wrong key, malformed fields and invalid JSON.
	ErrDecryption = errors.New("secrets: decryption failed")
)

// Error codes attached to the rich errors.
const (
	ErrCodeKeyDerivation = "SECRETS_KEY_DERIVATION"
	ErrCodeEncryption    = "SECRETS_ENCRYPTION"
	ErrCodeDecryption    = "SECRETS_DECRYPTION"
	ErrCodeRandom        = "SECRETS_RANDOM"
	ErrCodeMarshal       = "SECRETS_MARSHAL"
)
