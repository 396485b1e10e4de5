// Package secrets provides AES-256-GCM payload encryption with PBKDF2 key derivation
// for protecting API request and response bodies.
//
// Keys are derived from a pre-shared passphrase with PBKDF2-HMAC-SHA256
// (100,000 iterations by default) and a random 16-byte salt. Every Encrypt call
// draws a fresh salt and a fresh 12-byte IV, so an IV is never reused under the
// same key. The salt travels with the payload and must be handed back to Decrypt:
// deriving with any other salt produces a different key and decryption fails.
//
// # Usage
//
//	c, err := secrets.NewCipher(os.Getenv("SECURITY_ENCRYPTION_SECRET"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	payload, err := c.Encrypt(map[string]any{"card": "4111..."})
//	if err != nil {
//		return err
//	}
//
//	plaintext, err := c.Decrypt(payload, payload.Salt)
//	if err != nil {
//		return err // tampering, wrong key or malformed payload
//	}
//
// # Key Derivation
//
// DeriveKey is deterministic for a (passphrase, salt, iterations) triple. The
// resulting Key only exposes sealing and opening; the raw key bytes are wiped
// right after the AEAD is constructed.
//
// # Error Handling
//
// All errors wrap one of ErrKeyDerivation, ErrEncryption or ErrDecryption, joined
// with a coded github.com/agilira/go-errors error carrying the detail:
//
//	if _, err := c.Decrypt(p, salt); errors.Is(err, secrets.ErrDecryption) {
//		// discard the response
//	}
//
// Decryption is atomic: an authentication failure never yields partial plaintext.
package secrets
