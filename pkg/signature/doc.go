// Package signature signs and verifies encrypted payload metadata with HMAC-SHA256.
//
// The MAC covers a canonical JSON encoding of the payload fields in a fixed
// order (ciphertext, iv, salt, tag, timestamp). The signature field itself is
// never part of the signed bytes. Changing any covered field after signing makes
// Verify return false.
//
// # Usage
//
//	s, err := signature.New(hmacSecret)
//	if err != nil {
//		return err
//	}
//
//	if err := s.SignPayload(payload); err != nil {
//		return err
//	}
//
//	if !s.VerifyPayload(payload) {
//		// discard
//	}
//
// Verify compares MACs with hmac.Equal, so the time taken does not depend on
// where the two values first differ. Mismatch is reported as a plain bool.
package signature
