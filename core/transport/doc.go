// Package transport protects HTTP API traffic on the client side.
//
// Interceptor is an http.RoundTripper that classifies each request by path,
// attaches security headers, encrypts and signs the body where policy
// requires it, and on the way back verifies, freshness-checks and decrypts
// enveloped responses.
//
// # Endpoint classes
//
//	Sensitive  always encrypted; failure to encrypt aborts the request
//	Public     never encrypted, no security headers (login, health, ...)
//	Default    encrypted when Config.EncryptionEnabled; on failure falls back
//	           to plaintext unless Config.StrictEncryption is set
//
// A path matching both lists is sensitive.
//
// # Usage
//
//	cfg := transport.DefaultConfig()
//	cfg.EncryptionSecret = os.Getenv("SECURITY_ENCRYPTION_SECRET")
//	cfg.HMACSecret = os.Getenv("SECURITY_HMAC_SECRET")
//
//	rt, err := transport.New(cfg)
//	if err != nil {
//		return err
//	}
//	client := &http.Client{Transport: rt}
//
// # Wire format
//
//	{"encrypted":true,"payload":{"encrypted":"<b64>","iv":"<b64>","salt":"<b64>",
//	 "tag":"<b64>","timestamp":1700000000000,"signature":"<b64>"}}
//
// The signature is HMAC-SHA256 over ciphertext, iv, salt, tag and timestamp.
// Codec produces and consumes this format, so a server or a test double can
// speak it with the same secrets.
//
// # Errors
//
// Failures surface as *SecureError with a generic message. Use errors.Is to
// tell them apart:
//
//	switch {
//	case errors.Is(err, replay.ErrReplayDetected):
//	case errors.Is(err, signature.ErrSignatureInvalid):
//	case errors.Is(err, secrets.ErrDecryption):
//	case errors.Is(err, transport.ErrInsecureTransport):
//	}
//
// The detailed cause is written to the security event log, never returned.
package transport
