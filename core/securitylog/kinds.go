package securitylog

// Event kinds recorded by the security components.
const (
	KindSecureRequest      = "secure_request"
	KindSecureResponse     = "secure_response"
	KindEncryptionFallback = "encryption_fallback"
	KindEncryptionError    = "encryption_error"
	KindDecryptionError    = "decryption_error"
	KindSignatureInvalid   = "signature_invalid"
	KindReplayDetected     = "replay_detected"
	KindInsecureTransport  = "insecure_transport"
	KindTransportError     = "transport_error"
	KindValidationFailed   = "validation_failed"
	KindLoginSuccess       = "login_success"
	KindLoginFailure       = "login_failure"
	KindLoginBlocked       = "login_blocked"
	KindSessionCleared     = "session_cleared"
)

// warnKinds are mirrored to slog at Warn level; everything else is Info.
var warnKinds = map[string]bool{
	KindEncryptionFallback: true,
	KindEncryptionError:    true,
	KindDecryptionError:    true,
	KindSignatureInvalid:   true,
	KindReplayDetected:     true,
	KindInsecureTransport:  true,
	KindTransportError:     true,
	KindLoginBlocked:       true,
}
