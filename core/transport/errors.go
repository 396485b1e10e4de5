package transport

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/apiguard/pkg/secrets"
)

var (
	// ErrInvalidConfig is returned by New for an unusable Config.
	ErrInvalidConfig = errors.New("transport: invalid config")

	// ErrInsecureTransport is returned when HTTPS is enforced and a protected
	// request targets a plain http URL.
	ErrInsecureTransport = errors.New("transport: refusing to send over insecure transport")

	// ErrMalformedEnvelope is returned for an envelope that cannot be parsed.
	// It wraps secrets.ErrDecryption.
	ErrMalformedEnvelope = fmt.Errorf("%w: malformed envelope", secrets.ErrDecryption)

	// ErrResponseTooLarge is returned for an encrypted response above the size
	// limit. It wraps secrets.ErrDecryption.
	ErrResponseTooLarge = fmt.Errorf("%w: response exceeds size limit", secrets.ErrDecryption)
)

// Phase identifies which half of a round trip failed.
type Phase string

const (
	PhaseRequest  Phase = "request"
	PhaseResponse Phase = "response"
)

// SecureError is what callers see when a request cannot be protected or a
// response cannot be trusted. Its message is deliberately generic; Kind holds
// the sentinel that classifies the failure and errors.Is matches against it.
// The underlying cause is only recorded in the security event log.
type SecureError struct {
	Phase         Phase
	Kind          error
	CorrelationID string
}

func (e *SecureError) Error() string {
	if e.Phase == PhaseRequest {
		return "failed to prepare secure request"
	}
	return "failed to process secure response"
}

// Is reports whether target matches the failure kind.
func (e *SecureError) Is(target error) bool {
	return e.Kind != nil && errors.Is(e.Kind, target)
}
