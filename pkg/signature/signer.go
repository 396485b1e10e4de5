package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/apiguard/pkg/codec"
	"github.com/dmitrymomot/apiguard/pkg/secrets"
)

// Size is the length of a signature in bytes.
const Size = sha256.Size

// Metadata is the signed view of an encrypted payload. Field order is the
// canonical serialization order and must not change.
type Metadata struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
	Tag        string `json:"tag"`
	Timestamp  int64  `json:"timestamp"`
}

// MetadataOf extracts the signed fields of p, base64 encoded.
func MetadataOf(p *secrets.EncryptedPayload) Metadata {
	return Metadata{
		Ciphertext: codec.ToBase64(p.Ciphertext),
		IV:         codec.ToBase64(p.IV),
		Salt:       codec.ToBase64(p.Salt),
		Tag:        codec.ToBase64(p.AuthTag),
		Timestamp:  p.Timestamp,
	}
}

// Canonical returns the exact bytes that are MACed.
func (m Metadata) Canonical() ([]byte, error) {
	return json.Marshal(m)
}

// Signer computes and checks HMAC-SHA256 signatures. It is safe for
// concurrent use.
type Signer struct {
	secret []byte
}

// New creates a Signer. The secret is copied.
func New(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &Signer{secret: codec.Clone(secret)}, nil
}

// Sign returns the HMAC of m's canonical encoding.
func (s *Signer) Sign(m Metadata) ([]byte, error) {
	data, err := m.Canonical()
	if err != nil {
		return nil, fmt.Errorf("signature: failed to encode metadata: %w", err)
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(data)
	return mac.Sum(nil), nil
}

// Verify reports whether sig is the signature of m. The comparison is
// constant-time.
func (s *Signer) Verify(m Metadata, sig []byte) bool {
	if len(sig) != Size {
		return false
	}
	expected, err := s.Sign(m)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sig)
}

// SignPayload computes the signature of p and stores it in p.Signature.
func (s *Signer) SignPayload(p *secrets.EncryptedPayload) error {
	if p == nil {
		return ErrNilPayload
	}
	sig, err := s.Sign(MetadataOf(p))
	if err != nil {
		return err
	}
	p.Signature = sig
	return nil
}

// VerifyPayload reports whether p.Signature matches p's metadata.
func (s *Signer) VerifyPayload(p *secrets.EncryptedPayload) bool {
	if p == nil {
		return false
	}
	return s.Verify(MetadataOf(p), p.Signature)
}
