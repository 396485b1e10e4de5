package transport

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/apiguard/pkg/codec"
	"github.com/dmitrymomot/apiguard/pkg/replay"
	"github.com/dmitrymomot/apiguard/pkg/secrets"
	"github.com/dmitrymomot/apiguard/pkg/signature"
)

// Envelope is the wire form of an encrypted body:
//
//	{"encrypted":true,"payload":{"encrypted":"...","iv":"...","salt":"...","tag":"...","timestamp":0,"signature":"..."}}
type Envelope struct {
	Encrypted bool         `json:"encrypted"`
	Payload   *WirePayload `json:"payload,omitempty"`
}

// WirePayload carries an EncryptedPayload with base64 fields.
type WirePayload struct {
	Ciphertext string `json:"encrypted"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
	Tag        string `json:"tag"`
	Timestamp  int64  `json:"timestamp"`
	Signature  string `json:"signature"`
}

func toWire(p *secrets.EncryptedPayload) *WirePayload {
	return &WirePayload{
		Ciphertext: codec.ToBase64(p.Ciphertext),
		IV:         codec.ToBase64(p.IV),
		Salt:       codec.ToBase64(p.Salt),
		Tag:        codec.ToBase64(p.AuthTag),
		Timestamp:  p.Timestamp,
		Signature:  codec.ToBase64(p.Signature),
	}
}

func (w *WirePayload) decode() (*secrets.EncryptedPayload, error) {
	p := &secrets.EncryptedPayload{Timestamp: w.Timestamp}

	fields := []struct {
		name string
		in   string
		out  *[]byte
	}{
		{"encrypted", w.Ciphertext, &p.Ciphertext},
		{"iv", w.IV, &p.IV},
		{"salt", w.Salt, &p.Salt},
		{"tag", w.Tag, &p.AuthTag},
		{"signature", w.Signature, &p.Signature},
	}
	for _, f := range fields {
		b, err := codec.DecodeBase64(f.in)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q", ErrMalformedEnvelope, f.name)
		}
		*f.out = b
	}
	return p, nil
}

// ParseEnvelope reports whether body is an envelope with encrypted set. Any
// other JSON (or non-JSON) is plaintext.
func ParseEnvelope(body []byte) (*Envelope, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil || !env.Encrypted {
		return nil, false
	}
	return &env, true
}

// Codec converts between plaintext JSON and signed envelopes. Sealing
// encrypts then signs. Opening verifies the signature, then freshness, then
// decrypts, so a tampered timestamp is caught by the MAC first.
type Codec struct {
	cipher *secrets.Cipher
	signer *signature.Signer
	guard  *replay.Guard
}

// NewCodec assembles a Codec from its parts.
func NewCodec(cipher *secrets.Cipher, signer *signature.Signer, guard *replay.Guard) *Codec {
	return &Codec{cipher: cipher, signer: signer, guard: guard}
}

// Seal encrypts and signs plaintext, which must be JSON or empty, and
// returns the envelope bytes.
func (c *Codec) Seal(plaintext []byte) ([]byte, error) {
	p, err := c.cipher.EncryptJSON(plaintext)
	if err != nil {
		return nil, err
	}
	if err := c.signer.SignPayload(p); err != nil {
		return nil, fmt.Errorf("%w: %w", secrets.ErrEncryption, err)
	}

	out, err := json.Marshal(Envelope{Encrypted: true, Payload: toWire(p)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", secrets.ErrEncryption, err)
	}
	return out, nil
}

// Open returns the plaintext of an envelope. Bodies that are not envelopes
// are returned unchanged with encrypted set to false.
func (c *Codec) Open(body []byte) (plaintext []byte, encrypted bool, err error) {
	env, ok := ParseEnvelope(body)
	if !ok {
		return body, false, nil
	}
	if env.Payload == nil {
		return nil, true, fmt.Errorf("%w: missing payload", ErrMalformedEnvelope)
	}

	p, err := env.Payload.decode()
	if err != nil {
		return nil, true, err
	}

	if !c.signer.VerifyPayload(p) {
		return nil, true, signature.ErrSignatureInvalid
	}
	if err := c.guard.Check(p.Timestamp); err != nil {
		return nil, true, err
	}

	plain, err := c.cipher.Decrypt(p, p.Salt)
	if err != nil {
		return nil, true, err
	}
	return plain, true, nil
}
