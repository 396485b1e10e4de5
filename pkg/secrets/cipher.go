package secrets

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"

	"github.com/dmitrymomot/apiguard/pkg/clock"
)

const (
	// IVSize is the AES-GCM nonce length in bytes.
	IVSize = 12

	// TagSize is the AES-GCM authentication tag length in bytes.
	TagSize = 16
)

// EncryptedPayload is the result of one Encrypt call.
//
// Signature is filled in by the signer after encryption; the cipher itself
// never reads it.
type EncryptedPayload struct {
	Ciphertext []byte
	IV         []byte
	AuthTag    []byte
	Salt       []byte
	Timestamp  int64 // milliseconds since epoch
	Signature  []byte
}

// Cipher encrypts JSON payloads under keys derived from a pre-shared
// passphrase. A fresh salt and IV are drawn for every call.
type Cipher struct {
	passphrase string
	iterations int
	random     io.Reader
	now        clock.Func
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithIterations overrides the PBKDF2 iteration count. Non-positive values are ignored.
func WithIterations(n int) Option {
	return func(c *Cipher) {
		if n > 0 {
			c.iterations = n
		}
	}
}

// WithRandom sets the source of salts and IVs. Intended for tests.
func WithRandom(r io.Reader) Option {
	return func(c *Cipher) {
		if r != nil {
			c.random = r
		}
	}
}

// WithClock sets the clock used to stamp payloads.
func WithClock(fn clock.Func) Option {
	return func(c *Cipher) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewCipher creates a Cipher for the given passphrase.
func NewCipher(passphrase string, opts ...Option) (*Cipher, error) {
	if passphrase == "" {
		richErr := goerrors.New(ErrCodeKeyDerivation, "passphrase cannot be empty")
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, richErr)
	}

	c := &Cipher{
		passphrase: passphrase,
		iterations: DefaultIterations,
		random:     rand.Reader,
		now:        clock.System,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Iterations reports the PBKDF2 iteration count in use.
func (c *Cipher) Iterations() int {
	return c.iterations
}

// Encrypt serializes v to JSON and encrypts it.
func (c *Cipher) Encrypt(v any) (*EncryptedPayload, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeMarshal, "failed to serialize plaintext")
		return nil, fmt.Errorf("%w: %w", ErrEncryption, richErr)
	}
	return c.seal(plaintext)
}

// EncryptJSON encrypts an already serialized JSON document. An empty input is
// accepted and round-trips to an empty output.
func (c *Cipher) EncryptJSON(plaintext []byte) (*EncryptedPayload, error) {
	if len(plaintext) > 0 && !json.Valid(plaintext) {
		richErr := goerrors.New(ErrCodeMarshal, "plaintext is not valid JSON")
		return nil, fmt.Errorf("%w: %w", ErrEncryption, richErr)
	}
	return c.seal(plaintext)
}

func (c *Cipher) seal(plaintext []byte) (*EncryptedPayload, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.random, salt); err != nil {
		richErr := goerrors.Wrap(err, ErrCodeRandom, "failed to generate salt")
		return nil, fmt.Errorf("%w: %w", ErrEncryption, richErr)
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		richErr := goerrors.Wrap(err, ErrCodeRandom, "failed to generate iv")
		return nil, fmt.Errorf("%w: %w", ErrEncryption, richErr)
	}

	key, err := DeriveKey(c.passphrase, salt, c.iterations)
	if err != nil {
		return nil, err
	}

	ciphertext, tag := key.seal(iv, plaintext)

	return &EncryptedPayload{
		Ciphertext: ciphertext,
		IV:         iv,
		AuthTag:    tag,
		Salt:       salt,
		Timestamp:  c.now(),
	}, nil
}

// Decrypt re-derives the key from salt (the salt used at encryption time),
// verifies the tag and returns the JSON plaintext. When salt is nil the salt
// carried in the payload is used.
//
// Decryption is all-or-nothing: on any failure no plaintext is returned.
func (c *Cipher) Decrypt(p *EncryptedPayload, salt []byte) (json.RawMessage, error) {
	if p == nil {
		richErr := goerrors.New(ErrCodeDecryption, "payload is nil")
		return nil, fmt.Errorf("%w: %w", ErrDecryption, richErr)
	}
	if salt == nil {
		salt = p.Salt
	}
	if len(p.IV) != IVSize {
		richErr := goerrors.New(ErrCodeDecryption, fmt.Sprintf("iv must be %d bytes (got %d)", IVSize, len(p.IV)))
		return nil, fmt.Errorf("%w: %w", ErrDecryption, richErr)
	}
	if len(p.AuthTag) != TagSize {
		richErr := goerrors.New(ErrCodeDecryption, fmt.Sprintf("auth tag must be %d bytes (got %d)", TagSize, len(p.AuthTag)))
		return nil, fmt.Errorf("%w: %w", ErrDecryption, richErr)
	}

	key, err := DeriveKey(c.passphrase, salt, c.iterations)
	if err != nil {
		return nil, err
	}

	plaintext, err := key.open(p.IV, p.Ciphertext, p.AuthTag)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeDecryption, "authentication failed (wrong key or tampered data)")
		return nil, fmt.Errorf("%w: %w", ErrDecryption, richErr)
	}

	if len(plaintext) == 0 {
		return json.RawMessage{}, nil
	}
	if !json.Valid(plaintext) {
		richErr := goerrors.New(ErrCodeDecryption, "plaintext is not valid JSON")
		return nil, fmt.Errorf("%w: %w", ErrDecryption, richErr)
	}

	return json.RawMessage(plaintext), nil
}

// DecryptInto decrypts p and unmarshals the plaintext into v.
func (c *Cipher) DecryptInto(p *EncryptedPayload, salt []byte, v any) error {
	plaintext, err := c.Decrypt(p, salt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		richErr := goerrors.Wrap(err, ErrCodeDecryption, "failed to parse plaintext")
		return fmt.Errorf("%w: %w", ErrDecryption, richErr)
	}
	return nil
}
