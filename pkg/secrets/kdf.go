package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrymomot/apiguard/pkg/codec"
)

const (
	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32

	// SaltSize is the PBKDF2 salt length in bytes.
	SaltSize = 16

	// DefaultIterations is the PBKDF2-HMAC-SHA256 iteration count.
	DefaultIterations = 100_000
)

// Key is a derived AES-256-GCM key. The raw key bytes are discarded once the
// cipher is set up, so a Key can encrypt and decrypt but never be exported.
type Key struct {
	aead cipher.AEAD
}

// DeriveKey derives a Key from passphrase and a SaltSize-byte salt using
// PBKDF2-HMAC-SHA256 with the given iteration count.
//
// The same (passphrase, salt, iterations) always yields the same key.
func DeriveKey(passphrase string, salt []byte, iterations int) (*Key, error) {
	if passphrase == "" {
		richErr := goerrors.New(ErrCodeKeyDerivation, "passphrase cannot be empty")
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, richErr)
	}
	if len(salt) != SaltSize {
		richErr := goerrors.New(ErrCodeKeyDerivation, fmt.Sprintf("salt must be %d bytes (got %d)", SaltSize, len(salt)))
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, richErr)
	}
	if iterations <= 0 {
		richErr := goerrors.New(ErrCodeKeyDerivation, "iterations must be positive")
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, richErr)
	}

	raw := pbkdf2.Key([]byte(passphrase), salt, iterations, KeySize, sha256.New)
	defer codec.Zero(raw)

	block, err := aes.NewCipher(raw)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeKeyDerivation, "failed to create AES cipher")
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, richErr)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeKeyDerivation, "failed to create GCM cipher")
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivation, richErr)
	}

	return &Key{aead: aead}, nil
}

// seal encrypts plaintext under iv and returns the ciphertext and the
// detached authentication tag.
func (k *Key) seal(iv, plaintext []byte) (ciphertext, tag []byte) {
	sealed := k.aead.Seal(nil, iv, plaintext, nil) // #nosec G407 -- iv comes from crypto/rand per call
	split := len(sealed) - k.aead.Overhead()
	return sealed[:split], sealed[split:]
}

// open verifies tag and decrypts ciphertext. Nothing is returned on failure.
func (k *Key) open(iv, ciphertext, tag []byte) ([]byte, error) {
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	return k.aead.Open(nil, iv, sealed, nil)
}
