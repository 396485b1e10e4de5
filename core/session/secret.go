package session

import (
	"sync"

	"github.com/awnumar/memguard"
)

const maskedSecret = "********"

// Secret holds sensitive input, such as a password typed into a login form,
// in locked memory that is wiped on Destroy.
//
// String and GoString never reveal the value, so a Secret is safe to pass to
// fmt or slog by accident.
type Secret struct {
	mu  sync.RWMutex
	buf *memguard.LockedBuffer
}

// NewSecret moves b into locked memory. b is wiped before NewSecret returns.
func NewSecret(b []byte) *Secret {
	s := &Secret{}
	if len(b) > 0 {
		s.buf = memguard.NewBufferFromBytes(b)
	}
	return s
}

// NewSecretString copies s into locked memory. The caller's string cannot be
// wiped; prefer NewSecret when the input is already a byte slice.
func NewSecretString(s string) *Secret {
	return NewSecret([]byte(s))
}

// Use calls fn with the secret bytes. The slice is only valid inside fn and
// must not be retained.
func (s *Secret) Use(fn func([]byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.buf == nil {
		return fn(nil)
	}
	if !s.buf.IsAlive() {
		return ErrSecretDestroyed
	}
	return fn(s.buf.Bytes())
}

// Reveal returns a heap copy of the value. The copy is outside locked memory
// and outlives Destroy.
func (s *Secret) Reveal() (string, error) {
	var out string
	err := s.Use(func(b []byte) error {
		out = string(b)
		return nil
	})
	return out, err
}

// Len returns the size of the value, or zero once destroyed.
func (s *Secret) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.buf == nil || !s.buf.IsAlive() {
		return 0
	}
	return s.buf.Size()
}

// Alive reports whether the secret still holds a value.
func (s *Secret) Alive() bool {
	return s.Len() > 0
}

// Destroy wipes and unlocks the memory. It reports whether anything was
// wiped; calling it again is a no-op.
func (s *Secret) Destroy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil || !s.buf.IsAlive() {
		return false
	}
	s.buf.Destroy()
	return true
}

func (s *Secret) String() string {
	return maskedSecret
}

func (s *Secret) GoString() string {
	return maskedSecret
}
