package transport

import (
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
)

// Class is the protection level of an endpoint.
type Class int

const (
	// ClassDefault follows the global encryption toggle.
	ClassDefault Class = iota
	// ClassSensitive is always encrypted; encryption failures are fatal.
	ClassSensitive
	// ClassPublic is never encrypted and gets no security headers.
	ClassPublic
)

func (c Class) String() string {
	switch c {
	case ClassSensitive:
		return "sensitive"
	case ClassPublic:
		return "public"
	default:
		return "default"
	}
}

// maxCachedPaths caps the memo so paths with embedded IDs cannot grow it
// without bound.
const maxCachedPaths = 4096

// Classifier maps request paths to a Class by case-insensitive substring
// match against two route lists. A path matching both lists is sensitive.
// Results are memoized per path. It is safe for concurrent use.
type Classifier struct {
	sensitive []string
	public    []string

	cache  sync.Map // path -> Class
	cached atomic.Int64
}

// NewClassifier builds a Classifier. Empty patterns are ignored.
func NewClassifier(sensitive, public []string) *Classifier {
	return &Classifier{
		sensitive: normalizePatterns(sensitive),
		public:    normalizePatterns(public),
	}
}

// Classify returns the class of u's path.
func (c *Classifier) Classify(u *url.URL) Class {
	if u == nil {
		return ClassDefault
	}
	return c.ClassifyPath(u.Path)
}

// ClassifyPath returns the class of path.
func (c *Classifier) ClassifyPath(path string) Class {
	if v, ok := c.cache.Load(path); ok {
		return v.(Class)
	}

	class := c.match(strings.ToLower(path))

	if c.cached.Load() < maxCachedPaths {
		if _, loaded := c.cache.LoadOrStore(path, class); !loaded {
			c.cached.Add(1)
		}
	}
	return class
}

func (c *Classifier) match(path string) Class {
	for _, p := range c.sensitive {
		if strings.Contains(path, p) {
			return ClassSensitive
		}
	}
	for _, p := range c.public {
		if strings.Contains(path, p) {
			return ClassPublic
		}
	}
	return ClassDefault
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
