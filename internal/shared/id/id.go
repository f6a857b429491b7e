// Package id generates the request identifiers attached to every call made
// against the management API.
//
// IDs are prefixed ULIDs (req_01J...). They sort by creation time, which keeps
// debug logs of a navigation session readable in the order calls were made, and
// the same value travels to the server in the X-Request-ID header so a client
// log line can be matched with the server access log.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies one HTTP round-trip
type RequestID string

// RequestPrefix is prepended to every generated RequestID
const RequestPrefix = "req"

func (id RequestID) String() string { return string(id) }

// Generator produces monotonic ULIDs. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader)
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Tests use it for deterministic output.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: ulid.Monotonic(entropy, 0),
		now:     time.Now,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// RequestID creates a new prefixed request identifier
func (g *Generator) RequestID() RequestID {
	return RequestID(fmt.Sprintf("%s_%s", RequestPrefix, g.Generate().String()))
}

// NewRequestID generates a request ID from the default generator
func NewRequestID() RequestID {
	return Default().RequestID()
}

// IsValid reports whether s is a request ID produced by this package
func IsValid(s string) bool {
	ulidPart, ok := strings.CutPrefix(s, RequestPrefix+"_")
	if !ok {
		return false
	}
	_, err := ulid.ParseStrict(ulidPart)
	return err == nil
}

// Timestamp extracts the creation time of a request ID
func Timestamp(s string) (time.Time, error) {
	ulidPart, ok := strings.CutPrefix(s, RequestPrefix+"_")
	if !ok {
		return time.Time{}, fmt.Errorf("id: %q has no %s_ prefix", s, RequestPrefix)
	}
	parsed, err := ulid.ParseStrict(ulidPart)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
