package id

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDFormat(t *testing.T) {
	gen := NewGenerator()

	reqID := gen.RequestID()

	assert.True(t, strings.HasPrefix(reqID.String(), "req_"), "got %s", reqID)
	assert.Len(t, reqID.String(), len("req_")+26)
	assert.True(t, IsValid(reqID.String()))
}

func TestIsValid(t *testing.T) {
	invalid := []string{
		"",
		"req_",
		"invalid",
		"01J0000000000000000000000", // missing prefix
		"req_zzzzzzzzzzzzzzzzzzzzzzzzzz",
		"app_01HZX3YF2N3M7V4K9Q8R6T5W1A",
	}

	for _, s := range invalid {
		assert.False(t, IsValid(s), "expected %q to be invalid", s)
	}
}

func TestTimestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	gen := NewGenerator()
	gen.now = func() time.Time { return fixed }

	ts, err := Timestamp(gen.RequestID().String())
	require.NoError(t, err)
	assert.True(t, fixed.Equal(ts), "want %s, got %s", fixed, ts)

	_, err = Timestamp("nope")
	assert.Error(t, err)
}

func TestMonotonicWithinSameMillisecond(t *testing.T) {
	gen := NewGenerator()
	fixed := time.Now()
	gen.now = func() time.Time { return fixed }

	prev := gen.RequestID().String()
	for i := 0; i < 50; i++ {
		next := gen.RequestID().String()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 20
	const perGoroutine = 50

	var wg sync.WaitGroup
	ids := make(chan RequestID, goroutines*perGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- gen.RequestID()
			}
		}()
	}

	wg.Wait()
	close(ids)

	seen := make(map[RequestID]bool)
	for reqID := range ids {
		assert.False(t, seen[reqID], "duplicate id %s", reqID)
		seen[reqID] = true
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}

func TestDefaultGenerator(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.True(t, IsValid(NewRequestID().String()))
}

func BenchmarkRequestID(b *testing.B) {
	gen := NewGenerator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gen.RequestID()
	}
}
