package habit

import (
	"fmt"
	"sync"
	"time"
)

// Id prefixes match the wire format of historical completion rows, so
// they must not change: a remote log written by an older device still
// references "custom-..." habit ids.
const (
	habitIDPrefix = "custom"
	trackIDPrefix = "track"
)

// IDGenerator produces unique catalog ids.
// Implemented by TimestampGenerator (production) and FixedGenerator (tests).
type IDGenerator interface {
	NewID(prefix string) string
}

// TimestampGenerator derives ids from the creation instant:
// "<prefix>-<unix-millis>". Uniqueness under rapid successive calls is
// guaranteed by a monotonic in-process counter appended as a suffix
// whenever two calls land on the same millisecond.
//
// Thread-safety: safe for concurrent use via internal mutex.
type TimestampGenerator struct {
	now func() time.Time

	mu         sync.Mutex
	lastMillis int64
	seq        int64
}

// NewTimestampGenerator creates a generator backed by the wall clock.
func NewTimestampGenerator() *TimestampGenerator {
	return &TimestampGenerator{now: time.Now}
}

// NewTimestampGeneratorAt creates a generator with an injected time
// source. Used by tests that need deterministic ids.
func NewTimestampGeneratorAt(now func() time.Time) *TimestampGenerator {
	return &TimestampGenerator{now: now}
}

// NewID returns "<prefix>-<millis>" for the first call in a given
// millisecond and "<prefix>-<millis>-<n>" for subsequent calls within
// the same millisecond.
func (g *TimestampGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	millis := g.now().UnixMilli()
	if millis <= g.lastMillis {
		// Same (or rewound) millisecond: disambiguate and keep the
		// generator monotonic even under clock skew.
		millis = g.lastMillis
		g.seq++
		return fmt.Sprintf("%s-%d-%d", prefix, millis, g.seq)
	}
	g.lastMillis = millis
	g.seq = 0
	return fmt.Sprintf("%s-%d", prefix, millis)
}

// FixedGenerator returns predetermined ids for testing.
// Panics when all ids are consumed; exhaustion in a test is a bug in
// the test, not a condition to recover from.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// NewID returns the next predetermined id. The prefix is ignored.
func (g *FixedGenerator) NewID(string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("habit: FixedGenerator exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
