package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a ULID in its canonical 26 character form. Workspaces, users and
// invitations are all keyed by one, so ids sort like their creation time.
type ID string

const Zero ID = ""

var ErrInvalid = errors.New("idx: invalid ulid")

// source hands out monotonic entropy. ulid.MonotonicEntropy is not safe for
// concurrent use, hence the mutex.
type source struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

var shared = sync.OnceValue(func() *source {
	return &source{entropy: ulid.Monotonic(rand.Reader, 0)}
})

func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt generates an ID stamped with t. Services pass their injected clock
// here so ids sort the same way as created_at.
func NewAt(t time.Time) ID {
	s := shared()
	s.mu.Lock()
	defer s.mu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t), s.entropy).String())
}

// Parse accepts only well-formed ULIDs. Path parameters go through it before
// they reach a query.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Time returns the embedded timestamp, or the zero time for a malformed id.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
