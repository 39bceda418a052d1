// Package idx mints time-ordered identifiers for request ids and session
// records, so log lines and store dumps sort by creation time.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a ULID in its 26 character Crockford base32 form.
type ID string

// Zero is the empty ID.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

// MonotonicEntropy is not safe for concurrent use; mu guards every read.
var (
	mu      sync.Mutex
	entropy = sync.OnceValue(func() *ulid.MonotonicEntropy {
		return ulid.Monotonic(rand.Reader, 0)
	})
)

// New returns an ID stamped with the current time.
func New() ID {
	return NewAt(time.Now())
}

// NewAt returns an ID stamped with t. IDs minted in the same millisecond
// still compare in minting order.
func NewAt(t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t), entropy()).String())
}

// Parse trims s and checks it is a well-formed ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

func (id ID) String() string { return string(id) }

// IsZero reports whether id is unset.
func (id ID) IsZero() bool { return id == Zero }

// Time is the millisecond timestamp embedded in id, or the zero time when id
// does not parse.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}

// Compare orders IDs by creation.
func Compare(a, b ID) int {
	return strings.Compare(string(a), string(b))
}
