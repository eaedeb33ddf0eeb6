package board

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type IDSource interface {
	NextID() string
}

// TimestampIDs derives ids from the current Unix time in milliseconds. Two cards
// added within the same millisecond get the same id; this is a known limitation
// of the scheme, use UUIDIDs when it matters.
type TimestampIDs struct {
	Now func() time.Time
}

func NewTimestampIDs() TimestampIDs { return TimestampIDs{Now: time.Now} }

func (t TimestampIDs) NextID() string {
	now := t.Now
	if now == nil {
		now = time.Now
	}
	return strconv.FormatInt(now().UnixMilli(), 10)
}

type UUIDIDs struct{}

func (UUIDIDs) NextID() string { return uuid.NewString() }

// NewIDSource maps a configured scheme name to a generator.
func NewIDSource(scheme string) (IDSource, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", "timestamp":
		return NewTimestampIDs(), nil
	case "uuid":
		return UUIDIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q (expected timestamp|uuid)", scheme)
	}
}
