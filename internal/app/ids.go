package app

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/reservaya/api/internal/clock"
)

// Sequence hands out numeric string ids derived from wall-clock milliseconds.
// Ids are strictly increasing within a process even when several are
// requested in the same millisecond.
type Sequence struct {
	mu    sync.Mutex
	clock clock.Clock
	last  int64
}

func NewSequence(clk clock.Clock) *Sequence {
	return &Sequence{clock: clk}
}

func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.clock.Now().UnixMilli()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return strconv.FormatInt(n, 10)
}

func newUUID() string {
	return uuid.NewString()
}
