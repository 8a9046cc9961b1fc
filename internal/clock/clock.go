// Package clock abstracts time acquisition so elapsed-time billing can be
// tested deterministically.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func New() RealClock { return RealClock{} }

func (RealClock) Now() time.Time { return time.Now() }

// MockClock returns a fixed time, adjustable from tests.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

func (m *MockClock) Add(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
