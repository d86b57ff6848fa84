package channel

import (
	"fmt"
	"sync"
)

// Memory is an in-process bounded Channel.
// It is safe for concurrent use by multiple senders and receivers.
type Memory struct {
	mu       sync.Mutex
	queue    [][]byte
	capacity int
	maxSize  int
	closed   bool
}

// NewMemory returns a Memory channel holding up to capacity messages of at
// most maxSize bytes.
func NewMemory(capacity, maxSize int) (*Memory, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive, got %d", capacity)
	}
	if maxSize <= 0 {
		return nil, fmt.Errorf("max message size must be positive, got %d", maxSize)
	}
	return &Memory{
		queue:    make([][]byte, 0, capacity),
		capacity: capacity,
		maxSize:  maxSize,
	}, nil
}

// Send enqueues a copy of msg.
func (m *Memory) Send(msg []byte) error {
	if len(msg) > m.maxSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(msg), m.maxSize)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if len(m.queue) >= m.capacity {
		return ErrFull
	}

	buf := make([]byte, len(msg))
	copy(buf, msg)
	m.queue = append(m.queue, buf)
	return nil
}

// TryReceive dequeues the oldest message.
// Messages already queued are still delivered after Close.
func (m *Memory) TryReceive() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		if m.closed {
			return nil, ErrClosed
		}
		return nil, ErrWouldBlock
	}

	msg := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	return msg, nil
}

// Len returns the number of queued messages.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// MaxMessageSize returns the configured message size limit.
func (m *Memory) MaxMessageSize() int {
	return m.maxSize
}

// Close stops further sends.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.closed = true
	return nil
}
