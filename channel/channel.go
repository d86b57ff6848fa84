// Package channel provides the bounded byte-message channels that carry
// encoded records between the ipc producer and consumer.
//
// A Channel never blocks: Send reports ErrFull when the channel is at
// capacity and TryReceive reports ErrWouldBlock when it is empty. Callers
// that want to wait poll with their own cadence.
package channel

import "errors"

// Defaults shared by both ends of the channel.
const (
	// DefaultName identifies the queue. The leading '/' is required for
	// POSIX message queue names.
	DefaultName = "/ipc_queue"

	// MaxMessageSize is the largest message, in bytes, a channel accepts.
	MaxMessageSize = 1024

	// DefaultCapacity is the number of messages a channel holds before Send
	// reports ErrFull.
	DefaultCapacity = 10

	// Permissions are the file-style permissions of a created queue.
	Permissions = 0o660
)

// Sentinel errors for programmatic error handling.
var (
	// ErrFull indicates the channel is at capacity.
	ErrFull = errors.New("channel full")

	// ErrWouldBlock indicates no message is available yet.
	ErrWouldBlock = errors.New("no message available")

	// ErrClosed indicates the channel has been closed.
	ErrClosed = errors.New("channel closed")

	// ErrTooLarge indicates a message exceeds the channel's maximum size.
	ErrTooLarge = errors.New("message too large")

	// ErrUnsupported indicates the channel type is not available on this platform.
	ErrUnsupported = errors.New("channel unsupported on this platform")
)

// Sender is the producing end of a channel.
type Sender interface {
	// Send enqueues msg. The channel copies msg; the caller keeps ownership.
	Send(msg []byte) error
}

// Receiver is the consuming end of a channel.
type Receiver interface {
	// TryReceive dequeues the oldest message without blocking.
	TryReceive() ([]byte, error)
}

// Channel is a bounded, non-blocking byte-message channel.
type Channel interface {
	Sender
	Receiver

	// MaxMessageSize returns the largest message Send accepts.
	MaxMessageSize() int

	// Close releases the channel. Further calls report ErrClosed.
	Close() error
}
