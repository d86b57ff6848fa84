//go:build linux

package channel

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mqAttr mirrors struct mq_attr.
type mqAttr struct {
	Flags   int
	Maxmsg  int
	Msgsize int
	Curmsgs int
	_       [4]int
}

// Queue is a POSIX message queue opened in non-blocking mode.
// It is safe for concurrent use; Close waits for in-flight calls.
type Queue struct {
	mu      sync.RWMutex
	fd      int
	name    string
	maxSize int
	closed  bool
}

// OpenQueue opens (and with opts.Create, creates) the named POSIX message
// queue. name must start with '/'.
func OpenQueue(name string, opts QueueOptions) (*Queue, error) {
	kname, err := kernelName(name)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	flags := unix.O_NONBLOCK | unix.O_CLOEXEC
	switch {
	case opts.Read && opts.Write:
		flags |= unix.O_RDWR
	case opts.Write:
		flags |= unix.O_WRONLY
	case opts.Read:
		flags |= unix.O_RDONLY
	default:
		return nil, errors.New("queue must be opened for read, write, or both")
	}

	var attr *mqAttr
	if opts.Create {
		flags |= unix.O_CREAT
		attr = &mqAttr{Maxmsg: opts.Capacity, Msgsize: opts.MaxMessageSize}
	}

	p, err := unix.BytePtrFromString(kname)
	if err != nil {
		return nil, err
	}

	fd, _, errno := unix.Syscall6(unix.SYS_MQ_OPEN,
		uintptr(unsafe.Pointer(p)),
		uintptr(flags),
		uintptr(Permissions),
		uintptr(unsafe.Pointer(attr)),
		0, 0)
	if errno != 0 {
		return nil, fmt.Errorf("mq_open %s: %w", name, errno)
	}

	q := &Queue{fd: int(fd), name: name}

	var current mqAttr
	if _, _, errno := unix.Syscall(unix.SYS_MQ_GETSETATTR, fd, 0, uintptr(unsafe.Pointer(&current))); errno != 0 {
		_ = unix.Close(q.fd)
		return nil, fmt.Errorf("mq_getattr %s: %w", name, errno)
	}
	q.maxSize = current.Msgsize

	return q, nil
}

// Unlink removes the named queue. A queue that does not exist is not an error.
func Unlink(name string) error {
	kname, err := kernelName(name)
	if err != nil {
		return err
	}
	p, err := unix.BytePtrFromString(kname)
	if err != nil {
		return err
	}
	if _, _, errno := unix.Syscall(unix.SYS_MQ_UNLINK, uintptr(unsafe.Pointer(p)), 0, 0); errno != 0 && errno != unix.ENOENT {
		return fmt.Errorf("mq_unlink %s: %w", name, errno)
	}
	return nil
}

// Name returns the queue name.
func (q *Queue) Name() string {
	return q.name
}

// MaxMessageSize returns the queue's message size limit as reported by the kernel.
func (q *Queue) MaxMessageSize() int {
	return q.maxSize
}

// Send enqueues msg with priority zero.
func (q *Queue) Send(msg []byte) error {
	if len(msg) > q.maxSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(msg), q.maxSize)
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}

	_, _, errno := unix.Syscall6(unix.SYS_MQ_TIMEDSEND,
		uintptr(q.fd),
		uintptr(unsafe.Pointer(unsafe.SliceData(msg))),
		uintptr(len(msg)),
		0, 0, 0)
	return mapErrno(errno, ErrFull)
}

// TryReceive dequeues the highest-priority, oldest message.
// A zero-length message is returned as an empty, non-nil slice.
func (q *Queue) TryReceive() ([]byte, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return nil, ErrClosed
	}

	buf := make([]byte, q.maxSize)
	n, _, errno := unix.Syscall6(unix.SYS_MQ_TIMEDRECEIVE,
		uintptr(q.fd),
		uintptr(unsafe.Pointer(unsafe.SliceData(buf))),
		uintptr(len(buf)),
		0, 0, 0)
	if err := mapErrno(errno, ErrWouldBlock); err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Close closes the queue descriptor. The queue itself persists until Unlink.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.closed = true
	return unix.Close(q.fd)
}

// mapErrno translates queue errnos to channel sentinels.
func mapErrno(errno unix.Errno, again error) error {
	switch errno {
	case 0:
		return nil
	case unix.EAGAIN:
		return again
	case unix.EMSGSIZE:
		return ErrTooLarge
	case unix.EBADF:
		return ErrClosed
	default:
		return errno
	}
}

// kernelName strips the leading '/' the mq syscalls do not accept.
func kernelName(name string) (string, error) {
	if !strings.HasPrefix(name, "/") || len(name) < 2 || strings.Contains(name[1:], "/") {
		return "", fmt.Errorf("invalid queue name %q: must be '/' followed by a name without '/'", name)
	}
	return name[1:], nil
}
