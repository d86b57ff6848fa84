//go:build !linux

package channel

// Queue is a POSIX message queue. It is only available on linux.
type Queue struct{}

// OpenQueue reports ErrUnsupported outside linux.
func OpenQueue(string, QueueOptions) (*Queue, error) {
	return nil, ErrUnsupported
}

// Unlink reports ErrUnsupported outside linux.
func Unlink(string) error {
	return ErrUnsupported
}

func (q *Queue) Name() string { return "" }
func (q *Queue) MaxMessageSize() int { return 0 }
func (q *Queue) Send([]byte) error { return ErrUnsupported }
func (q *Queue) TryReceive() ([]byte, error) { return nil, ErrUnsupported }
func (q *Queue) Close() error { return ErrUnsupported }
