package channel

// QueueOptions configures OpenQueue.
type QueueOptions struct {
	// Create creates the queue if it does not exist, sized by Capacity and
	// MaxMessageSize. Ignored when the queue already exists.
	Create bool

	// Read and Write select the access mode. At least one must be set.
	Read  bool
	Write bool

	// Capacity is the maximum number of queued messages. Zero uses DefaultCapacity.
	Capacity int

	// MaxMessageSize is the maximum message size. Zero uses MaxMessageSize.
	MaxMessageSize int
}

func (o QueueOptions) withDefaults() QueueOptions {
	if o.Capacity == 0 {
		o.Capacity = DefaultCapacity
	}
	if o.MaxMessageSize == 0 {
		o.MaxMessageSize = MaxMessageSize
	}
	return o
}
