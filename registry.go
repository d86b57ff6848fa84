package ipc

import "sync"

var (
	registry   = make(map[string]*SchemaCodec)
	registryMu sync.RWMutex
)

// Use returns a cached SchemaCodec for s or builds a new one.
// Codecs are cached by the serializer's content type.
func Use(s Serializer) *SchemaCodec {
	key := s.ContentType()

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached
	}

	codec := NewSchemaCodec(s)
	registry[key] = codec
	return codec
}

// Reset clears the codec registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]*SchemaCodec)
}
