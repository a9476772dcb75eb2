// Package secure provides wrappers for secret byte buffers with
// locked memory and guaranteed zeroization on release.
package secure

import (
	"runtime"
	"sync"
)

// Zero overwrites data with zero bytes.
func Zero(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// lockingEnabled gates mlock attempts on new buffers. The CLI applies
// the configured value before any workflow allocates secrets.
var (
	lockingMu      sync.RWMutex
	lockingEnabled = true
)

// SetMemoryLock enables or disables mlocking of newly allocated
// buffers. Already allocated buffers keep their lock state.
func SetMemoryLock(enabled bool) {
	lockingMu.Lock()
	defer lockingMu.Unlock()
	lockingEnabled = enabled
}

func memoryLockEnabled() bool {
	lockingMu.RLock()
	defer lockingMu.RUnlock()
	return lockingEnabled
}

// Bytes holds sensitive bytes in memory that is mlocked when the
// system supports it and zeroed on Destroy.
type Bytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// NewBytes allocates a secure buffer of the given size.
func NewBytes(size int) *Bytes {
	data := make([]byte, size)

	b := &Bytes{
		data:   data,
		locked: memoryLockEnabled() && mlock(data),
	}

	// Backstop: zero the buffer even if Destroy is never called.
	runtime.SetFinalizer(b, func(s *Bytes) {
		s.Destroy()
	})

	return b
}

// BytesFrom copies data into a new secure buffer. The source slice is
// not zeroed; that remains the caller's responsibility.
func BytesFrom(data []byte) *Bytes {
	b := NewBytes(len(data))
	copy(b.data, data)
	return b
}

// Data returns the underlying slice, or nil after Destroy.
func (b *Bytes) Data() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Len returns the buffer length, 0 after Destroy.
func (b *Bytes) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Locked reports whether the buffer memory is mlocked.
func (b *Bytes) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Destroy zeroes the buffer and unlocks its memory. Safe to call
// multiple times.
func (b *Bytes) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return
	}

	Zero(b.data)

	if b.locked {
		munlock(b.data)
		b.locked = false
	}

	b.data = nil
	runtime.SetFinalizer(b, nil)
}
