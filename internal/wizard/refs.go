package wizard

import (
	"sync"

	"github.com/google/uuid"
)

// Blob is the payload behind a display reference.
type Blob struct {
	MIMEType string
	Data     []byte
}

// References hands out unguessable ids for image bytes that the browser
// fetches through /refs/{id}. Every id is released exactly once.
type References struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

func NewReferences() *References {
	return &References{blobs: make(map[string]Blob)}
}

func (r *References) Acquire(mimeType string, data []byte) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.blobs[id] = Blob{MIMEType: mimeType, Data: data}
	r.mu.Unlock()
	return id
}

func (r *References) Open(id string) (Blob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blobs[id]
	return b, ok
}

// Release drops id. It reports false when id was unknown or already released.
func (r *References) Release(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blobs[id]; !ok {
		return false
	}
	delete(r.blobs, id)
	return true
}

// Live returns the number of unreleased references.
func (r *References) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}
