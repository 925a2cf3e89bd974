// Package blob holds uploaded images behind transient "blob:" references.
// Each reference is owned by exactly one Handle and stays readable until the
// Handle is released.
package blob

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Prefix starts every reference produced by a Store.
const Prefix = "blob:"

var (
	// ErrUnknownHandle is returned for references that were never created or are released.
	ErrUnknownHandle = errors.New("unknown or released blob handle")
	// ErrNotImage is returned when uploaded bytes are not a recognised image type.
	ErrNotImage = errors.New("not an image")
)

type record struct {
	name string
	mime string
	data []byte
}

// Store maps live references to their bytes. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items map[string]record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]record)}
}

// Create registers an uploaded image and returns the handle that owns it.
// Only image MIME types are accepted.
func (s *Store) Create(name string, data []byte) (*Handle, error) {
	mimeType := DetectMIME(data, name)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotImage, name, mimeType)
	}

	ref := Prefix + uuid.NewString()
	s.mu.Lock()
	s.items[ref] = record{name: name, mime: mimeType, data: data}
	s.mu.Unlock()

	return &Handle{store: s, ref: ref, name: name, mime: mimeType}, nil
}

// Open returns the bytes and MIME type behind a live reference.
func (s *Store) Open(ref string) ([]byte, string, error) {
	s.mu.RLock()
	rec, ok := s.items[ref]
	s.mu.RUnlock()
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownHandle, ref)
	}
	return rec.data, rec.mime, nil
}

// Live returns the number of unreleased references.
func (s *Store) Live() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close revokes every reference.
func (s *Store) Close() {
	s.mu.Lock()
	clear(s.items)
	s.mu.Unlock()
}

func (s *Store) revoke(ref string) {
	s.mu.Lock()
	delete(s.items, ref)
	s.mu.Unlock()
}

// IsRef reports whether ref is a blob reference.
func IsRef(ref string) bool {
	return strings.HasPrefix(ref, Prefix)
}

// Handle owns one blob reference.
type Handle struct {
	store *Store
	ref   string
	name  string
	mime  string
	once  sync.Once
}

// Ref returns the "blob:<uuid>" reference.
func (h *Handle) Ref() string { return h.ref }

// Name returns the uploaded file name.
func (h *Handle) Name() string { return h.name }

// MIME returns the detected content type.
func (h *Handle) MIME() string { return h.mime }

// Release revokes the reference. It is safe to call more than once and on a nil Handle.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() { h.store.revoke(h.ref) })
}
