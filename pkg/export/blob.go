package export

import (
	"bytes"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Blob is an immutable chunk of file content with a media type.
type Blob struct {
	data      []byte
	mediaType string
}

// NewBlob packages text as a blob of the given media type.
func NewBlob(text string, mediaType string) *Blob {
	return &Blob{
		data:      []byte(text),
		mediaType: mediaType,
	}
}

// MediaType returns the blob's media type.
func (b *Blob) MediaType() string {
	return b.mediaType
}

// Size returns the blob length in bytes.
func (b *Blob) Size() int {
	return len(b.data)
}

// Reader returns a reader over the blob content.
func (b *Blob) Reader() io.Reader {
	return bytes.NewReader(b.data)
}

// ObjectURL is a transient, revocable reference to a blob registered in an
// ObjectURLs registry. It resolves only until it is revoked.
type ObjectURL struct {
	href     string
	registry *ObjectURLs
}

// String returns the reference in "blob:<uuid>" form.
func (u ObjectURL) String() string {
	return u.href
}

// Resolve returns the referenced blob, or ErrObjectURLNotFound once revoked.
func (u ObjectURL) Resolve() (*Blob, error) {
	if u.registry == nil {
		return nil, ErrObjectURLNotFound
	}
	return u.registry.resolve(u.href)
}

// ObjectURLs holds the blobs referenced by live object URLs.
// It is safe for concurrent use.
type ObjectURLs struct {
	mu      sync.Mutex
	objects map[string]*Blob
}

// NewObjectURLs creates an empty registry.
func NewObjectURLs() *ObjectURLs {
	return &ObjectURLs{
		objects: make(map[string]*Blob),
	}
}

// Create registers b and returns a new object URL for it.
func (o *ObjectURLs) Create(b *Blob) ObjectURL {
	href := "blob:" + uuid.NewString()

	o.mu.Lock()
	o.objects[href] = b
	o.mu.Unlock()

	return ObjectURL{href: href, registry: o}
}

// Revoke releases the blob referenced by u. Revoking twice is a no-op.
func (o *ObjectURLs) Revoke(u ObjectURL) {
	o.mu.Lock()
	delete(o.objects, u.href)
	o.mu.Unlock()
}

// Len returns the number of live object URLs.
func (o *ObjectURLs) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.objects)
}

func (o *ObjectURLs) resolve(href string) (*Blob, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	b, ok := o.objects[href]
	if !ok {
		return nil, ErrObjectURLNotFound
	}
	return b, nil
}
