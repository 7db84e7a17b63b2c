package export

import (
	"errors"
	"io"
	"testing"
)

func TestObjectURLs_Lifecycle(t *testing.T) {
	urls := NewObjectURLs()
	b := NewBlob("hello", CSVMediaType)

	u1 := urls.Create(b)
	u2 := urls.Create(b)
	if u1.String() == u2.String() {
		t.Error("expected distinct object URLs")
	}
	if urls.Len() != 2 {
		t.Errorf("expected 2 live URLs, got %d", urls.Len())
	}

	got, err := u1.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	data, _ := io.ReadAll(got.Reader())
	if string(data) != "hello" || got.Size() != 5 || got.MediaType() != CSVMediaType {
		t.Errorf("unexpected blob: %q size=%d type=%q", data, got.Size(), got.MediaType())
	}

	urls.Revoke(u1)
	urls.Revoke(u1)
	if urls.Len() != 1 {
		t.Errorf("expected 1 live URL, got %d", urls.Len())
	}
	if _, err := u1.Resolve(); !errors.Is(err, ErrObjectURLNotFound) {
		t.Errorf("expected ErrObjectURLNotFound, got %v", err)
	}
	if _, err := u2.Resolve(); err != nil {
		t.Errorf("expected u2 to stay live, got %v", err)
	}
}

func TestObjectURL_ZeroValue(t *testing.T) {
	var u ObjectURL
	if _, err := u.Resolve(); !errors.Is(err, ErrObjectURLNotFound) {
		t.Errorf("expected ErrObjectURLNotFound, got %v", err)
	}
}
