package storage

import (
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("uploads", 7, `C:\photos\Beach.JPG`)
	if !strings.HasPrefix(key, "uploads/7/") {
		t.Fatalf("key %q missing owner prefix", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("key %q lost the extension", key)
	}
	if other := ObjectKey("uploads", 7, "Beach.jpg"); other == key {
		t.Fatal("keys collide for the same filename")
	}
	if k := ObjectKey("uploads", 1, "noext"); strings.Contains(k[len("uploads/1/"):], ".") {
		t.Fatalf("key %q invented an extension", k)
	}
}
