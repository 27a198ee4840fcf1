package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
		ok   bool
	}{
		{"url from store", "http://localhost:9000/book-images/photos/abc.jpg", "photos/abc.jpg", true},
		{"bare key", "photos/abc.png", "photos/abc.png", true},
		{"other bucket", "http://localhost:9000/other/photos/abc.jpg", "", false},
		{"external url", "https://example.com/cover.jpg", "", false},
		{"empty", "", "", false},
		{"prefix only", "photos/", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := objectKeyFromRef("book-images", tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000/book-images/photos/a.jpg", objectURL("http://minio:9000/", "book-images", "photos/a.jpg"))
}
