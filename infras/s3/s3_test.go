package s3

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"rental/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func testStore() *objectStore {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "rental"
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"

	return &objectStore{cfg: cfg}
}

func TestObjectName(t *testing.T) {
	name := ObjectName("Receipt.PDF")

	assert.Equal(t, ".pdf", filepath.Ext(name))
	assert.NotEqual(t, name, ObjectName("Receipt.PDF"))
}

func TestGetObjectNameFromURL(t *testing.T) {
	store := testStore()

	tests := []struct {
		name     string
		bucket   string
		url      string
		expected string
	}{
		{name: "public domain", url: "https://cdn.example.com/expense/a.png", expected: "a.png"},
		{name: "api endpoint default bucket", url: "https://s3.example.com/rental/document/b.pdf", expected: "b.pdf"},
		{name: "api endpoint other bucket", bucket: "archive", url: "https://s3.example.com/archive/c.pdf", expected: "c.pdf"},
		{name: "foreign host", url: "https://elsewhere.example.com/expense/a.png", expected: ""},
		{name: "bare domain", url: "https://cdn.example.com/", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, store.GetObjectNameFromURL(tt.bucket, tt.url))
		})
	}
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/expense/a.png", testStore().publicURL("expense/a.png"))
}

func TestContentTypeOf(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")

	t.Run("declared type wins", func(t *testing.T) {
		header := &multipart.FileHeader{Header: textproto.MIMEHeader{"Content-Type": {"image/png"}}}

		contentType, err := contentTypeOf(memFile{bytes.NewReader(pdf)}, header)
		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("generic type is sniffed and the file rewound", func(t *testing.T) {
		file := memFile{bytes.NewReader(pdf)}
		header := &multipart.FileHeader{Header: textproto.MIMEHeader{"Content-Type": {"application/octet-stream"}}}

		contentType, err := contentTypeOf(file, header)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", contentType)

		body, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, pdf, body)
	})
}
