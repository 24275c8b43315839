package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/res/a.pdf" {
			_, _ = w.Write([]byte("%PDF-1.4"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewFetcher(time.Second)

	data, err := f.Fetch(context.Background(), server.URL+"/res/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	_, err = f.Fetch(context.Background(), server.URL+"/res/missing.pdf")
	assert.ErrorContains(t, err, "404")
}

func TestFetcher_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("bytes"), 0o600))

	f := NewFetcher(time.Second)

	data, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))

	data, err = f.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))

	_, err = f.Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}

func TestPDFDecoder_RejectsGarbage(t *testing.T) {
	pages, err := NewPDFDecoder().Decode([]byte("definitely not a pdf"))
	assert.Error(t, err)
	assert.Nil(t, pages)
}
