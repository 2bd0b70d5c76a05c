package assets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Embedded(t *testing.T) {
	assetFs, err := New("")
	require.NoError(t, err)

	for _, name := range []string{"css/optin.css", "js/optin.js", "img/logo.svg"} {
		exists, err := afero.Exists(assetFs, name)
		require.NoError(t, err)
		assert.True(t, exists, "%s should be embedded", name)
	}
}

func TestHandler_Embedded(t *testing.T) {
	assetFs, err := New("")
	require.NoError(t, err)
	h := Handler(assetFs)

	tests := []struct {
		path        string
		contentType string
	}{
		{"/css/optin.css", "text/css"},
		{"/js/optin.js", "javascript"},
		{"/img/logo.svg", "image/svg+xml"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
			assert.NotEmpty(t, rec.Body.String())
		})
	}

	t.Run("404 for missing files", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/missing.css", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNew_EmbeddedRootedNames(t *testing.T) {
	assetFs, err := New("")
	require.NoError(t, err)

	info, err := assetFs.Stat("/css/optin.css")
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	f, err := assetFs.Open("/")
	require.NoError(t, err)
	defer f.Close()
	stat, err := f.Stat()
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestNew_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{}"), 0644))

	assetFs, err := New(dir)
	require.NoError(t, err)

	data, err := afero.ReadFile(assetFs, "css/site.css")
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))

	err = afero.WriteFile(assetFs, "css/other.css", []byte("x"), 0644)
	assert.Error(t, err, "directory assets are read-only")
}

func TestNew_DirectoryErrors(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = New(file)
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "js/app.js", []byte("console.log(1)"), 0644))
	h := Handler(memFs)

	t.Run("serves existing files", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/js/app.js", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "console.log(1)", rec.Body.String())
	})

	t.Run("404 for missing files", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/js/missing.js", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
