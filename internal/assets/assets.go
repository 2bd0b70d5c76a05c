// Package assets exposes the page's static files (CSS, scripts, images) as an
// afero filesystem, backed either by the binary or by a directory on disk.
package assets

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/pyowdigitals/optin/web"
)

// New returns the asset filesystem. With dir empty the embedded assets are
// used; otherwise dir is served read-only, which allows editing assets without
// rebuilding.
func New(dir string) (afero.Fs, error) {
	if dir == "" {
		sub, err := fs.Sub(web.FS, "static")
		if err != nil {
			return nil, fmt.Errorf("open embedded assets: %w", err)
		}
		return embeddedFs{afero.FromIOFS{FS: sub}}, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open asset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset path %s is not a directory", dir)
	}
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// embeddedFs accepts the rooted names afero's http adapter produces;
// io/fs only takes unrooted ones.
type embeddedFs struct {
	afero.FromIOFS
}

func ioName(name string) string {
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return "."
	}
	return name
}

func (f embeddedFs) Open(name string) (afero.File, error) {
	return f.FromIOFS.Open(ioName(name))
}

func (f embeddedFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return f.FromIOFS.OpenFile(ioName(name), flag, perm)
}

func (f embeddedFs) Stat(name string) (os.FileInfo, error) {
	return f.FromIOFS.Stat(ioName(name))
}

// Handler serves files from fs. Mount it behind a prefix-stripping route.
func Handler(assetFs afero.Fs) http.Handler {
	return http.FileServer(afero.NewHttpFs(assetFs).Dir("/"))
}
