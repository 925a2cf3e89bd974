// Package assets embeds the built-in logo images that badges reference by
// site-relative path, e.g. "/logos_google.svg".
package assets

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"strings"
)

//go:embed *.svg
var builtin embed.FS

// Built-in logo paths as referenced from badge configurations.
const (
	GoogleLogo        = "/logos_google.svg"
	GoogleLogoSmall   = "/logos_google_small.svg"
	FacebookLogo      = "/facebook_blue.svg"
	FacebookLogoWhite = "/facebook_white.svg"
)

// FS returns the embedded assets, optionally overlaid by a directory on disk.
// Files in dir shadow built-ins of the same name.
func FS(dir string) fs.FS {
	if dir == "" {
		return builtin
	}
	return layered{upper: os.DirFS(dir), lower: builtin}
}

// Name converts a site-relative reference ("/logo.svg") to an fs.FS name ("logo.svg").
func Name(ref string) (string, bool) {
	name := strings.TrimPrefix(ref, "/")
	if name == ref || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

// layered serves from upper and falls through to lower on a miss.
type layered struct {
	upper, lower fs.FS
}

func (l layered) Open(name string) (fs.File, error) {
	f, err := l.upper.Open(name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return l.lower.Open(name)
}
