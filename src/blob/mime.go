package blob

import (
	"bytes"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

const svgMIME = "image/svg+xml"

// DetectMIME identifies image bytes by magic number first, then by SVG
// markup or the file name's extension, and finally by content sniffing.
func DetectMIME(data []byte, name string) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".svg" || IsSVG(data) {
		return svgMIME
	}
	if byExt := mime.TypeByExtension(ext); ext != "" && byExt != "" {
		if i := strings.IndexByte(byExt, ';'); i >= 0 {
			byExt = byExt[:i]
		}
		return byExt
	}
	return http.DetectContentType(data)
}

// IsSVG sniffs for an <svg root element near the start of data.
func IsSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}
