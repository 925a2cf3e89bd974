// Package inline turns image references into self-contained data URIs so an
// exported badge has no dependency on the configurator's asset host or on
// transient upload handles.
package inline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sofmeright/reviewbadge/src/assets"
	"github.com/sofmeright/reviewbadge/src/blob"
	"github.com/sofmeright/reviewbadge/src/config"
)

// BlobOpener reads the bytes behind a "blob:" reference.
type BlobOpener interface {
	Open(ref string) ([]byte, string, error)
}

// Inliner converts image references to data URIs. Failures never surface to
// the caller: the original reference is returned and a warning is logged.
type Inliner struct {
	blobs       BlobOpener
	assets      fs.FS
	http        *httpClient
	maxBytes    int64
	concurrency int64
	log         zerolog.Logger
}

// Option customises an Inliner.
type Option func(*Inliner)

// WithAssets overrides the filesystem serving site-relative references.
func WithAssets(fsys fs.FS) Option {
	return func(in *Inliner) { in.assets = fsys }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(in *Inliner) { in.log = log }
}

// New creates an Inliner reading uploads from blobs and assets from the
// embedded set overlaid by cfg.AssetDir.
func New(cfg config.InlineConfig, blobs BlobOpener, opts ...Option) *Inliner {
	concurrency := int64(cfg.Concurrency)
	if concurrency <= 0 {
		concurrency = config.MaxLogos
	}
	in := &Inliner{
		blobs:       blobs,
		assets:      assets.FS(cfg.AssetDir),
		http:        newHTTPClient(cfg.Timeout),
		maxBytes:    cfg.MaxBytes,
		concurrency: concurrency,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Inline returns ref as a data URI. Data URIs come back unchanged; anything
// that cannot be read comes back as the original reference.
func (in *Inliner) Inline(ctx context.Context, ref string) string {
	if IsDataURI(ref) {
		return ref
	}

	data, mimeType, err := in.read(ctx, ref)
	if err == nil && in.maxBytes > 0 && int64(len(data)) > in.maxBytes {
		err = fmt.Errorf("%d bytes exceeds limit of %d", len(data), in.maxBytes)
	}
	if err != nil {
		in.log.Warn().Err(err).Str("ref", ref).Msg("inline: keeping original image reference")
		return ref
	}
	return DataURI(mimeType, data)
}

// InlineAll inlines refs concurrently and returns the results in input order.
// The only error is ctx cancellation.
func (in *Inliner) InlineAll(ctx context.Context, refs []string) ([]string, error) {
	out := make([]string, len(refs))
	sem := semaphore.NewWeighted(in.concurrency)
	g, gctx := errgroup.WithContext(ctx)

	for i, ref := range refs {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			out[i] = in.Inline(gctx, ref)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// read resolves ref to bytes and a MIME type according to its kind.
func (in *Inliner) read(ctx context.Context, ref string) ([]byte, string, error) {
	switch {
	case blob.IsRef(ref):
		if in.blobs == nil {
			return nil, "", fmt.Errorf("inline: no blob store for %s", ref)
		}
		data, mimeType, err := in.blobs.Open(ref)
		if err != nil {
			return nil, "", err
		}
		if mimeType == "" {
			mimeType = blob.DetectMIME(data, "")
		}
		return data, mimeType, nil

	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return in.http.fetch(ctx, ref, in.maxBytes)

	case strings.HasPrefix(ref, "/"):
		name, ok := assets.Name(ref)
		if !ok {
			return nil, "", fmt.Errorf("inline: invalid asset path %s", ref)
		}
		data, err := fs.ReadFile(in.assets, name)
		if err != nil {
			return nil, "", fmt.Errorf("inline: reading asset %s: %w", ref, err)
		}
		return data, blob.DetectMIME(data, name), nil
	}
	return nil, "", errUnsupportedRef
}

var errUnsupportedRef = errors.New("inline: unsupported image reference")

// IsDataURI reports whether ref is already an inline data URI.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// DataURI encodes data as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
