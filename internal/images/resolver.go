package images

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sync"
	"time"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/common"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/storage"
)

// ProgressFunc receives per-image completion counts as resolution advances.
type ProgressFunc func(processed, total int)

// Resolver turns input references into transport-encoded images. Failed
// references are skipped; the job fails only when nothing resolves.
type Resolver struct {
	store   storage.ObjectStore
	cache   Cache
	logger  *slog.Logger
	workers int
}

func NewResolver(store storage.ObjectStore, cache Cache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Resolver{
		store:   store,
		cache:   cache,
		logger:  logger,
		workers: constants.ResolveWorkers,
	}
}

// Resolve fetches and encodes every reference, in parallel up to the
// worker bound, and returns the encoded images in input order. Inline
// blobs are encoded directly without touching the object store. Returns
// ErrNoValidInput when zero images resolve.
func (r *Resolver) Resolve(ctx context.Context, refs []string, inline []entity.ImageBlob, onProgress ProgressFunc) ([]entity.EncodedImage, error) {
	start := time.Now()

	refs = dedupe(refs)
	if len(refs) > constants.MaxImagesPerJob {
		r.logger.Warn("images.resolve.cap_applied",
			"refs", len(refs), "cap", constants.MaxImagesPerJob)
		refs = refs[:constants.MaxImagesPerJob]
	}

	total := len(refs) + len(inline)
	if total == 0 {
		return nil, common.ErrNoValidInput
	}
	if onProgress != nil {
		onProgress(0, total)
	}

	results := make([]*entity.EncodedImage, total)
	var processed int
	var mu sync.Mutex

	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(idx int, ref string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			img, err := r.resolveOne(ctx, ref)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.logger.Warn("images.resolve.skip", "ref", ref, "error", err)
			} else {
				results[idx] = &img
				processed++
			}
			if onProgress != nil {
				onProgress(processed, total)
			}
		}(i, ref)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, blob := range inline {
		img := Encode(blob)
		results[len(refs)+i] = &img
		processed++
		if onProgress != nil {
			onProgress(processed, total)
		}
	}

	// restore input order, dropping skipped references
	out := make([]entity.EncodedImage, 0, total)
	for _, img := range results {
		if img != nil {
			out = append(out, *img)
		}
	}

	r.logger.Info("images.resolve.done",
		"requested", total,
		"resolved", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if len(out) == 0 {
		return nil, common.ErrNoValidInput
	}
	return out, nil
}

func (r *Resolver) resolveOne(ctx context.Context, ref string) (entity.EncodedImage, error) {
	if img, ok := r.cache.Get(ref); ok {
		return img, nil
	}

	data, mimeHint, err := r.store.Fetch(ctx, ref)
	if err != nil {
		return entity.EncodedImage{}, err
	}

	img := Encode(entity.ImageBlob{Ref: ref, Data: data, MIMEType: mimeHint})
	r.cache.Put(img)
	return img, nil
}

// Encode converts a blob to its data-URL form. Conversion happens exactly
// once per cache key; callers go through the resolver for memoization.
func Encode(blob entity.ImageBlob) entity.EncodedImage {
	mt := blob.MIMEType
	if mt == "" {
		mt = sniffMIME(blob.Data)
	}
	return entity.EncodedImage{
		CacheKey: blob.Ref,
		MIMEType: mt,
		DataURL:  "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(blob.Data),
	}
}

// sniffMIME inspects magic bytes for the formats the vision endpoints
// accept, defaulting to JPEG.
func sniffMIME(data []byte) string {
	switch {
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "image/png"
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	case len(data) >= 5 && string(data[:5]) == "%PDF-":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}

func dedupe(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := refs[:0:0]
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
