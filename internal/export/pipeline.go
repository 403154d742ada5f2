// Package export renders a layer stack at every canonical size and packs
// the results into an ICO container or a ZIP of standalone PNGs.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"sort"
	"sync"

	"icoforge/internal/ico"
	"icoforge/internal/icon"
	"icoforge/internal/render"
)

// Pipeline drives per-size renders and hands the encoded buffers to an
// output container.
type Pipeline struct {
	engine *render.Engine
}

// NewPipeline builds an export pipeline around a compositing engine.
func NewPipeline(engine *render.Engine) *Pipeline {
	return &Pipeline{engine: engine}
}

// ExportICO renders the stack at all canonical sizes and packs the PNG
// buffers into a single ICO container.
func (p *Pipeline) ExportICO(ctx context.Context, stack *icon.Stack) ([]byte, error) {
	imagesBySize, err := p.renderAll(ctx, stack)
	if err != nil {
		return nil, err
	}
	return ico.Write(imagesBySize)
}

// ExportZIP renders the stack at all canonical sizes and writes a ZIP
// archive with one icon_{size}x{size}.png entry per size.
func (p *Pipeline) ExportZIP(ctx context.Context, stack *icon.Stack, w io.Writer) error {
	imagesBySize, err := p.renderAll(ctx, stack)
	if err != nil {
		return err
	}

	sizes := make([]int, 0, len(imagesBySize))
	for size := range imagesBySize {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	zw := zip.NewWriter(w)
	for _, size := range sizes {
		entry, err := zw.Create(fmt.Sprintf("icon_%dx%d.png", size, size))
		if err != nil {
			return fmt.Errorf("failed to create archive entry for size %d: %w", size, err)
		}
		if _, err := entry.Write(imagesBySize[size]); err != nil {
			return fmt.Errorf("failed to write archive entry for size %d: %w", size, err)
		}
	}
	return zw.Close()
}

// renderAll fans the seven per-size renders out on goroutines and collects
// the PNG-encoded results. A failed size is logged and omitted; the export
// only fails when no size rendered at all or the context was cancelled.
func (p *Pipeline) renderAll(ctx context.Context, stack *icon.Stack) (map[int][]byte, error) {
	var (
		mu           sync.Mutex
		wg           sync.WaitGroup
		imagesBySize = make(map[int][]byte, len(icon.Sizes))
	)

	for _, size := range icon.Sizes {
		wg.Add(1)
		go func(size icon.Size) {
			defer wg.Done()

			buf, err := p.renderOne(ctx, stack, size)
			if err != nil {
				if ctx.Err() == nil {
					slog.Warn("Size omitted from export", "size", int(size), "error", err)
				}
				return
			}
			mu.Lock()
			imagesBySize[int(size)] = buf
			mu.Unlock()
		}(size)
	}
	wg.Wait()

	// A cancelled export emits nothing, partial or otherwise.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(imagesBySize) == 0 {
		return nil, fmt.Errorf("every size failed to render")
	}
	return imagesBySize, nil
}

// renderOne composites a single size and encodes it to PNG.
func (p *Pipeline) renderOne(ctx context.Context, stack *icon.Stack, size icon.Size) ([]byte, error) {
	img, err := p.engine.Render(ctx, stack, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode %dx%d PNG: %w", size, size, err)
	}
	return buf.Bytes(), nil
}
