package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"testing"

	"icoforge/internal/assets"
	"icoforge/internal/ico"
	"icoforge/internal/icon"
	"icoforge/internal/imgsrc"
	"icoforge/internal/render"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(render.NewEngine(assets.NewCache(), imgsrc.StdDecoder{}))
}

// TestExportICO_DefaultStack tests the end-to-end contract: the default
// three-layer stack exports to an ICO whose header declares seven images
// and whose directory carries the canonical sizes ascending, 256 stored as
// the 0 sentinel.
func TestExportICO_DefaultStack(t *testing.T) {
	pipeline := newTestPipeline()

	data, err := pipeline.ExportICO(context.Background(), icon.NewStack())
	if err != nil {
		t.Fatalf("ExportICO failed: %v", err)
	}

	wantHeader := []byte{0x00, 0x00, 0x01, 0x00, 0x07, 0x00}
	if !bytes.Equal(data[:6], wantHeader) {
		t.Fatalf("header = % X, want % X", data[:6], wantHeader)
	}

	wantDims := []byte{16, 20, 24, 32, 40, 64, 0}
	for i, want := range wantDims {
		entry := data[6+i*16:]
		if entry[0] != want || entry[1] != want {
			t.Errorf("entry %d dimensions = %d,%d, want %d,%d", i, entry[0], entry[1], want, want)
		}
	}

	// Each payload must be a decodable PNG at its declared size.
	images, err := ico.Parse(data)
	if err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}
	for _, desc := range images {
		if desc.Format != ico.FormatPNG {
			t.Errorf("%dx%d payload is %s, want PNG", desc.Width, desc.Height, desc.Format)
		}
		img, err := png.Decode(bytes.NewReader(desc.Data))
		if err != nil {
			t.Fatalf("%dx%d payload does not decode: %v", desc.Width, desc.Height, err)
		}
		if img.Bounds().Dx() != desc.Width {
			t.Errorf("payload bounds %v do not match declared %d", img.Bounds(), desc.Width)
		}
	}
}

// TestExportZIP tests the archive target: one entry per canonical size,
// each a standalone PNG named icon_{size}x{size}.png.
func TestExportZIP(t *testing.T) {
	pipeline := newTestPipeline()

	var buf bytes.Buffer
	if err := pipeline.ExportZIP(context.Background(), icon.NewStack(), &buf); err != nil {
		t.Fatalf("ExportZIP failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a ZIP archive: %v", err)
	}
	if len(zr.File) != len(icon.Sizes) {
		t.Fatalf("archive has %d entries, want %d", len(zr.File), len(icon.Sizes))
	}

	for i, size := range icon.Sizes {
		want := fmt.Sprintf("icon_%dx%d.png", size, size)
		f := zr.File[i]
		if f.Name != want {
			t.Errorf("entry %d named %q, want %q", i, f.Name, want)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		img, err := png.Decode(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("%s is not a PNG: %v", f.Name, err)
		}
		if img.Bounds().Dx() != int(size) {
			t.Errorf("%s has bounds %v", f.Name, img.Bounds())
		}
	}
}

// TestExport_Cancelled tests that a cancelled export emits nothing.
func TestExport_Cancelled(t *testing.T) {
	pipeline := newTestPipeline()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pipeline.ExportICO(ctx, icon.NewStack()); !errors.Is(err, context.Canceled) {
		t.Errorf("ExportICO error = %v, want context.Canceled", err)
	}

	var buf bytes.Buffer
	if err := pipeline.ExportZIP(ctx, icon.NewStack(), &buf); !errors.Is(err, context.Canceled) {
		t.Errorf("ExportZIP error = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Error("cancelled export wrote partial archive bytes")
	}
}

// TestExport_BadUserSourceStillExports tests graceful degradation: a
// user image that will not decode loses its layer, not the export.
func TestExport_BadUserSourceStillExports(t *testing.T) {
	pipeline := newTestPipeline()
	stack := icon.NewStack()
	stack.ByKind(icon.UserImage).SetSource([]byte("not an image"))

	data, err := pipeline.ExportICO(context.Background(), stack)
	if err != nil {
		t.Fatalf("ExportICO failed: %v", err)
	}
	images, err := ico.Parse(data)
	if err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}
	if len(images) != len(icon.Sizes) {
		t.Errorf("export has %d images, want all %d sizes", len(images), len(icon.Sizes))
	}
}
