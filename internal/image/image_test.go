package image

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	httputil "github.com/haneulpalette/haneul/internal/util/http"
	"github.com/haneulpalette/haneul/internal/util/imagecache"
)

// solid creates a w×h image filled with c.
func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() returned error: %v", err)
	}
	return buf.Bytes()
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.WriteFile(path, encodePNG(t, img), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		name string
		b    image.Rectangle
		size int
		want image.Rectangle
	}{
		{"square", image.Rect(0, 0, 100, 100), 640, image.Rect(0, 0, 640, 640)},
		{"landscape", image.Rect(0, 0, 200, 100), 640, image.Rect(0, 160, 640, 480)},
		{"portrait", image.Rect(0, 0, 300, 600), 640, image.Rect(160, 0, 480, 640)},
		{"downscale", image.Rect(0, 0, 1280, 2560), 640, image.Rect(160, 0, 480, 640)},
		{"empty", image.Rect(0, 0, 0, 10), 640, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitRect(tt.b, tt.size); got != tt.want {
				t.Errorf("FitRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLetterbox(t *testing.T) {
	red := color.RGBA{R: 220, G: 40, B: 40, A: 255}
	canvas := Letterbox(solid(200, 100, red), 640)

	if got := canvas.Bounds(); got != image.Rect(0, 0, 640, 640) {
		t.Fatalf("canvas bounds = %v, want 640x640", got)
	}
	// Resampling may round a channel by one.
	if got := canvas.RGBAAt(320, 320); !near(got, red) {
		t.Errorf("centre pixel = %+v, want %+v", got, red)
	}
	for _, p := range []image.Point{{320, 20}, {320, 620}, {0, 0}} {
		if got := canvas.RGBAAt(p.X, p.Y); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
			t.Errorf("letterbox pixel %v = %+v, want white", p, got)
		}
	}
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) int { return max(int(x), int(y)) - min(int(x), int(y)) }
	return d(a.R, b.R) <= 1 && d(a.G, b.G) <= 1 && d(a.B, b.B) <= 1
}

func TestLetterboxDefaultSize(t *testing.T) {
	canvas := Letterbox(solid(10, 10, color.RGBA{A: 255}), 0)
	if canvas.Bounds().Dx() != DefaultCanvasSize {
		t.Errorf("canvas width = %d, want %d", canvas.Bounds().Dx(), DefaultCanvasSize)
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "face.png")
	writePNG(t, path, solid(8, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255}))

	loader := NewFileLoader()
	img, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("loaded bounds = %v, want 8x4", img.Bounds())
	}

	if _, err := loader.Load(context.Background(), ""); err == nil {
		t.Error("Load(\"\") should have returned an error")
	}
	if _, err := loader.Load(context.Background(), filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Load(missing) should have returned an error")
	}
	if _, err := loader.Load(context.Background(), dir); err == nil {
		t.Error("Load(directory) should have returned an error")
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writePNG(t, good, solid(2, 2, color.RGBA{A: 255}))
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path    string
		wantErr bool
	}{
		{good, false},
		{dir, false},
		{"https://example.com/face.jpg", false},
		{bad, true},
		{filepath.Join(dir, "missing.jpg"), true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateImagePath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), solid(1, 1, color.RGBA{A: 255}))
	writePNG(t, filepath.Join(dir, "a.PNG"), solid(1, 1, color.RGBA{A: 255}))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o700); err != nil {
		t.Fatal(err)
	}

	files, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() returned error: %v", err)
	}
	want := []string{filepath.Join(dir, "a.PNG"), filepath.Join(dir, "b.png")}
	if len(files) != len(want) {
		t.Fatalf("ScanDirectoryForImages() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}

	if _, err := ScanDirectoryForImages(t.TempDir()); err == nil {
		t.Error("ScanDirectoryForImages(empty) should have returned an error")
	}
}

// pngHeader returns the signature and IHDR chunk of a w x h RGBA PNG with
// no pixel data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 17)
	copy(ihdr, "IHDR")
	binary.BigEndian.PutUint32(ihdr[4:], w)
	binary.BigEndian.PutUint32(ihdr[8:], h)
	ihdr[12] = 8 // bit depth
	ihdr[13] = 6 // truecolour with alpha

	buf := []byte("\x89PNG\r\n\x1a\n")
	buf = binary.BigEndian.AppendUint32(buf, 13)
	buf = append(buf, ihdr...)
	return binary.BigEndian.AppendUint32(buf, crc32.ChecksumIEEE(ihdr))
}

func TestDecodeBytes(t *testing.T) {
	if _, err := DecodeBytes(nil); !errors.Is(err, ErrNoImage) {
		t.Errorf("DecodeBytes(nil) error = %v, want ErrNoImage", err)
	}
	if _, err := DecodeBytes([]byte("garbage")); err == nil {
		t.Error("DecodeBytes(garbage) should have returned an error")
	}
	img, err := DecodeBytes(encodePNG(t, solid(3, 5, color.RGBA{A: 255})))
	if err != nil {
		t.Fatalf("DecodeBytes(png) returned error: %v", err)
	}
	if img.Bounds().Dy() != 5 {
		t.Errorf("decoded height = %d, want 5", img.Bounds().Dy())
	}
}

func TestDecodeBytesPixelLimit(t *testing.T) {
	tests := []struct {
		name string
		w, h uint32
	}{
		{"square", 60000, 60000},
		{"just over", MaxPixels/1000 + 1, 1000},
		{"int32 max", 1<<31 - 1, 1<<31 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes(pngHeader(tt.w, tt.h))
			if !errors.Is(err, ErrDecode) {
				t.Errorf("DecodeBytes(%dx%d) error = %v, want ErrDecode", tt.w, tt.h, err)
			}
		})
	}
}

func TestSmartLoaderURL(t *testing.T) {
	body := encodePNG(t, solid(6, 6, color.RGBA{R: 1, A: 255}))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	loader := NewSmartLoader(httputil.FetchOptions{})
	img, err := loader.Load(context.Background(), srv.URL+"/face.png")
	if err != nil {
		t.Fatalf("Load(url) returned error: %v", err)
	}
	if img.Bounds().Dx() != 6 {
		t.Errorf("fetched width = %d, want 6", img.Bounds().Dx())
	}
}

func TestSmartLoaderCache(t *testing.T) {
	body := encodePNG(t, solid(4, 4, color.RGBA{G: 1, A: 255}))
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	cache, err := imagecache.New(t.TempDir(), httputil.FetchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	loader := NewSmartLoader(httputil.FetchOptions{}).WithCache(cache)
	for range 3 {
		if _, err := loader.Load(context.Background(), srv.URL+"/face.png"); err != nil {
			t.Fatalf("Load(url) returned error: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}
