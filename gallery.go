package blog

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/sync/singleflight"
)

const jpegQuality = 80

// thumbnailCache renders gallery thumbnails on first request and keeps the
// encoded JPEGs in memory. Entries are evicted oldest first.
type thumbnailCache struct {
	fsys       fs.FS
	width      int
	maxEntries int

	mu    sync.Mutex
	data  map[string][]byte
	order []string
	group singleflight.Group
}

func newThumbnailCache(fsys fs.FS, width, maxEntries int) *thumbnailCache {
	return &thumbnailCache{
		fsys:       fsys,
		width:      width,
		maxEntries: maxEntries,
		data:       make(map[string][]byte),
	}
}

// Get returns the JPEG thumbnail for file, rendering it if needed.
func (t *thumbnailCache) Get(file string) ([]byte, error) {
	t.mu.Lock()
	if b, ok := t.data[file]; ok {
		t.mu.Unlock()
		return b, nil
	}
	t.mu.Unlock()

	v, err, _ := t.group.Do(file, func() (interface{}, error) {
		b, err := t.render(file)
		if err != nil {
			return nil, err
		}
		t.store(file, b)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (t *thumbnailCache) store(file string, b []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.data[file]; ok {
		return
	}
	if t.maxEntries > 0 && len(t.order) >= t.maxEntries {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.data, oldest)
	}
	t.data[file] = b
	t.order = append(t.order, file)
}

func (t *thumbnailCache) render(file string) ([]byte, error) {
	f, err := t.fsys.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	img = scaleToWidth(img, t.width)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// scaleToWidth shrinks img to width keeping its aspect ratio. Narrower images
// are returned unchanged.
func scaleToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if width <= 0 || w <= width {
		return img
	}
	newH := h * width / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// galleryFile validates the :file parameter. Only plain file names listed in
// the gallery content are served.
func (a *App) galleryFile(c echo.Context) (string, error) {
	file := c.Param("file")
	if file == "" || !fs.ValidPath(file) || strings.ContainsAny(file, `/\`) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid file name")
	}
	if !a.Content.LocalPhoto(file) {
		return "", echo.ErrNotFound
	}
	return file, nil
}

func (a *App) handlePhoto(c echo.Context) error {
	file, err := a.galleryFile(c)
	if err != nil {
		return err
	}
	b, err := fs.ReadFile(a.galleryFS, file)
	if errors.Is(err, fs.ErrNotExist) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	ctype := mime.TypeByExtension(path.Ext(file))
	if ctype == "" {
		ctype = http.DetectContentType(b)
	}
	return c.Blob(http.StatusOK, ctype, b)
}

func (a *App) handleThumbnail(c echo.Context) error {
	file, err := a.galleryFile(c)
	if err != nil {
		return err
	}
	if !a.thumbLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
	}
	b, err := a.thumbs.Get(file)
	if errors.Is(err, fs.ErrNotExist) {
		return echo.ErrNotFound
	}
	if err != nil {
		a.Logger.Warn("thumbnail failed", "file", file, "err", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "cannot render thumbnail")
	}
	return c.Blob(http.StatusOK, "image/jpeg", b)
}
