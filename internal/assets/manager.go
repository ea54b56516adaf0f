package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png" // Register PNG format
	"io/fs"
	"path"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

//go:embed images/*.png
var projectAssets embed.FS

// DecodeImage decodes an embedded PNG without uploading it to the GPU.
func DecodeImage(name string) (image.Image, error) {
	fileData, err := projectAssets.ReadFile(path.Join("images", name))
	if err != nil {
		return nil, fmt.Errorf("read image %q: %w", name, err)
	}

	img, _, err := image.Decode(bytes.NewReader(fileData))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", name, err)
	}
	return img, nil
}

// LoadImage loads a PNG sprite sheet into VRAM
func LoadImage(name string) (*ebiten.Image, error) {
	img, err := DecodeImage(name)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// Names lists the embedded image files.
func Names() []string {
	entries, err := fs.ReadDir(projectAssets, "images")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Library owns the atlases loaded for a scene. Animators borrow images from
// it; Release frees them all.
type Library struct {
	logger *zap.Logger
	images map[string]*ebiten.Image
}

func NewLibrary(logger *zap.Logger) *Library {
	return &Library{
		logger: logger.Named("assets"),
		images: make(map[string]*ebiten.Image),
	}
}

// Get returns the named atlas, loading it on first use.
func (l *Library) Get(name string) (*ebiten.Image, error) {
	if img, ok := l.images[name]; ok {
		return img, nil
	}
	img, err := LoadImage(name)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	l.logger.Debug("atlas loaded", zap.String("name", name), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	l.images[name] = img
	return img, nil
}

// Retain deallocates every loaded atlas not named in keep.
func (l *Library) Retain(keep ...string) {
	wanted := make(map[string]bool, len(keep))
	for _, name := range keep {
		wanted[name] = true
	}
	for name, img := range l.images {
		if wanted[name] {
			continue
		}
		img.Deallocate()
		delete(l.images, name)
		l.logger.Debug("atlas released", zap.String("name", name))
	}
}

// Release deallocates every loaded atlas.
func (l *Library) Release() {
	for name, img := range l.images {
		img.Deallocate()
		delete(l.images, name)
	}
}
