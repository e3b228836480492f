package assets

import (
	"fmt"
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Entry describes one named asset. FrameW/FrameH are set for sprite sheets.
type Entry struct {
	Name   string
	Path   string
	FrameW int
	FrameH int
}

// Manifest is the asset table the game preloads. Names are what prefabs and
// levels refer to.
var Manifest = []Entry{
	{Name: "sky", Path: "sky.png"},
	{Name: "ground", Path: "platform.png"},
	{Name: "star", Path: "star.png"},
	{Name: "bomb", Path: "bomb.png"},
	{Name: "dude", Path: "dude.png", FrameW: 32, FrameH: 48},
}

// Registry maps asset names to decoded images.
type Registry struct {
	entries map[string]Entry
	images  map[string]*ebiten.Image
	sizes   map[string]image.Point
	decode  func(path string) (image.Image, error)
}

func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{
		entries: make(map[string]Entry, len(entries)),
		images:  make(map[string]*ebiten.Image, len(entries)),
		sizes:   make(map[string]image.Point, len(entries)),
		decode:  DecodeImage,
	}
	for _, e := range entries {
		r.entries[e.Name] = e
	}
	return r
}

// Preload decodes every registered asset. It stops at the first failure.
func (r *Registry) Preload() error {
	for _, name := range r.Names() {
		if _, err := r.load(name); err != nil {
			return err
		}
	}
	return nil
}

// Image returns a loaded image, loading it on first use.
func (r *Registry) Image(name string) (*ebiten.Image, error) {
	if img, ok := r.images[name]; ok {
		return img, nil
	}
	return r.load(name)
}

// Size reports the drawn size of one frame: the frame size for sprite sheets,
// the whole image otherwise. It decodes without touching the GPU.
func (r *Registry) Size(name string) (int, int, error) {
	e, ok := r.entries[name]
	if !ok {
		return 0, 0, fmt.Errorf("assets: unknown asset %q", name)
	}
	if e.FrameW > 0 && e.FrameH > 0 {
		return e.FrameW, e.FrameH, nil
	}
	if sz, ok := r.sizes[name]; ok {
		return sz.X, sz.Y, nil
	}
	src, err := r.decode(e.Path)
	if err != nil {
		return 0, 0, fmt.Errorf("assets: load %s (%s): %w", name, e.Path, err)
	}
	sz := src.Bounds().Size()
	r.sizes[name] = sz
	return sz.X, sz.Y, nil
}

func (r *Registry) Entry(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) load(name string) (*ebiten.Image, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown asset %q", name)
	}
	src, err := r.decode(e.Path)
	if err != nil {
		return nil, fmt.Errorf("assets: load %s (%s): %w", name, e.Path, err)
	}
	r.sizes[name] = src.Bounds().Size()
	img := ebiten.NewImageFromImage(src)
	r.images[name] = img
	return img, nil
}
