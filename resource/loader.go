// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package resource loads files and images for the rendering layer. A
// Loader is constructed explicitly with the sources it may read from
// and passed to whoever needs it; there is no process-wide instance.
package resource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/gobuffalo/packr"

	"github.com/plume-gfx/plume/asset"
)

// ErrNotFound is returned when no source can serve a name.
var ErrNotFound = errors.New("resource not found in any source")

// Source supplies named blobs to a Loader.
type Source interface {
	// Open returns the contents stored under name
	Open(name string) ([]byte, error)

	// List returns every name the source can currently serve
	List() ([]string, error)
}

// Dir serves files below a filesystem root, named by their path
// relative to it.
type Dir struct {
	Root string
}

// Open implements Source
func (d Dir) Open(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.Root, name))
}

// List implements Source
func (d Dir) List() ([]string, error) {
	var names []string
	err := filepath.Walk(d.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.Root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Box serves assets embedded with packr.
type Box struct {
	Box packr.Box
}

// Open implements Source
func (b Box) Open(name string) ([]byte, error) {
	return b.Box.Find(name)
}

// List implements Source
func (b Box) List() ([]string, error) {
	return b.Box.List(), nil
}

// Pack serves entries of an asset archive.
type Pack struct {
	Archive *asset.Archive
}

// Open implements Source
func (p Pack) Open(name string) ([]byte, error) {
	return p.Archive.ReadAll(name)
}

// List implements Source
func (p Pack) List() ([]string, error) {
	return p.Archive.Names(), nil
}

// NewLoader creates a Loader that resolves names against the given
// sources in order.
func NewLoader(sources ...Source) *Loader {
	return &Loader{sources: sources}
}

// Loader resolves resource names against an ordered set of sources.
// It holds no mutable state and may be shared between goroutines.
type Loader struct {
	sources []Source
}

// File returns the contents of the first source that serves name.
func (l *Loader) File(name string) ([]byte, error) {
	for _, src := range l.sources {
		if data, err := src.Open(name); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// List returns the deduplicated names served by all sources, filtered
// by suffix when one is given. The result is sorted so callers iterate
// deterministically.
func (l *Loader) List(suffix string) []string {
	seen := map[string]struct{}{}
	for _, src := range l.sources {
		names, err := src.List()
		if err != nil {
			continue
		}
		for _, name := range names {
			if suffix != "" && !strings.HasSuffix(name, suffix) {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ImageData is a decoded picture in the arrangement GPU uploads
// expect: tightly packed RGBA rows.
type ImageData struct {
	Width    uint32
	Height   uint32
	Channels uint32
	Pix      []uint8
}

// Image loads and decodes the named picture. Whatever the source
// format, the pixels are drawn onto an RGBA canvas so the layout is
// always four channels.
func (l *Loader) Image(name string) (*ImageData, error) {
	data, err := l.File(name)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &ImageData{
		Width:    uint32(bounds.Dx()),
		Height:   uint32(bounds.Dy()),
		Channels: 4,
		Pix:      rgba.Pix,
	}, nil
}
