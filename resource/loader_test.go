// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package resource_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/plume-gfx/plume/asset"
	"github.com/plume-gfx/plume/resource"
)

func writeTestFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string][]byte{
		"simple.vert.spv": []byte("vertex"),
		"simple.frag.spv": []byte("fragment"),
		"notes.txt":       []byte("not a shader"),
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), contents, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoaderFile(t *testing.T) {
	c := qt.New(t)
	loader := resource.NewLoader(resource.Dir{Root: writeTestFiles(t)})

	contents, err := loader.File("simple.vert.spv")
	c.Assert(err, qt.IsNil)
	c.Assert(string(contents), qt.Equals, "vertex")

	_, err = loader.File("missing.spv")
	c.Assert(errors.Is(err, resource.ErrNotFound), qt.IsTrue)
}

func TestLoaderListFiltersBySuffix(t *testing.T) {
	c := qt.New(t)
	loader := resource.NewLoader(resource.Dir{Root: writeTestFiles(t)})

	names := loader.List(".spv")
	c.Assert(names, qt.DeepEquals, []string{"simple.frag.spv", "simple.vert.spv"})

	all := loader.List("")
	c.Assert(len(all), qt.Equals, 3)
}

func TestLoaderSourceOrder(t *testing.T) {
	c := qt.New(t)

	first := t.TempDir()
	second := t.TempDir()
	c.Assert(os.WriteFile(filepath.Join(first, "shared.txt"), []byte("first"), 0644), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(second, "shared.txt"), []byte("second"), 0644), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(second, "only.txt"), []byte("only"), 0644), qt.IsNil)

	loader := resource.NewLoader(resource.Dir{Root: first}, resource.Dir{Root: second})

	contents, err := loader.File("shared.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(string(contents), qt.Equals, "first")

	contents, err = loader.File("only.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(string(contents), qt.Equals, "only")
}

func TestLoaderPackSource(t *testing.T) {
	c := qt.New(t)

	builder := asset.NewBuilder(asset.Header{Author: "plume-gfx", Version: 1})
	c.Assert(builder.Add("packed.txt", bytes.NewReader([]byte("from the archive"))), qt.IsNil)

	var buf bytes.Buffer
	_, err := builder.WriteTo(&buf)
	c.Assert(err, qt.IsNil)

	archive, err := asset.Open(bytes.NewReader(buf.Bytes()))
	c.Assert(err, qt.IsNil)

	loader := resource.NewLoader(resource.Pack{Archive: archive})

	contents, err := loader.File("packed.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(string(contents), qt.Equals, "from the archive")
	c.Assert(loader.List(""), qt.DeepEquals, []string{"packed.txt"})
}

func TestLoaderImage(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	c.Assert(png.Encode(&buf, img), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "pic.png"), buf.Bytes(), 0644), qt.IsNil)

	loader := resource.NewLoader(resource.Dir{Root: dir})

	decoded, err := loader.Image("pic.png")
	c.Assert(err, qt.IsNil)
	c.Assert(decoded.Width, qt.Equals, uint32(2))
	c.Assert(decoded.Height, qt.Equals, uint32(2))
	c.Assert(decoded.Channels, qt.Equals, uint32(4))
	c.Assert(len(decoded.Pix), qt.Equals, 2*2*4)
	c.Assert(decoded.Pix[0], qt.Equals, uint8(255))
}
