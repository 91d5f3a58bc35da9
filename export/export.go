// Package export unpacks a decoded sprite archive into a directory: one raw
// file per record, one PNG per animation frame, and a JSON manifest linking
// them together.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-bnsa/bnsa"
	"badc0de.net/pkg/go-bnsa/compositor"
)

// ManifestName is the name of the manifest written by Dir.
const ManifestName = "manifest.json"

func TilesetName(i int) string  { return fmt.Sprintf("tileset_%03d.bin", i) }
func PaletteName(i int) string  { return fmt.Sprintf("palette_%03d.bin", i) }
func MiniAnimName(i int) string { return fmt.Sprintf("minianim_%03d.bin", i) }
func OAMName(i int) string      { return fmt.Sprintf("oam_%03d.bin", i) }

func FrameName(anim, frame int) string {
	return fmt.Sprintf("anim_%03d_frame_%03d.png", anim, frame)
}

// Dir writes the archive's records into dir, creating it if needed. Frames
// that cannot be rendered are left out and logged; the manifest records them
// without an image.
func Dir(a *bnsa.Archive, dir string) error {
	if !a.Valid() {
		return errors.Errorf("cannot export rejected archive: %s", a.Rejection)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating export directory")
	}

	write := func(name string, b []byte) error {
		if err := os.WriteFile(filepath.Join(dir, name), b, 0644); err != nil {
			return errors.Wrapf(err, "writing %s", name)
		}
		return nil
	}

	for i, ts := range a.Tilesets {
		if err := write(TilesetName(i), ts.Raw()); err != nil {
			return err
		}
	}
	for i, p := range a.Palettes {
		if err := write(PaletteName(i), p.Raw()); err != nil {
			return err
		}
	}
	for i, g := range a.MiniAnimGroups {
		if err := write(MiniAnimName(i), g.Raw()); err != nil {
			return err
		}
	}
	for i, g := range a.OAMGroups {
		if err := write(OAMName(i), g.Raw()); err != nil {
			return err
		}
	}

	rendered := make(map[[2]int]bool)
	for _, an := range a.Animations {
		for fi := range an.Frames {
			b, err := framePNG(a, an.Index, fi)
			if err != nil {
				glog.Warningf("not rendering animation %d frame %d: %v", an.Index, fi, err)
				continue
			}
			if err := write(FrameName(an.Index, fi), b); err != nil {
				return err
			}
			rendered[[2]int{an.Index, fi}] = true
		}
	}

	m, err := manifest(a, rendered)
	if err != nil {
		return err
	}
	return write(ManifestName, m)
}

func framePNG(a *bnsa.Archive, anim, frame int) ([]byte, error) {
	img, err := compositor.Frame(a, anim, frame)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, errors.Wrap(err, "encoding png")
	}
	return buf.Bytes(), nil
}

// Manifest describes the archive as JSON without writing anything.
func Manifest(a *bnsa.Archive) ([]byte, error) {
	return manifest(a, nil)
}

func manifest(a *bnsa.Archive, rendered map[[2]int]bool) ([]byte, error) {
	m := "{}"
	var err error
	set := func(path string, v interface{}) {
		if err == nil {
			m, err = sjson.Set(m, path, v)
		}
	}
	// appendObj builds a JSON object from key/value pairs and appends it to
	// the array at path.
	appendObj := func(path string, kv ...interface{}) {
		obj := "{}"
		for i := 0; i+1 < len(kv) && err == nil; i += 2 {
			obj, err = sjson.Set(obj, kv[i].(string), kv[i+1])
		}
		if err == nil {
			m, err = sjson.SetRaw(m, path+".-1", obj)
		}
	}
	record := func(path string, i int, off, size int64, file string) {
		appendObj(path, "index", i, "offset", off, "size", size, "file", file)
	}

	set("largest_tileset_hint", a.LargestTilesetHint)
	set("length", a.Length)
	set("consistent", a.Consistent)
	set("regions.tilesets", a.TilesetStart)
	set("regions.palettes", a.PaletteStart)
	set("regions.probable_palettes", a.ProbablyPaletteStart)
	set("regions.minianims", a.MiniAnimStart)
	set("regions.oam", a.OAMStart)

	for _, key := range []string{"tilesets", "palettes", "minianims", "oam", "animations"} {
		if err == nil {
			m, err = sjson.SetRaw(m, key, "[]")
		}
	}
	for i, ts := range a.Tilesets {
		record("tilesets", i, ts.Offset, ts.Size, TilesetName(i))
	}
	for i, p := range a.Palettes {
		record("palettes", i, p.Offset, p.Size, PaletteName(i))
	}
	for i, g := range a.MiniAnimGroups {
		record("minianims", i, g.Offset, g.Size, MiniAnimName(i))
	}
	for i, g := range a.OAMGroups {
		record("oam", i, g.Offset, g.Size, OAMName(i))
	}

	for ai, an := range a.Animations {
		appendObj("animations", "index", an.Index, "offset", an.Offset,
			"bounds", []int{an.Bounds.Min.X, an.Bounds.Min.Y, an.Bounds.Max.X, an.Bounds.Max.Y})
		set(fmt.Sprintf("animations.%d.frames", ai), []interface{}{})
		for fi, f := range an.Frames {
			file := ""
			if rendered[[2]int{an.Index, fi}] {
				file = FrameName(an.Index, fi)
			}
			appendObj(fmt.Sprintf("animations.%d.frames", ai),
				"offset", f.Offset,
				"delay", f.Delay,
				"flags", f.Flags,
				"tileset", f.Tileset,
				"palette", f.Palette,
				"minianim", f.MiniAnimGroup,
				"oam", f.OAMGroup,
				"file", file)
		}
	}

	if len(a.Animations) > 0 && len(a.Animations[0].Frames) > 0 {
		if b, perr := framePNG(a, 0, 0); perr == nil {
			if u, perr := dataurl.New(b, "image/png").MarshalText(); perr == nil {
				set("preview", string(u))
			}
		} else {
			glog.V(1).Infof("no manifest preview: %v", perr)
		}
	}

	if err != nil {
		return nil, errors.Wrap(err, "building manifest")
	}
	return pretty.Pretty([]byte(m)), nil
}
